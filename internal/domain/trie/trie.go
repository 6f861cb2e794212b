// Package trie compiles term lists into minimal-alternation regex patterns.
//
// A naive "term1|term2|...|termN" alternation makes a backtracking engine
// test every alternative at every position. Inserting the terms into a
// prefix tree and emitting the tree as a regex tests each shared prefix
// once, so matching cost tracks text length and trie depth rather than
// term count.
package trie

import (
	"regexp"
	"sort"
	"strings"
)

// Wildcard edge tokens. Glob characters are translated before insertion,
// so wildcards are part of the trie structure rather than appended to the
// generated pattern.
const (
	wildcardStar = `\w*`
	wildcardOne  = `\w?`
)

type node struct {
	children map[string]*node
	terminal bool
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// Trie is a prefix tree over regex-escaped character edges. Built once per
// term list, emitted as a single pattern string, then discardable.
type Trie struct {
	root           *node
	allowWildcards bool
	empty          bool
}

// New creates an empty trie. When allowWildcards is true, glob * and ? in
// inserted terms become \w* and \w? edges.
func New(allowWildcards bool) *Trie {
	return &Trie{root: newNode(), allowWildcards: allowWildcards, empty: true}
}

// Insert adds one term, character by character. Empty terms are ignored.
func (t *Trie) Insert(term string) {
	if term == "" {
		return
	}
	t.empty = false
	cur := t.root
	for _, r := range term {
		tok := edgeToken(r, t.allowWildcards)
		next, ok := cur.children[tok]
		if !ok {
			next = newNode()
			cur.children[tok] = next
		}
		cur = next
	}
	cur.terminal = true
}

// Empty reports whether no terms have been inserted.
func (t *Trie) Empty() bool { return t.empty }

// Pattern emits the trie as a regex wrapped in word-boundary anchors.
// Returns "" for an empty trie.
func (t *Trie) Pattern() string {
	if t.empty {
		return ""
	}
	body := emit(t.root)
	if body == "" {
		return ""
	}
	return `\b` + body + `\b`
}

// edgeToken maps one rune to its regex fragment. Literal characters are
// escaped here so emit never has to quote.
func edgeToken(r rune, allowWildcards bool) string {
	if allowWildcards {
		switch r {
		case '*':
			return wildcardStar
		case '?':
			return wildcardOne
		}
	}
	return regexp.QuoteMeta(string(r))
}

// classable reports whether a token can live inside a character class:
// a bare rune or a single escaped rune. Multi-atom tokens like \w* cannot.
func classable(tok string) bool {
	runes := []rune(tok)
	if len(runes) == 1 {
		return true
	}
	return len(runes) == 2 && runes[0] == '\\'
}

// emit recurses bottom-up. At each node sibling branches combine into an
// alternation; single-character alternatives collapse into a character
// class; a node where a term ends but longer terms continue makes the
// remainder optional.
func emit(n *node) string {
	if len(n.children) == 0 {
		// Word ends here with no continuation.
		return ""
	}

	toks := make([]string, 0, len(n.children))
	for tok := range n.children {
		toks = append(toks, tok)
	}
	sort.Strings(toks)

	var alts []string
	var class []string
	for _, tok := range toks {
		sub := emit(n.children[tok])
		if sub == "" && classable(tok) {
			class = append(class, tok)
			continue
		}
		alts = append(alts, tok+sub)
	}

	classOnly := len(alts) == 0
	switch len(class) {
	case 0:
	case 1:
		alts = append(alts, class[0])
	default:
		alts = append(alts, "["+strings.Join(class, "")+"]")
	}

	var result string
	if len(alts) == 1 {
		result = alts[0]
	} else {
		result = "(?:" + strings.Join(alts, "|") + ")"
	}

	if n.terminal {
		// A shorter term is a prefix of a longer one: matching may stop here.
		if classOnly {
			result += "?"
		} else {
			result = "(?:" + result + ")?"
		}
	}
	return result
}

// BuildPattern compiles a term list into a single word-anchored pattern.
// Returns "" when the list holds no non-empty terms; the caller must not
// create a pattern from "".
func BuildPattern(terms []string, allowWildcards bool) string {
	t := New(allowWildcards)
	for _, term := range terms {
		t.Insert(term)
	}
	return t.Pattern()
}
