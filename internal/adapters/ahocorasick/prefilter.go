// Package ahocorasick implements the ports.Prefilter interface with an
// Aho-Corasick automaton over the configuration's literal terms. One pass
// over the text decides whether any term occurs at all, in O(n + m) time
// regardless of term count.
//
// The automaton matches raw substrings, a superset of the word-anchored
// regex matches, and both terms and text are lowercased, a superset of
// both case flags. So a miss here proves no registered pattern can match.
// Usable only when every term is wildcard-free and no explicit-regex
// patterns are configured; the regex super pattern covers the rest.
package ahocorasick

import (
	"strings"

	aho "github.com/petar-dambovaliev/aho-corasick"
)

// Prefilter is a fast document-reject test built from literal terms.
type Prefilter struct {
	automaton aho.AhoCorasick
	terms     int
}

// New builds the automaton from the given terms. Returns nil when no
// non-empty terms are provided.
func New(terms []string) *Prefilter {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		lowered = append(lowered, strings.ToLower(t))
	}
	if len(lowered) == 0 {
		return nil
	}
	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	return &Prefilter{
		automaton: builder.Build(lowered),
		terms:     len(lowered),
	}
}

// MayMatch reports whether any term occurs in the text, ignoring case.
func (p *Prefilter) MayMatch(text string) bool {
	iter := p.automaton.Iter(strings.ToLower(text))
	return iter.Next() != nil
}

// TermCount returns the number of terms in the automaton.
func (p *Prefilter) TermCount() int { return p.terms }
