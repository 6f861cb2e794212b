// Package summary aggregates matched strings into per-concept or
// per-pattern term frequencies.
package summary

import (
	"sort"
	"strconv"
	"strings"

	"github.com/corey/conceptscan/internal/domain/result"
)

// TermCount is one counter entry.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Counter is an ordered frequency list, descending by count. Tie order
// among equal counts follows first appearance.
type Counter []TermCount

// Map exposes the counter as a plain term→count map.
func (c Counter) Map() map[string]int {
	out := make(map[string]int, len(c))
	for _, tc := range c {
		out[tc.Term] = tc.Count
	}
	return out
}

// Total returns the sum of all counts.
func (c Counter) Total() int {
	total := 0
	for _, tc := range c {
		total += tc.Count
	}
	return total
}

// Options controls summarization.
type Options struct {
	// ByConcept merges patterns sharing a concept under the concept name.
	// Otherwise each pattern keys its own entry.
	ByConcept bool

	// FoldCase merges case-variant spellings of matches from
	// case-insensitive patterns. Case-sensitive patterns are never folded;
	// their exact-case distinctions are the point of the flag split.
	FoldCase bool
}

// Summarize counts matched strings per key for every pattern in the
// result. Keys are concept names (ByConcept) or pattern keys from
// PatternKey. Counters are ordered by descending count.
func Summarize(dr *result.DocResult, opts Options) map[string]Counter {
	if dr.Empty() {
		return nil
	}
	counts := make(map[string]map[string]int)
	order := make(map[string][]string) // key -> terms in first-seen order
	for _, p := range dr.Patterns() {
		key := keyFor(p.Concept, p.ID, opts.ByConcept)
		if counts[key] == nil {
			counts[key] = make(map[string]int)
		}
		texts := matchTexts(dr.ResultsFor(p.ID))
		if opts.FoldCase && p.IgnoreCase {
			texts = foldVariants(texts)
		}
		for _, t := range texts {
			if counts[key][t] == 0 {
				order[key] = append(order[key], t)
			}
			counts[key][t]++
		}
	}

	out := make(map[string]Counter, len(counts))
	for key, terms := range counts {
		ctr := make(Counter, 0, len(terms))
		for _, term := range order[key] {
			ctr = append(ctr, TermCount{Term: term, Count: terms[term]})
		}
		sort.SliceStable(ctr, func(i, j int) bool { return ctr[i].Count > ctr[j].Count })
		out[key] = ctr
	}
	return out
}

// MatchedTerms returns the raw matched strings per key, in document match
// order, without counting or folding.
func MatchedTerms(dr *result.DocResult, byConcept bool) map[string][]string {
	if dr.Empty() {
		return nil
	}
	out := make(map[string][]string)
	for _, p := range dr.Patterns() {
		key := keyFor(p.Concept, p.ID, byConcept)
		out[key] = append(out[key], matchTexts(dr.ResultsFor(p.ID))...)
	}
	return out
}

// PatternKey is the per-pattern summary key: concept name qualified by the
// stable pattern ID, so two patterns of one concept stay distinct.
func PatternKey(concept string, id int) string {
	return concept + "#" + strconv.Itoa(id)
}

func keyFor(concept string, id int, byConcept bool) string {
	if byConcept {
		return concept
	}
	return PatternKey(concept, id)
}

func matchTexts(matches []*result.MatchResult) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Text
	}
	return out
}

// foldVariants rewrites each text to the canonical spelling of its
// case-folded group. The canonical form prefers a non-lowercase variant
// when one exists, otherwise the lexicographically maximal variant (which
// in practice prefers accented forms). The tie-break is documented
// behavior, not a claim of correctness.
func foldVariants(texts []string) []string {
	canon := make(map[string]string, len(texts))
	for _, t := range texts {
		folded := strings.ToLower(t)
		prev, ok := canon[folded]
		if !ok {
			canon[folded] = t
			continue
		}
		canon[folded] = preferVariant(prev, t)
	}
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = canon[strings.ToLower(t)]
	}
	return out
}

func preferVariant(a, b string) string {
	aCased := a != strings.ToLower(a)
	bCased := b != strings.ToLower(b)
	if aCased != bCased {
		if aCased {
			return a
		}
		return b
	}
	if a > b {
		return a
	}
	return b
}

