// Package pattern builds the ordered list of compiled match patterns from a
// configuration and owns the pattern identity model: every pattern gets a
// stable integer ID at build time, and result maps key on that ID rather
// than on pointer identity so results survive serialization.
package pattern

import (
	"fmt"
	"regexp"
)

// MatchPattern is one compiled matcher tagged with a concept and a case
// flag. Immutable after construction. Two patterns with identical text but
// different provenance are distinct (different IDs).
type MatchPattern struct {
	ID         int
	Concept    string
	Expr       string
	IgnoreCase bool
	Source     string
	Metadata   map[string]string

	re *regexp.Regexp
}

// newMatchPattern compiles expr, applying the case flag as an (?i) prefix.
func newMatchPattern(id int, concept, expr string, ignoreCase bool, source string, metadata map[string]string) (*MatchPattern, error) {
	compiled := expr
	if ignoreCase {
		compiled = "(?i)" + expr
	}
	re, err := regexp.Compile(compiled)
	if err != nil {
		return nil, err
	}
	return &MatchPattern{
		ID:         id,
		Concept:    concept,
		Expr:       expr,
		IgnoreCase: ignoreCase,
		Source:     source,
		Metadata:   metadata,
		re:         re,
	}, nil
}

// Restore recompiles a pattern from its serialized fields. Restored
// patterns compare Equal to the originals; pointer identity is not
// preserved across serialization, only the stable ID.
func Restore(id int, concept, expr string, ignoreCase bool, source string, metadata map[string]string) (*MatchPattern, error) {
	return newMatchPattern(id, concept, expr, ignoreCase, source, metadata)
}

// FindAllIndex returns every non-overlapping, leftmost-first occurrence of
// the pattern in text as [start, end) rune-offset-free byte pairs.
func (p *MatchPattern) FindAllIndex(text string) [][]int {
	return p.re.FindAllStringIndex(text, -1)
}

// Equal reports field-by-field equality, the identity notion used when a
// pattern has been rebuilt from its serialized form.
func (p *MatchPattern) Equal(o *MatchPattern) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.ID == o.ID &&
		p.Concept == o.Concept &&
		p.Expr == o.Expr &&
		p.IgnoreCase == o.IgnoreCase &&
		p.Source == o.Source
}

func (p *MatchPattern) String() string {
	expr := p.Expr
	if len(expr) > 20 {
		expr = expr[:20]
	}
	return fmt.Sprintf("<MatchPattern %s %q>", p.Concept, expr)
}
