package pattern

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/corey/conceptscan/internal/domain/trie"
	"github.com/corey/conceptscan/internal/ports"
)

// Registry holds the ordered, compiled pattern set for one configuration
// plus the raw material the app layer needs to build a pre-filter.
type Registry struct {
	patterns []*MatchPattern
	byID     map[int]*MatchPattern

	literalTerms  []string // every term across all SEARCH sheets, verbatim
	explicitExprs []string // every fragment across all PATTERN sheets
	hasWildcards  bool
}

// Build compiles a configuration into a pattern registry. Sheets are
// processed in order; within a sheet, concepts keep their source order.
// A regex the engine rejects aborts the whole build with a *CompileError.
func Build(cfg *ports.Config) (*Registry, error) {
	r := &Registry{byID: make(map[int]*MatchPattern)}
	for _, sheet := range cfg.Sheets {
		source := sheet.Name
		if cfg.Source != "" {
			source = cfg.Source + "::" + sheet.Name
		}
		switch sheet.Kind {
		case ports.SheetSearch:
			if err := r.addSearchSheet(sheet, source); err != nil {
				return nil, err
			}
		case ports.SheetPattern:
			if err := r.addPatternSheet(sheet, source); err != nil {
				return nil, err
			}
		default:
			log.Warn().Str("sheet", sheet.Name).Msg("skipping sheet of unknown kind")
		}
	}
	return r, nil
}

// addSearchSheet turns term lists into trie-compiled patterns. Terms are
// partitioned by case: all-uppercase terms are usually acronyms and must
// not casually match lowercase occurrences, so they compile into their own
// case-sensitive pattern, while the rest match case-insensitively.
func (r *Registry) addSearchSheet(sheet ports.Sheet, source string) error {
	meta := map[string]string{"source_type": string(ports.SheetSearch)}
	for _, ct := range sheet.Concepts {
		if strings.HasPrefix(ct.Concept, "_") {
			continue
		}
		if ct.Concept == "" || len(ct.Terms) == 0 {
			log.Warn().Str("sheet", sheet.Name).Str("concept", ct.Concept).
				Msg("skipping entry with missing concept or terms")
			continue
		}
		var upper, mixed []string
		for _, term := range ct.Terms {
			if term == "" {
				continue
			}
			r.literalTerms = append(r.literalTerms, term)
			if strings.ContainsAny(term, "*?") {
				r.hasWildcards = true
			}
			if isAllUpper(term) {
				upper = append(upper, term)
			} else {
				mixed = append(mixed, term)
			}
		}
		if err := r.addTermPattern(ct.Concept, mixed, true, source, meta); err != nil {
			return err
		}
		if err := r.addTermPattern(ct.Concept, upper, false, source, meta); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) addTermPattern(concept string, terms []string, ignoreCase bool, source string, meta map[string]string) error {
	expr := trie.BuildPattern(terms, true)
	if expr == "" {
		return nil
	}
	return r.add(concept, expr, ignoreCase, source, meta)
}

// addPatternSheet compiles explicit-regex rows. Fragments are joined with
// "|" verbatim, no trie compilation.
func (r *Registry) addPatternSheet(sheet ports.Sheet, source string) error {
	meta := map[string]string{"source_type": string(ports.SheetPattern)}
	for _, row := range sheet.Rows {
		if strings.HasPrefix(row.Concept, "_") {
			continue
		}
		if row.Concept == "" || len(row.Exprs) == 0 {
			log.Warn().Str("sheet", sheet.Name).Str("concept", row.Concept).
				Msg("skipping row with missing concept or pattern")
			continue
		}
		expr := strings.Join(row.Exprs, "|")
		r.explicitExprs = append(r.explicitExprs, expr)
		if err := r.add(row.Concept, expr, row.IgnoreCase, source, meta); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) add(concept, expr string, ignoreCase bool, source string, meta map[string]string) error {
	mp, err := newMatchPattern(len(r.patterns), concept, expr, ignoreCase, source, meta)
	if err != nil {
		return &CompileError{Concept: concept, Source: source, Expr: expr, Err: err}
	}
	r.patterns = append(r.patterns, mp)
	r.byID[mp.ID] = mp
	return nil
}

// Patterns returns the compiled patterns in registration order.
func (r *Registry) Patterns() []*MatchPattern { return r.patterns }

// ByID returns the pattern with the given stable ID, or nil.
func (r *Registry) ByID(id int) *MatchPattern { return r.byID[id] }

// Len returns the number of registered patterns.
func (r *Registry) Len() int { return len(r.patterns) }

// Concepts returns the distinct concept names in first-seen order.
func (r *Registry) Concepts() []string {
	seen := make(map[string]bool, len(r.patterns))
	var out []string
	for _, p := range r.patterns {
		if !seen[p.Concept] {
			seen[p.Concept] = true
			out = append(out, p.Concept)
		}
	}
	return out
}

// LiteralTerms returns every literal term across all SEARCH sheets.
// Feed for an automaton-based pre-filter.
func (r *Registry) LiteralTerms() []string { return r.literalTerms }

// HasExplicitPatterns reports whether any PATTERN sheet contributed.
func (r *Registry) HasExplicitPatterns() bool { return len(r.explicitExprs) > 0 }

// HasWildcards reports whether any literal term uses glob wildcards.
func (r *Registry) HasWildcards() bool { return r.hasWildcards }

// SuperPattern builds the single combined pre-filter expression: the trie
// union of every literal term plus every explicit fragment, compiled
// case-insensitively by the caller. Matching more than the individual
// patterns is fine; matching less is not, and case-insensitive matching
// over-approximates both case flags. Returns "" when the registry is empty.
func (r *Registry) SuperPattern() string {
	super := trie.New(true)
	for _, term := range r.literalTerms {
		super.Insert(term)
	}
	parts := make([]string, 0, 1+len(r.explicitExprs))
	if p := super.Pattern(); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, r.explicitExprs...)
	return strings.Join(parts, "|")
}

// isAllUpper reports whether the term contains cased letters and every one
// of them is uppercase.
func isAllUpper(s string) bool {
	return s == strings.ToUpper(s) && s != strings.ToLower(s)
}
