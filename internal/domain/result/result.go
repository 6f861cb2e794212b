// Package result holds the match-result data model and the span algebra:
// sliding-window sectioning and sweep-line overlap classification.
//
// Offsets are byte offsets into the document text, half-open [start, end),
// so Text == doc.Text[Start:End] always holds.
package result

import (
	"fmt"

	"github.com/corey/conceptscan/internal/domain/pattern"
	"github.com/corey/conceptscan/internal/ports"
)

// Defaults for sectioning and context padding, passed explicitly by
// callers that want something else.
const (
	DefaultSectionSep = 125
	DefaultStartPad   = 20
	DefaultEndPad     = 35
)

// MatchResult is one occurrence of a pattern in a document. Immutable.
type MatchResult struct {
	Start   int
	End     int
	Text    string
	Pattern *pattern.MatchPattern
	Doc     *ports.Document
}

// Label renders the match as "text[Concept]", optionally uppercasing the
// matched text.
func (m *MatchResult) Label() string {
	return m.Text + "[" + m.Pattern.Concept + "]"
}

func (m *MatchResult) String() string {
	return fmt.Sprintf("<MatchResult (%d, %d) %s>", m.Start, m.End, m.Label())
}

// DocResult is the full match set for one document. Pattern iteration
// order is registration order, not match order. Sections are computed
// lazily on first request.
type DocResult struct {
	Doc *ports.Document

	order    []int
	patterns map[int]*pattern.MatchPattern
	results  map[int][]*MatchResult

	sections []*DocSectResult
}

// NewDocResult assembles a result from per-pattern match lists. patterns
// must be in registration order; results maps pattern ID to its matches.
// Every match in results[id] must reference the pattern with that ID.
func NewDocResult(doc *ports.Document, patterns []*pattern.MatchPattern, results map[int][]*MatchResult) *DocResult {
	dr := &DocResult{
		Doc:      doc,
		patterns: make(map[int]*pattern.MatchPattern, len(patterns)),
		results:  results,
	}
	for _, p := range patterns {
		if len(results[p.ID]) == 0 {
			continue
		}
		dr.order = append(dr.order, p.ID)
		dr.patterns[p.ID] = p
	}
	return dr
}

// Empty reports whether the document matched nothing.
func (dr *DocResult) Empty() bool { return dr == nil || len(dr.order) == 0 }

// Patterns returns the matched patterns in registration order.
func (dr *DocResult) Patterns() []*pattern.MatchPattern {
	out := make([]*pattern.MatchPattern, 0, len(dr.order))
	for _, id := range dr.order {
		out = append(out, dr.patterns[id])
	}
	return out
}

// ResultsFor returns the matches for one pattern ID, in match order.
func (dr *DocResult) ResultsFor(id int) []*MatchResult { return dr.results[id] }

// AllResults flattens every match, grouped by pattern in registration
// order.
func (dr *DocResult) AllResults() []*MatchResult {
	var out []*MatchResult
	for _, id := range dr.order {
		out = append(out, dr.results[id]...)
	}
	return out
}

// ConceptResults flattens the matches of every pattern tagged with the
// given concept.
func (dr *DocResult) ConceptResults(concept string) []*MatchResult {
	var out []*MatchResult
	for _, id := range dr.order {
		if dr.patterns[id].Concept == concept {
			out = append(out, dr.results[id]...)
		}
	}
	return out
}

// SectionResults groups the matches into document sections separated by
// gaps of at least sep non-matching characters, with sections force-closed
// beyond max characters (0 disables the cap). The grouping is computed once
// and cached; later calls return the cached sections regardless of
// arguments.
func (dr *DocResult) SectionResults(sep, max int) []*DocSectResult {
	if dr.sections != nil {
		return dr.sections
	}
	groups := SlidingWindowSections(dr.AllResults(), sep, max)
	sections := make([]*DocSectResult, 0, len(groups))
	for _, g := range groups {
		sections = append(sections, &DocSectResult{
			Doc:      dr.Doc,
			Results:  g,
			StartPad: DefaultStartPad,
			EndPad:   DefaultEndPad,
		})
	}
	dr.sections = sections
	return dr.sections
}

// DocSectResult is one contiguous annotated run of the document: a view
// over DocResult, never mutated independently. Results are in ascending
// start order when produced by the sectioning algorithm.
type DocSectResult struct {
	Doc      *ports.Document
	Results  []*MatchResult
	StartPad int
	EndPad   int
}

// Start returns the padded section start, clamped to the document.
// A negative pad means "use the section default".
func (s *DocSectResult) Start(pad int) int {
	if pad < 0 {
		pad = s.StartPad
	}
	start := s.Results[0].Start
	for _, r := range s.Results[1:] {
		if r.Start < start {
			start = r.Start
		}
	}
	if start-pad < 0 {
		return 0
	}
	return start - pad
}

// End returns the padded section end, clamped to the document.
// A negative pad means "use the section default".
func (s *DocSectResult) End(pad int) int {
	if pad < 0 {
		pad = s.EndPad
	}
	end := 0
	for _, r := range s.Results {
		if r.End > end {
			end = r.End
		}
	}
	if end+pad > len(s.Doc.Text) {
		return len(s.Doc.Text)
	}
	return end + pad
}
