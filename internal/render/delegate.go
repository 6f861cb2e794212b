package render

import (
	"strings"

	"github.com/corey/conceptscan/internal/domain/result"
)

// DefaultSpanColor is the fallback highlight color for concepts without a
// configured color.
const DefaultSpanColor = "#F1E740" // dark yellow

// Writer renders one document result to an output stream.
type Writer interface {
	WriteDocResult(dr *result.DocResult) error
}

// Scheme carries the presentation knobs shared by all writers. Explicit
// values passed into writer construction, never package-level mutable
// state.
type Scheme struct {
	StartPad       int
	EndPad         int
	UppercaseMatch bool
	PrettyHTML     bool
	ConceptColors  map[string]string
	SpanColor      string // default highlight color
}

// DefaultScheme returns the stock presentation settings.
func DefaultScheme() Scheme {
	return Scheme{
		StartPad:       result.DefaultStartPad,
		EndPad:         result.DefaultEndPad,
		UppercaseMatch: true,
		PrettyHTML:     true,
		SpanColor:      DefaultSpanColor,
	}
}

// Color returns the highlight color for one match's concept.
func (s Scheme) Color(m *result.MatchResult) string {
	if c, ok := s.ConceptColors[m.Pattern.Concept]; ok {
		return c
	}
	if s.SpanColor != "" {
		return s.SpanColor
	}
	return DefaultSpanColor
}

// SpanDelegate receives the sweep-line walk of one section. Every renderer
// that draws overlapping spans implements this; the walk itself is shared.
type SpanDelegate interface {
	// StartSection opens the section's output.
	StartSection(sect *result.DocSectResult)

	// Text receives the raw document text between two boundaries.
	Text(text string)

	// Boundary is invoked at each offset where spans start, end, or
	// continue, in ascending order.
	Boundary(p result.SweepPoint)

	// EndSection closes the section's output.
	EndSection(sect *result.DocSectResult)
}

// WalkSection drives a delegate across one section: alternating text runs
// and span boundaries, from the padded start to the padded end.
func WalkSection(sect *result.DocSectResult, d SpanDelegate) {
	d.StartSection(sect)
	cur := sect.Start(-1)
	end := sect.End(-1)
	for _, p := range result.SweepSpans(sect.Results) {
		d.Text(sect.Doc.Text[cur:p.Index])
		d.Boundary(p)
		cur = p.Index
	}
	d.Text(sect.Doc.Text[cur:end])
	d.EndSection(sect)
}

// cleanText flattens whitespace control characters so a section renders as
// one visual line.
func cleanText(text string) string {
	r := strings.NewReplacer("\n", " ", "\r", " ", "\f", " ", "\t", " ")
	return r.Replace(text)
}
