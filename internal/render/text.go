package render

import (
	"io"
	"strings"

	"github.com/corey/conceptscan/internal/domain/result"
)

// TextWriter renders document results as plain text: each section's
// cleaned text followed by one line per match, aligned under its offset
// and labeled with its concept.
type TextWriter struct {
	w      io.Writer
	scheme Scheme
	err    error
}

// NewTextWriter creates a text writer with the given scheme.
func NewTextWriter(w io.Writer, scheme Scheme) *TextWriter {
	return &TextWriter{w: w, scheme: scheme}
}

// WriteDocResult writes the document name and every section.
func (t *TextWriter) WriteDocResult(dr *result.DocResult) error {
	t.writeLine(dr.Doc.Name)
	for _, sect := range dr.SectionResults(result.DefaultSectionSep, 0) {
		t.writeSection(sect)
	}
	return t.err
}

func (t *TextWriter) writeSection(sect *result.DocSectResult) {
	start := sect.Start(t.scheme.StartPad)
	end := sect.End(t.scheme.EndPad)
	t.writeLine(cleanText(sect.Doc.Text[start:end]))
	for _, m := range sect.Results {
		label := m.Label()
		if t.scheme.UppercaseMatch {
			label = strings.ToUpper(m.Text) + "[" + m.Pattern.Concept + "]"
		}
		t.writeLine(strings.Repeat(" ", m.Start-start) + label)
	}
	t.writeLine("")
}

func (t *TextWriter) writeLine(s string) {
	if t.err != nil {
		return
	}
	_, t.err = io.WriteString(t.w, s+"\n")
}
