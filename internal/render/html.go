package render

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/corey/conceptscan/internal/domain/result"
)

// HTMLWriter renders document results as inline-highlighted HTML. Each
// section becomes a div; overlapping concept highlights blend their
// colors, and closing spans carry a superscript concept label.
type HTMLWriter struct {
	w      io.Writer
	scheme Scheme
	err    error
}

// NewHTMLWriter creates an HTML writer with the given scheme.
func NewHTMLWriter(w io.Writer, scheme Scheme) *HTMLWriter {
	return &HTMLWriter{w: w, scheme: scheme}
}

// WriteDocResult writes the document name and every section.
func (h *HTMLWriter) WriteDocResult(dr *result.DocResult) error {
	h.write(html.EscapeString(dr.Doc.Name))
	h.write("\n")
	for _, sect := range dr.SectionResults(result.DefaultSectionSep, 0) {
		WalkSection(sect, &htmlSpanDelegate{writer: h})
	}
	return h.err
}

func (h *HTMLWriter) write(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *HTMLWriter) writeTag(name string, attrs map[string]string, close, newline bool) {
	var b strings.Builder
	b.WriteByte('<')
	if close {
		b.WriteByte('/')
	}
	b.WriteString(name)
	if len(attrs) > 0 {
		keys := make([]string, 0, len(attrs))
		for k := range attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, ` %s="%s"`, k, html.EscapeString(attrs[k]))
		}
	}
	b.WriteByte('>')
	if newline {
		b.WriteByte('\n')
	}
	h.write(b.String())
}

// htmlSpanDelegate emits inline spans for one section, driven by the
// sweep-line walk.
type htmlSpanDelegate struct {
	writer *HTMLWriter
}

func (d *htmlSpanDelegate) StartSection(sect *result.DocSectResult) {
	d.writer.writeTag("div", nil, false, true)
	d.writer.writeTag("span", nil, false, false)
}

func (d *htmlSpanDelegate) EndSection(sect *result.DocSectResult) {
	d.writer.writeTag("span", nil, true, false)
	d.writer.writeTag("div", nil, true, true)
}

func (d *htmlSpanDelegate) Text(text string) {
	if d.writer.scheme.PrettyHTML {
		text = cleanText(text)
	}
	d.writer.write(html.EscapeString(text))
}

// Boundary closes the running span, writes a label for every span ending
// here, and opens the next span colored by whatever starts or continues
// across this offset.
func (d *htmlSpanDelegate) Boundary(p result.SweepPoint) {
	w := d.writer
	var tooltip []string
	baseColor := ""
	if len(p.Continuing) > 0 {
		baseColor = MixHexColors(d.colors(p.Continuing))
		tooltip = append(tooltip, concepts(p.Continuing)...)
	}

	w.writeTag("span", nil, true, true)
	for _, m := range p.Ending {
		w.writeTag("span", map[string]string{
			"style": "color:" + w.scheme.Color(m),
			"title": m.Label(),
		}, false, false)
		w.write("<sup>[" + html.EscapeString(m.Pattern.Concept) + "]</sup>")
		w.writeTag("span", nil, true, false)
	}

	spanColor := ""
	if len(p.Starting) > 0 {
		spanColor = MixHexColors(d.colors(p.Starting))
		tooltip = append(tooltip, concepts(p.Starting)...)
	}

	switch {
	case baseColor != "" && spanColor != "":
		d.openColored(BlendHexColors(baseColor, spanColor, 0.7), tooltip)
	case baseColor != "":
		d.openColored(baseColor, tooltip)
	case spanColor != "":
		d.openColored(spanColor, tooltip)
	default:
		w.writeTag("span", nil, false, false)
	}
}

func (d *htmlSpanDelegate) openColored(color string, tooltip []string) {
	d.writer.writeTag("span", map[string]string{
		"style": "color:" + color,
		"title": strings.Join(tooltip, "; "),
	}, false, false)
}

func (d *htmlSpanDelegate) colors(matches []*result.MatchResult) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = d.writer.scheme.Color(m)
	}
	return out
}

func concepts(matches []*result.MatchResult) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Pattern.Concept
	}
	return out
}
