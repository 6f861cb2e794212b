package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/conceptscan/internal/domain/pattern"
	"github.com/corey/conceptscan/internal/domain/result"
	"github.com/corey/conceptscan/internal/ports"
)

func metricResult(t *testing.T) *result.DocResult {
	t.Helper()
	doc := ports.NewDocument("report.txt", "This is a test of precision and recall")
	p, err := pattern.Restore(0, "metric", `\b(?:precision|recall)\b`, true, "", nil)
	require.NoError(t, err)

	return result.NewDocResult(doc, []*pattern.MatchPattern{p}, map[int][]*result.MatchResult{
		0: {
			{Start: 18, End: 27, Text: "precision", Pattern: p, Doc: doc},
			{Start: 32, End: 38, Text: "recall", Pattern: p, Doc: doc},
		},
	})
}

func TestTextWriterOutput(t *testing.T) {
	var buf strings.Builder
	w := NewTextWriter(&buf, DefaultScheme())
	require.NoError(t, w.WriteDocResult(metricResult(t)))

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, "report.txt", lines[0])
	assert.Equal(t, "This is a test of precision and recall", lines[1])

	// Labels are aligned under their match offsets, uppercased by default.
	assert.Equal(t, strings.Repeat(" ", 18)+"PRECISION[metric]", lines[2])
	assert.Equal(t, strings.Repeat(" ", 32)+"RECALL[metric]", lines[3])
}

func TestTextWriterLowercaseOption(t *testing.T) {
	scheme := DefaultScheme()
	scheme.UppercaseMatch = false

	var buf strings.Builder
	w := NewTextWriter(&buf, scheme)
	require.NoError(t, w.WriteDocResult(metricResult(t)))
	assert.Contains(t, buf.String(), "precision[metric]")
	assert.NotContains(t, buf.String(), "PRECISION")
}

func TestTextWriterFlattensNewlines(t *testing.T) {
	doc := ports.NewDocument("d", "line one\nrecall\nline three")
	p, err := pattern.Restore(0, "metric", `\brecall\b`, true, "", nil)
	require.NoError(t, err)
	dr := result.NewDocResult(doc, []*pattern.MatchPattern{p}, map[int][]*result.MatchResult{
		0: {{Start: 9, End: 15, Text: "recall", Pattern: p, Doc: doc}},
	})

	var buf strings.Builder
	require.NoError(t, NewTextWriter(&buf, DefaultScheme()).WriteDocResult(dr))
	assert.Contains(t, buf.String(), "line one recall line three")
}

func TestHTMLWriterOutput(t *testing.T) {
	var buf strings.Builder
	w := NewHTMLWriter(&buf, DefaultScheme())
	require.NoError(t, w.WriteDocResult(metricResult(t)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "report.txt\n<div>"))
	assert.Contains(t, out, "<sup>[metric]</sup>")
	assert.Contains(t, out, "color:"+DefaultSpanColor)
	assert.Contains(t, out, `title="precision[metric]"`)
	assert.True(t, strings.HasSuffix(out, "</div>\n"))

	// Spans balance.
	assert.Equal(t, strings.Count(out, "<span"), strings.Count(out, "</span>"))
}

func TestHTMLWriterEscapesText(t *testing.T) {
	doc := ports.NewDocument("a<b>.txt", "x <recall> & more")
	p, err := pattern.Restore(0, "metric", `\brecall\b`, true, "", nil)
	require.NoError(t, err)
	dr := result.NewDocResult(doc, []*pattern.MatchPattern{p}, map[int][]*result.MatchResult{
		0: {{Start: 3, End: 9, Text: "recall", Pattern: p, Doc: doc}},
	})

	var buf strings.Builder
	require.NoError(t, NewHTMLWriter(&buf, DefaultScheme()).WriteDocResult(dr))

	out := buf.String()
	assert.Contains(t, out, "a&lt;b&gt;.txt")
	assert.Contains(t, out, "&lt;recall&gt;")
	assert.NotContains(t, out, "<recall>")
}

func TestHTMLConceptColors(t *testing.T) {
	scheme := DefaultScheme()
	scheme.ConceptColors = map[string]string{"metric": "#112233"}

	var buf strings.Builder
	require.NoError(t, NewHTMLWriter(&buf, scheme).WriteDocResult(metricResult(t)))
	assert.Contains(t, buf.String(), "color:#112233")
}

func TestWalkSectionOverlap(t *testing.T) {
	doc := ports.NewDocument("d", "abcdefghij")
	pa, err := pattern.Restore(0, "a", "x", false, "", nil)
	require.NoError(t, err)
	pb, err := pattern.Restore(1, "b", "x", false, "", nil)
	require.NoError(t, err)

	sect := &result.DocSectResult{
		Doc: doc,
		Results: []*result.MatchResult{
			{Start: 0, End: 6, Text: "abcdef", Pattern: pa, Doc: doc},
			{Start: 3, End: 9, Text: "defghi", Pattern: pb, Doc: doc},
		},
		StartPad: 0,
		EndPad:   0,
	}

	var rec recordingDelegate
	WalkSection(sect, &rec)

	// Text runs cover the section exactly once, split at every boundary.
	assert.Equal(t, []string{"", "abc", "def", "ghi", ""}, rec.texts)
	assert.Equal(t, []int{0, 3, 6, 9}, rec.boundaries)
}

type recordingDelegate struct {
	texts      []string
	boundaries []int
}

func (r *recordingDelegate) StartSection(*result.DocSectResult) {}
func (r *recordingDelegate) EndSection(*result.DocSectResult)   {}
func (r *recordingDelegate) Text(text string)                   { r.texts = append(r.texts, text) }
func (r *recordingDelegate) Boundary(p result.SweepPoint) {
	r.boundaries = append(r.boundaries, p.Index)
}
