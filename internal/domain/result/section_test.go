package result

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/conceptscan/internal/domain/pattern"
	"github.com/corey/conceptscan/internal/ports"
)

func testDoc(length int) *ports.Document {
	return ports.NewDocument("doc.txt", strings.Repeat("x", length))
}

func testPattern(t *testing.T, id int, concept string) *pattern.MatchPattern {
	t.Helper()
	p, err := pattern.Restore(id, concept, "x", false, "", nil)
	require.NoError(t, err)
	return p
}

func matchAt(doc *ports.Document, p *pattern.MatchPattern, start, end int) *MatchResult {
	return &MatchResult{Start: start, End: end, Text: doc.Text[start:end], Pattern: p, Doc: doc}
}

func spans(groups [][]*MatchResult) [][][2]int {
	out := make([][][2]int, len(groups))
	for i, g := range groups {
		for _, m := range g {
			out[i] = append(out[i], [2]int{m.Start, m.End})
		}
	}
	return out
}

func TestSectionsGapExactlySepMerges(t *testing.T) {
	doc := testDoc(20)
	p := testPattern(t, 0, "c")
	groups := SlidingWindowSections([]*MatchResult{
		matchAt(doc, p, 1, 3),
		matchAt(doc, p, 4, 7),
	}, 1, 0)
	assert.Equal(t, [][][2]int{{{1, 3}, {4, 7}}}, spans(groups))
}

func TestSectionsGapBeyondSepSplits(t *testing.T) {
	doc := testDoc(20)
	p := testPattern(t, 0, "c")
	groups := SlidingWindowSections([]*MatchResult{
		matchAt(doc, p, 1, 3),
		matchAt(doc, p, 5, 7),
	}, 1, 0)
	assert.Equal(t, [][][2]int{{{1, 3}}, {{5, 7}}}, spans(groups))
}

func TestSectionsUnsortedInput(t *testing.T) {
	doc := testDoc(30)
	p := testPattern(t, 0, "c")
	groups := SlidingWindowSections([]*MatchResult{
		matchAt(doc, p, 20, 25),
		matchAt(doc, p, 1, 3),
		matchAt(doc, p, 2, 6),
	}, 5, 0)
	assert.Equal(t, [][][2]int{{{1, 3}, {2, 6}}, {{20, 25}}}, spans(groups))
}

func TestSectionsOverlapNeverSplits(t *testing.T) {
	doc := testDoc(30)
	p := testPattern(t, 0, "c")
	// The window tracks the furthest end seen, so a long early match keeps
	// later contained matches in the same section.
	groups := SlidingWindowSections([]*MatchResult{
		matchAt(doc, p, 0, 20),
		matchAt(doc, p, 5, 8),
		matchAt(doc, p, 22, 24),
	}, 3, 0)
	assert.Len(t, groups, 1)
}

func TestSectionsForceSplitAtMax(t *testing.T) {
	doc := testDoc(100)
	p := testPattern(t, 0, "c")
	// Matches chained closer than sep, but the run exceeds max.
	groups := SlidingWindowSections([]*MatchResult{
		matchAt(doc, p, 0, 10),
		matchAt(doc, p, 12, 20),
		matchAt(doc, p, 22, 30),
	}, 50, 25)
	assert.Equal(t, [][][2]int{{{0, 10}, {12, 20}}, {{22, 30}}}, spans(groups))
}

func TestSectionsSingleLongMatchNotSplit(t *testing.T) {
	doc := testDoc(100)
	p := testPattern(t, 0, "c")
	groups := SlidingWindowSections([]*MatchResult{
		matchAt(doc, p, 0, 80),
	}, 10, 25)
	// A single match cannot be split regardless of max.
	assert.Equal(t, [][][2]int{{{0, 80}}}, spans(groups))
}

func TestSectionsEmpty(t *testing.T) {
	assert.Nil(t, SlidingWindowSections(nil, 10, 0))
}

func TestSectionsDoNotMutateInput(t *testing.T) {
	doc := testDoc(30)
	p := testPattern(t, 0, "c")
	in := []*MatchResult{
		matchAt(doc, p, 20, 25),
		matchAt(doc, p, 1, 3),
	}
	SlidingWindowSections(in, 5, 0)
	assert.Equal(t, 20, in[0].Start)
	assert.Equal(t, 1, in[1].Start)
}
