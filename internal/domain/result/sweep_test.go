package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepDisjoint(t *testing.T) {
	doc := testDoc(10)
	p := testPattern(t, 0, "c")
	a := matchAt(doc, p, 0, 2)
	b := matchAt(doc, p, 5, 7)

	points := SweepSpans([]*MatchResult{a, b})
	require.Len(t, points, 4)

	assert.Equal(t, 0, points[0].Index)
	assert.Equal(t, []*MatchResult{a}, points[0].Starting)
	assert.Equal(t, 2, points[1].Index)
	assert.Equal(t, []*MatchResult{a}, points[1].Ending)
	assert.Empty(t, points[1].Continuing)
	assert.Equal(t, 5, points[2].Index)
	assert.Equal(t, []*MatchResult{b}, points[2].Starting)
	assert.Equal(t, 7, points[3].Index)
	assert.Equal(t, []*MatchResult{b}, points[3].Ending)
}

func TestSweepNested(t *testing.T) {
	doc := testDoc(12)
	p := testPattern(t, 0, "c")
	outer := matchAt(doc, p, 0, 10)
	inner := matchAt(doc, p, 2, 5)

	points := SweepSpans([]*MatchResult{outer, inner})
	require.Len(t, points, 4)

	// Inner opens and closes while the outer continues across it.
	assert.Equal(t, 2, points[1].Index)
	assert.Equal(t, []*MatchResult{inner}, points[1].Starting)
	assert.Equal(t, []*MatchResult{outer}, points[1].Continuing)

	assert.Equal(t, 5, points[2].Index)
	assert.Equal(t, []*MatchResult{inner}, points[2].Ending)
	assert.Equal(t, []*MatchResult{outer}, points[2].Continuing)

	assert.Equal(t, 10, points[3].Index)
	assert.Equal(t, []*MatchResult{outer}, points[3].Ending)
	assert.Empty(t, points[3].Continuing)
}

func TestSweepCrossing(t *testing.T) {
	doc := testDoc(10)
	p := testPattern(t, 0, "c")
	a := matchAt(doc, p, 0, 5)
	b := matchAt(doc, p, 3, 8)

	points := SweepSpans([]*MatchResult{a, b})
	require.Len(t, points, 4)

	assert.Equal(t, 3, points[1].Index)
	assert.Equal(t, []*MatchResult{b}, points[1].Starting)
	assert.Equal(t, []*MatchResult{a}, points[1].Continuing)

	// a ends at 5 while b continues.
	assert.Equal(t, 5, points[2].Index)
	assert.Equal(t, []*MatchResult{a}, points[2].Ending)
	assert.Equal(t, []*MatchResult{b}, points[2].Continuing)
}

func TestSweepIdenticalSpans(t *testing.T) {
	doc := testDoc(6)
	p1 := testPattern(t, 0, "a")
	p2 := testPattern(t, 1, "b")
	m1 := matchAt(doc, p1, 1, 4)
	m2 := matchAt(doc, p2, 1, 4)

	points := SweepSpans([]*MatchResult{m1, m2})
	require.Len(t, points, 2)
	assert.Len(t, points[0].Starting, 2)
	assert.Len(t, points[1].Ending, 2)
	assert.Empty(t, points[1].Continuing)
}

func TestSweepEndMeetsStart(t *testing.T) {
	doc := testDoc(6)
	p := testPattern(t, 0, "c")
	a := matchAt(doc, p, 0, 2)
	b := matchAt(doc, p, 2, 4)

	points := SweepSpans([]*MatchResult{a, b})
	require.Len(t, points, 3)

	// End is exclusive, so at offset 2 the first span has already ended
	// and is not listed as continuing under the second.
	mid := points[1]
	assert.Equal(t, 2, mid.Index)
	assert.Equal(t, []*MatchResult{a}, mid.Ending)
	assert.Equal(t, []*MatchResult{b}, mid.Starting)
	assert.Empty(t, mid.Continuing)
}

func TestSweepEmpty(t *testing.T) {
	assert.Nil(t, SweepSpans(nil))
}
