package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/conceptscan/internal/domain/pattern"
	"github.com/corey/conceptscan/internal/domain/summary"
	"github.com/corey/conceptscan/internal/ports"
)

func buildRegistry(t *testing.T, cfg *ports.Config) *pattern.Registry {
	t.Helper()
	r, err := pattern.Build(cfg)
	require.NoError(t, err)
	return r
}

func metricConfig() *ports.Config {
	return &ports.Config{
		Source: "cfg",
		Sheets: []ports.Sheet{
			{Name: "search", Kind: ports.SheetSearch, Concepts: []ports.ConceptTerms{
				{Concept: "metric", Terms: []string{"precision", "recall"}},
			}},
		},
	}
}

func TestSearchTextEndToEnd(t *testing.T) {
	s := New(buildRegistry(t, metricConfig()), nil)

	dr := s.SearchText("d", "This is a test of precision and recall")
	require.False(t, dr.Empty())

	all := dr.AllResults()
	require.Len(t, all, 2)
	assert.Equal(t, 18, all[0].Start)
	assert.Equal(t, 27, all[0].End)
	assert.Equal(t, "precision", all[0].Text)
	assert.Equal(t, 32, all[1].Start)
	assert.Equal(t, 38, all[1].End)
	assert.Equal(t, "recall", all[1].Text)

	counts := summary.Summarize(dr, summary.Options{ByConcept: true})
	assert.Equal(t, map[string]int{"precision": 1, "recall": 1}, counts["metric"].Map())
}

func TestSearchRespectsWordBoundaries(t *testing.T) {
	s := New(buildRegistry(t, metricConfig()), nil)
	// "recalls" and "precisions" extend past the word boundary.
	assert.Nil(t, s.SearchText("d", "recalls and precisions"))
}

func TestSearchEmptyDocument(t *testing.T) {
	s := New(buildRegistry(t, metricConfig()), nil)
	assert.Nil(t, s.SearchText("d", ""))
	assert.Nil(t, s.SearchDocument(nil))
}

func TestSearchNoMatchesIsNil(t *testing.T) {
	s := New(buildRegistry(t, metricConfig()), nil)
	assert.Nil(t, s.SearchText("d", "nothing relevant here"))
}

// rejectAll is a prefilter that rejects every document.
type rejectAll struct{}

func (rejectAll) MayMatch(string) bool { return false }

func TestPrefilterSkippedForSmallRegistries(t *testing.T) {
	r := buildRegistry(t, metricConfig())
	require.LessOrEqual(t, r.Len(), PrefilterMinPatterns)

	// With too few patterns the prefilter is not consulted at all.
	s := New(r, rejectAll{})
	assert.False(t, s.SearchText("d", "precision matters").Empty())
}

func TestPrefilterConsultedForLargeRegistries(t *testing.T) {
	cfg := &ports.Config{
		Sheets: []ports.Sheet{
			{Name: "search", Kind: ports.SheetSearch, Concepts: []ports.ConceptTerms{
				{Concept: "a", Terms: []string{"alpha"}},
				{Concept: "b", Terms: []string{"beta"}},
				{Concept: "c", Terms: []string{"gamma"}},
				{Concept: "d", Terms: []string{"delta"}},
				{Concept: "e", Terms: []string{"epsilon"}},
			}},
		},
	}
	r := buildRegistry(t, cfg)
	require.Greater(t, r.Len(), PrefilterMinPatterns)

	s := New(r, rejectAll{})
	assert.Nil(t, s.SearchText("d", "alpha and beta"))
}

func TestRegexPrefilterOverApproximates(t *testing.T) {
	cfg := &ports.Config{
		Sheets: []ports.Sheet{
			{Name: "search", Kind: ports.SheetSearch, Concepts: []ports.ConceptTerms{
				{Concept: "org", Terms: []string{"WHO"}},
			}},
		},
	}
	pf, err := NewRegexPrefilter(buildRegistry(t, cfg))
	require.NoError(t, err)
	require.NotNil(t, pf)

	// Case-insensitive by construction: it may pass documents the
	// case-sensitive pattern will later reject, never the reverse.
	assert.True(t, pf.MayMatch("the WHO said"))
	assert.True(t, pf.MayMatch("who said"))
	assert.False(t, pf.MayMatch("nothing"))
}

func TestRegexPrefilterEmptyRegistry(t *testing.T) {
	pf, err := NewRegexPrefilter(buildRegistry(t, &ports.Config{}))
	require.NoError(t, err)
	assert.Nil(t, pf)
}

// sliceSource serves documents from a fixed list.
type sliceSource struct{ docs []*ports.Document }

func (s *sliceSource) Documents() ports.DocumentIterator {
	return &sliceIterator{docs: s.docs}
}

type sliceIterator struct {
	docs []*ports.Document
	next int
}

func (it *sliceIterator) Next() (*ports.Document, bool) {
	if it.next >= len(it.docs) {
		return nil, false
	}
	doc := it.docs[it.next]
	it.next++
	return doc, true
}

func TestSearchIteratorSkipsMatchlessDocuments(t *testing.T) {
	s := New(buildRegistry(t, metricConfig()), nil)
	source := &sliceSource{docs: []*ports.Document{
		ports.NewDocument("a", "precision here"),
		ports.NewDocument("b", "nothing"),
		ports.NewDocument("c", ""),
		ports.NewDocument("d", "recall there"),
	}}

	it := s.Search(source)
	var names []string
	for dr, ok := it.Next(); ok; dr, ok = it.Next() {
		names = append(names, dr.Doc.Name)
	}
	assert.Equal(t, []string{"a", "d"}, names)
}
