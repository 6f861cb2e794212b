// Package search runs a compiled pattern registry over documents.
package search

import (
	"regexp"

	"github.com/rs/zerolog/log"

	"github.com/corey/conceptscan/internal/domain/pattern"
	"github.com/corey/conceptscan/internal/domain/result"
	"github.com/corey/conceptscan/internal/ports"
)

// PrefilterMinPatterns is the registry size above which the pre-filter is
// consulted. Below it, running the patterns directly is cheaper than the
// extra scan.
const PrefilterMinPatterns = 4

// Searcher applies every registered pattern to document text. Compiled
// patterns are read-only shared state, so one Searcher is safe to use from
// concurrent goroutines.
type Searcher struct {
	registry  *pattern.Registry
	prefilter ports.Prefilter
}

// New creates a searcher. prefilter may be nil to disable fast rejection.
func New(registry *pattern.Registry, prefilter ports.Prefilter) *Searcher {
	return &Searcher{registry: registry, prefilter: prefilter}
}

// Registry returns the searcher's pattern registry.
func (s *Searcher) Registry() *pattern.Registry { return s.registry }

// SearchDocument collects every pattern occurrence in the document.
// Returns nil for an absent or empty document and for a document that
// matches nothing: "no matches" is an absent result, not an error.
func (s *Searcher) SearchDocument(doc *ports.Document) *result.DocResult {
	if doc.Empty() {
		log.Info().Str("doc", docName(doc)).Msg("skipping document without text")
		return nil
	}
	log.Info().Str("doc", doc.Name).Int("length", len(doc.Text)).Msg("searching document")

	if s.prefilter != nil && s.registry.Len() > PrefilterMinPatterns {
		if !s.prefilter.MayMatch(doc.Text) {
			log.Debug().Str("doc", doc.Name).Msg("prefilter rejected document")
			return nil
		}
	}

	results := make(map[int][]*result.MatchResult)
	for _, p := range s.registry.Patterns() {
		for _, loc := range p.FindAllIndex(doc.Text) {
			results[p.ID] = append(results[p.ID], &result.MatchResult{
				Start:   loc[0],
				End:     loc[1],
				Text:    doc.Text[loc[0]:loc[1]],
				Pattern: p,
				Doc:     doc,
			})
		}
	}
	dr := result.NewDocResult(doc, s.registry.Patterns(), results)
	if dr.Empty() {
		return nil
	}
	return dr
}

// SearchText wraps raw text in a document and searches it.
func (s *Searcher) SearchText(name, text string) *result.DocResult {
	return s.SearchDocument(ports.NewDocument(name, text))
}

// Search returns a lazy iterator of results over a document source. Each
// call starts a fresh pass; documents with no matches are skipped. Callers
// may stop early without draining the source.
func (s *Searcher) Search(source ports.DocumentSource) *Iterator {
	return &Iterator{searcher: s, docs: source.Documents()}
}

// Iterator is a single-pass pull iterator of non-empty DocResults.
type Iterator struct {
	searcher *Searcher
	docs     ports.DocumentIterator
}

// Next returns the next document result. ok is false once the source is
// exhausted.
func (it *Iterator) Next() (*result.DocResult, bool) {
	for {
		doc, ok := it.docs.Next()
		if !ok {
			return nil, false
		}
		if dr := it.searcher.SearchDocument(doc); dr != nil {
			return dr, true
		}
	}
}

// RegexPrefilter is the super-pattern fast reject test: one combined
// expression unioning every term and fragment in the configuration,
// compiled case-insensitively so it can only over-approximate.
type RegexPrefilter struct {
	re *regexp.Regexp
}

// NewRegexPrefilter compiles the registry's super pattern. Returns nil
// when the registry is empty. The expression reuses fragments that already
// compiled individually, so failure here is a programming error.
func NewRegexPrefilter(registry *pattern.Registry) (*RegexPrefilter, error) {
	expr := registry.SuperPattern()
	if expr == "" {
		return nil, nil
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, err
	}
	return &RegexPrefilter{re: re}, nil
}

// MayMatch reports whether any registered pattern could match the text.
func (f *RegexPrefilter) MayMatch(text string) bool {
	return f.re.MatchString(text)
}

func docName(doc *ports.Document) string {
	if doc == nil {
		return ""
	}
	return doc.Name
}
