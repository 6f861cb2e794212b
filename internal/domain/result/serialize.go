package result

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/corey/conceptscan/internal/domain/pattern"
	"github.com/corey/conceptscan/internal/ports"
)

// SerializedDoc is the plain form of a document. In compact mode Text is
// omitted and the document is re-hydrated later from the content hash via
// an external text store; Length allows a sanity check after rehydration.
type SerializedDoc struct {
	Name   string `json:"name"`
	Text   string `json:"text,omitempty"`
	Length int    `json:"length"`
	SHA256 string `json:"sha256"`
}

// SerializedPattern carries every field needed to recompile a pattern.
type SerializedPattern struct {
	ID         int               `json:"id"`
	Concept    string            `json:"concept"`
	Pattern    string            `json:"pattern"`
	IgnoreCase bool              `json:"ignore_case"`
	Source     string            `json:"source,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// SerializedMatch is one match occurrence. The owning pattern is referenced
// by its stable ID.
type SerializedMatch struct {
	Start     int    `json:"start"`
	End       int    `json:"end"`
	MatchText string `json:"match_text"`
}

// SerializedDocResult is the nested map form of a DocResult: JSON-friendly,
// with result lists keyed by decimal pattern ID.
type SerializedDocResult struct {
	Doc      SerializedDoc                `json:"doc"`
	Patterns []SerializedPattern          `json:"patterns"`
	Results  map[string][]SerializedMatch `json:"results"`
}

// Serialize converts the result to its plain nested form. With compact set,
// the document text is dropped and only its length and SHA-256 are kept.
func (dr *DocResult) Serialize(compact bool) *SerializedDocResult {
	s := &SerializedDocResult{
		Doc: SerializedDoc{
			Name:   dr.Doc.Name,
			Length: len(dr.Doc.Text),
			SHA256: dr.Doc.ContentHash(),
		},
		Results: make(map[string][]SerializedMatch, len(dr.order)),
	}
	if !compact {
		s.Doc.Text = dr.Doc.Text
	}
	for _, id := range dr.order {
		p := dr.patterns[id]
		s.Patterns = append(s.Patterns, SerializedPattern{
			ID:         p.ID,
			Concept:    p.Concept,
			Pattern:    p.Expr,
			IgnoreCase: p.IgnoreCase,
			Source:     p.Source,
			Metadata:   p.Metadata,
		})
		key := strconv.Itoa(id)
		for _, m := range dr.results[id] {
			s.Results[key] = append(s.Results[key], SerializedMatch{
				Start:     m.Start,
				End:       m.End,
				MatchText: m.Text,
			})
		}
	}
	return s
}

// MarshalResult renders the serialized form as JSON.
func MarshalResult(dr *DocResult, compact bool) ([]byte, error) {
	return json.Marshal(dr.Serialize(compact))
}

// UnmarshalResult parses JSON produced by MarshalResult and restores the
// DocResult, rehydrating compact documents through store.
func UnmarshalResult(data []byte, store ports.Storage) (*DocResult, error) {
	var s SerializedDocResult
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal doc result: %w", err)
	}
	return s.Restore(store)
}

// Restore rebuilds a DocResult from its serialized form. Patterns are
// recompiled from their serialized fields; they compare Equal to the
// originals field-by-field, not by reference. When the text was omitted
// (compact mode) it is loaded from store by content hash; a length
// disagreement is logged as a warning and does not block use.
func (s *SerializedDocResult) Restore(store ports.Storage) (*DocResult, error) {
	text := s.Doc.Text
	if text == "" && s.Doc.SHA256 != "" && store != nil {
		loaded, err := store.LoadText(s.Doc.SHA256)
		if err != nil {
			return nil, fmt.Errorf("rehydrate document %q: %w", s.Doc.Name, err)
		}
		text = loaded
	}
	if len(text) != s.Doc.Length {
		log.Warn().Str("doc", s.Doc.Name).
			Int("recorded", s.Doc.Length).Int("actual", len(text)).
			Msg("rehydrated text length disagrees with serialized length")
	}
	doc := ports.NewDocument(s.Doc.Name, text)

	patterns := make([]*pattern.MatchPattern, 0, len(s.Patterns))
	byID := make(map[int]*pattern.MatchPattern, len(s.Patterns))
	for _, sp := range s.Patterns {
		p, err := pattern.Restore(sp.ID, sp.Concept, sp.Pattern, sp.IgnoreCase, sp.Source, sp.Metadata)
		if err != nil {
			return nil, &pattern.CompileError{Concept: sp.Concept, Source: sp.Source, Expr: sp.Pattern, Err: err}
		}
		patterns = append(patterns, p)
		byID[p.ID] = p
	}

	results := make(map[int][]*MatchResult, len(s.Results))
	for key, matches := range s.Results {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("bad pattern key %q: %w", key, err)
		}
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("results reference unknown pattern id %d", id)
		}
		for _, sm := range matches {
			results[id] = append(results[id], &MatchResult{
				Start:   sm.Start,
				End:     sm.End,
				Text:    sm.MatchText,
				Pattern: p,
				Doc:     doc,
			})
		}
	}
	return NewDocResult(doc, patterns, results), nil
}
