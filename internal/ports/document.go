// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sync"
)

// Document is a named unit of decoded text. Text extraction from PDF, DOCX,
// PPTX and friends happens entirely in adapters; the core only ever sees the
// name and the Unicode text.
type Document struct {
	Name string
	Text string

	hashOnce sync.Once
	hash     string
}

// NewDocument creates a document from a name (path or label) and its text.
func NewDocument(name, text string) *Document {
	return &Document{Name: name, Text: text}
}

// Empty reports whether the document has no text. Empty documents are
// skippable degenerate cases, never errors.
func (d *Document) Empty() bool {
	return d == nil || len(d.Text) == 0
}

// ContentHash returns the hex-encoded SHA-256 of the document text,
// computed on first use. Used for integrity checks and as the key for
// compact serialization (text stored once, referenced by hash).
func (d *Document) ContentHash() string {
	d.hashOnce.Do(func() {
		sum := sha256.Sum256([]byte(d.Text))
		d.hash = hex.EncodeToString(sum[:])
	})
	return d.hash
}

// DocumentSource yields documents one at a time. Each Documents() call starts
// a fresh pass over the underlying store (the file listing is recomputed);
// an in-progress iterator is not rewindable.
type DocumentSource interface {
	// Documents returns a new pull-based iterator. Unreadable and empty
	// files are logged and skipped by the source, never surfaced.
	Documents() DocumentIterator
}

// DocumentIterator is a single-pass pull iterator. Callers may stop early
// without draining the remaining documents.
type DocumentIterator interface {
	// Next returns the next document. ok is false once the source is
	// exhausted.
	Next() (doc *Document, ok bool)
}

// DocumentReader decodes one file format into plain text. Readers for
// formats beyond plain text are external collaborators plugged into the
// document store by extension.
type DocumentReader interface {
	// Read decodes the full content of r into Unicode text.
	Read(r io.Reader) (string, error)
}
