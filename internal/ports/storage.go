package ports

// Storage persists document texts (keyed by content hash) and serialized
// scan results. Used for the compact serialization mode: a DocResult saved
// without its text can be rehydrated later from the hash alone.
//
// Writes must be transactional: a crash mid-write must not corrupt
// previously committed data.
type Storage interface {
	// SaveText stores a document text under its content hash. Idempotent:
	// saving the same hash twice is a no-op.
	SaveText(hash, text string) error

	// LoadText retrieves a document text by content hash.
	// Returns "", nil if no text is stored for the hash.
	LoadText(hash string) (string, error)

	// SaveResult stores a serialized DocResult under the document's
	// content hash. Overwrites any prior result for the hash.
	SaveResult(hash string, data []byte) error

	// LoadResult retrieves a serialized DocResult by content hash.
	// Returns nil, nil if no result is cached.
	LoadResult(hash string) ([]byte, error)

	// Stats returns the number of stored texts and results.
	Stats() (texts, results int, err error)

	// Wipe removes all stored texts and results.
	Wipe() error

	// Close releases the underlying store.
	Close() error
}
