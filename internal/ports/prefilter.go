package ports

// Prefilter is a fast reject test run before the full pattern set.
// MayMatch must never return false for a document that any registered
// pattern would match (no false rejects); false positives only cost the
// full scan that would have happened anyway.
type Prefilter interface {
	MayMatch(text string) bool
}

// Watcher monitors document directories for changes and triggers a rescan.
// The adapter (fsnotify) filters out non-document files and debounces
// rapid events. Only one Watch call should be active at a time.
type Watcher interface {
	// Watch starts monitoring the given directories recursively. onChange
	// is called with the absolute path of each changed file and may be
	// invoked from any goroutine.
	Watch(dirs []string, onChange func(path string)) error

	// Stop ends monitoring and releases all resources. Safe to call more
	// than once.
	Stop() error
}
