package ports

import "fmt"

// ConfigError reports a configuration problem tied to a file and optionally
// a sheet. Row-level problems are logged and skipped by loaders; a
// ConfigError is returned only when the whole file is unusable (missing,
// unreadable, unsupported type).
type ConfigError struct {
	Path  string
	Sheet string
	Msg   string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("config %s sheet %q: %s", e.Path, e.Sheet, e.Msg)
	}
	return fmt.Sprintf("config %s: %s", e.Path, e.Msg)
}

func (e *ConfigError) Unwrap() error { return e.Err }
