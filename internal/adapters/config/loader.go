// Package config loads search configurations from CSV and JSON files into
// the sheet structure the pattern registry consumes. Spreadsheet formats
// beyond CSV are out of scope; exporting a sheet to CSV or caching the
// parsed form as JSON covers them.
package config

import (
	"path/filepath"
	"strings"

	"github.com/corey/conceptscan/internal/ports"
)

// Loader implements ports.ConfigLoader, dispatching on file extension.
type Loader struct{}

// NewLoader creates a config loader.
func NewLoader() *Loader { return &Loader{} }

// Load parses the configuration file at path.
func (l *Loader) Load(path string) (*ports.Config, error) {
	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".") {
	case "csv":
		return loadCSV(path)
	case "json":
		return loadJSON(path)
	default:
		return nil, &ports.ConfigError{Path: path, Msg: "unknown config file type"}
	}
}

// sheetKind infers a sheet's kind from its name, the convention the
// original spreadsheets use ("Search Terms", "Regex Patterns", ...).
func sheetKind(name string) ports.SheetKind {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "search") {
		return ports.SheetSearch
	}
	if strings.Contains(lower, "pattern") {
		return ports.SheetPattern
	}
	return ports.SheetUnknown
}
