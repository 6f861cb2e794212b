package ports

// SheetKind distinguishes the two configuration group shapes.
type SheetKind string

const (
	// SheetSearch maps concept names to literal term lists. Terms may use
	// glob wildcards (* and ?) and are compiled through the trie builder.
	SheetSearch SheetKind = "SEARCH"

	// SheetPattern maps (concept, case flag) rows to raw regex fragments
	// that are joined verbatim with "|".
	SheetPattern SheetKind = "PATTERN"

	// SheetUnknown marks a group whose kind could not be determined.
	// Unknown sheets are skipped with a warning.
	SheetUnknown SheetKind = "UNKNOWN"
)

// PatternRow is one explicit-pattern entry of a PATTERN sheet.
type PatternRow struct {
	Concept    string   `json:"concept"`
	Exprs      []string `json:"patterns"`
	IgnoreCase bool     `json:"ignore_case"`
}

// ConceptTerms maps one concept to its literal term list. Order of both
// concepts and terms follows the source file, so pattern registration
// order is reproducible.
type ConceptTerms struct {
	Concept string   `json:"concept"`
	Terms   []string `json:"terms"`
}

// Sheet is one named configuration group. Exactly one of Concepts or Rows
// is populated, depending on Kind. Concept names beginning with "_" are
// metadata, not concepts, and are skipped by the registry.
type Sheet struct {
	Name     string         `json:"name"`
	Kind     SheetKind      `json:"kind"`
	Concepts []ConceptTerms `json:"concepts,omitempty"`
	Rows     []PatternRow   `json:"rows,omitempty"`
}

// Config is the in-memory configuration consumed by the pattern registry.
// The struct is JSON-compatible so loaders can cache parsed spreadsheets.
type Config struct {
	// Source is the provenance label (usually the config file path) carried
	// into every pattern built from this config.
	Source string  `json:"source"`
	Sheets []Sheet `json:"sheets"`
}

// ConfigLoader parses a configuration file into the sheet structure.
// File format handling (CSV, JSON) lives entirely in adapters.
type ConfigLoader interface {
	// Load parses the file at path. Malformed rows are logged and skipped;
	// an unreadable file or unsupported type is a *ConfigError.
	Load(path string) (*Config, error)
}
