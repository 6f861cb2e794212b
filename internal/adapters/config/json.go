package config

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/corey/conceptscan/internal/ports"
)

// loadJSON reads a full multi-sheet configuration. The format is the JSON
// encoding of ports.Config, the same structure SaveJSON writes, so parsed
// configs round-trip for caching.
func loadJSON(path string) (*ports.Config, error) {
	log.Info().Str("path", path).Msg("loading json config file")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ports.ConfigError{Path: path, Msg: "cannot read", Err: err}
	}
	var cfg ports.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ports.ConfigError{Path: path, Msg: "malformed json", Err: err}
	}
	if cfg.Source == "" {
		cfg.Source = path
	}
	for i, sheet := range cfg.Sheets {
		if sheet.Kind == "" {
			cfg.Sheets[i].Kind = sheetKind(sheet.Name)
		}
	}
	return &cfg, nil
}

// SaveJSON writes a parsed configuration back out as JSON, the cache
// format for configs that were expensive to parse.
func SaveJSON(cfg *ports.Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("saving json config file")
	return os.WriteFile(path, data, 0644)
}
