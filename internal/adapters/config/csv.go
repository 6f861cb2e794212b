package config

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/corey/conceptscan/internal/ports"
)

// Canonical column names for pattern sheets, matched by substring against
// cleaned header cells. The first matching column wins; extras are ignored.
var cleanColumnNames = []struct {
	substr    string
	canonical string
}{
	{"concept", "CONCEPT"},
	{"entity", "CONCEPT"},
	{"pattern", "PATTERN"},
	{"regex", "PATTERN"},
	{"regular expression", "PATTERN"},
	{"case insensitive", "CASE INSENSITIVE"},
	{"case insens", "CASE INSENSITIVE"},
	{"ignore case", "CASE INSENSITIVE"},
}

// loadCSV reads one CSV file as a single sheet. A file whose header maps
// onto CONCEPT and PATTERN columns is a pattern sheet; anything else is a
// term-list sheet with one concept per column. The sheet name is the file
// stem, which also decides the kind when it names one.
func loadCSV(path string) (*ports.Config, error) {
	log.Info().Str("path", path).Msg("loading csv config file")
	f, err := os.Open(path)
	if err != nil {
		return nil, &ports.ConfigError{Path: path, Msg: "cannot open", Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &ports.ConfigError{Path: path, Msg: "malformed csv", Err: err}
	}
	if len(rows) == 0 {
		return nil, &ports.ConfigError{Path: path, Msg: "empty config file"}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	header := rows[0]
	if len(header) > 0 {
		// Strip a UTF-8 BOM Excel likes to prepend.
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	kind := sheetKind(name)
	columns := cleanColumnIndex(header)
	_, hasConcept := columns["CONCEPT"]
	_, hasPattern := columns["PATTERN"]
	if kind == ports.SheetUnknown {
		if hasConcept && hasPattern {
			kind = ports.SheetPattern
		} else {
			kind = ports.SheetSearch
		}
	}

	var sheet ports.Sheet
	switch kind {
	case ports.SheetPattern:
		if !hasConcept || !hasPattern {
			return nil, &ports.ConfigError{Path: path, Sheet: name,
				Msg: "pattern sheet needs concept and pattern columns"}
		}
		sheet = readPatternRows(name, rows[1:], columns)
	default:
		sheet = readTermColumns(name, header, rows[1:])
	}
	return &ports.Config{Source: path, Sheets: []ports.Sheet{sheet}}, nil
}

// cleanColumnIndex maps canonical column names to their first index in the
// header.
func cleanColumnIndex(header []string) map[string]int {
	result := make(map[string]int)
	for i, cell := range header {
		lower := strings.ToLower(strings.TrimSpace(cell))
		for _, m := range cleanColumnNames {
			if strings.Contains(lower, m.substr) {
				if _, ok := result[m.canonical]; !ok {
					result[m.canonical] = i
				}
				break
			}
		}
	}
	return result
}

// readTermColumns treats each column as one concept's term list.
func readTermColumns(name string, header []string, rows [][]string) ports.Sheet {
	sheet := ports.Sheet{Name: name, Kind: ports.SheetSearch}
	for col, concept := range header {
		concept = strings.TrimSpace(concept)
		if concept == "" {
			log.Warn().Str("sheet", name).Int("column", col).
				Msg("skipping unnamed term column")
			continue
		}
		var terms []string
		for _, row := range rows {
			if col >= len(row) {
				continue
			}
			if term := strings.TrimSpace(row[col]); term != "" {
				terms = append(terms, term)
			}
		}
		sheet.Concepts = append(sheet.Concepts, ports.ConceptTerms{Concept: concept, Terms: terms})
	}
	return sheet
}

// readPatternRows groups explicit-regex rows by (concept, case flag).
// Patterns default to case-sensitive; the flag column flips a row when it
// starts with "y".
func readPatternRows(name string, rows [][]string, columns map[string]int) ports.Sheet {
	sheet := ports.Sheet{Name: name, Kind: ports.SheetPattern}
	caseCol, hasCase := columns["CASE INSENSITIVE"]

	type rowKey struct {
		concept    string
		ignoreCase bool
	}
	index := make(map[rowKey]int)
	for n, row := range rows {
		concept := cell(row, columns["CONCEPT"])
		expr := cell(row, columns["PATTERN"])
		if concept == "" || expr == "" {
			log.Warn().Str("sheet", name).Int("row", n+2).
				Msg("skipping row with missing concept or pattern")
			continue
		}
		ignoreCase := false
		if hasCase {
			ignoreCase = strings.HasPrefix(strings.ToLower(cell(row, caseCol)), "y")
		}
		key := rowKey{concept, ignoreCase}
		i, ok := index[key]
		if !ok {
			i = len(sheet.Rows)
			index[key] = i
			sheet.Rows = append(sheet.Rows, ports.PatternRow{Concept: concept, IgnoreCase: ignoreCase})
		}
		sheet.Rows[i].Exprs = append(sheet.Rows[i].Exprs, expr)
	}
	return sheet
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
