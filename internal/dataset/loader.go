package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"csvreport/internal/logger"
	"csvreport/internal/models"
)

// missingTokens are the markers dataframe and spreadsheet exports write for an
// absent value. They are read as empty fields in every column.
var missingTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {},
	"n/a": {}, "nan": {}, "null": {},
}

func isMissing(field string) bool {
	if field == "" {
		return true
	}
	_, ok := missingTokens[field]
	return ok
}

// Loader reads CSV datasets into tables
type Loader struct {
	log *logger.Logger
}

// NewLoader creates a new dataset loader
func NewLoader() *Loader {
	return &Loader{
		log: logger.GetGlobalLogger().WithComponent("dataset"),
	}
}

// Load reads the CSV file at path. The file is read fully and closed before returning.
func (l *Loader) Load(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrDataLoad, err)
	}
	defer f.Close()

	table, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	l.log.Info("Loaded dataset", map[string]interface{}{
		"path":    path,
		"rows":    table.Len(),
		"columns": len(table.Columns()),
	})
	return table, nil
}

// Read parses delimited text with a header row. Column kinds are inferred from
// the non-empty fields of each column. Only finite numbers make a column
// numeric, so a column holding "inf" is read as text.
func Read(r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header row", models.ErrDataLoad)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrDataLoad, err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrDataLoad, err)
	}

	kinds := make([]models.Kind, len(header))
	for col := range header {
		kinds[col] = inferKind(records, col)
	}

	rows := make([][]models.Cell, len(records))
	for r, rec := range records {
		row := make([]models.Cell, len(header))
		for col, field := range rec {
			row[col] = parseCell(field, kinds[col])
		}
		rows[r] = row
	}

	table, err := models.NewTable(header, kinds, rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrDataLoad, err)
	}
	return table, nil
}

// inferKind picks the narrowest kind every non-empty field of a column parses as
func inferKind(records [][]string, col int) models.Kind {
	kind := models.KindInt
	seen := false

	for _, rec := range records {
		field := rec[col]
		if isMissing(field) {
			continue
		}
		seen = true

		if kind == models.KindInt {
			if _, err := strconv.ParseInt(field, 10, 64); err == nil {
				continue
			}
			kind = models.KindFloat
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return models.KindString
		}
	}

	if !seen {
		return models.KindString
	}
	return kind
}

func parseCell(field string, kind models.Kind) models.Cell {
	if isMissing(field) {
		return models.NullCell(kind)
	}

	switch kind {
	case models.KindInt:
		v, _ := strconv.ParseInt(field, 10, 64)
		return models.IntCell(v)
	case models.KindFloat:
		v, _ := strconv.ParseFloat(field, 64)
		return models.FloatCell(v)
	default:
		return models.StringCell(field)
	}
}
