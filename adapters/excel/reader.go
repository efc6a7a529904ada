package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"

	"popgen/domain/population"
	"popgen/internal/errors"
)

// Loader handles reading Excel and CSV population spreadsheets into
// population tables.
type Loader struct {
	config Config
}

// NewLoader creates a loader with the given ingestion settings.
func NewLoader(config Config) *Loader {
	return &Loader{config: config}
}

// Load reads one spreadsheet into a population table. The file type is
// picked by extension as ".csv" vs anything else (treated as xlsx), and the
// header row sits after the configured preamble. Failure is fatal for the
// file: no partial table is returned.
func (l *Loader) Load(r io.Reader, filename string) (*population.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	log.Printf("[Loader] Reading %s file: %s", strings.TrimPrefix(ext, "."), filename)

	var grid [][]string
	var err error
	if ext == ".csv" {
		grid, err = readCSVGrid(r)
	} else {
		grid, err = readExcelGrid(r)
	}
	if err != nil {
		return nil, errors.LoadFailed(fmt.Sprintf("failed to read %s", filename), err)
	}

	table, err := l.buildTable(grid)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", filename)
	}

	log.Printf("[Loader] Loaded %s (%d rows, %d age bands)", filename, len(table.Rows), len(table.AgeLabels))
	return table, nil
}

// readExcelGrid reads the first sheet of an xlsx workbook as raw strings.
func readExcelGrid(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// readCSVGrid reads a CSV file as raw strings. Record lengths vary across
// the preamble, so per-record field counting is disabled.
func readCSVGrid(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// buildTable converts the raw grid into a table: skip the preamble, trim
// header names, locate the identifying columns, detect age bands, and key
// every data row by (country, year).
func (l *Loader) buildTable(grid [][]string) (*population.Table, error) {
	if len(grid) <= l.config.HeaderOffset+1 {
		return nil, errors.LoadFailed(
			fmt.Sprintf("file must have a header row after the %d-row preamble and at least one data row", l.config.HeaderOffset), nil)
	}

	headerRow := grid[l.config.HeaderOffset]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	regionIdx, yearIdx := -1, -1
	for i, header := range headers {
		switch header {
		case ColumnRegion:
			regionIdx = i
		case ColumnYear:
			yearIdx = i
		}
	}
	if regionIdx < 0 {
		return nil, errors.LoadFailed(fmt.Sprintf("missing expected column %q", ColumnRegion), nil)
	}
	if yearIdx < 0 {
		return nil, errors.LoadFailed(fmt.Sprintf("missing expected column %q", ColumnYear), nil)
	}

	var ageLabels []string
	for _, header := range headers {
		if isAgeBandColumn(header) {
			ageLabels = append(ageLabels, header)
		}
	}

	table := &population.Table{
		Columns:   headers,
		AgeLabels: ageLabels,
	}

	skipped := 0
	for _, raw := range grid[l.config.HeaderOffset+1:] {
		cells := make(map[string]string, len(headers))
		for j, cell := range raw {
			if j < len(headers) {
				cells[headers[j]] = strings.TrimSpace(cell)
			}
		}

		year, ok := parseYear(cells[ColumnYear])
		if !ok {
			// A row without a usable year can never match a selection.
			skipped++
			continue
		}

		table.Rows = append(table.Rows, population.Row{
			Country: cells[ColumnRegion],
			Year:    year,
			Cells:   cells,
		})
	}
	if skipped > 0 {
		log.Printf("[Loader] Skipped %d rows without a parseable year", skipped)
	}

	if len(table.Rows) == 0 {
		return nil, errors.LoadFailed("file has no usable data rows", nil)
	}
	return table, nil
}

// isAgeBandColumn reports whether a column holds age-band counts: the
// substring before the first hyphen is entirely numeric ("0-4", "95-99"),
// or the name starts with "100" (the open-ended "100+" terminal band).
// This is a naming heuristic, not a declared schema.
func isAgeBandColumn(name string) bool {
	if strings.HasPrefix(name, "100") {
		return true
	}
	prefix, _, _ := strings.Cut(name, "-")
	if prefix == "" {
		return false
	}
	for _, r := range prefix {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// parseYear parses a year cell. Excel sometimes serializes integer years as
// floats ("2020.0"), so an integral float is accepted too.
func parseYear(raw string) (int, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, false
	}
	if year, err := strconv.Atoi(cleaned); err == nil {
		return year, true
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value != math.Trunc(value) {
		return 0, false
	}
	return int(value), true
}
