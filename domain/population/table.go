package population

import (
	"sort"
	"strconv"
	"strings"

	"popgen/internal/errors"
)

// Table is one loaded population spreadsheet (male or female counts).
// Rows are keyed by (Country, Year); AgeLabels preserve source column
// order, which is also the vertical bar order in a rendered pyramid.
// Tables are read-only after load.
type Table struct {
	Columns   []string
	AgeLabels []string
	Rows      []Row
}

// Row is a single (country, year) record. Cells hold raw, trimmed cell
// text keyed by column name; counts stay untyped until extracted.
type Row struct {
	Country string
	Year    int
	Cells   map[string]string
}

// Selection is a user-chosen (country, year) lookup key.
type Selection struct {
	Country string `json:"country"`
	Year    int    `json:"year"`
}

// Counts extracts the count vector for the given age labels in order,
// applying the CoerceCount rule to every cell.
func (r *Row) Counts(labels []string) []float64 {
	counts := make([]float64, len(labels))
	for i, label := range labels {
		counts[i] = CoerceCount(r.Cells[label])
	}
	return counts
}

// CoerceCount is the single coercion rule for count cells: trim, strip
// thousands separators (commas, plain and non-breaking spaces), then parse
// as float64. Anything non-numeric, including a missing cell, yields 0.
func CoerceCount(raw string) float64 {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "\u00a0", "")
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

// Countries returns the sorted set of country names present in the table.
func (t *Table) Countries() []string {
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		seen[row.Country] = true
	}
	countries := make([]string, 0, len(seen))
	for country := range seen {
		countries = append(countries, country)
	}
	sort.Strings(countries)
	return countries
}

// Years returns the sorted set of years present in the table.
func (t *Table) Years() []int {
	seen := make(map[int]bool)
	for _, row := range t.Rows {
		seen[row.Year] = true
	}
	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// ValidateAgeBands checks that two tables carry the same age-band labels in
// the same order. Charting rows from tables with diverging label sets would
// silently pair unrelated bands, so a mismatch fails fast instead.
func ValidateAgeBands(a, b *Table) error {
	if len(a.AgeLabels) != len(b.AgeLabels) {
		return errors.SchemaMismatch("age-band column sets differ between the two tables")
	}
	for i := range a.AgeLabels {
		if a.AgeLabels[i] != b.AgeLabels[i] {
			return errors.SchemaMismatch("age-band column sets differ between the two tables")
		}
	}
	return nil
}
