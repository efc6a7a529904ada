package population

import (
	"reflect"
	"testing"

	"popgen/internal/errors"
)

func testTable(labels []string, rows ...Row) *Table {
	return &Table{
		Columns:   labels,
		AgeLabels: labels,
		Rows:      rows,
	}
}

func testRow(country string, year int, cells map[string]string) Row {
	return Row{Country: country, Year: year, Cells: cells}
}

// TestCoerceCount tests the single coercion rule for count cells
func TestCoerceCount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"plain integer", "1234", 1234},
		{"decimal", "1234.5", 1234.5},
		{"comma separators", "1,234,567", 1234567},
		{"space separators", "1 234", 1234},
		{"non-breaking space separators", "1\u00a0234", 1234},
		{"leading and trailing whitespace", "  42  ", 42},
		{"empty cell", "", 0},
		{"whitespace only", "   ", 0},
		{"non-numeric text", "n/a", 0},
		{"ellipsis placeholder", "...", 0},
		{"negative value", "-5", -5},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := CoerceCount(test.input)
			if result != test.expected {
				t.Errorf("CoerceCount(%q) = %v, expected %v", test.input, result, test.expected)
			}
		})
	}
}

// TestRowCounts tests count extraction in label order with coercion applied
func TestRowCounts(t *testing.T) {
	row := testRow("Kenya", 1950, map[string]string{
		"0-4":  "1,000",
		"5-9":  "garbage",
		"100+": "2.5",
	})

	counts := row.Counts([]string{"0-4", "5-9", "100+"})
	expected := []float64{1000, 0, 2.5}
	if !reflect.DeepEqual(counts, expected) {
		t.Errorf("Counts() = %v, expected %v", counts, expected)
	}

	// Missing cells default to zero rather than erroring.
	counts = row.Counts([]string{"0-4", "10-14"})
	expected = []float64{1000, 0}
	if !reflect.DeepEqual(counts, expected) {
		t.Errorf("Counts() with missing label = %v, expected %v", counts, expected)
	}
}

// TestCountriesAndYears tests keyspace extraction is sorted and de-duplicated
func TestCountriesAndYears(t *testing.T) {
	table := testTable(nil,
		testRow("Kenya", 1990, nil),
		testRow("Brazil", 1950, nil),
		testRow("Kenya", 1950, nil),
		testRow("Brazil", 1990, nil),
	)

	countries := table.Countries()
	if !reflect.DeepEqual(countries, []string{"Brazil", "Kenya"}) {
		t.Errorf("Countries() = %v, expected sorted unique set", countries)
	}

	years := table.Years()
	if !reflect.DeepEqual(years, []int{1950, 1990}) {
		t.Errorf("Years() = %v, expected sorted unique set", years)
	}
}

// TestValidateAgeBands tests age-band label comparison between table pairs
func TestValidateAgeBands(t *testing.T) {
	male := testTable([]string{"0-4", "5-9", "100+"})

	if err := ValidateAgeBands(male, testTable([]string{"0-4", "5-9", "100+"})); err != nil {
		t.Errorf("Expected matching label sets to validate, got %v", err)
	}

	tests := []struct {
		name   string
		labels []string
	}{
		{"different length", []string{"0-4", "5-9"}},
		{"different labels", []string{"0-4", "5-9", "95-99"}},
		{"same labels different order", []string{"5-9", "0-4", "100+"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidateAgeBands(male, testTable(test.labels))
			if err == nil {
				t.Fatal("Expected schema mismatch error, got none")
			}
			if errors.GetCode(err) != errors.CodeSchemaMismatch {
				t.Errorf("Expected code %s, got %s", errors.CodeSchemaMismatch, errors.GetCode(err))
			}
		})
	}
}
