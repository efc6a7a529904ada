package population

import (
	"testing"

	"popgen/internal/errors"
)

// TestResolve tests exact (country, year) row lookup
func TestResolve(t *testing.T) {
	table := testTable(nil,
		testRow("Kenya", 1950, map[string]string{"0-4": "100"}),
		testRow("Kenya", 1990, map[string]string{"0-4": "200"}),
		testRow("Brazil", 1990, map[string]string{"0-4": "300"}),
	)

	row, err := Resolve(table, "Kenya", 1990)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if row.Cells["0-4"] != "200" {
		t.Errorf("Resolved wrong row: got cells %v", row.Cells)
	}
}

// TestResolveConjunctive tests that country and year filter together: a
// country present only under other years must not match
func TestResolveConjunctive(t *testing.T) {
	table := testTable(nil,
		testRow("Kenya", 1950, nil),
		testRow("Brazil", 1990, nil),
	)

	_, err := Resolve(table, "Kenya", 1990)
	if err == nil {
		t.Fatal("Expected no match for (Kenya, 1990), got a row")
	}
	if errors.GetCode(err) != errors.CodeNotFound {
		t.Errorf("Expected code %s, got %s", errors.CodeNotFound, errors.GetCode(err))
	}
}

// TestResolveFirstMatchWins tests deterministic selection among duplicates
func TestResolveFirstMatchWins(t *testing.T) {
	table := testTable(nil,
		testRow("Kenya", 1950, map[string]string{"0-4": "first"}),
		testRow("Kenya", 1950, map[string]string{"0-4": "second"}),
	)

	for i := 0; i < 3; i++ {
		row, err := Resolve(table, "Kenya", 1950)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if row.Cells["0-4"] != "first" {
			t.Errorf("Expected the first matching row, got cells %v", row.Cells)
		}
	}
}

// TestResolveEmptyTable tests lookup against a table with no rows
func TestResolveEmptyTable(t *testing.T) {
	_, err := Resolve(testTable(nil), "Kenya", 1950)
	if err == nil {
		t.Fatal("Expected error for empty table, got none")
	}
	if errors.GetCode(err) != errors.CodeNotFound {
		t.Errorf("Expected code %s, got %s", errors.CodeNotFound, errors.GetCode(err))
	}
}
