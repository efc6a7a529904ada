package session

import (
	"reflect"
	"testing"

	"popgen/app"
	"popgen/domain/population"
)

func sessionTable(labels []string, rows ...population.Row) *population.Table {
	return &population.Table{
		Columns:   labels,
		AgeLabels: labels,
		Rows:      rows,
	}
}

func sessionRow(country string, year int) population.Row {
	return population.Row{Country: country, Year: year}
}

// TestStoreEmpty tests accessors before any upload
func TestStoreEmpty(t *testing.T) {
	store := NewStore()

	if _, _, ok := store.Tables(); ok {
		t.Error("Expected no tables before upload")
	}
	if _, _, ok := store.Keyspace(); ok {
		t.Error("Expected no keyspace before upload")
	}
	if store.Batch() != nil {
		t.Error("Expected no batch before generation")
	}
	if _, ok := store.Result("any"); ok {
		t.Error("Expected no result lookup before generation")
	}
}

// TestStoreSetTables tests keyspace derivation on upload
func TestStoreSetTables(t *testing.T) {
	store := NewStore()
	male := sessionTable(nil,
		sessionRow("Kenya", 1950),
		sessionRow("Brazil", 1990),
	)
	female := sessionTable(nil,
		sessionRow("Kenya", 1950),
		sessionRow("Kenya", 1990),
	)

	store.SetTables(male, female)

	gotMale, gotFemale, ok := store.Tables()
	if !ok || gotMale != male || gotFemale != female {
		t.Fatal("Expected the stored table pair back")
	}

	countries, years, ok := store.Keyspace()
	if !ok {
		t.Fatal("Expected a keyspace after upload")
	}
	if !reflect.DeepEqual(countries, []string{"Kenya"}) {
		t.Errorf("Expected intersected countries [Kenya], got %v", countries)
	}
	if !reflect.DeepEqual(years, []int{1950, 1990}) {
		t.Errorf("Expected intersected years [1950 1990], got %v", years)
	}
}

// TestStoreReplaceTablesClearsBatch tests that a new upload invalidates the
// previous batch
func TestStoreReplaceTablesClearsBatch(t *testing.T) {
	store := NewStore()
	table := sessionTable(nil, sessionRow("Kenya", 1950))
	store.SetTables(table, table)

	batch := &app.Batch{
		ID:      "batch-1",
		Results: []*app.Result{{ID: "result-1"}},
	}
	store.SetBatch(batch)

	if got := store.Batch(); got != batch {
		t.Fatal("Expected the stored batch back")
	}
	if result, ok := store.Result("result-1"); !ok || result.ID != "result-1" {
		t.Fatal("Expected result lookup to succeed")
	}

	store.SetTables(table, table)
	if store.Batch() != nil {
		t.Error("Expected batch to be cleared by a fresh upload")
	}
	if _, ok := store.Result("result-1"); ok {
		t.Error("Expected result lookup to miss after a fresh upload")
	}
}
