package population

import "sort"

// CommonCountries computes the set of country names present in both tables,
// ascending. Exact string equality; the loader already trims names.
// Pure and symmetric in its arguments.
func CommonCountries(a, b *Table) []string {
	inA := make(map[string]bool)
	for _, row := range a.Rows {
		inA[row.Country] = true
	}
	seen := make(map[string]bool)
	var common []string
	for _, row := range b.Rows {
		if inA[row.Country] && !seen[row.Country] {
			seen[row.Country] = true
			common = append(common, row.Country)
		}
	}
	sort.Strings(common)
	return common
}

// CommonYears computes the set of years present in both tables, ascending.
func CommonYears(a, b *Table) []int {
	inA := make(map[int]bool)
	for _, row := range a.Rows {
		inA[row.Year] = true
	}
	seen := make(map[int]bool)
	var common []int
	for _, row := range b.Rows {
		if inA[row.Year] && !seen[row.Year] {
			seen[row.Year] = true
			common = append(common, row.Year)
		}
	}
	sort.Ints(common)
	return common
}
