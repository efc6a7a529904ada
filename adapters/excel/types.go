package excel

// Column names the loader requires in every source spreadsheet. The region
// column name, trailing asterisk included, is a format constant of the UN
// WPP workbooks.
const (
	ColumnRegion = "Region, subregion, country or area *"
	ColumnYear   = "Year"
)
