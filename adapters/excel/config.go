package excel

// Config holds spreadsheet ingestion settings.
type Config struct {
	// HeaderOffset is the number of leading non-data rows to skip before
	// the header row. The expected UN WPP workbooks carry a 16-row
	// preamble of titles and source notes.
	HeaderOffset int
}

// DefaultConfig returns ingestion settings for the expected source format.
func DefaultConfig() Config {
	return Config{
		HeaderOffset: 16,
	}
}
