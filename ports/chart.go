package ports

// Chart is an opaque rendered chart, ready for raster export.
type Chart interface {
	// PNG serializes the chart to PNG bytes. Deterministic for a given
	// chart.
	PNG() ([]byte, error)
}

// ChartRenderer turns paired male/female count vectors into a population
// pyramid. Every call must produce an independent chart instance with no
// shared drawing state, so charts generated in one batch cannot leak
// configuration into each other.
type ChartRenderer interface {
	Render(male, female []float64, labels []string, country string, year int, annotate bool) (Chart, error)
}
