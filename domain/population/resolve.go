package population

import (
	"fmt"

	"popgen/internal/errors"
)

// Resolve locates the row matching both country and year exactly. The two
// fields are filtered together, never as sequential narrowing passes. When
// several rows match, the first wins; when none match, a NOT_FOUND error is
// returned. Callers treat that error as a per-selection warning, not a
// batch failure.
func Resolve(t *Table, country string, year int) (*Row, error) {
	for i := range t.Rows {
		if t.Rows[i].Country == country && t.Rows[i].Year == year {
			return &t.Rows[i], nil
		}
	}
	return nil, errors.NotFound(fmt.Sprintf("row for %s (%d)", country, year))
}
