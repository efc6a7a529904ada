package ports

import (
	"io"

	"popgen/domain/population"
)

// TableLoader ingests one uploaded spreadsheet into a population table.
// The filename selects the parser (xlsx vs csv); the reader is consumed
// fully on success and no partial table is returned on failure.
type TableLoader interface {
	Load(r io.Reader, filename string) (*population.Table, error)
}
