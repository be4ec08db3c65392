package ports

import (
	"io"

	"datasight/domain/table"
)

// TableLoader reads an uploaded file into a table. The format is taken from
// the filename extension.
type TableLoader interface {
	Load(r io.Reader, filename string) (*table.Table, error)
}
