package ports

import (
	"context"
	"io"

	"datasight/domain/core"
)

// FileStorage keeps the raw uploaded bytes so charts can be rendered later
type FileStorage interface {
	// Store writes r under id and returns the stored location
	Store(ctx context.Context, id core.FileID, ext string, r io.Reader) (string, error)
	// Open returns core.ErrFileNotFound when nothing is stored for id
	Open(ctx context.Context, id core.FileID, ext string) (io.ReadCloser, error)
	Delete(ctx context.Context, id core.FileID, ext string) error
}
