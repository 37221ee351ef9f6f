package ports

import (
	"context"
	"mime/multipart"
)

// ImageStorePort persists uploaded car images under a per-car directory
// and returns the relative paths recorded on the row.
type ImageStorePort interface {
	SaveAll(ctx context.Context, dir string, files []*multipart.FileHeader) ([]string, error)
	RemoveDir(dir string) error
}
