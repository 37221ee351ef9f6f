package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/autolot/car-inventory-service/internal/core/ports"
)

// ImageStore writes uploaded car images below baseDir. Each car gets its
// own subdirectory; filenames are regenerated so client names never
// touch the filesystem.
type ImageStore struct {
	baseDir string
	logger  ports.LoggerPort
}

func NewImageStore(baseDir string, logger ports.LoggerPort) (*ImageStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}
	return &ImageStore{baseDir: baseDir, logger: logger}, nil
}

// SaveAll writes every file under baseDir/dir and returns the relative
// paths recorded on the car row. The first write failure removes the
// whole directory so a partial batch never leaks into a record.
func (s *ImageStore) SaveAll(ctx context.Context, dir string, files []*multipart.FileHeader) ([]string, error) {
	target := filepath.Join(s.baseDir, dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, fmt.Errorf("create car image dir: %w", err)
	}

	saved := make([]string, 0, len(files))
	for _, fh := range files {
		if err := ctx.Err(); err != nil {
			_ = os.RemoveAll(target)
			return nil, err
		}

		name := uuid.New().String() + filepath.Ext(fh.Filename)
		if err := s.saveOne(fh, filepath.Join(target, name)); err != nil {
			s.logger.Error("Failed to write uploaded image", map[string]interface{}{
				"error": err.Error(),
				"dir":   dir,
				"file":  fh.Filename,
			})
			_ = os.RemoveAll(target)
			return nil, err
		}
		saved = append(saved, path.Join("images", dir, name))
	}

	return saved, nil
}

func (s *ImageStore) RemoveDir(dir string) error {
	return os.RemoveAll(filepath.Join(s.baseDir, dir))
}

func (s *ImageStore) saveOne(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("write image file: %w", err)
	}
	return out.Close()
}
