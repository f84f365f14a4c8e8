// internal/resumes/disk.go
package resumes

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DiskStore writes resumes under a local directory using the object key as
// the relative path.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Kind() string { return "disk" }

func (s *DiskStore) PutResume(ctx context.Context, key string, upload *Upload) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := os.WriteFile(target, upload.Data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return nil
}

// DeleteResume removes the file and its per-application directory when that
// is left empty. A missing file is not an error.
func (s *DiskStore) DeleteResume(ctx context.Context, key string) error {
	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	_ = os.Remove(filepath.Dir(target))
	return nil
}
