// internal/resumes/factory.go
package resumes

import (
	"context"

	"dygs-jobs/internal/common/config"
	"dygs-jobs/internal/common/logger"
)

// NewObjectStore returns the configured object store, or nil when resumes
// stay inside the application record.
func NewObjectStore(ctx context.Context, cfg config.ResumeConfig, log logger.Logger) (ObjectStore, error) {
	if cfg.MinIO.Enabled {
		store, err := NewMinIOStore(cfg.MinIO, log)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}

	if cfg.UploadDir != "" {
		store, err := NewDiskStore(cfg.UploadDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, nil
}
