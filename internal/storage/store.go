// internal/storage/store.go
package storage

import (
	"context"
	"errors"

	"dygs-jobs/internal/models"
)

var (
	ErrNotFound      = errors.New("APPLICATION_NOT_FOUND")
	ErrDuplicate     = errors.New("DUPLICATE_APPLICATION")
	ErrStorageFailed = errors.New("STORAGE_FAILED")
)

// Store persists applications. Exactly one implementation is active per
// deployment and it is safe for concurrent use.
type Store interface {
	Save(ctx context.Context, app *models.Application) error
	Get(ctx context.Context, applicationID string) (*models.Application, error)
	List(ctx context.Context) ([]models.Application, error)
	Close(ctx context.Context) error
	Backend() string
}
