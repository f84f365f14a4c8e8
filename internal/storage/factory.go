// internal/storage/factory.go
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"dygs-jobs/internal/common/config"
	"dygs-jobs/internal/common/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

// Dependencies carries the connections opened at startup. Only the one the
// configured backend needs has to be set.
type Dependencies struct {
	Mongo    *mongo.Database
	Postgres *sql.DB
}

// New builds the configured Store and prepares its schema.
func New(ctx context.Context, cfg *config.Config, deps Dependencies, log logger.Logger) (Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendXLSX:
		return NewXLSXStore(cfg.Storage.XLSX.Path, cfg.Storage.XLSX.Sheet, log), nil

	case config.BackendMongo:
		if deps.Mongo == nil {
			return nil, fmt.Errorf("mongo backend selected without a database connection")
		}
		store := NewMongoStore(deps.Mongo.Collection(ApplicationsCollection), log)
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return store, nil

	case config.BackendPostgres:
		if deps.Postgres == nil {
			return nil, fmt.Errorf("postgres backend selected without a database connection")
		}
		store := NewPostgresStore(deps.Postgres, log)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil

	case config.BackendSheets:
		key, err := sheetsCredentials(cfg.Storage.Sheets)
		if err != nil {
			return nil, err
		}
		svc, err := NewSheetsService(ctx, key)
		if err != nil {
			return nil, err
		}
		store := NewSheetsStore(svc, cfg.Storage.Sheets.SpreadsheetID, cfg.Storage.Sheets.Sheet, log)
		if err := store.EnsureHeader(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}

	return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
}

func sheetsCredentials(cfg config.SheetsConfig) ([]byte, error) {
	if cfg.CredentialsJSON != "" {
		return []byte(cfg.CredentialsJSON), nil
	}
	key, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read service account key: %w", err)
	}
	return key, nil
}
