// internal/positions/factory.go
package positions

import (
	"context"
	"database/sql"
	"fmt"

	"dygs-jobs/internal/common/config"
	"dygs-jobs/internal/common/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

type Dependencies struct {
	Mongo    *mongo.Database
	Postgres *sql.DB
}

// New builds the lister selected by positions.source. Database sources are
// seeded with the default catalog when empty.
func New(ctx context.Context, cfg config.PositionsConfig, deps Dependencies, log logger.Logger) (Lister, error) {
	catalog := DefaultCatalog()
	if cfg.CatalogPath != "" {
		loaded, err := LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		catalog = loaded
	}

	switch cfg.Source {
	case "", "static":
		return NewStaticLister(catalog), nil

	case config.BackendMongo:
		if deps.Mongo == nil {
			return nil, fmt.Errorf("mongo positions source requires a database connection")
		}
		lister := NewMongoLister(deps.Mongo.Collection(PositionsCollection), log)
		if err := lister.Seed(ctx, catalog); err != nil {
			return nil, err
		}
		return lister, nil

	case config.BackendPostgres:
		if deps.Postgres == nil {
			return nil, fmt.Errorf("postgres positions source requires a database connection")
		}
		lister := NewPostgresLister(deps.Postgres, log)
		if err := lister.Seed(ctx, catalog); err != nil {
			return nil, err
		}
		return lister, nil

	default:
		return nil, fmt.Errorf("unknown positions source: %s", cfg.Source)
	}
}
