// internal/positions/postgres.go
package positions

import (
	"context"
	"database/sql"
	"fmt"

	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/models"
)

const createPositionsTable = `
CREATE TABLE IF NOT EXISTS positions (
	title        TEXT PRIMARY KEY,
	department   TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	requirements TEXT NOT NULL DEFAULT '',
	is_active    BOOLEAN NOT NULL DEFAULT TRUE
)`

type PostgresLister struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresLister(db *sql.DB, log logger.Logger) *PostgresLister {
	return &PostgresLister{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"source": "postgres"}),
	}
}

func (l *PostgresLister) Source() string { return "postgres" }

// Seed creates the positions table and fills it when empty.
func (l *PostgresLister) Seed(ctx context.Context, catalog []models.Position) error {
	if _, err := l.db.ExecContext(ctx, createPositionsTable); err != nil {
		return fmt.Errorf("create positions table: %w", err)
	}

	var count int
	if err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM positions`).Scan(&count); err != nil {
		return fmt.Errorf("count positions: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, p := range catalog {
		_, err := l.db.ExecContext(ctx,
			`INSERT INTO positions (title, department, description, requirements, is_active)
			 VALUES ($1, $2, $3, $4, $5) ON CONFLICT (title) DO NOTHING`,
			p.Title, p.Department, p.Description, p.Requirements, p.IsActive)
		if err != nil {
			return fmt.Errorf("seed position %q: %w", p.Title, err)
		}
	}

	l.logger.Info("seeded positions", map[string]interface{}{"count": len(catalog)})
	return nil
}

func (l *PostgresLister) ListActive(ctx context.Context) ([]models.Position, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT title, department, description, requirements, is_active
		 FROM positions WHERE is_active = TRUE ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer rows.Close()

	positions := make([]models.Position, 0)
	for rows.Next() {
		var p models.Position
		if err := rows.Scan(&p.Title, &p.Department, &p.Description, &p.Requirements, &p.IsActive); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrFetchFailed, err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return positions, nil
}
