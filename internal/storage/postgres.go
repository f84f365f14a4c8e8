// internal/storage/postgres.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/models"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const createApplicationsTable = `
CREATE TABLE IF NOT EXISTS applications (
	application_id      TEXT PRIMARY KEY,
	first_name          TEXT NOT NULL,
	last_name           TEXT NOT NULL,
	email               TEXT NOT NULL,
	phone               TEXT NOT NULL,
	position            TEXT NOT NULL,
	experience_years    INTEGER NOT NULL,
	education           TEXT NOT NULL,
	skills              TEXT NOT NULL,
	cover_letter        TEXT NOT NULL DEFAULT '',
	resume_filename     TEXT,
	resume_content_type TEXT,
	resume_size         BIGINT,
	resume_data         BYTEA,
	resume_object_key   TEXT,
	status              TEXT NOT NULL DEFAULT 'pending',
	created_at          TIMESTAMPTZ NOT NULL,
	updated_at          TIMESTAMPTZ NOT NULL
)`

const applicationColumns = `application_id, first_name, last_name, email, phone, position,
	experience_years, education, skills, cover_letter,
	resume_filename, resume_content_type, resume_size, resume_data, resume_object_key,
	status, created_at, updated_at`

// PostgresStore keeps applications in the applications table.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"backend": "postgres"}),
	}
}

func (s *PostgresStore) Backend() string { return "postgres" }

// EnsureSchema creates the applications table when it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createApplicationsTable); err != nil {
		return fmt.Errorf("%w: create table: %v", ErrStorageFailed, err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, app *models.Application) error {
	var (
		filename, contentType, objectKey sql.NullString
		size                             sql.NullInt64
		data                             []byte
	)
	if app.Resume != nil {
		filename = sql.NullString{String: app.Resume.Filename, Valid: true}
		contentType = sql.NullString{String: app.Resume.ContentType, Valid: true}
		size = sql.NullInt64{Int64: app.Resume.Size, Valid: true}
		objectKey = sql.NullString{String: app.Resume.ObjectKey, Valid: app.Resume.ObjectKey != ""}
		data = app.Resume.Data
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		app.ApplicationID,
		app.FirstName,
		app.LastName,
		app.Email,
		app.Phone,
		app.Position,
		app.ExperienceYears,
		app.Education,
		app.Skills,
		app.CoverLetter,
		filename,
		contentType,
		size,
		data,
		objectKey,
		app.Status,
		app.CreatedAt,
		app.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrDuplicate, app.ApplicationID)
		}
		return fmt.Errorf("%w: insert failed: %v", ErrStorageFailed, err)
	}

	s.logger.Info("application inserted", map[string]interface{}{
		"applicationId": app.ApplicationID,
	})
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, applicationID string) (*models.Application, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+applicationColumns+`
		FROM applications WHERE application_id = $1`, applicationID)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, applicationID)
		}
		return nil, fmt.Errorf("%w: query failed: %v", ErrStorageFailed, err)
	}
	return app, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Application, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+applicationColumns+`
		FROM applications ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("%w: query failed: %v", ErrStorageFailed, err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan failed: %v", ErrStorageFailed, err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", ErrStorageFailed, err)
	}
	return apps, nil
}

// Close is a no-op; the pool is owned by the caller.
func (s *PostgresStore) Close(ctx context.Context) error { return nil }

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(row rowScanner) (*models.Application, error) {
	var (
		app                              models.Application
		filename, contentType, objectKey sql.NullString
		size                             sql.NullInt64
		data                             []byte
	)
	err := row.Scan(
		&app.ApplicationID,
		&app.FirstName,
		&app.LastName,
		&app.Email,
		&app.Phone,
		&app.Position,
		&app.ExperienceYears,
		&app.Education,
		&app.Skills,
		&app.CoverLetter,
		&filename,
		&contentType,
		&size,
		&data,
		&objectKey,
		&app.Status,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if filename.Valid {
		app.Resume = &models.Resume{
			Filename:    filename.String,
			ContentType: contentType.String,
			Size:        size.Int64,
			Data:        data,
			ObjectKey:   objectKey.String,
		}
	}
	return &app, nil
}
