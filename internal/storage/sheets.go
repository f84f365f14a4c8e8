// internal/storage/sheets.go
package storage

import (
	"context"
	"fmt"

	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsStore appends applications to a Google Sheets spreadsheet using the
// same column layout as the local workbook.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	sheet         string
	logger        logger.Logger
}

// NewSheetsService authenticates with a service account key.
func NewSheetsService(ctx context.Context, credentialsJSON []byte) (*sheets.Service, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

func NewSheetsStore(svc *sheets.Service, spreadsheetID, sheet string, log logger.Logger) *SheetsStore {
	return &SheetsStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheet:         sheet,
		logger: log.WithFields(map[string]interface{}{
			"backend":       "sheets",
			"spreadsheetId": spreadsheetID,
		}),
	}
}

func (s *SheetsStore) Backend() string { return "sheets" }

// EnsureHeader writes the header row when the sheet is still empty.
func (s *SheetsStore) EnsureHeader(ctx context.Context) error {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.rangeOf("A1:%s1")).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: read header: %v", ErrStorageFailed, err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, s.rangeOf("A1:%s1"), &sheets.ValueRange{
		Values: [][]interface{}{header},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: write header: %v", ErrStorageFailed, err)
	}
	s.logger.Info("header row written", nil)
	return nil
}

func (s *SheetsStore) Save(ctx context.Context, app *models.Application) error {
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.rangeOf("A:%s"), &sheets.ValueRange{
		Values: [][]interface{}{ToRow(app)},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: append failed: %v", ErrStorageFailed, err)
	}

	s.logger.Info("application appended", map[string]interface{}{
		"applicationId": app.ApplicationID,
	})
	return nil
}

func (s *SheetsStore) Get(ctx context.Context, applicationID string) (*models.Application, error) {
	apps, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		if apps[i].ApplicationID == applicationID {
			return &apps[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, applicationID)
}

func (s *SheetsStore) List(ctx context.Context) ([]models.Application, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.rangeOf("A2:%s")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read rows: %v", ErrStorageFailed, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = fmt.Sprint(v)
		}
		rows = append(rows, row)
	}

	apps, skipped := rowsToApplications(rows)
	if skipped > 0 {
		s.logger.Warn("skipped unreadable rows", map[string]interface{}{"skipped": skipped})
	}
	return apps, nil
}

func (s *SheetsStore) Close(ctx context.Context) error { return nil }

func (s *SheetsStore) rangeOf(format string) string {
	return s.sheet + "!" + fmt.Sprintf(format, lastColumn)
}
