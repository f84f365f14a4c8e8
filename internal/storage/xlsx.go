// internal/storage/xlsx.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/models"

	"github.com/xuri/excelize/v2"
)

// XLSXStore keeps applications in a local workbook, one row per application.
// Writes are serialized and land through a temp file plus rename so readers
// never see a half written workbook.
type XLSXStore struct {
	mu     sync.Mutex
	path   string
	sheet  string
	logger logger.Logger
}

func NewXLSXStore(path, sheet string, log logger.Logger) *XLSXStore {
	return &XLSXStore{
		path:   path,
		sheet:  sheet,
		logger: log.WithFields(map[string]interface{}{"backend": "xlsx", "path": path}),
	}
}

func (s *XLSXStore) Backend() string { return "xlsx" }

// Path is the workbook location served by the download endpoint.
func (s *XLSXStore) Path() string { return s.path }

func (s *XLSXStore) Save(ctx context.Context, app *models.Application) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.openOrCreate()
	if err != nil {
		return fmt.Errorf("%w: open workbook: %v", ErrStorageFailed, err)
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return fmt.Errorf("%w: read rows: %v", ErrStorageFailed, err)
	}
	for _, row := range rows {
		if len(row) > 0 && row[0] == app.ApplicationID {
			return fmt.Errorf("%w: %s", ErrDuplicate, app.ApplicationID)
		}
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	row := ToRow(app)
	if err := f.SetSheetRow(s.sheet, cell, &row); err != nil {
		return fmt.Errorf("%w: append row: %v", ErrStorageFailed, err)
	}

	if err := s.writeAtomic(f); err != nil {
		return fmt.Errorf("%w: write workbook: %v", ErrStorageFailed, err)
	}

	s.logger.Info("application appended", map[string]interface{}{
		"applicationId": app.ApplicationID,
		"row":           len(rows) + 1,
	})
	return nil
}

func (s *XLSXStore) Get(ctx context.Context, applicationID string) (*models.Application, error) {
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

// List returns every stored application. A missing workbook means nothing
// has been submitted yet.
func (s *XLSXStore) List(ctx context.Context) ([]models.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Application{}, nil
		}
		return nil, fmt.Errorf("%w: open workbook: %v", ErrStorageFailed, err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(s.sheet); idx == -1 {
		return []models.Application{}, nil
	}

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read rows: %v", ErrStorageFailed, err)
	}
	if len(rows) <= 1 {
		return []models.Application{}, nil
	}

	apps, skipped := rowsToApplications(rows[1:])
	if skipped > 0 {
		s.logger.Warn("skipped unreadable rows", map[string]interface{}{"skipped": skipped})
	}
	return apps, nil
}

func (s *XLSXStore) Close(ctx context.Context) error { return nil }

func (s *XLSXStore) openOrCreate() (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		f = excelize.NewFile()
		if err := f.SetSheetName(f.GetSheetName(0), s.sheet); err != nil {
			f.Close()
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	if idx, _ := f.GetSheetIndex(s.sheet); idx == -1 {
		if _, err := f.NewSheet(s.sheet); err != nil {
			f.Close()
			return nil, err
		}
	}

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	if len(rows) == 0 {
		if err := writeHeader(f, s.sheet); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func (s *XLSXStore) writeAtomic(f *excelize.File) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".applications-*.xlsx")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}

func writeHeader(f *excelize.File, sheet string) error {
	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	return f.SetSheetRow(sheet, "A1", &header)
}

// WriteWorkbook renders applications into a fresh workbook with the standard
// header row and writes it to w.
func WriteWorkbook(w io.Writer, sheet string, apps []models.Application) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	if err := writeHeader(f, sheet); err != nil {
		return err
	}
	for i := range apps {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := ToRow(&apps[i])
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}
