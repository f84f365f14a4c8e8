// internal/storage/rows.go
package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dygs-jobs/internal/models"
)

// Headers is the column layout shared by the workbook and the remote sheet.
var Headers = []string{
	"Application ID",
	"First Name",
	"Last Name",
	"Email",
	"Phone",
	"Position",
	"Experience (Years)",
	"Education",
	"Skills",
	"Cover Letter",
	"Resume File",
	"Submission Date",
	"Status",
}

const lastColumn = "M"

// ToRow flattens an application into one spreadsheet row.
func ToRow(app *models.Application) []interface{} {
	return []interface{}{
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
		app.ResumeFilename(),
		app.CreatedAt.UTC().Format(time.RFC3339),
		app.Status,
	}
}

// FromRow rebuilds an application from a row. Trailing empty cells may be
// missing from rows returned by spreadsheet readers.
func FromRow(row []string) (models.Application, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	if cell(0) == "" {
		return models.Application{}, fmt.Errorf("row has no application id")
	}

	app := models.Application{
		ApplicationID: cell(0),
		FirstName:     cell(1),
		LastName:      cell(2),
		Email:         cell(3),
		Phone:         cell(4),
		Position:      cell(5),
		Education:     cell(7),
		Skills:        cell(8),
		CoverLetter:   cell(9),
		Status:        cell(12),
	}

	if v := cell(6); v != "" {
		years, err := strconv.Atoi(v)
		if err != nil {
			return models.Application{}, fmt.Errorf("row %s: experience %q: %w", app.ApplicationID, v, err)
		}
		app.ExperienceYears = years
	}

	if name := cell(10); name != "" {
		app.Resume = &models.Resume{Filename: name}
	}

	if v := cell(11); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return models.Application{}, fmt.Errorf("row %s: submission date %q: %w", app.ApplicationID, v, err)
		}
		app.CreatedAt = ts
		app.UpdatedAt = ts
	}

	if app.Status == "" {
		app.Status = models.StatusPending
	}

	return app, nil
}

// rowsToApplications skips rows that cannot be parsed and reports how many.
func rowsToApplications(rows [][]string) ([]models.Application, int) {
	apps := make([]models.Application, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		app, err := FromRow(row)
		if err != nil {
			skipped++
			continue
		}
		apps = append(apps, app)
	}
	return apps, skipped
}
