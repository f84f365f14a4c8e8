// internal/positions/positions.go
package positions

import (
	"context"
	"errors"

	"dygs-jobs/internal/models"
)

var ErrFetchFailed = errors.New("POSITIONS_FETCH_FAILED")

// Lister returns the positions currently open for applications.
type Lister interface {
	ListActive(ctx context.Context) ([]models.Position, error)
	Source() string
}

// filterActive never returns nil so the handler encodes [] rather than null.
func filterActive(all []models.Position) []models.Position {
	active := make([]models.Position, 0, len(all))
	for _, p := range all {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active
}
