// internal/positions/static.go
package positions

import (
	"context"

	"dygs-jobs/internal/models"
)

type StaticLister struct {
	catalog []models.Position
}

func NewStaticLister(catalog []models.Position) *StaticLister {
	return &StaticLister{catalog: catalog}
}

func (l *StaticLister) Source() string { return "static" }

func (l *StaticLister) ListActive(ctx context.Context) ([]models.Position, error) {
	return filterActive(l.catalog), nil
}
