// internal/positions/mongo.go
package positions

import (
	"context"
	"fmt"

	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const PositionsCollection = "positions"

type MongoLister struct {
	coll   *mongo.Collection
	logger logger.Logger
}

func NewMongoLister(coll *mongo.Collection, log logger.Logger) *MongoLister {
	return &MongoLister{
		coll:   coll,
		logger: log.WithFields(map[string]interface{}{"source": "mongo", "collection": coll.Name()}),
	}
}

func (l *MongoLister) Source() string { return "mongo" }

// Seed indexes the collection by title and inserts the catalog when the
// collection holds no documents yet.
func (l *MongoLister) Seed(ctx context.Context, catalog []models.Position) error {
	if _, err := l.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "title", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create title index: %w", err)
	}

	count, err := l.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("count positions: %w", err)
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, len(catalog))
	for i := range catalog {
		docs[i] = catalog[i]
	}
	if _, err := l.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed positions: %w", err)
	}

	l.logger.Info("seeded positions", map[string]interface{}{"count": len(docs)})
	return nil
}

func (l *MongoLister) ListActive(ctx context.Context) ([]models.Position, error) {
	cursor, err := l.coll.Find(ctx, bson.D{{Key: "is_active", Value: true}},
		options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	var positions []models.Position
	if err := cursor.All(ctx, &positions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return filterActive(positions), nil
}
