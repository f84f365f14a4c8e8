// internal/storage/mongo.go
package storage

import (
	"context"
	"errors"
	"fmt"

	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ApplicationsCollection = "applications"

// MongoStore keeps applications in the applications collection. A unique
// index on application_id turns a colliding id into ErrDuplicate.
type MongoStore struct {
	coll   *mongo.Collection
	logger logger.Logger
}

func NewMongoStore(coll *mongo.Collection, log logger.Logger) *MongoStore {
	return &MongoStore{
		coll:   coll,
		logger: log.WithFields(map[string]interface{}{"backend": "mongo", "collection": coll.Name()}),
	}
}

func (s *MongoStore) Backend() string { return "mongo" }

// EnsureIndexes creates the unique application_id index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "application_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%w: create index: %v", ErrStorageFailed, err)
	}
	return nil
}

func (s *MongoStore) Save(ctx context.Context, app *models.Application) error {
	if _, err := s.coll.InsertOne(ctx, app); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", ErrDuplicate, app.ApplicationID)
		}
		return fmt.Errorf("%w: insert failed: %v", ErrStorageFailed, err)
	}

	s.logger.Info("application inserted", map[string]interface{}{
		"applicationId": app.ApplicationID,
	})
	return nil
}

func (s *MongoStore) Get(ctx context.Context, applicationID string) (*models.Application, error) {
	var app models.Application
	err := s.coll.FindOne(ctx, bson.M{"application_id": applicationID}).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, applicationID)
		}
		return nil, fmt.Errorf("%w: find failed: %v", ErrStorageFailed, err)
	}
	return &app, nil
}

func (s *MongoStore) List(ctx context.Context) ([]models.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find failed: %v", ErrStorageFailed, err)
	}
	defer cursor.Close(ctx)

	apps := []models.Application{}
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("%w: decode failed: %v", ErrStorageFailed, err)
	}
	return apps, nil
}

// Close is a no-op; the client is owned and disconnected by the caller.
func (s *MongoStore) Close(ctx context.Context) error { return nil }
