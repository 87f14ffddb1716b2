package settings

import (
	"context"
	"time"

	"brevo-connector/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	defaultSyncInterval = 30 // minutes
	defaultBatchSize    = 100
)

type SettingsRepository interface {
	GetActive(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, s *Settings) error
	EnsureDefaults(ctx context.Context) (*Settings, error)
}

type SettingsRepositoryImpl struct {
	collection *mongo.Collection
}

func NewSettingsRepository(db *database.MongodbDB) SettingsRepository {
	return &SettingsRepositoryImpl{
		collection: db.DB.Collection("settings"),
	}
}

func (r *SettingsRepositoryImpl) GetActive(ctx context.Context) (*Settings, error) {
	var s Settings
	err := r.collection.FindOne(ctx, bson.M{"active": true}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *SettingsRepositoryImpl) Update(ctx context.Context, s *Settings) error {
	s.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	return err
}

// EnsureDefaults seeds the default configuration record when none
// exists yet. Idempotent across restarts.
func (r *SettingsRepositoryImpl) EnsureDefaults(ctx context.Context) (*Settings, error) {
	existing, err := r.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	s := &Settings{
		ID:               primitive.NewObjectID(),
		Name:             "Brevo Connector",
		Active:           true,
		SyncInterval:     defaultSyncInterval,
		BatchSize:        defaultBatchSize,
		WebhookEnabled:   true,
		AutoSyncContacts: true,
		AutoSyncLists:    true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err = r.collection.InsertOne(ctx, s)
	if err != nil {
		return nil, err
	}

	return s, nil
}
