package synclog

import (
	"context"
	"time"

	"brevo-connector/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SyncLogRepository interface {
	Create(ctx context.Context, entry *SyncLog) error
	List(ctx context.Context, filter Filter) ([]SyncLog, error)
	DeleteBefore(ctx context.Context, statuses []string, before time.Time) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type SyncLogRepositoryImpl struct {
	collection *mongo.Collection
}

func NewSyncLogRepository(db *database.MongodbDB) SyncLogRepository {
	return &SyncLogRepositoryImpl{
		collection: db.DB.Collection("sync_logs"),
	}
}

func (r *SyncLogRepositoryImpl) Create(ctx context.Context, entry *SyncLog) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if entry.StartTime.IsZero() {
		entry.StartTime = now
	}
	entry.CreatedAt = now

	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *SyncLogRepositoryImpl) List(ctx context.Context, filter Filter) ([]SyncLog, error) {
	query := bson.M{}
	if filter.Operation != "" {
		query["operation"] = filter.Operation
	}
	if filter.Direction != "" {
		query["direction"] = filter.Direction
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(filter.Offset)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []SyncLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *SyncLogRepositoryImpl) DeleteBefore(ctx context.Context, statuses []string, before time.Time) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{
		"status":     bson.M{"$in": statuses},
		"created_at": bson.M{"$lt": before},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *SyncLogRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "operation", Value: 1}, {Key: "status", Value: 1}}},
	})
	return err
}
