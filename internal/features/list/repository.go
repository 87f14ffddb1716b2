package list

import (
	"context"
	"time"

	"brevo-connector/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ListRepository interface {
	Upsert(ctx context.Context, list *ContactList) (created bool, err error)
	Get(ctx context.Context, id string) (*ContactList, error)
	List(ctx context.Context) ([]ContactList, error)
	FindByBrevoID(ctx context.Context, brevoID int64) (*ContactList, error)
	FindByName(ctx context.Context, name string) (*ContactList, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]ContactList, error)
	Archive(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type ListRepositoryImpl struct {
	collection *mongo.Collection
}

func NewListRepository(db *database.MongodbDB) ListRepository {
	return &ListRepositoryImpl{
		collection: db.DB.Collection("contact_lists"),
	}
}

// Upsert writes a list keyed by its remote id and reports whether a new
// record was inserted.
func (r *ListRepositoryImpl) Upsert(ctx context.Context, list *ContactList) (bool, error) {
	now := time.Now()
	list.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"name":               list.Name,
			"folder_id":          list.FolderID,
			"total_subscribers":  list.TotalSubscribers,
			"total_blacklisted":  list.TotalBlacklisted,
			"unique_subscribers": list.UniqueSubscribers,
			"active":             list.Active,
			"last_sync":          list.LastSync,
			"updated_at":         now,
		},
		"$setOnInsert": bson.M{
			"brevo_id":   list.BrevoID,
			"created_at": now,
		},
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"brevo_id": list.BrevoID},
		update,
		options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}

	if res.UpsertedID != nil {
		if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
			list.ID = oid
		}
		return true, nil
	}

	if list.ID.IsZero() {
		existing, err := r.FindByBrevoID(ctx, list.BrevoID)
		if err == nil && existing != nil {
			list.ID = existing.ID
			list.CreatedAt = existing.CreatedAt
		}
	}
	return false, nil
}

func (r *ListRepositoryImpl) Get(ctx context.Context, id string) (*ContactList, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var list ContactList
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&list)
	if err != nil {
		return nil, err
	}

	return &list, nil
}

func (r *ListRepositoryImpl) List(ctx context.Context) ([]ContactList, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lists []ContactList
	if err = cursor.All(ctx, &lists); err != nil {
		return nil, err
	}

	return lists, nil
}

func (r *ListRepositoryImpl) FindByBrevoID(ctx context.Context, brevoID int64) (*ContactList, error) {
	var list ContactList
	err := r.collection.FindOne(ctx, bson.M{"brevo_id": brevoID}).Decode(&list)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &list, nil
}

func (r *ListRepositoryImpl) FindByName(ctx context.Context, name string) (*ContactList, error) {
	var list ContactList
	err := r.collection.FindOne(ctx, bson.M{"name": name, "active": true}).Decode(&list)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &list, nil
}

func (r *ListRepositoryImpl) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]ContactList, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lists []ContactList
	if err = cursor.All(ctx, &lists); err != nil {
		return nil, err
	}

	return lists, nil
}

// Archive soft-deletes a list; membership references on contacts stay in
// place but the list stops resolving.
func (r *ListRepositoryImpl) Archive(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}},
	)
	return err
}

func (r *ListRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "brevo_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	return err
}
