package contact

import (
	"context"
	"strings"
	"time"

	"brevo-connector/internal/common/models"
	"brevo-connector/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	Get(ctx context.Context, id string) (*Contact, error)
	List(ctx context.Context, limit, offset int64) ([]Contact, error)
	Update(ctx context.Context, contact *Contact) error
	Replace(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, id string) error
	Archive(ctx context.Context, id primitive.ObjectID) error
	FindByBrevoID(ctx context.Context, brevoID string) (*Contact, error)
	FindByEmail(ctx context.Context, email string) (*Contact, error)
	ListSyncCandidates(ctx context.Context, limit int64) ([]Contact, error)
	EnsureIndexes(ctx context.Context) error
}

type ContactRepositoryImpl struct {
	collection *mongo.Collection
}

func NewContactRepository(db *database.MongodbDB) ContactRepository {
	return &ContactRepositoryImpl{
		collection: db.DB.Collection("contacts"),
	}
}

func (r *ContactRepositoryImpl) Create(ctx context.Context, contact *Contact) error {
	if contact.ID.IsZero() {
		contact.ID = primitive.NewObjectID()
	}
	contact.Email = strings.ToLower(strings.TrimSpace(contact.Email))
	if contact.SyncStatus == "" {
		contact.SyncStatus = models.SyncStatusNever
	}
	now := time.Now()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	if contact.UpdatedAt.IsZero() {
		contact.UpdatedAt = now
	}

	_, err := r.collection.InsertOne(ctx, contact)
	return err
}

func (r *ContactRepositoryImpl) Get(ctx context.Context, id string) (*Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var contact Contact
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&contact)
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

func (r *ContactRepositoryImpl) List(ctx context.Context, limit, offset int64) ([]Contact, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var contacts []Contact
	if err = cursor.All(ctx, &contacts); err != nil {
		return nil, err
	}

	return contacts, nil
}

func (r *ContactRepositoryImpl) Update(ctx context.Context, contact *Contact) error {
	contact.Email = strings.ToLower(strings.TrimSpace(contact.Email))
	contact.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": contact.ID}, contact)
	return err
}

// Replace persists a contact without bumping UpdatedAt. Sync writes use
// it so applying a remote bag does not look like a fresh local edit.
func (r *ContactRepositoryImpl) Replace(ctx context.Context, contact *Contact) error {
	contact.Email = strings.ToLower(strings.TrimSpace(contact.Email))
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": contact.ID}, contact)
	return err
}

func (r *ContactRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// Archive soft-deletes a contact, keeping the record for audit trails.
func (r *ContactRepositoryImpl) Archive(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}},
	)
	return err
}

func (r *ContactRepositoryImpl) FindByBrevoID(ctx context.Context, brevoID string) (*Contact, error) {
	var contact Contact
	err := r.collection.FindOne(ctx, bson.M{"brevo_id": brevoID}).Decode(&contact)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

// FindByEmail returns the contact with the given address. When several
// records share the address, the lowest _id wins so repeated syncs
// always link the same record.
func (r *ContactRepositoryImpl) FindByEmail(ctx context.Context, email string) (*Contact, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})

	var contact Contact
	err := r.collection.FindOne(ctx, bson.M{
		"email": strings.ToLower(strings.TrimSpace(email)),
	}, opts).Decode(&contact)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

// ListSyncCandidates returns active contacts with an email address that
// look like they need an outbound push. The precise admission decision
// is ShouldSync; this query just narrows the scan.
func (r *ContactRepositoryImpl) ListSyncCandidates(ctx context.Context, limit int64) ([]Contact, error) {
	if limit <= 0 {
		limit = 100
	}

	filter := bson.M{
		"active": true,
		"email":  bson.M{"$nin": bson.A{"", nil}},
		"$or": bson.A{
			bson.M{"sync_status": bson.M{"$in": bson.A{
				string(models.SyncStatusNever),
				string(models.SyncStatusPending),
				string(models.SyncStatusError),
			}}},
			bson.M{"$expr": bson.M{"$gt": bson.A{"$updated_at", "$last_sync"}}},
		},
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var contacts []Contact
	if err = cursor.All(ctx, &contacts); err != nil {
		return nil, err
	}

	return contacts, nil
}

func (r *ContactRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "brevo_id", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "sync_status", Value: 1}}},
	})
	return err
}
