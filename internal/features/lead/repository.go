package lead

import (
	"context"
	"time"

	"brevo-connector/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *Lead) error
	Get(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, limit, offset int64) ([]Lead, error)
	Update(ctx context.Context, lead *Lead) error
	FindByBookingID(ctx context.Context, bookingID string) (*Lead, error)
	EnsureIndexes(ctx context.Context) error
}

type LeadRepositoryImpl struct {
	collection *mongo.Collection
}

func NewLeadRepository(db *database.MongodbDB) LeadRepository {
	return &LeadRepositoryImpl{
		collection: db.DB.Collection("leads"),
	}
}

func (r *LeadRepositoryImpl) Create(ctx context.Context, lead *Lead) error {
	if lead.ID.IsZero() {
		lead.ID = primitive.NewObjectID()
	}
	now := time.Now()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, lead)
	return err
}

func (r *LeadRepositoryImpl) Get(ctx context.Context, id string) (*Lead, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var lead Lead
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&lead)
	if err != nil {
		return nil, err
	}

	return &lead, nil
}

func (r *LeadRepositoryImpl) List(ctx context.Context, limit, offset int64) ([]Lead, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []Lead
	if err = cursor.All(ctx, &leads); err != nil {
		return nil, err
	}

	return leads, nil
}

func (r *LeadRepositoryImpl) Update(ctx context.Context, lead *Lead) error {
	lead.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": lead.ID}, lead)
	return err
}

func (r *LeadRepositoryImpl) FindByBookingID(ctx context.Context, bookingID string) (*Lead, error) {
	var lead Lead
	err := r.collection.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&lead)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &lead, nil
}

func (r *LeadRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
		{Keys: bson.D{{Key: "contact_id", Value: 1}}},
	})
	return err
}
