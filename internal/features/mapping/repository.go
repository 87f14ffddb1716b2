package mapping

import (
	"context"
	"time"

	"brevo-connector/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FieldMappingRepository interface {
	Create(ctx context.Context, mapping *FieldMapping) error
	Get(ctx context.Context, id string) (*FieldMapping, error)
	List(ctx context.Context) ([]FieldMapping, error)
	ListActive(ctx context.Context) ([]FieldMapping, error)
	FindPair(ctx context.Context, brevoAttribute, localField string) (*FieldMapping, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	EnsureIndexes(ctx context.Context) error
}

type FieldMappingRepositoryImpl struct {
	collection *mongo.Collection
}

func NewFieldMappingRepository(db *database.MongodbDB) FieldMappingRepository {
	return &FieldMappingRepositoryImpl{
		collection: db.DB.Collection("field_mappings"),
	}
}

func (r *FieldMappingRepositoryImpl) Create(ctx context.Context, mapping *FieldMapping) error {
	if mapping.ID.IsZero() {
		mapping.ID = primitive.NewObjectID()
	}
	mapping.CreatedAt = time.Now()
	mapping.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, mapping)
	return err
}

func (r *FieldMappingRepositoryImpl) Get(ctx context.Context, id string) (*FieldMapping, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var mapping FieldMapping
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&mapping)
	if err != nil {
		return nil, err
	}

	return &mapping, nil
}

func (r *FieldMappingRepositoryImpl) List(ctx context.Context) ([]FieldMapping, error) {
	opts := options.Find().SetSort(bson.D{{Key: "brevo_attribute", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var mappings []FieldMapping
	if err = cursor.All(ctx, &mappings); err != nil {
		return nil, err
	}

	return mappings, nil
}

func (r *FieldMappingRepositoryImpl) ListActive(ctx context.Context) ([]FieldMapping, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var mappings []FieldMapping
	if err = cursor.All(ctx, &mappings); err != nil {
		return nil, err
	}

	return mappings, nil
}

func (r *FieldMappingRepositoryImpl) FindPair(ctx context.Context, brevoAttribute, localField string) (*FieldMapping, error) {
	var mapping FieldMapping
	err := r.collection.FindOne(ctx, bson.M{
		"brevo_attribute": brevoAttribute,
		"local_field":     localField,
	}).Decode(&mapping)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &mapping, nil
}

func (r *FieldMappingRepositoryImpl) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	updates["updated_at"] = time.Now()
	_, err = r.collection.UpdateOne(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": updates},
	)
	return err
}

func (r *FieldMappingRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "brevo_attribute", Value: 1}, {Key: "local_field", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "active", Value: 1}}},
	})
	return err
}
