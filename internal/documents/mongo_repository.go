package documents

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pedizone/pedizone-crm/internal/shared"
)

const mongoCollection = "documents"

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository stores documents in the "documents" collection of
// database and ensures its indexes.
func NewMongoRepository(ctx context.Context, database *mongo.Database) (Repository, error) {
	coll := database.Collection(mongoCollection)
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("documents: ensure indexes: %w", err)
	}
	return &mongoRepository{coll: coll}, nil
}

func (r *mongoRepository) List(ctx context.Context, filter ListFilter) ([]Document, error) {
	query := bson.M{}
	if filter.CustomerID != "" {
		query["customer_id"] = filter.CustomerID
	}
	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("documents: find: %w", err)
	}
	list := []Document{}
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("documents: decode: %w", err)
	}
	return list, nil
}

func (r *mongoRepository) Get(ctx context.Context, id string) (Document, error) {
	var d Document
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Document{}, shared.NotFound("document not found")
	}
	if err != nil {
		return Document{}, fmt.Errorf("documents: find one: %w", err)
	}
	return d, nil
}

func (r *mongoRepository) Create(ctx context.Context, d Document) error {
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return shared.BadRequest("document already exists")
		}
		return fmt.Errorf("documents: insert: %w", err)
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("documents: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return shared.NotFound("document not found")
	}
	return nil
}
