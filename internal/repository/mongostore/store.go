// Package mongostore implements the repositories on MongoDB, one collection
// per entity, using string UUIDs as document ids.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection            = "users"
	CategoriesCollection       = "categories"
	ProductsCollection         = "products"
	BookingProductsCollection  = "bookingProducts"
	ReportedProductsCollection = "reportedProducts"
	PaymentsCollection         = "payments"
)

// New returns a Store over database db. Closing the store disconnects the
// client that owns db.
func New(db *mongo.Database) *repository.Store {
	return &repository.Store{
		Users:            &userRepo{coll: db.Collection(UsersCollection)},
		Categories:       &categoryRepo{coll: db.Collection(CategoriesCollection)},
		Products:         &productRepo{coll: db.Collection(ProductsCollection)},
		Bookings:         &bookingRepo{coll: db.Collection(BookingProductsCollection)},
		ReportedProducts: &reportedProductRepo{coll: db.Collection(ReportedProductsCollection)},
		Payments:         &paymentRepo{coll: db.Collection(PaymentsCollection)},
		Lifecycle:        &lifecycle{client: db.Client()},
	}
}

// EnsureIndexes creates the unique and secondary-key indexes the
// repositories query by. It is safe to run repeatedly.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "accountType", Value: 1}}},
		},
		CategoriesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ProductsCollection: {
			{Keys: bson.D{{Key: "sellerEmail", Value: 1}}},
			{Keys: bson.D{{Key: "categoryId", Value: 1}, {Key: "sales_status", Value: 1}}},
			{Keys: bson.D{{Key: "advertise", Value: 1}, {Key: "sales_status", Value: 1}}},
		},
		BookingProductsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		PaymentsCollection: {
			{Keys: bson.D{{Key: "bookingId", Value: 1}}},
		},
	}

	for name, specs := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, specs); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

type lifecycle struct {
	client *mongo.Client
}

func (l *lifecycle) Ping(ctx context.Context) error {
	return l.client.Ping(ctx, nil)
}

func (l *lifecycle) Close(ctx context.Context) error {
	return l.client.Disconnect(ctx)
}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return err
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return docs, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var doc T
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return &doc, nil
}

func insert(ctx context.Context, coll *mongo.Collection, id string, doc interface{}) (*repository.InsertResult, error) {
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			err = repository.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert into %s: %w", coll.Name(), err)
	}
	return &repository.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func updateResult(res *mongo.UpdateResult, err error, what string) (*repository.UpdateResult, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", what, err)
	}
	out := &repository.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if id, ok := res.UpsertedID.(string); ok {
		out.UpsertedID = id
	}
	return out, nil
}

func deleteResult(res *mongo.DeleteResult, err error, what string) (*repository.DeleteResult, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", what, err)
	}
	return &repository.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
