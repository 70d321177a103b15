package mongostore

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type categoryRepo struct {
	coll *mongo.Collection
}

func (r *categoryRepo) List(ctx context.Context) ([]models.Category, error) {
	return findAll[models.Category](ctx, r.coll, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (r *categoryRepo) UpsertByName(ctx context.Context, category *models.Category) (*repository.UpdateResult, error) {
	id := category.ID
	if id == "" {
		id = uuid.NewString()
	}
	update := bson.M{"$setOnInsert": bson.M{"_id": id}}
	if category.Image != "" {
		update["$set"] = bson.M{"image": category.Image}
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"name": category.Name}, update, options.Update().SetUpsert(true))
	return updateResult(res, err, "category")
}

type productRepo struct {
	coll *mongo.Collection
}

func (r *productRepo) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	query := bson.M{}
	if filter.SellerEmail != "" {
		query["sellerEmail"] = filter.SellerEmail
	}
	if filter.CategoryID != "" {
		query["categoryId"] = filter.CategoryID
	}
	if filter.AdvertisedOnly {
		query["advertise"] = true
	}
	if filter.AvailableOnly {
		query["sales_status"] = models.SalesAvailable
	}
	return findAll[models.Product](ctx, r.coll, query, options.Find().SetSort(bson.D{{Key: "postedAt", Value: -1}}))
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*models.Product, error) {
	return findOne[models.Product](ctx, r.coll, byID(id))
}

func (r *productRepo) Insert(ctx context.Context, product *models.Product) (*repository.InsertResult, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.SalesStatus == "" {
		product.SalesStatus = models.SalesAvailable
	}
	if product.PostedAt.IsZero() {
		product.PostedAt = time.Now().UTC()
	}
	return insert(ctx, r.coll, product.ID, product)
}

func (r *productRepo) SetAdvertise(ctx context.Context, id string, advertise bool) (*repository.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, byID(id), bson.M{"$set": bson.M{"advertise": advertise}})
	return updateResult(res, err, "product")
}

func (r *productRepo) MarkSold(ctx context.Context, id string) (*repository.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, byID(id), bson.M{"$set": bson.M{"sales_status": models.SalesSold}})
	return updateResult(res, err, "product")
}

func (r *productRepo) SetVerifyBySeller(ctx context.Context, sellerEmail string, verify bool) (*repository.UpdateResult, error) {
	res, err := r.coll.UpdateMany(ctx, bson.M{"sellerEmail": sellerEmail}, bson.M{"$set": bson.M{"verify": verify}})
	return updateResult(res, err, "products")
}

func (r *productRepo) Delete(ctx context.Context, id string) (*repository.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, byID(id))
	return deleteResult(res, err, "product")
}
