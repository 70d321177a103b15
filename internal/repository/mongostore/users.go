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

type userRepo struct {
	coll *mongo.Collection
}

func (r *userRepo) List(ctx context.Context, filter repository.UserFilter) ([]models.User, error) {
	query := bson.M{}
	if filter.AccountType != "" {
		query["accountType"] = filter.AccountType
	}
	return findAll[models.User](ctx, r.coll, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, byID(id))
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.M{"email": email})
}

func (r *userRepo) Insert(ctx context.Context, user *models.User) (*repository.InsertResult, error) {
	now := time.Now().UTC()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	return insert(ctx, r.coll, user.ID, user)
}

func (r *userRepo) UpsertByEmail(ctx context.Context, user *models.User) (*repository.UpdateResult, error) {
	now := time.Now().UTC()

	set := bson.M{"updatedAt": now}
	if user.Name != "" {
		set["name"] = user.Name
	}
	if user.PhotoURL != "" {
		set["photoURL"] = user.PhotoURL
	}
	if user.AccountType != "" {
		set["accountType"] = user.AccountType
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":       uuid.NewString(),
			"createdAt": now,
			"verify":    false,
		},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": user.Email}, update, options.Update().SetUpsert(true))
	return updateResult(res, err, "user")
}

func (r *userRepo) SetVerify(ctx context.Context, id string, verify bool) (*repository.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, byID(id), bson.M{"$set": bson.M{"verify": verify, "updatedAt": time.Now().UTC()}})
	return updateResult(res, err, "user")
}

func (r *userRepo) SetRole(ctx context.Context, id string, role string) (*repository.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, byID(id), bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now().UTC()}})
	return updateResult(res, err, "user")
}

func (r *userRepo) Delete(ctx context.Context, id string) (*repository.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, byID(id))
	return deleteResult(res, err, "user")
}
