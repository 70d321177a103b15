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

type bookingRepo struct {
	coll *mongo.Collection
}

func (r *bookingRepo) List(ctx context.Context, filter repository.BookingFilter) ([]models.BookingProduct, error) {
	query := bson.M{}
	if filter.Email != "" {
		query["email"] = filter.Email
	}
	return findAll[models.BookingProduct](ctx, r.coll, query)
}

func (r *bookingRepo) FindByID(ctx context.Context, id string) (*models.BookingProduct, error) {
	return findOne[models.BookingProduct](ctx, r.coll, byID(id))
}

func (r *bookingRepo) Insert(ctx context.Context, booking *models.BookingProduct) (*repository.InsertResult, error) {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	return insert(ctx, r.coll, booking.ID, booking)
}

func (r *bookingRepo) MarkPaid(ctx context.Context, id string, transactionID string) (*repository.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, byID(id), bson.M{"$set": bson.M{"paid": true, "transactionId": transactionID}})
	return updateResult(res, err, "booking")
}

type reportedProductRepo struct {
	coll *mongo.Collection
}

func (r *reportedProductRepo) List(ctx context.Context) ([]models.ReportedProduct, error) {
	return findAll[models.ReportedProduct](ctx, r.coll, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *reportedProductRepo) Insert(ctx context.Context, report *models.ReportedProduct) (*repository.InsertResult, error) {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	report.CreatedAt = time.Now().UTC()
	return insert(ctx, r.coll, report.ID, report)
}

func (r *reportedProductRepo) Delete(ctx context.Context, id string) (*repository.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, byID(id))
	return deleteResult(res, err, "reported product")
}

type paymentRepo struct {
	coll *mongo.Collection
}

func (r *paymentRepo) List(ctx context.Context) ([]models.Payment, error) {
	return findAll[models.Payment](ctx, r.coll, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *paymentRepo) Insert(ctx context.Context, payment *models.Payment) (*repository.InsertResult, error) {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	payment.CreatedAt = time.Now().UTC()
	return insert(ctx, r.coll, payment.ID, payment)
}
