package pgstore

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepo struct {
	db *gorm.DB
}

func (r *bookingRepo) List(ctx context.Context, filter repository.BookingFilter) ([]models.BookingProduct, error) {
	query := r.db.WithContext(ctx)
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}

	bookings := []models.BookingProduct{}
	if err := query.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepo) FindByID(ctx context.Context, id string) (*models.BookingProduct, error) {
	var booking models.BookingProduct
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &booking, nil
}

func (r *bookingRepo) Insert(ctx context.Context, booking *models.BookingProduct) (*repository.InsertResult, error) {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return &repository.InsertResult{Acknowledged: true, InsertedID: booking.ID}, nil
}

func (r *bookingRepo) MarkPaid(ctx context.Context, id string, transactionID string) (*repository.UpdateResult, error) {
	res := r.db.WithContext(ctx).Model(&models.BookingProduct{}).Where("id = ?", id).Updates(map[string]interface{}{
		"paid":           true,
		"transaction_id": transactionID,
	})
	return updated(res, "booking")
}

type reportedProductRepo struct {
	db *gorm.DB
}

func (r *reportedProductRepo) List(ctx context.Context) ([]models.ReportedProduct, error) {
	reports := []models.ReportedProduct{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reported products: %w", err)
	}
	return reports, nil
}

func (r *reportedProductRepo) Insert(ctx context.Context, report *models.ReportedProduct) (*repository.InsertResult, error) {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return nil, fmt.Errorf("failed to create reported product: %w", err)
	}
	return &repository.InsertResult{Acknowledged: true, InsertedID: report.ID}, nil
}

func (r *reportedProductRepo) Delete(ctx context.Context, id string) (*repository.DeleteResult, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ReportedProduct{})
	return deleted(res, "reported product")
}

type paymentRepo struct {
	db *gorm.DB
}

func (r *paymentRepo) List(ctx context.Context) ([]models.Payment, error) {
	payments := []models.Payment{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (r *paymentRepo) Insert(ctx context.Context, payment *models.Payment) (*repository.InsertResult, error) {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return &repository.InsertResult{Acknowledged: true, InsertedID: payment.ID}, nil
}
