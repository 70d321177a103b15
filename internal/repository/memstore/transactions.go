package memstore

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
)

type bookingRepo struct {
	d *data
}

func (r *bookingRepo) List(_ context.Context, f repository.BookingFilter) ([]models.BookingProduct, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	return filter(r.d.bookings, func(b *models.BookingProduct) bool {
		return f.Email == "" || b.Email == f.Email
	}), nil
}

func (r *bookingRepo) FindByID(_ context.Context, id string) (*models.BookingProduct, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	i := indexOf(r.d.bookings, func(b *models.BookingProduct) bool { return b.ID == id })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	booking := r.d.bookings[i]
	return &booking, nil
}

func (r *bookingRepo) Insert(_ context.Context, booking *models.BookingProduct) (*repository.InsertResult, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	booking.ID = newID(booking.ID)
	r.d.bookings = append(r.d.bookings, *booking)
	return &repository.InsertResult{Acknowledged: true, InsertedID: booking.ID}, nil
}

func (r *bookingRepo) MarkPaid(_ context.Context, id string, transactionID string) (*repository.UpdateResult, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return updateWhere(r.d.bookings, func(b *models.BookingProduct) bool { return b.ID == id }, func(b *models.BookingProduct) bool {
		if b.Paid && b.TransactionID == transactionID {
			return false
		}
		b.Paid = true
		b.TransactionID = transactionID
		return true
	}), nil
}

type reportedProductRepo struct {
	d *data
}

func (r *reportedProductRepo) List(_ context.Context) ([]models.ReportedProduct, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	return filter(r.d.reportedProducts, func(*models.ReportedProduct) bool { return true }), nil
}

func (r *reportedProductRepo) Insert(_ context.Context, report *models.ReportedProduct) (*repository.InsertResult, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	report.ID = newID(report.ID)
	report.CreatedAt = time.Now().UTC()
	r.d.reportedProducts = append(r.d.reportedProducts, *report)
	return &repository.InsertResult{Acknowledged: true, InsertedID: report.ID}, nil
}

func (r *reportedProductRepo) Delete(_ context.Context, id string) (*repository.DeleteResult, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return deleteWhere(&r.d.reportedProducts, func(p *models.ReportedProduct) bool { return p.ID == id }), nil
}

type paymentRepo struct {
	d *data
}

func (r *paymentRepo) List(_ context.Context) ([]models.Payment, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	return filter(r.d.payments, func(*models.Payment) bool { return true }), nil
}

func (r *paymentRepo) Insert(_ context.Context, payment *models.Payment) (*repository.InsertResult, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	payment.ID = newID(payment.ID)
	payment.CreatedAt = time.Now().UTC()
	r.d.payments = append(r.d.payments, *payment)
	return &repository.InsertResult{Acknowledged: true, InsertedID: payment.ID}, nil
}
