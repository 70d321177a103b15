package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
)

var (
	ErrPaymentProvider = errors.New("payment provider error")
	ErrInvalidPrice    = errors.New("price must be a positive number")
	ErrInvalidPayment  = errors.New("bookingId, productId and transactionId are required")
)

const (
	PaymentCurrency = "usd"
	PaymentMethod   = "card"
)

// PaymentIntentRequest is what the processor is asked to authorize. Amount
// is in minor units (cents).
type PaymentIntentRequest struct {
	Amount             int64
	Currency           string
	PaymentMethodTypes []string
}

// PaymentProcessor creates a payment intent and returns its client secret.
type PaymentProcessor interface {
	CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (string, error)
}

type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentService creates checkout intents and records completed payments.
// Recording a payment is three independent writes with no rollback.
type PaymentService struct {
	payments  repository.PaymentRepository
	bookings  repository.BookingRepository
	products  repository.ProductRepository
	processor PaymentProcessor
}

func NewPaymentService(store *repository.Store, processor PaymentProcessor) *PaymentService {
	return &PaymentService{
		payments:  store.Payments,
		bookings:  store.Bookings,
		products:  store.Products,
		processor: processor,
	}
}

// ToMinorUnits converts a decimal price to cents, truncating. The small
// epsilon absorbs binary float error so 19.99 becomes 1999, not 1998.
func ToMinorUnits(price float64) int64 {
	return int64(math.Floor(price*100 + 1e-6))
}

func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (*PaymentIntent, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return nil, ErrInvalidPrice
	}
	// Cents past the int64 range would wrap on conversion.
	if price*100 >= math.MaxInt64 {
		return nil, ErrInvalidPrice
	}

	amount := ToMinorUnits(price)
	if amount <= 0 {
		return nil, ErrInvalidPrice
	}

	secret, err := s.processor.CreatePaymentIntent(ctx, PaymentIntentRequest{
		Amount:             amount,
		Currency:           PaymentCurrency,
		PaymentMethodTypes: []string{PaymentMethod},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}
	return &PaymentIntent{ClientSecret: secret}, nil
}

// RecordPayment inserts the payment, then marks the booking paid and the
// product sold. Only the insert can fail the call; later step failures are
// logged and leave the earlier writes in place.
func (s *PaymentService) RecordPayment(ctx context.Context, payment *models.Payment) (*repository.InsertResult, error) {
	if payment.BookingID == "" || payment.ProductID == "" || payment.TransactionID == "" {
		return nil, ErrInvalidPayment
	}

	res, err := s.payments.Insert(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	log := slog.With(
		"payment_id", res.InsertedID,
		"booking_id", payment.BookingID,
		"product_id", payment.ProductID,
		"transaction_id", payment.TransactionID,
	)

	if upd, err := s.bookings.MarkPaid(ctx, payment.BookingID, payment.TransactionID); err != nil {
		log.Error("payment completion step failed", "step", "mark_booking_paid", "error", err)
	} else if upd.MatchedCount == 0 {
		log.Warn("payment references unknown booking", "step", "mark_booking_paid")
	}

	if upd, err := s.products.MarkSold(ctx, payment.ProductID); err != nil {
		log.Error("payment completion step failed", "step", "mark_product_sold", "error", err)
	} else if upd.MatchedCount == 0 {
		log.Warn("payment references unknown product", "step", "mark_product_sold")
	}

	return res, nil
}

func (s *PaymentService) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return s.payments.List(ctx)
}
