// Package repository defines one typed repository per marketplace entity.
// Implementations live in pgstore (GORM/Postgres), mongostore (MongoDB) and
// memstore (in-process). Result types mirror document-store write results so
// handlers can return them unchanged.
package repository

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
)

var (
	// ErrNotFound is returned by single-document lookups that match nothing.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned by inserts that collide with a unique key.
	ErrDuplicate = errors.New("duplicate key")
)

type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool   `json:"acknowledged"`
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedCount int64  `json:"upsertedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

type UserFilter struct {
	AccountType string
}

type ProductFilter struct {
	SellerEmail    string
	CategoryID     string
	AdvertisedOnly bool
	AvailableOnly  bool
}

type BookingFilter struct {
	Email string
}

type UserRepository interface {
	List(ctx context.Context, filter UserFilter) ([]models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*InsertResult, error)
	// UpsertByEmail sets the non-empty profile fields (name, photoURL,
	// accountType) on the user with the given email, creating it if absent.
	// Role and verify are never touched here.
	UpsertByEmail(ctx context.Context, user *models.User) (*UpdateResult, error)
	SetVerify(ctx context.Context, id string, verify bool) (*UpdateResult, error)
	SetRole(ctx context.Context, id string, role string) (*UpdateResult, error)
	Delete(ctx context.Context, id string) (*DeleteResult, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	UpsertByName(ctx context.Context, category *models.Category) (*UpdateResult, error)
}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Insert(ctx context.Context, product *models.Product) (*InsertResult, error)
	SetAdvertise(ctx context.Context, id string, advertise bool) (*UpdateResult, error)
	MarkSold(ctx context.Context, id string) (*UpdateResult, error)
	SetVerifyBySeller(ctx context.Context, sellerEmail string, verify bool) (*UpdateResult, error)
	Delete(ctx context.Context, id string) (*DeleteResult, error)
}

type BookingRepository interface {
	List(ctx context.Context, filter BookingFilter) ([]models.BookingProduct, error)
	FindByID(ctx context.Context, id string) (*models.BookingProduct, error)
	Insert(ctx context.Context, booking *models.BookingProduct) (*InsertResult, error)
	MarkPaid(ctx context.Context, id string, transactionID string) (*UpdateResult, error)
}

type ReportedProductRepository interface {
	List(ctx context.Context) ([]models.ReportedProduct, error)
	Insert(ctx context.Context, report *models.ReportedProduct) (*InsertResult, error)
	Delete(ctx context.Context, id string) (*DeleteResult, error)
}

type PaymentRepository interface {
	List(ctx context.Context) ([]models.Payment, error)
	Insert(ctx context.Context, payment *models.Payment) (*InsertResult, error)
}

// Lifecycle is the connection owned by a Store.
type Lifecycle interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Store bundles the repositories of one backend. It is opened once at
// startup and passed to every component that needs it.
type Store struct {
	Users            UserRepository
	Categories       CategoryRepository
	Products         ProductRepository
	Bookings         BookingRepository
	ReportedProducts ReportedProductRepository
	Payments         PaymentRepository

	Lifecycle Lifecycle
}

func (s *Store) Ping(ctx context.Context) error {
	if s.Lifecycle == nil {
		return nil
	}
	return s.Lifecycle.Ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s.Lifecycle == nil {
		return nil
	}
	return s.Lifecycle.Close(ctx)
}
