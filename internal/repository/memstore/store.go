// Package memstore keeps every collection in process memory. It backs
// STORE_DRIVER=memory for local runs and is the store used by unit tests.
package memstore

import (
	"context"
	"sync"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/google/uuid"
)

type data struct {
	mu               sync.RWMutex
	users            []models.User
	categories       []models.Category
	products         []models.Product
	bookings         []models.BookingProduct
	reportedProducts []models.ReportedProduct
	payments         []models.Payment
}

// New returns an empty Store.
func New() *repository.Store {
	d := &data{}
	return &repository.Store{
		Users:            &userRepo{d: d},
		Categories:       &categoryRepo{d: d},
		Products:         &productRepo{d: d},
		Bookings:         &bookingRepo{d: d},
		ReportedProducts: &reportedProductRepo{d: d},
		Payments:         &paymentRepo{d: d},
		Lifecycle:        nopLifecycle{},
	}
}

type nopLifecycle struct{}

func (nopLifecycle) Ping(context.Context) error  { return nil }
func (nopLifecycle) Close(context.Context) error { return nil }

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func indexOf[T any](docs []T, match func(*T) bool) int {
	for i := range docs {
		if match(&docs[i]) {
			return i
		}
	}
	return -1
}

func filter[T any](docs []T, match func(*T) bool) []T {
	out := []T{}
	for i := range docs {
		if match(&docs[i]) {
			out = append(out, docs[i])
		}
	}
	return out
}

// updateWhere applies set to every matching doc. set reports whether it
// changed the document.
func updateWhere[T any](docs []T, match func(*T) bool, set func(*T) bool) *repository.UpdateResult {
	res := &repository.UpdateResult{Acknowledged: true}
	for i := range docs {
		if !match(&docs[i]) {
			continue
		}
		res.MatchedCount++
		if set(&docs[i]) {
			res.ModifiedCount++
		}
	}
	return res
}

func deleteWhere[T any](docs *[]T, match func(*T) bool) *repository.DeleteResult {
	res := &repository.DeleteResult{Acknowledged: true}
	if i := indexOf(*docs, match); i >= 0 {
		*docs = append((*docs)[:i], (*docs)[i+1:]...)
		res.DeletedCount = 1
	}
	return res
}
