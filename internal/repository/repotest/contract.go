// Package repotest holds the behaviour every repository backend must share.
// Backend packages call Run from their own tests.
package repotest

import (
	"context"
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run executes the contract against stores produced by newStore. Each
// subtest gets a fresh, empty store.
func Run(t *testing.T, newStore func(t *testing.T) *repository.Store) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("Categories", func(t *testing.T) { testCategories(t, newStore(t)) })
	t.Run("Products", func(t *testing.T) { testProducts(t, newStore(t)) })
	t.Run("Bookings", func(t *testing.T) { testBookings(t, newStore(t)) })
	t.Run("ReportedProducts", func(t *testing.T) { testReportedProducts(t, newStore(t)) })
	t.Run("Payments", func(t *testing.T) { testPayments(t, newStore(t)) })
	t.Run("ConcurrentUpserts", func(t *testing.T) { testConcurrentUpserts(t, newStore(t)) })
}

func testUsers(t *testing.T, store *repository.Store) {
	ctx := context.Background()
	users := store.Users

	res, err := users.Insert(ctx, &models.User{Name: "Ann", Email: "ann@example.com", AccountType: models.AccountSeller})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	require.NotEmpty(t, res.InsertedID)

	found, err := users.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, res.InsertedID, found.ID)
	assert.True(t, found.IsSeller())
	assert.False(t, found.IsAdmin())

	_, err = users.Insert(ctx, &models.User{Name: "Ann again", Email: "ann@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	byID, err := users.FindByID(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", byID.Name)

	_, err = users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = users.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Upsert creates when absent.
	up, err := users.UpsertByEmail(ctx, &models.User{Name: "Bob", Email: "bob@example.com", AccountType: models.AccountBuyer})
	require.NoError(t, err)
	assert.Equal(t, int64(1), up.UpsertedCount)
	assert.NotEmpty(t, up.UpsertedID)

	// Upsert on an existing admin keeps the role.
	_, err = users.SetRole(ctx, res.InsertedID, models.RoleAdmin)
	require.NoError(t, err)
	up, err = users.UpsertByEmail(ctx, &models.User{Name: "Ann B", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), up.MatchedCount)
	assert.Equal(t, int64(0), up.UpsertedCount)

	found, err = users.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann B", found.Name)
	assert.True(t, found.IsAdmin())
	assert.Equal(t, models.AccountSeller, found.AccountType)

	sellers, err := users.List(ctx, repository.UserFilter{AccountType: models.AccountSeller})
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, "ann@example.com", sellers[0].Email)

	all, err := users.List(ctx, repository.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	upd, err := users.SetVerify(ctx, res.InsertedID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.MatchedCount)
	found, err = users.FindByID(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.True(t, found.Verify)

	upd, err = users.SetVerify(ctx, uuid.NewString(), true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), upd.MatchedCount)

	del, err := users.Delete(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)
	del, err = users.Delete(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), del.DeletedCount)
}

func testCategories(t *testing.T, store *repository.Store) {
	ctx := context.Background()

	for _, name := range []string{"Lenovo", "Dell", "HP"} {
		res, err := store.Categories.UpsertByName(ctx, &models.Category{Name: name})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.UpsertedCount)
	}

	res, err := store.Categories.UpsertByName(ctx, &models.Category{Name: "Dell", Image: "https://img/dell.png"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.UpsertedCount)
	assert.Equal(t, int64(1), res.MatchedCount)

	first, err := store.Categories.List(ctx)
	require.NoError(t, err)
	second, err := store.Categories.List(ctx)
	require.NoError(t, err)

	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Dell", "HP", "Lenovo"}, []string{first[0].Name, first[1].Name, first[2].Name})
	assert.Equal(t, "https://img/dell.png", first[0].Image)
}

// Simultaneous sign-ins for one email, and simultaneous seeding of one
// category name, must each produce a single row.
func testConcurrentUpserts(t *testing.T, store *repository.Store) {
	ctx := context.Background()
	const workers = 10

	run := func(upsert func() (*repository.UpdateResult, error)) int64 {
		results := make([]*repository.UpdateResult, workers)
		errs := make([]error, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = upsert()
			}(i)
		}
		wg.Wait()

		var inserted int64
		for i := range results {
			require.NoError(t, errs[i])
			inserted += results[i].UpsertedCount
		}
		return inserted
	}

	inserted := run(func() (*repository.UpdateResult, error) {
		return store.Users.UpsertByEmail(ctx, &models.User{Name: "Cora", Email: "cora@example.com", AccountType: models.AccountBuyer})
	})
	assert.Equal(t, int64(1), inserted)

	users, err := store.Users.List(ctx, repository.UserFilter{})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "cora@example.com", users[0].Email)

	inserted = run(func() (*repository.UpdateResult, error) {
		return store.Categories.UpsertByName(ctx, &models.Category{Name: "Asus"})
	})
	assert.Equal(t, int64(1), inserted)

	categories, err := store.Categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Asus", categories[0].Name)
}

func testProducts(t *testing.T, store *repository.Store) {
	ctx := context.Background()
	products := store.Products
	category := uuid.NewString()

	insert := func(p models.Product) string {
		t.Helper()
		res, err := products.Insert(ctx, &p)
		require.NoError(t, err)
		return res.InsertedID
	}

	advertised := insert(models.Product{Name: "ThinkPad", SellerEmail: "s@x.com", CategoryID: category, Advertise: true})
	soldAd := insert(models.Product{Name: "XPS", SellerEmail: "s@x.com", CategoryID: category, Advertise: true})
	plain := insert(models.Product{Name: "Pavilion", SellerEmail: "other@x.com", CategoryID: uuid.NewString()})

	p, err := products.FindByID(ctx, plain)
	require.NoError(t, err)
	assert.Equal(t, models.SalesAvailable, p.SalesStatus)
	assert.False(t, p.PostedAt.IsZero())

	_, err = products.MarkSold(ctx, soldAd)
	require.NoError(t, err)

	ads, err := products.List(ctx, repository.ProductFilter{AdvertisedOnly: true, AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Equal(t, advertised, ads[0].ID)

	inCategory, err := products.List(ctx, repository.ProductFilter{CategoryID: category, AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, inCategory, 1)
	assert.Equal(t, advertised, inCategory[0].ID)

	bySeller, err := products.List(ctx, repository.ProductFilter{SellerEmail: "s@x.com"})
	require.NoError(t, err)
	assert.Len(t, bySeller, 2)

	upd, err := products.SetVerifyBySeller(ctx, "s@x.com", true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), upd.MatchedCount)
	assert.Equal(t, int64(2), upd.ModifiedCount)

	p, err = products.FindByID(ctx, plain)
	require.NoError(t, err)
	assert.False(t, p.Verify)

	upd, err = products.SetAdvertise(ctx, plain, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.MatchedCount)

	del, err := products.Delete(ctx, plain)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)
	_, err = products.FindByID(ctx, plain)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testBookings(t *testing.T, store *repository.Store) {
	ctx := context.Background()

	res, err := store.Bookings.Insert(ctx, &models.BookingProduct{
		Email:     "buyer@x.com",
		ProductID: uuid.NewString(),
		Price:     50,
	})
	require.NoError(t, err)
	_, err = store.Bookings.Insert(ctx, &models.BookingProduct{Email: "other@x.com", ProductID: uuid.NewString(), Price: 10})
	require.NoError(t, err)

	mine, err := store.Bookings.List(ctx, repository.BookingFilter{Email: "buyer@x.com"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.False(t, mine[0].Paid)

	upd, err := store.Bookings.MarkPaid(ctx, res.InsertedID, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.MatchedCount)

	booking, err := store.Bookings.FindByID(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.True(t, booking.Paid)
	assert.Equal(t, "pi_123", booking.TransactionID)

	_, err = store.Bookings.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testReportedProducts(t *testing.T, store *repository.Store) {
	ctx := context.Background()

	res, err := store.ReportedProducts.Insert(ctx, &models.ReportedProduct{ProductID: uuid.NewString(), Reason: "fake listing"})
	require.NoError(t, err)

	reports, err := store.ReportedProducts.List(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "fake listing", reports[0].Reason)

	del, err := store.ReportedProducts.Delete(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)

	reports, err = store.ReportedProducts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func testPayments(t *testing.T, store *repository.Store) {
	ctx := context.Background()

	payments, err := store.Payments.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, payments)
	assert.Empty(t, payments)

	res, err := store.Payments.Insert(ctx, &models.Payment{
		BookingID:     uuid.NewString(),
		ProductID:     uuid.NewString(),
		TransactionID: "pi_1",
		Price:         50,
	})
	require.NoError(t, err)

	payments, err = store.Payments.List(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, res.InsertedID, payments[0].ID)
	assert.Equal(t, "pi_1", payments[0].TransactionID)
}
