package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository/memstore"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/uploads"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcessor struct {
	err  error
	last services.PaymentIntentRequest
}

func (f *fakeProcessor) CreatePaymentIntent(_ context.Context, req services.PaymentIntentRequest) (string, error) {
	f.last = req
	if f.err != nil {
		return "", f.err
	}
	return "pi_123_secret_456", nil
}

type fakeUploader struct{}

func (fakeUploader) UploadProductImage(_ context.Context, file io.Reader) (*uploads.Result, error) {
	if _, err := io.ReadAll(file); err != nil {
		return nil, err
	}
	return &uploads.Result{URL: "https://img.example.com/p.jpg", PublicID: "lapsell/products/product_1"}, nil
}

type testServer struct {
	app       *fiber.App
	store     *repository.Store
	tokens    *services.TokenService
	processor *fakeProcessor
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		StoreDriver:        config.DriverMemory,
		JWTSecret:          "test-secret",
		JWTAccessExpiry:    time.Hour,
		RateLimitPerMinute: 1000,
	}
	store := memstore.New()
	tokens := services.NewTokenService(store.Users, cfg)
	processor := &fakeProcessor{}

	app := fiber.New()
	routes.Setup(app, cfg, store, tokens, routes.NewHandlers(store, tokens, processor, fakeUploader{}))

	return &testServer{app: app, store: store, tokens: tokens, processor: processor}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.send(t, req)
}

func (s *testServer) send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// user inserts a user and returns its id and a token for it.
func (s *testServer) user(t *testing.T, email, role, accountType string) (string, string) {
	t.Helper()

	ctx := context.Background()
	res, err := s.store.Users.Insert(ctx, &models.User{Email: email, Role: role, AccountType: accountType})
	require.NoError(t, err)

	token, err := s.tokens.Issue(ctx, email)
	require.NoError(t, err)
	return res.InsertedID, token
}

func (s *testServer) product(t *testing.T, p models.Product) string {
	t.Helper()

	status, body := s.do(t, http.MethodPost, "/products", p, "")
	require.Equal(t, http.StatusOK, status, string(body))

	var res repository.InsertResult
	require.NoError(t, json.Unmarshal(body, &res))
	require.True(t, res.Acknowledged)
	return res.InsertedID
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func TestRootAndHealth(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "LapSell Corner server is running", string(body))

	status, body = s.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, status)
	health := decode[map[string]any](t, body)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "ok", health["store"])
}

func TestTokenIssuance(t *testing.T) {
	s := newTestServer(t)
	s.user(t, "buyer@example.com", "", models.AccountBuyer)

	status, body := s.do(t, http.MethodGet, "/jwt?email=nobody@example.com", nil, "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.JSONEq(t, `{"accessToken":""}`, string(body))

	status, body = s.do(t, http.MethodGet, "/jwt?email=buyer@example.com", nil, "")
	require.Equal(t, http.StatusOK, status)

	token := decode[map[string]string](t, body)["accessToken"]
	email, err := s.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", email)
}

func TestAuthorizationGate(t *testing.T) {
	s := newTestServer(t)
	_, buyerToken := s.user(t, "buyer@example.com", "", models.AccountBuyer)
	_, adminToken := s.user(t, "admin@example.com", models.RoleAdmin, models.AccountBuyer)
	path := "/reportedProducts/" + uuid.NewString()

	t.Run("missing header", func(t *testing.T) {
		status, body := s.do(t, http.MethodDelete, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "unauthorized access", decode[map[string]any](t, body)["message"])
	})

	t.Run("malformed token", func(t *testing.T) {
		status, body := s.do(t, http.MethodDelete, path, nil, "not-a-jwt")
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "forbidden access", decode[map[string]any](t, body)["message"])
	})

	t.Run("non bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, path, nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		status, _ := s.send(t, req)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("valid token without admin role", func(t *testing.T) {
		status, _ := s.do(t, http.MethodDelete, path, nil, buyerToken)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("admin", func(t *testing.T) {
		status, body := s.do(t, http.MethodDelete, path, nil, adminToken)
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"acknowledged":true,"deletedCount":0}`, string(body))
	})

	t.Run("token for deleted user", func(t *testing.T) {
		_, ghostToken := s.user(t, "ghost@example.com", models.RoleAdmin, models.AccountBuyer)
		ghost, err := s.store.Users.FindByEmail(context.Background(), "ghost@example.com")
		require.NoError(t, err)
		_, err = s.store.Users.Delete(context.Background(), ghost.ID)
		require.NoError(t, err)

		status, _ := s.do(t, http.MethodGet, "/payments", nil, ghostToken)
		assert.Equal(t, http.StatusForbidden, status)
	})
}

func TestMalformedAndUnknownIDs(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/products/not-an-id", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodGet, "/products/"+uuid.NewString(), nil, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, http.MethodGet, "/bookingProducts/"+uuid.NewString(), nil, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body := s.do(t, http.MethodGet, "/products", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestUserStatusAndUpsert(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPut, "/users", map[string]any{
		"email":       "seller@example.com",
		"name":        "Sam",
		"accountType": models.AccountSeller,
		"role":        models.RoleAdmin,
	}, "")
	require.Equal(t, http.StatusOK, status)
	upsert := decode[repository.UpdateResult](t, body)
	assert.EqualValues(t, 1, upsert.UpsertedCount)

	_, body = s.do(t, http.MethodGet, "/users/seller/seller@example.com", nil, "")
	assert.JSONEq(t, `{"isSeller":true}`, string(body))

	// Role cannot be self-assigned through the profile upsert.
	_, body = s.do(t, http.MethodGet, "/users/admin/seller@example.com", nil, "")
	assert.JSONEq(t, `{"isAdmin":false}`, string(body))

	_, body = s.do(t, http.MethodGet, "/users/admin/nobody@example.com", nil, "")
	assert.JSONEq(t, `{"isAdmin":false}`, string(body))

	status, _ = s.do(t, http.MethodPost, "/users", map[string]any{"name": "no email"}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPost, "/users", map[string]any{"name": "Bea", "email": "bea@example.com"}, "")
	assert.Equal(t, http.StatusOK, status)
	status, body = s.do(t, http.MethodPost, "/users", map[string]any{"name": "Bea again", "email": "bea@example.com"}, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.JSONEq(t, `{"error":true,"message":"user with this email already exists"}`, string(body))

	_, body = s.do(t, http.MethodGet, "/users?accountType=seller", nil, "")
	assert.Len(t, decode[[]models.User](t, body), 1)
	_, body = s.do(t, http.MethodGet, "/users?accountType=buyer", nil, "")
	assert.Empty(t, decode[[]models.User](t, body))
	_, body = s.do(t, http.MethodGet, "/users", nil, "")
	assert.Len(t, decode[[]models.User](t, body), 2)
}

func TestMakeAdmin(t *testing.T) {
	s := newTestServer(t)
	_, adminToken := s.user(t, "admin@example.com", models.RoleAdmin, models.AccountBuyer)
	buyerID, _ := s.user(t, "buyer@example.com", "", models.AccountBuyer)

	status, body := s.do(t, http.MethodPut, "/users/admin/"+buyerID, nil, adminToken)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, decode[repository.UpdateResult](t, body).ModifiedCount)

	_, body = s.do(t, http.MethodGet, "/users/admin/buyer@example.com", nil, "")
	assert.JSONEq(t, `{"isAdmin":true}`, string(body))
}

func TestCategoriesIdempotent(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	for _, name := range []string{"Gaming", "Business", "Ultrabook"} {
		_, err := s.store.Categories.UpsertByName(ctx, &models.Category{Name: name})
		require.NoError(t, err)
	}

	status, first := s.do(t, http.MethodGet, "/categories", nil, "")
	require.Equal(t, http.StatusOK, status)
	_, second := s.do(t, http.MethodGet, "/categories", nil, "")

	assert.Equal(t, string(first), string(second))
	assert.Len(t, decode[[]models.Category](t, first), 3)
}

func TestAdvertisedProductsExcludeSold(t *testing.T) {
	s := newTestServer(t)
	categoryID := uuid.NewString()

	sold := s.product(t, models.Product{Name: "ThinkPad", SellerEmail: "seller@example.com", CategoryID: categoryID, ResalePrice: 300})
	kept := s.product(t, models.Product{Name: "MacBook", SellerEmail: "seller@example.com", CategoryID: categoryID, ResalePrice: 700})
	s.product(t, models.Product{Name: "Dell", SellerEmail: "seller@example.com", CategoryID: categoryID})

	for _, id := range []string{sold, kept} {
		status, _ := s.do(t, http.MethodPut, "/products/advertise/"+id, nil, "")
		require.Equal(t, http.StatusOK, status)
	}

	_, body := s.do(t, http.MethodGet, "/advertisedProducts", nil, "")
	assert.Len(t, decode[[]models.Product](t, body), 2)

	status, _ := s.do(t, http.MethodPost, "/payments", map[string]any{
		"bookingId":     uuid.NewString(),
		"productId":     sold,
		"transactionId": "pi_sold",
		"price":         300,
	}, "")
	require.Equal(t, http.StatusOK, status)

	_, body = s.do(t, http.MethodGet, "/advertisedProducts", nil, "")
	advertised := decode[[]models.Product](t, body)
	require.Len(t, advertised, 1)
	assert.Equal(t, kept, advertised[0].ID)

	// Category listings are buyer-facing: sold items drop out.
	_, body = s.do(t, http.MethodGet, "/categoryProducts/"+categoryID, nil, "")
	inCategory := decode[[]models.Product](t, body)
	assert.Len(t, inCategory, 2)
	for _, p := range inCategory {
		assert.NotEqual(t, sold, p.ID)
	}

	// The full listing still carries the sold product.
	_, body = s.do(t, http.MethodGet, "/products", nil, "")
	assert.Len(t, decode[[]models.Product](t, body), 3)
}

func TestPaymentFlow(t *testing.T) {
	s := newTestServer(t)
	_, adminToken := s.user(t, "admin@example.com", models.RoleAdmin, models.AccountBuyer)
	productID := s.product(t, models.Product{Name: "ThinkPad", SellerEmail: "seller@example.com", ResalePrice: 19.99})

	status, body := s.do(t, http.MethodPost, "/bookingProducts", map[string]any{
		"email":       "buyer@example.com",
		"productId":   productID,
		"productName": "ThinkPad",
		"price":       19.99,
		"paid":        true,
	}, "")
	require.Equal(t, http.StatusOK, status)
	bookingID := decode[repository.InsertResult](t, body).InsertedID

	status, body = s.do(t, http.MethodPost, "/create-payment-intent", map[string]any{"price": 19.99}, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"clientSecret":"pi_123_secret_456"}`, string(body))
	assert.Equal(t, int64(1999), s.processor.last.Amount)
	assert.Equal(t, "usd", s.processor.last.Currency)
	assert.Equal(t, []string{"card"}, s.processor.last.PaymentMethodTypes)

	status, body = s.do(t, http.MethodPost, "/payments", map[string]any{
		"bookingId":     bookingID,
		"productId":     productID,
		"email":         "buyer@example.com",
		"transactionId": "pi_123",
		"price":         19.99,
	}, "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[repository.InsertResult](t, body).Acknowledged)

	_, body = s.do(t, http.MethodGet, "/bookingProducts/"+bookingID, nil, "")
	booking := decode[models.BookingProduct](t, body)
	assert.True(t, booking.Paid)
	assert.Equal(t, "pi_123", booking.TransactionID)

	_, body = s.do(t, http.MethodGet, "/products/"+productID, nil, "")
	assert.Equal(t, models.SalesSold, decode[models.Product](t, body).SalesStatus)

	status, body = s.do(t, http.MethodGet, "/payments", nil, adminToken)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Payment](t, body), 1)

	_, body = s.do(t, http.MethodGet, "/bookingProducts?email=buyer@example.com", nil, "")
	assert.Len(t, decode[[]models.BookingProduct](t, body), 1)
}

func TestCreatePaymentIntentErrors(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodPost, "/create-payment-intent", map[string]any{"price": 0}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPost, "/create-payment-intent", map[string]any{"price": -5}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	s.processor.err = errors.New("card_declined: secret detail")
	status, body := s.do(t, http.MethodPost, "/create-payment-intent", map[string]any{"price": 10}, "")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.NotContains(t, string(body), "secret detail")
}

func TestSellerVerificationCascade(t *testing.T) {
	s := newTestServer(t)
	_, adminToken := s.user(t, "admin@example.com", models.RoleAdmin, models.AccountBuyer)
	sellerID, _ := s.user(t, "seller@example.com", "", models.AccountSeller)
	s.product(t, models.Product{Name: "ThinkPad", SellerEmail: "seller@example.com"})
	s.product(t, models.Product{Name: "MacBook", SellerEmail: "seller@example.com"})
	s.product(t, models.Product{Name: "Other", SellerEmail: "other@example.com"})

	status, body := s.do(t, http.MethodPut, "/users/seller/"+sellerID, map[string]any{
		"email":  "seller@example.com",
		"verify": false,
	}, adminToken)
	require.Equal(t, http.StatusOK, status)

	res := decode[services.SellerVerification](t, body)
	assert.True(t, res.Verify)
	assert.EqualValues(t, 1, res.User.ModifiedCount)
	require.NotNil(t, res.Products)
	assert.EqualValues(t, 2, res.Products.ModifiedCount)

	_, body = s.do(t, http.MethodGet, "/products?email=seller@example.com", nil, "")
	for _, p := range decode[[]models.Product](t, body) {
		assert.True(t, p.Verify)
	}

	// A product listed after verification inherits it.
	id := s.product(t, models.Product{Name: "Zenbook", SellerEmail: "seller@example.com"})
	_, body = s.do(t, http.MethodGet, "/products/"+id, nil, "")
	assert.True(t, decode[models.Product](t, body).Verify)

	_, body = s.do(t, http.MethodGet, "/products?email=other@example.com", nil, "")
	assert.False(t, decode[[]models.Product](t, body)[0].Verify)
}

func TestDeleteProductOwnership(t *testing.T) {
	s := newTestServer(t)
	_, ownerToken := s.user(t, "seller@example.com", "", models.AccountSeller)
	_, strangerToken := s.user(t, "stranger@example.com", "", models.AccountBuyer)
	_, adminToken := s.user(t, "admin@example.com", models.RoleAdmin, models.AccountBuyer)

	first := s.product(t, models.Product{Name: "ThinkPad", SellerEmail: "seller@example.com"})
	second := s.product(t, models.Product{Name: "MacBook", SellerEmail: "seller@example.com"})

	status, _ := s.do(t, http.MethodDelete, "/products/"+first, nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodDelete, "/products/"+first, nil, strangerToken)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := s.do(t, http.MethodDelete, "/products/"+first, nil, ownerToken)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, string(body))

	status, _ = s.do(t, http.MethodDelete, "/products/"+second, nil, adminToken)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodDelete, "/products/"+second, nil, adminToken)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestReportedProducts(t *testing.T) {
	s := newTestServer(t)
	_, adminToken := s.user(t, "admin@example.com", models.RoleAdmin, models.AccountBuyer)

	status, _ := s.do(t, http.MethodPost, "/reportedProducts", map[string]any{"reason": "no product"}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := s.do(t, http.MethodPost, "/reportedProducts", map[string]any{
		"productId":     uuid.NewString(),
		"productName":   "ThinkPad",
		"reporterEmail": "buyer@example.com",
		"reason":        "  fake listing  ",
	}, "")
	require.Equal(t, http.StatusOK, status)
	id := decode[repository.InsertResult](t, body).InsertedID

	_, body = s.do(t, http.MethodGet, "/reportedProducts", nil, "")
	reports := decode[[]models.ReportedProduct](t, body)
	require.Len(t, reports, 1)
	assert.Equal(t, "fake listing", reports[0].Reason)

	status, body = s.do(t, http.MethodDelete, "/reportedProducts/"+id, nil, adminToken)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, string(body))
}

func TestBookingDeleteNotRegistered(t *testing.T) {
	s := newTestServer(t)
	_, adminToken := s.user(t, "admin@example.com", models.RoleAdmin, models.AccountBuyer)

	status, _ := s.do(t, http.MethodDelete, "/bookingProducts/"+uuid.NewString(), nil, adminToken)
	assert.Contains(t, []int{http.StatusNotFound, http.StatusMethodNotAllowed}, status)
}

func TestUploadProductImage(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user(t, "seller@example.com", "", models.AccountSeller)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "laptop.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads/product-image", bytes.NewReader(buf.Bytes()))
	req.Header.Set("Content-Type", w.FormDataContentType())
	status, _ := s.send(t, req)
	assert.Equal(t, http.StatusUnauthorized, status)

	req = httptest.NewRequest(http.MethodPost, "/uploads/product-image", bytes.NewReader(buf.Bytes()))
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	status, body := s.send(t, req)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.JSONEq(t, `{"url":"https://img.example.com/p.jpg","publicId":"lapsell/products/product_1"}`, string(body))

	status, _ = s.do(t, http.MethodPost, "/uploads/product-image", map[string]any{}, token)
	assert.Equal(t, http.StatusBadRequest, status)
}
