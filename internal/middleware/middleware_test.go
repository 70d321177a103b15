package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository/memstore"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokens(t *testing.T, users repository.UserRepository, expiry time.Duration) *services.TokenService {
	t.Helper()
	return services.NewTokenService(users, &config.Config{JWTSecret: "test-secret", JWTAccessExpiry: expiry})
}

func call(t *testing.T, app *fiber.App, authorization string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	_ = json.Unmarshal(raw, &body)
	return resp.StatusCode, body
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	_, err := store.Users.Insert(ctx, &models.User{Email: "buyer@example.com"})
	require.NoError(t, err)

	tokens := newTokens(t, store.Users, time.Hour)
	valid, err := tokens.Issue(ctx, "buyer@example.com")
	require.NoError(t, err)

	expired, err := newTokens(t, store.Users, -time.Minute).Issue(ctx, "buyer@example.com")
	require.NoError(t, err)

	otherKey, err := newTokens(t, store.Users, time.Hour).Issue(ctx, "buyer@example.com")
	require.NoError(t, err)
	// Re-sign the same claims with a different secret.
	parsed, _, err := jwt.NewParser().ParseUnverified(otherKey, &services.TokenClaims{})
	require.NoError(t, err)
	wrongSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, parsed.Claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, services.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, services.TokenClaims{
		Email:            "buyer@example.com",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", Authenticate(tokens), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"email": CurrentEmail(c)})
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantEmail  string
	}{
		{"missing header", "", fiber.StatusUnauthorized, ""},
		{"valid", "Bearer " + valid, fiber.StatusOK, "buyer@example.com"},
		{"garbage", "Bearer garbage", fiber.StatusForbidden, ""},
		{"wrong scheme", "Token " + valid, fiber.StatusForbidden, ""},
		{"expired", "Bearer " + expired, fiber.StatusForbidden, ""},
		{"wrong secret", "Bearer " + wrongSecret, fiber.StatusForbidden, ""},
		{"missing email claim", "Bearer " + noEmail, fiber.StatusForbidden, ""},
		{"hs512 with the right secret", "Bearer " + hs512, fiber.StatusForbidden, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call(t, app, tt.header)
			assert.Equal(t, tt.wantStatus, status)
			switch tt.wantStatus {
			case fiber.StatusOK:
				assert.Equal(t, tt.wantEmail, body["email"])
			case fiber.StatusUnauthorized:
				assert.Equal(t, "unauthorized access", body["message"])
			default:
				assert.Equal(t, "forbidden access", body["message"])
			}
		})
	}
}

type brokenUsers struct {
	repository.UserRepository
}

func (brokenUsers) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, errors.New("connection reset")
}

func TestRequireAdmin(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	for _, u := range []models.User{
		{Email: "admin@example.com", Role: models.RoleAdmin},
		{Email: "buyer@example.com"},
	} {
		_, err := store.Users.Insert(ctx, &u)
		require.NoError(t, err)
	}

	withEmail := func(email string, users repository.UserRepository) *fiber.App {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			if email != "" {
				c.Locals(emailKey, email)
			}
			return c.Next()
		}, RequireAdmin(users), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusNoContent)
		})
		return app
	}

	tests := []struct {
		name       string
		email      string
		users      repository.UserRepository
		wantStatus int
	}{
		{"admin", "admin@example.com", store.Users, fiber.StatusNoContent},
		{"not admin", "buyer@example.com", store.Users, fiber.StatusForbidden},
		{"unknown user", "ghost@example.com", store.Users, fiber.StatusForbidden},
		{"not authenticated", "", store.Users, fiber.StatusUnauthorized},
		{"store error", "admin@example.com", brokenUsers{}, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := call(t, withEmail(tt.email, tt.users), "")
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}
