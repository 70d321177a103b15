package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("unauthorized access")
	ErrInvalidToken = errors.New("forbidden access")
	ErrUserNotFound = errors.New("user not found")
)

// TokenClaims is the payload of an access token: the holder's email plus
// the registered iat/exp claims.
type TokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens. There is no
// revocation; expiry is the only way a token stops working.
type TokenService struct {
	users  repository.UserRepository
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenService(users repository.UserRepository, cfg *config.Config) *TokenService {
	return &TokenService{
		users:  users,
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.JWTAccessExpiry,
		now:    time.Now,
	}
}

// Issue signs a token for email if a user with that email exists.
func (s *TokenService) Issue(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", ErrUserNotFound
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	now := s.now()
	claims := TokenClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the email carried by raw. An empty raw token yields
// ErrMissingToken; anything else that fails validation yields ErrInvalidToken.
func (s *TokenService) Verify(raw string) (string, error) {
	if raw == "" {
		return "", ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(raw, &TokenClaims{}, s.Keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return s.Identity(token)
}

// Keyfunc resolves the verification key for a parsed token. Only HS256
// tokens are accepted, matching what Issue signs.
func (s *TokenService) Keyfunc(token *jwt.Token) (interface{}, error) {
	if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
	}
	return s.secret, nil
}

// Identity extracts the email from an already validated token.
func (s *TokenService) Identity(token *jwt.Token) (string, error) {
	if token == nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok || claims.Email == "" {
		return "", ErrInvalidToken
	}
	return claims.Email, nil
}
