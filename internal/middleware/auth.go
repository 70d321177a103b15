package middleware

import (
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenKey = "jwt"
	emailKey = "email"
)

// Authenticate requires a valid bearer token. A request without an
// Authorization header gets 401; a present but invalid or expired token
// gets 403. On success the token's email is available via CurrentEmail.
func Authenticate(tokens *services.TokenService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc:    tokens.Keyfunc,
		Claims:     &services.TokenClaims{},
		ContextKey: tokenKey,
		SuccessHandler: func(c *fiber.Ctx) error {
			email, err := tokens.Identity(TokenFrom(c))
			if err != nil {
				return forbidden(c)
			}
			c.Locals(emailKey, email)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if c.Get(fiber.HeaderAuthorization) == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: true, Message: services.ErrMissingToken.Error(),
				})
			}
			return forbidden(c)
		},
	})
}

// CurrentEmail returns the email set by Authenticate, or "".
func CurrentEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(emailKey).(string)
	return email
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Error: true, Message: services.ErrInvalidToken.Error(),
	})
}

// TokenFrom returns the parsed token stored by Authenticate.
func TokenFrom(c *fiber.Ctx) *jwt.Token {
	token, _ := c.Locals(tokenKey).(*jwt.Token)
	return token
}
