package http

import (
	"context"
	"errors"
	"strings"

	"session-auth/internal/auth/domain/model"
	"session-auth/internal/auth/usecase"
	"session-auth/internal/shared/contextkeys"
	apperrors "session-auth/internal/shared/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const currentUserLocal = "currentUser"

// AuthMiddleware provides authentication middleware for Fiber
type AuthMiddleware struct {
	usecase usecase.AuthUsecaseInterface
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(uc usecase.AuthUsecaseInterface) *AuthMiddleware {
	return &AuthMiddleware{usecase: uc}
}

// RequestID returns middleware that tags every request with a correlation id,
// echoed in the response header and propagated through the request context.
func (m *AuthMiddleware) RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.SetUserContext(context.WithValue(c.UserContext(), contextkeys.RequestIDKey, id))
		return c.Next()
	}
}

// Protect returns middleware that requires a live session. The bearer token
// is resolved to a user on every request; session state is never cached
// across requests.
func (m *AuthMiddleware) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := extractBearerToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		user, claims, err := m.usecase.Resolve(c.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrSessionExpired):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Session expired",
				})
			case errors.Is(err, usecase.ErrInvalidToken):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			default:
				// Store-layer failure, not a client error.
				return apperrors.NewInfrastructureError("failed to resolve token").
					WithCause(err).
					WithComponent("auth-middleware")
			}
		}

		ctx := c.UserContext()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, user.ID)
		ctx = context.WithValue(ctx, contextkeys.UserEmailKey, user.Email)
		ctx = context.WithValue(ctx, contextkeys.SessionIDKey, claims.SessionID)
		c.SetUserContext(ctx)
		c.Locals(currentUserLocal, user)

		return c.Next()
	}
}

// extractBearerToken extracts the token from the Authorization header.
func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != "" {
			return token, nil
		}
	}
	return "", fiber.NewError(fiber.StatusUnauthorized, "no authentication token found")
}

// CurrentUser returns the user resolved by Protect, or nil outside a
// protected route.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, ok := c.Locals(currentUserLocal).(*model.User)
	if !ok {
		return nil
	}
	return user
}
