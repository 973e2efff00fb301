package http

import (
	"errors"

	"session-auth/internal/auth/usecase"
	"session-auth/internal/shared/contextkeys"
	apperrors "session-auth/internal/shared/errors"
	"session-auth/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// AuthHTTPHandler handles HTTP requests for authentication
type AuthHTTPHandler struct {
	usecase usecase.AuthUsecaseInterface
	log     logger.Logger
}

// NewAuthHTTPHandler creates a new authentication HTTP handler
func NewAuthHTTPHandler(uc usecase.AuthUsecaseInterface, log logger.Logger) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		usecase: uc,
		log:     log.WithComponent("auth-http"),
	}
}

// SetupAuthRoutes registers authentication routes on the given router.
func (h *AuthHTTPHandler) SetupAuthRoutes(router fiber.Router, middleware *AuthMiddleware) {
	// Public routes (no authentication required)
	router.Post("/register", h.Register)
	router.Post("/login", h.Login)

	// Protected routes (authentication required)
	protected := router.Group("/", middleware.Protect())
	protected.Post("/logout", h.Logout)
	protected.Get("/me", h.GetCurrentUser)
}

// Register handles user registration
func (h *AuthHTTPHandler) Register(c *fiber.Ctx) error {
	var req usecase.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.usecase.Register(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Email already registered",
			})
		case errors.Is(err, usecase.ErrInvalidEmailFormat), errors.Is(err, usecase.ErrPasswordTooShort):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			h.log.WithContext(c.UserContext()).Errorf("register failed: %v", err)
			return apperrors.NewInfrastructureError("registration failed").
				WithCause(err).
				WithComponent("auth-http")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles user login
func (h *AuthHTTPHandler) Login(c *fiber.Ctx) error {
	var req usecase.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.usecase.Login(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid email or password",
			})
		case errors.Is(err, usecase.ErrInactiveAccount):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Inactive user",
			})
		default:
			h.log.WithContext(c.UserContext()).Errorf("login failed: %v", err)
			return apperrors.NewInfrastructureError("login failed").
				WithCause(err).
				WithComponent("auth-http")
		}
	}

	return c.JSON(response)
}

// Logout revokes the session behind the caller's token. It always succeeds
// from the caller's perspective; revoking twice is a no-op.
func (h *AuthHTTPHandler) Logout(c *fiber.Ctx) error {
	sessionID, err := contextkeys.SessionID(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	if err := h.usecase.Logout(c.Context(), sessionID); err != nil {
		h.log.WithContext(c.UserContext()).Errorf("logout failed: %v", err)
		return apperrors.NewInfrastructureError("logout failed").
			WithCause(err).
			WithComponent("auth-http")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetCurrentUser returns the user resolved from the caller's token.
func (h *AuthHTTPHandler) GetCurrentUser(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	return c.JSON(user)
}
