package auth

import (
	"fmt"

	authhttp "session-auth/internal/auth/adapter/http"
	"session-auth/internal/auth/adapter/persistence/postgres"
	"session-auth/internal/auth/adapter/security"
	"session-auth/internal/auth/config"
	"session-auth/internal/auth/domain/repository"
	"session-auth/internal/auth/usecase"
	"session-auth/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuthModule wires the authentication components together: the relational
// store, the password hasher, the token service, the usecase and the HTTP
// surface, all constructed from one immutable Config.
type AuthModule struct {
	repository repository.AuthRepository
	tokenSvc   repository.TokenService
	usecase    usecase.AuthUsecaseInterface
	handler    *authhttp.AuthHTTPHandler
	middleware *authhttp.AuthMiddleware
}

// NewAuthModule creates a new authentication module instance
func NewAuthModule(pool *pgxpool.Pool, cfg *config.Config, log logger.Logger) (*AuthModule, error) {
	authRepo := postgres.NewPostgresAuthRepository(pool)

	tokenSvc, err := security.NewJWTokenService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	authUsecase := usecase.NewAuthUsecase(authRepo, security.NewBcryptHasher(), tokenSvc, cfg)
	middleware := authhttp.NewAuthMiddleware(authUsecase)
	handler := authhttp.NewAuthHTTPHandler(authUsecase, log)

	return &AuthModule{
		repository: authRepo,
		tokenSvc:   tokenSvc,
		usecase:    authUsecase,
		handler:    handler,
		middleware: middleware,
	}, nil
}

// RegisterRoutes registers authentication routes with the provided router
func (am *AuthModule) RegisterRoutes(router fiber.Router) {
	am.handler.SetupAuthRoutes(router, am.middleware)
}

// GetUsecase returns the auth usecase for external access
func (am *AuthModule) GetUsecase() usecase.AuthUsecaseInterface {
	return am.usecase
}

// GetMiddleware returns the auth middleware
func (am *AuthModule) GetMiddleware() *authhttp.AuthMiddleware {
	return am.middleware
}
