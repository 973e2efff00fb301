package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authhttp "session-auth/internal/auth/adapter/http"
	"session-auth/internal/auth/domain/model"
	"session-auth/internal/auth/domain/repository"
	"session-auth/internal/auth/usecase"
	"session-auth/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock usecase
type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) Register(ctx context.Context, req usecase.RegisterRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockAuthUsecase) Login(ctx context.Context, req usecase.LoginRequest) (*usecase.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.LoginResponse), args.Error(1)
}

func (m *mockAuthUsecase) Resolve(ctx context.Context, tokenString string) (*model.User, *repository.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.User), args.Get(1).(*repository.Claims), args.Error(2)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, sessionID int64) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func setupApp(uc usecase.AuthUsecaseInterface) *fiber.App {
	app := fiber.New()
	handler := authhttp.NewAuthHTTPHandler(uc, logger.NewLoggerWithConfig("error", "text"))
	handler.SetupAuthRoutes(app.Group("/auth"), authhttp.NewAuthMiddleware(uc))
	return app
}

func testUser() *model.User {
	return &model.User{
		ID:        42,
		Email:     "a@x.com",
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

func testClaims(sessionID int64) *repository.Claims {
	return &repository.Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}
}

func decodeBody(t *testing.T, resp io.Reader) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp).Decode(&body))
	return body
}

func TestRegister_Created(t *testing.T) {
	uc := &mockAuthUsecase{}
	uc.On("Register", mock.Anything, usecase.RegisterRequest{Email: "a@x.com", Password: "password123"}).
		Return(testUser(), nil)
	app := setupApp(uc)

	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(`{"email":"a@x.com","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, float64(42), body["id"])
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, true, body["is_active"])
}

func TestRegister_Conflict(t *testing.T) {
	uc := &mockAuthUsecase{}
	uc.On("Register", mock.Anything, mock.Anything).Return(nil, usecase.ErrEmailTaken)
	app := setupApp(uc)

	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(`{"email":"a@x.com","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Email already registered", decodeBody(t, resp.Body)["error"])
}

func TestLogin_ReturnsBearerToken(t *testing.T) {
	uc := &mockAuthUsecase{}
	uc.On("Login", mock.Anything, usecase.LoginRequest{Email: "a@x.com", Password: "pw1"}).
		Return(&usecase.LoginResponse{AccessToken: "signed-token", TokenType: "bearer"}, nil)
	app := setupApp(uc)

	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"a@x.com","password":"pw1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, "signed-token", body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])
}

func TestLogin_UnauthorizedReasons(t *testing.T) {
	testCases := []struct {
		name       string
		usecaseErr error
		wantReason string
	}{
		{name: "invalid credentials", usecaseErr: usecase.ErrInvalidCredentials, wantReason: "Invalid email or password"},
		{name: "inactive account", usecaseErr: usecase.ErrInactiveAccount, wantReason: "Inactive user"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &mockAuthUsecase{}
			uc.On("Login", mock.Anything, mock.Anything).Return(nil, tc.usecaseErr)
			app := setupApp(uc)

			req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"a@x.com","password":"pw1"}`))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.wantReason, decodeBody(t, resp.Body)["error"])
		})
	}
}

func TestProtect_MissingOrInvalidToken(t *testing.T) {
	uc := &mockAuthUsecase{}
	uc.On("Resolve", mock.Anything, "garbage").Return(nil, nil, usecase.ErrInvalidToken)
	app := setupApp(uc)

	// No Authorization header at all.
	resp, err := app.Test(httptest.NewRequest("GET", "/auth/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token", decodeBody(t, resp.Body)["error"])

	// A token the codec rejects.
	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token", decodeBody(t, resp.Body)["error"])
}

func TestProtect_SessionExpired(t *testing.T) {
	uc := &mockAuthUsecase{}
	uc.On("Resolve", mock.Anything, "stale-token").Return(nil, nil, usecase.ErrSessionExpired)
	app := setupApp(uc)

	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Session expired", decodeBody(t, resp.Body)["error"])
}

func TestGetCurrentUser_ReturnsResolvedUser(t *testing.T) {
	uc := &mockAuthUsecase{}
	uc.On("Resolve", mock.Anything, "good-token").Return(testUser(), testClaims(7), nil)
	app := setupApp(uc)

	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, "a@x.com", body["email"])
	assert.NotContains(t, body, "PasswordHash")
}

func TestLogout_RevokesCallersSession(t *testing.T) {
	uc := &mockAuthUsecase{}
	uc.On("Resolve", mock.Anything, "good-token").Return(testUser(), testClaims(7), nil)
	uc.On("Logout", mock.Anything, int64(7)).Return(nil)
	app := setupApp(uc)

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	uc.AssertCalled(t, "Logout", mock.Anything, int64(7))
}
