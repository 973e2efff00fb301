package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"session-auth/internal/auth/config"
	"session-auth/internal/auth/domain/model"
	"session-auth/internal/auth/domain/repository"
)

// Client-facing error taxonomy. These are the only errors callers should
// branch on; anything else from this package is an infrastructure failure.
var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("inactive user")
	ErrInvalidToken       = errors.New("token is invalid")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password is too short")
)

const minPasswordLength = 8

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// TokenTypeBearer is the token-type marker returned with every access token.
const TokenTypeBearer = "bearer"

// AuthUsecaseInterface defines the contract for authentication use cases.
type AuthUsecaseInterface interface {
	Register(ctx context.Context, req RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Resolve(ctx context.Context, tokenString string) (*model.User, *repository.Claims, error)
	Logout(ctx context.Context, sessionID int64) error
}

// RegisterRequest represents the registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the minted access token and its type marker.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthUsecase implements credential verification and the session lifecycle.
//
// Sessions move through a one-way state machine, ACTIVE then REVOKED; the
// EXPIRED state is derived from expires_at at read time and never stored, so
// no background sweeper is needed.
type AuthUsecase struct {
	repo     repository.AuthRepository
	hasher   repository.PasswordHasher
	tokenSvc repository.TokenService
	config   *config.Config
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	repo repository.AuthRepository,
	hasher repository.PasswordHasher,
	tokenSvc repository.TokenService,
	cfg *config.Config,
) *AuthUsecase {
	return &AuthUsecase{
		repo:     repo,
		hasher:   hasher,
		tokenSvc: tokenSvc,
		config:   cfg,
	}
}

// Register creates a new user account. The password is hashed before storage
// and the plaintext is never persisted. Registration does not log the user
// in; callers go through Login for a token.
func (uc *AuthUsecase) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	email := strings.TrimSpace(req.Email)
	if !emailRegex.MatchString(email) {
		return nil, ErrInvalidEmailFormat
	}
	if len(req.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	_, err := uc.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.repo.CreateUser(ctx, user); err != nil {
		// A concurrent registration may win the race between the existence
		// check and the insert; the unique constraint is authoritative.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// Login verifies credentials, creates a session row and mints an access
// token bound to it. An unknown email and a wrong password fail identically
// so behavior cannot be used to enumerate accounts. No session row is
// created for an inactive account.
func (uc *AuthUsecase) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := uc.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	now := time.Now().UTC()
	session := &model.Session{
		UserID:    user.ID,
		ExpiresAt: now.Add(uc.config.SessionTTL),
		IsActive:  true,
		CreatedAt: now,
	}
	if err := uc.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Minting is in-process, so no transaction spans the insert and this
	// call. The token carries its own shorter TTL than the session.
	token, err := uc.tokenSvc.Generate(ctx, user.ID, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
	}, nil
}

// authenticate verifies an email/password pair against the store. It returns
// nil without error both for an unknown email and for a password mismatch.
// Account status is deliberately not checked here; "credentials valid" and
// "account usable" are separate concerns.
func (uc *AuthUsecase) authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := uc.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !uc.hasher.Verify(password, user.PasswordHash) {
		return nil, nil
	}

	return user, nil
}

// Resolve turns a bearer token into the user it authenticates. Any decode
// failure surfaces as ErrInvalidToken. A missing, revoked or expired session
// and a deactivated user all collapse into ErrSessionExpired; which of them
// applied is never leaked.
func (uc *AuthUsecase) Resolve(ctx context.Context, tokenString string) (*model.User, *repository.Claims, error) {
	claims, err := uc.tokenSvc.Validate(ctx, tokenString)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	session, err := uc.repo.GetSessionByID(ctx, claims.SessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, nil, ErrSessionExpired
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get session: %w", err)
	}
	if !session.Live(time.Now().UTC()) {
		return nil, nil, ErrSessionExpired
	}

	user, err := uc.repo.GetUserByID(ctx, session.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, nil, ErrSessionExpired
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	// An account deactivated mid-session stops authenticating immediately,
	// not at session expiry.
	if !user.IsActive {
		return nil, nil, ErrSessionExpired
	}

	user.PasswordHash = ""
	return user, claims, nil
}

// Logout revokes a session by id. Revocation is one-way and idempotent: a
// missing or already-revoked session is a silent no-op.
func (uc *AuthUsecase) Logout(ctx context.Context, sessionID int64) error {
	session, err := uc.repo.GetSessionByID(ctx, sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	if !session.IsActive {
		return nil
	}

	session.IsActive = false
	if err := uc.repo.UpdateSession(ctx, session); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// Ensure AuthUsecase implements AuthUsecaseInterface
var _ AuthUsecaseInterface = (*AuthUsecase)(nil)
