package security

import (
	"context"
	"errors"
	"strconv"
	"time"

	"session-auth/internal/auth/config"
	"session-auth/internal/auth/domain/repository"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel validation errors. They distinguish why a token was rejected for
// internal use; callers collapse them into one uniform signal before the
// distinction can leak to clients.
var (
	ErrTokenInvalid          = errors.New("token is invalid")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
)

// JWTokenService implements JWT access token generation and validation using
// a symmetric secret and a single fixed HMAC signing method.
type JWTokenService struct {
	secretKey []byte
	method    *jwt.SigningMethodHMAC
	issuer    string
	ttl       time.Duration
}

// NewJWTokenService creates a new JWT token service from the module config.
func NewJWTokenService(cfg *config.Config) (*JWTokenService, error) {
	if cfg.JWTSecretKey == "" {
		return nil, errors.New("jwt secret key cannot be empty")
	}
	if cfg.JWTIssuer == "" {
		return nil, errors.New("jwt issuer cannot be empty")
	}
	if cfg.AccessTokenTTL() <= 0 {
		return nil, errors.New("jwt access token TTL must be positive")
	}

	method, ok := jwt.GetSigningMethod(cfg.JWTAlgorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, errors.New("jwt signing algorithm must be an HMAC method")
	}

	return &JWTokenService{
		secretKey: []byte(cfg.JWTSecretKey),
		method:    method,
		issuer:    cfg.JWTIssuer,
		ttl:       cfg.AccessTokenTTL(),
	}, nil
}

// Generate mints a new access token bound to the given user and session.
func (s *JWTokenService) Generate(ctx context.Context, userID, sessionID int64) (string, error) {
	now := time.Now().UTC()
	claims := &repository.Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secretKey)
}

// Validate parses and verifies an access token, returning its claims only if
// the signature checks out and the token's own expiry has not passed. It
// never panics on malformed input.
func (s *JWTokenService) Validate(ctx context.Context, tokenString string) (*repository.Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &repository.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignatureInvalid
		}
		return s.secretKey, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, ErrTokenInvalid
		}
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*repository.Claims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// Ensure JWTokenService implements the TokenService interface
var _ repository.TokenService = (*JWTokenService)(nil)
