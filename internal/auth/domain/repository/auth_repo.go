package repository

import (
	"context"
	"errors"

	"session-auth/internal/auth/domain/model"
)

// Store-level sentinel errors. Adapters translate backend-specific failures
// into these so the usecase layer never sees driver errors for expected cases.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrDuplicateEmail  = errors.New("email already registered")
)

// AuthRepository defines the interface for authentication data operations
type AuthRepository interface {
	// User operations. CreateUser assigns user.ID on success.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)

	// Session operations. CreateSession assigns session.ID on success.
	CreateSession(ctx context.Context, session *model.Session) error
	GetSessionByID(ctx context.Context, id int64) (*model.Session, error)
	UpdateSession(ctx context.Context, session *model.Session) error
}
