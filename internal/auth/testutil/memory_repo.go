package testutil

import (
	"context"
	"sync"
	"time"

	"session-auth/internal/auth/domain/model"
	"session-auth/internal/auth/domain/repository"
)

// MemoryAuthRepository is an in-memory AuthRepository for tests. It assigns
// surrogate ids the way the relational store does and enforces the unique
// email constraint.
type MemoryAuthRepository struct {
	mu            sync.Mutex
	users         map[int64]*model.User
	sessions      map[int64]*model.Session
	nextUserID    int64
	nextSessionID int64
}

// NewMemoryAuthRepository creates an empty in-memory repository.
func NewMemoryAuthRepository() *MemoryAuthRepository {
	return &MemoryAuthRepository{
		users:         make(map[int64]*model.User),
		sessions:      make(map[int64]*model.Session),
		nextUserID:    1,
		nextSessionID: 1,
	}
}

// CreateUser inserts a user, assigning the next surrogate id.
func (r *MemoryAuthRepository) CreateUser(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}

	user.ID = r.nextUserID
	r.nextUserID++
	stored := *user
	r.users[stored.ID] = &stored
	return nil
}

// GetUserByEmail looks a user up by exact email match.
func (r *MemoryAuthRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// GetUserByID looks a user up by id.
func (r *MemoryAuthRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// SetUserActive toggles a stored user's active flag, standing in for the
// external admin process that owns that transition in production.
func (r *MemoryAuthRepository) SetUserActive(id int64, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[id]; ok {
		user.IsActive = active
	}
}

// CreateSession inserts a session, assigning the next surrogate id.
func (r *MemoryAuthRepository) CreateSession(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session.ID = r.nextSessionID
	r.nextSessionID++
	stored := *session
	r.sessions[stored.ID] = &stored
	return nil
}

// GetSessionByID looks a session up by id.
func (r *MemoryAuthRepository) GetSessionByID(ctx context.Context, id int64) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

// UpdateSession persists mutated session fields.
func (r *MemoryAuthRepository) UpdateSession(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; !ok {
		return repository.ErrSessionNotFound
	}
	stored := *session
	r.sessions[stored.ID] = &stored
	return nil
}

// SessionCount reports how many session rows exist.
func (r *MemoryAuthRepository) SessionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// ExpireSession rewinds a stored session's expiry so it reads as expired.
func (r *MemoryAuthRepository) ExpireSession(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[id]; ok {
		session.ExpiresAt = session.CreatedAt.Add(-time.Second)
	}
}

// Ensure MemoryAuthRepository implements the AuthRepository interface
var _ repository.AuthRepository = (*MemoryAuthRepository)(nil)
