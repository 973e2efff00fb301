package testutil

import (
	"time"

	"session-auth/internal/auth/domain/model"

	"golang.org/x/crypto/bcrypt"
)

// UserFixture provides test data for the User model
type UserFixture struct{}

// NewUserFixture creates a new UserFixture instance
func NewUserFixture() *UserFixture {
	return &UserFixture{}
}

// ValidUser returns an active user for testing
func (f *UserFixture) ValidUser() *model.User {
	return f.UserWithPassword("test@example.com", "password123")
}

// UserWithPassword returns a user with a specific email and password
func (f *UserFixture) UserWithPassword(email, password string) *model.User {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &model.User{
		ID:           1,
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
}

// InactiveUser returns a deactivated user with the given password
func (f *UserFixture) InactiveUser(email, password string) *model.User {
	user := f.UserWithPassword(email, password)
	user.IsActive = false
	return user
}

// SessionFixture provides test data for the Session model
type SessionFixture struct{}

// NewSessionFixture creates a new SessionFixture instance
func NewSessionFixture() *SessionFixture {
	return &SessionFixture{}
}

// LiveSession returns an active, unexpired session for the given user
func (f *SessionFixture) LiveSession(userID int64) *model.Session {
	now := time.Now().UTC()
	return &model.Session{
		ID:        1,
		UserID:    userID,
		ExpiresAt: now.Add(24 * time.Hour),
		IsActive:  true,
		CreatedAt: now,
	}
}

// RevokedSession returns a logged-out session for the given user
func (f *SessionFixture) RevokedSession(userID int64) *model.Session {
	session := f.LiveSession(userID)
	session.IsActive = false
	return session
}

// ExpiredSession returns a session whose expiry has already passed
func (f *SessionFixture) ExpiredSession(userID int64) *model.Session {
	session := f.LiveSession(userID)
	session.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	return session
}
