package model

import "time"

// Session represents one authenticated login. It is revoked by flipping
// IsActive, never deleted; expiry is derived from ExpiresAt at read time.
type Session struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	RefreshTokenHash *string   `json:"-"`
	ExpiresAt        time.Time `json:"expires_at"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

// Expired reports whether the session's expiry has passed at the given
// instant. A session whose ExpiresAt equals now is still valid; it expires
// one tick later.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Live reports whether the session can still authenticate requests: it must
// not have been revoked and must not have expired.
func (s *Session) Live(now time.Time) bool {
	return s.IsActive && !s.Expired(now)
}
