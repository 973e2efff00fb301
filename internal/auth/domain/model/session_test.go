package model_test

import (
	"testing"
	"time"

	"session-auth/internal/auth/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestSession_ExpiryBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	session := &model.Session{
		UserID:    1,
		ExpiresAt: now,
		IsActive:  true,
		CreatedAt: now.Add(-24 * time.Hour),
	}

	// Exactly at the stored expiry the session still counts as valid.
	assert.False(t, session.Expired(now))
	assert.True(t, session.Live(now))

	// One tick later it does not.
	assert.True(t, session.Expired(now.Add(time.Nanosecond)))
	assert.False(t, session.Live(now.Add(time.Nanosecond)))
}

func TestSession_Live(t *testing.T) {
	now := time.Now().UTC()

	testCases := []struct {
		name     string
		session  model.Session
		wantLive bool
	}{
		{
			name:     "active and unexpired",
			session:  model.Session{IsActive: true, ExpiresAt: now.Add(time.Hour)},
			wantLive: true,
		},
		{
			name:     "revoked but unexpired",
			session:  model.Session{IsActive: false, ExpiresAt: now.Add(time.Hour)},
			wantLive: false,
		},
		{
			name:     "active but expired",
			session:  model.Session{IsActive: true, ExpiresAt: now.Add(-time.Hour)},
			wantLive: false,
		},
		{
			name:     "revoked and expired",
			session:  model.Session{IsActive: false, ExpiresAt: now.Add(-time.Hour)},
			wantLive: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantLive, tc.session.Live(now))
		})
	}
}
