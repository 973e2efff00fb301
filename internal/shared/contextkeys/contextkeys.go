package contextkeys

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent collisions with context keys
// defined in other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "session-auth context key " + string(c)
}

// UserIDKey is the key for the authenticated user's id in context.Context.
const UserIDKey = contextKey("userID")

// UserEmailKey is the key for the authenticated user's email in context.Context.
const UserEmailKey = contextKey("userEmail")

// SessionIDKey is the key for the id of the session backing the current
// request's token in context.Context.
const SessionIDKey = contextKey("sessionID")

// RequestIDKey is the key for the request correlation id in context.Context.
const RequestIDKey = contextKey("requestID")

var errMissingValue = errors.New("value not present in context")

// UserID extracts the authenticated user id from the context.
func UserID(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(UserIDKey).(int64)
	if !ok {
		return 0, errMissingValue
	}
	return id, nil
}

// SessionID extracts the current session id from the context.
func SessionID(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(SessionIDKey).(int64)
	if !ok {
		return 0, errMissingValue
	}
	return id, nil
}

// UserEmail extracts the authenticated user's email from the context.
func UserEmail(ctx context.Context) (string, error) {
	email, ok := ctx.Value(UserEmailKey).(string)
	if !ok {
		return "", errMissingValue
	}
	return email, nil
}
