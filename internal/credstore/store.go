// Package credstore persists the client-side credential group: the bearer
// token, the cached role, and the token expiry timestamp. It is the native
// analog of the browser localStorage keys the mawid front-end uses. Only the
// session manager writes here; the transport layer reads.
package credstore

import (
	"context"
	"time"
)

// Persisted keys. The names are part of the client's durable contract.
const (
	KeyAuthToken   = "auth_token"
	KeyUserRole    = "user_role"
	KeyTokenExpiry = "token_expiry" // RFC 3339
)

// Store is a small durable key-value store for client state.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes a single key.
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys atomically. Missing keys are not an
	// error.
	Delete(ctx context.Context, keys ...string) error

	// SetSession writes token, role and expiry atomically as a group.
	SetSession(ctx context.Context, token, role string, expiry time.Time) error

	// ClearSession removes token, role and expiry atomically as a group.
	ClearSession(ctx context.Context) error

	Close() error
}
