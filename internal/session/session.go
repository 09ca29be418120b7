// Package session tracks active admin sessions server-side, keyed by the
// hash of the issued token. A session that is missing or expired here is
// dead regardless of what the browser still holds.
package session

import (
	"context"
	"errors"
	"time"
)

// Session is the server-side record behind one login.
type Session struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrNotFound = errors.New("session not found or expired")

// Store is implemented by the Redis registry and the in-process fallback.
type Store interface {
	Save(ctx context.Context, tokenHash string, sess Session, ttl time.Duration) error
	Lookup(ctx context.Context, tokenHash string) (Session, error)
	Revoke(ctx context.Context, tokenHash string) error
	Ping(ctx context.Context) error
	Close() error
}
