package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/mcauth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrInactive      = errors.New("store: entry is no longer active")
)

// Store is the root data access interface. Concrete drivers (memory, sqlite)
// implement this and expose sub-repositories so each concern stays small.
type Store interface {
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing storage is still reachable.
	Ping(ctx context.Context) error
}

// RefreshTokens is the refresh token registry. Every method is safe for
// concurrent use.
type RefreshTokens interface {
	// Put inserts a new entry. Token ids are unique.
	Put(ctx context.Context, e domain.RefreshTokenEntry) error

	// Get returns the entry for tokenID or ErrNotFound.
	Get(ctx context.Context, tokenID string) (domain.RefreshTokenEntry, error)

	// Deactivate marks tokenID revoked. It reports whether an active entry
	// was changed. Missing or already inactive entries are not an error.
	Deactivate(ctx context.Context, tokenID string, now time.Time) (bool, error)

	// DeactivateAll revokes every active entry of clientID and returns how
	// many changed.
	DeactivateAll(ctx context.Context, clientID string, now time.Time) (int, error)

	// Rotate inserts next and deactivates oldID as one atomic step. It fails
	// with ErrNotFound or ErrInactive when oldID is not active at that moment,
	// in which case next is not stored.
	Rotate(ctx context.Context, next domain.RefreshTokenEntry, oldID string, now time.Time) error

	// SweepExpired deletes entries whose ExpiresAt is before now, active or
	// not, and returns how many were removed.
	SweepExpired(ctx context.Context, now time.Time) (int, error)

	// ListActive returns active, unexpired entries ordered by creation time.
	ListActive(ctx context.Context, now time.Time) ([]domain.RefreshTokenEntry, error)
}
