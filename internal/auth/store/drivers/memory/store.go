// Package memory is the in-process registry driver. State lives for the
// lifetime of the process only.
package memory

import (
	"context"

	"github.com/aussiebroadwan/mcauth/internal/auth/store"
)

type Store struct {
	refresh *refreshTokensRepo
}

func NewStore() *Store {
	return &Store{refresh: newRefreshTokensRepo()}
}

func (s *Store) RefreshTokens() store.RefreshTokens { return s.refresh }

// ApplyMigrations is a no-op, there is no schema.
func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }
