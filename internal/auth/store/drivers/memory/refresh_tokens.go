package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/mcauth/internal/auth/domain"
	"github.com/aussiebroadwan/mcauth/internal/auth/store"
)

// refreshTokensRepo keeps entries in a map guarded by one RWMutex. Writers
// take the write lock for the whole operation, so Rotate's insert and
// deactivate are never observed apart.
type refreshTokensRepo struct {
	mu      sync.RWMutex
	entries map[string]domain.RefreshTokenEntry
}

func newRefreshTokensRepo() *refreshTokensRepo {
	return &refreshTokensRepo{entries: make(map[string]domain.RefreshTokenEntry)}
}

func (r *refreshTokensRepo) Put(_ context.Context, e domain.RefreshTokenEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[e.TokenID]; ok {
		return store.ErrAlreadyExists
	}
	r.entries[e.TokenID] = e
	return nil
}

func (r *refreshTokensRepo) Get(_ context.Context, tokenID string) (domain.RefreshTokenEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[tokenID]
	if !ok {
		return domain.RefreshTokenEntry{}, store.ErrNotFound
	}
	return e, nil
}

func (r *refreshTokensRepo) Deactivate(_ context.Context, tokenID string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[tokenID]
	if !ok || !e.Active {
		return false, nil
	}
	e.Deactivate(domain.ReasonRevoked, "", now)
	r.entries[tokenID] = e
	return true, nil
}

func (r *refreshTokensRepo) DeactivateAll(_ context.Context, clientID string, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, e := range r.entries {
		if e.ClientID != clientID || !e.Active {
			continue
		}
		e.Deactivate(domain.ReasonRevoked, "", now)
		r.entries[id] = e
		n++
	}
	return n, nil
}

func (r *refreshTokensRepo) Rotate(_ context.Context, next domain.RefreshTokenEntry, oldID string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.entries[oldID]
	if !ok {
		return store.ErrNotFound
	}
	if !old.Active {
		return store.ErrInactive
	}
	if _, dup := r.entries[next.TokenID]; dup {
		return store.ErrAlreadyExists
	}

	old.Deactivate(domain.ReasonRotated, next.TokenID, now)
	r.entries[oldID] = old
	r.entries[next.TokenID] = next
	return nil
}

func (r *refreshTokensRepo) SweepExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, e := range r.entries {
		if e.ExpiresAt.Before(now) {
			delete(r.entries, id)
			n++
		}
	}
	return n, nil
}

func (r *refreshTokensRepo) ListActive(_ context.Context, now time.Time) ([]domain.RefreshTokenEntry, error) {
	r.mu.RLock()
	out := make([]domain.RefreshTokenEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if e.Usable(now) {
			out = append(out, e)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.RefreshTokenEntry) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.TokenID, b.TokenID)
	})
	return out, nil
}
