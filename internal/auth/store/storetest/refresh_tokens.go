// Package storetest holds the behaviour every registry driver must share.
// Driver packages call RunRefreshTokens from their own tests.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/mcauth/internal/auth/domain"
	"github.com/aussiebroadwan/mcauth/internal/auth/store"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, migrated store for one subtest.
type Factory func(t *testing.T) store.Store

var base = time.Unix(1700000000, 0).UTC()

func entry(id, clientID string, created time.Time, ttl time.Duration) domain.RefreshTokenEntry {
	return domain.RefreshTokenEntry{
		TokenID:   id,
		ClientID:  clientID,
		CreatedAt: created,
		ExpiresAt: created.Add(ttl),
		Active:    true,
	}
}

// RunRefreshTokens exercises the store.RefreshTokens contract.
func RunRefreshTokens(t *testing.T, newStore Factory) {
	ctx := context.Background()

	open := func(t *testing.T) store.RefreshTokens {
		t.Helper()
		s := newStore(t)
		t.Cleanup(func() { _ = s.Close() })
		require.NoError(t, s.Ping(ctx))
		return s.RefreshTokens()
	}

	t.Run("put and get", func(t *testing.T) {
		r := open(t)
		e := entry("t1", "c1", base, time.Hour)

		require.NoError(t, r.Put(ctx, e))

		got, err := r.Get(ctx, "t1")
		require.NoError(t, err)
		require.Equal(t, "c1", got.ClientID)
		require.True(t, got.Active)
		require.True(t, got.CreatedAt.Equal(base))
		require.True(t, got.ExpiresAt.Equal(base.Add(time.Hour)))
		require.Empty(t, got.Reason)
		require.Nil(t, got.DeactivatedAt)

		require.ErrorIs(t, r.Put(ctx, e), store.ErrAlreadyExists)
	})

	t.Run("get missing", func(t *testing.T) {
		r := open(t)
		_, err := r.Get(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("deactivate is idempotent", func(t *testing.T) {
		r := open(t)
		require.NoError(t, r.Put(ctx, entry("t1", "c1", base, time.Hour)))

		changed, err := r.Deactivate(ctx, "t1", base.Add(time.Minute))
		require.NoError(t, err)
		require.True(t, changed)

		changed, err = r.Deactivate(ctx, "t1", base.Add(2*time.Minute))
		require.NoError(t, err)
		require.False(t, changed)

		changed, err = r.Deactivate(ctx, "missing", base)
		require.NoError(t, err)
		require.False(t, changed)

		got, err := r.Get(ctx, "t1")
		require.NoError(t, err)
		require.False(t, got.Active)
		require.Equal(t, domain.ReasonRevoked, got.Reason)
		require.NotNil(t, got.DeactivatedAt)
		require.True(t, got.DeactivatedAt.Equal(base.Add(time.Minute)))
	})

	t.Run("deactivate all is scoped to the client", func(t *testing.T) {
		r := open(t)
		require.NoError(t, r.Put(ctx, entry("a1", "c1", base, time.Hour)))
		require.NoError(t, r.Put(ctx, entry("a2", "c1", base.Add(time.Second), time.Hour)))
		require.NoError(t, r.Put(ctx, entry("b1", "c2", base, time.Hour)))

		n, err := r.DeactivateAll(ctx, "c1", base.Add(time.Minute))
		require.NoError(t, err)
		require.Equal(t, 2, n)

		n, err = r.DeactivateAll(ctx, "c1", base.Add(time.Minute))
		require.NoError(t, err)
		require.Zero(t, n)

		other, err := r.Get(ctx, "b1")
		require.NoError(t, err)
		require.True(t, other.Active)
	})

	t.Run("rotate", func(t *testing.T) {
		r := open(t)
		require.NoError(t, r.Put(ctx, entry("old", "c1", base, time.Hour)))

		now := base.Add(time.Minute)
		require.NoError(t, r.Rotate(ctx, entry("new", "c1", now, time.Hour), "old", now))

		old, err := r.Get(ctx, "old")
		require.NoError(t, err)
		require.False(t, old.Active)
		require.Equal(t, domain.ReasonRotated, old.Reason)
		require.Equal(t, "new", old.ReplacedBy)
		require.Equal(t, domain.StatusRotated, old.Status(now))

		next, err := r.Get(ctx, "new")
		require.NoError(t, err)
		require.True(t, next.Active)

		// The old token is single use.
		err = r.Rotate(ctx, entry("newer", "c1", now, time.Hour), "old", now)
		require.ErrorIs(t, err, store.ErrInactive)
		_, err = r.Get(ctx, "newer")
		require.ErrorIs(t, err, store.ErrNotFound)

		err = r.Rotate(ctx, entry("x", "c1", now, time.Hour), "missing", now)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = r.Get(ctx, "x")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("concurrent rotate has one winner", func(t *testing.T) {
		r := open(t)
		require.NoError(t, r.Put(ctx, entry("old", "c1", base, time.Hour)))

		const workers = 8
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
			errs []error
		)
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				next := entry(fmt.Sprintf("next-%d", i), "c1", base.Add(time.Minute), time.Hour)
				err := r.Rotate(ctx, next, "old", base.Add(time.Minute))

				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					wins++
				} else {
					errs = append(errs, err)
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 1, wins)
		for _, err := range errs {
			require.ErrorIs(t, err, store.ErrInactive)
		}

		active, err := r.ListActive(ctx, base.Add(time.Minute))
		require.NoError(t, err)
		require.Len(t, active, 1)
	})

	t.Run("sweep removes only expired entries", func(t *testing.T) {
		r := open(t)
		require.NoError(t, r.Put(ctx, entry("expired", "c1", base, time.Minute)))
		require.NoError(t, r.Put(ctx, entry("expired-revoked", "c1", base, time.Minute)))
		require.NoError(t, r.Put(ctx, entry("live", "c1", base, time.Hour)))
		require.NoError(t, r.Put(ctx, entry("live-revoked", "c1", base, time.Hour)))

		_, err := r.Deactivate(ctx, "expired-revoked", base)
		require.NoError(t, err)
		_, err = r.Deactivate(ctx, "live-revoked", base)
		require.NoError(t, err)

		n, err := r.SweepExpired(ctx, base.Add(10*time.Minute))
		require.NoError(t, err)
		require.Equal(t, 2, n)

		for _, id := range []string{"expired", "expired-revoked"} {
			_, err := r.Get(ctx, id)
			require.ErrorIs(t, err, store.ErrNotFound, id)
		}
		for _, id := range []string{"live", "live-revoked"} {
			_, err := r.Get(ctx, id)
			require.NoError(t, err, id)
		}

		n, err = r.SweepExpired(ctx, base.Add(10*time.Minute))
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("list active", func(t *testing.T) {
		r := open(t)
		require.NoError(t, r.Put(ctx, entry("second", "c2", base.Add(2*time.Second), time.Hour)))
		require.NoError(t, r.Put(ctx, entry("first", "c1", base.Add(time.Second), time.Hour)))
		require.NoError(t, r.Put(ctx, entry("revoked", "c1", base, time.Hour)))
		require.NoError(t, r.Put(ctx, entry("short", "c1", base, time.Minute)))

		_, err := r.Deactivate(ctx, "revoked", base)
		require.NoError(t, err)

		list, err := r.ListActive(ctx, base.Add(5*time.Minute))
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "first", list[0].TokenID)
		require.Equal(t, "second", list[1].TokenID)
	})
}
