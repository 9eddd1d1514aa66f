package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/mcauth/internal/auth/domain"
	"github.com/aussiebroadwan/mcauth/internal/auth/store"
)

type refreshTokensRepo struct {
	s *Store
	q *queries
}

func (r *refreshTokensRepo) Put(ctx context.Context, e domain.RefreshTokenEntry) error {
	return r.s.withTx(ctx, func(q *queries) error {
		ok, err := q.InsertRefreshToken(ctx, toRow(e))
		if err != nil {
			return err
		}
		if !ok {
			return store.ErrAlreadyExists
		}
		return nil
	})
}

func (r *refreshTokensRepo) Get(ctx context.Context, tokenID string) (domain.RefreshTokenEntry, error) {
	row, err := r.q.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return domain.RefreshTokenEntry{}, mapNotFound(err)
	}
	return fromRow(row), nil
}

func (r *refreshTokensRepo) Deactivate(ctx context.Context, tokenID string, now time.Time) (bool, error) {
	var changed bool
	err := r.s.withTx(ctx, func(q *queries) error {
		n, err := q.DeactivateRefreshToken(ctx, tokenID, domain.ReasonRevoked, "", toUnix(now))
		changed = n > 0
		return err
	})
	return changed, err
}

func (r *refreshTokensRepo) DeactivateAll(ctx context.Context, clientID string, now time.Time) (int, error) {
	var n int64
	err := r.s.withTx(ctx, func(q *queries) error {
		var err error
		n, err = q.DeactivateClientRefreshTokens(ctx, clientID, domain.ReasonRevoked, toUnix(now))
		return err
	})
	return int(n), err
}

// Rotate checks, inserts and deactivates inside one transaction. The
// conditional UPDATE is what decides the winner when two refreshes race.
func (r *refreshTokensRepo) Rotate(ctx context.Context, next domain.RefreshTokenEntry, oldID string, now time.Time) error {
	return r.s.withTx(ctx, func(q *queries) error {
		old, err := q.GetRefreshToken(ctx, oldID)
		if err != nil {
			return mapNotFound(err)
		}
		if !old.Active {
			return store.ErrInactive
		}

		n, err := q.DeactivateRefreshToken(ctx, oldID, domain.ReasonRotated, next.TokenID, toUnix(now))
		if err != nil {
			return err
		}
		if n == 0 {
			return store.ErrInactive
		}

		ok, err := q.InsertRefreshToken(ctx, toRow(next))
		if err != nil {
			return err
		}
		if !ok {
			return store.ErrAlreadyExists
		}
		return nil
	})
}

func (r *refreshTokensRepo) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	var n int64
	err := r.s.withTx(ctx, func(q *queries) error {
		var err error
		n, err = q.DeleteExpiredRefreshTokens(ctx, toUnix(now))
		return err
	})
	return int(n), err
}

func (r *refreshTokensRepo) ListActive(ctx context.Context, now time.Time) ([]domain.RefreshTokenEntry, error) {
	rows, err := r.q.ListActiveRefreshTokens(ctx, toUnix(now))
	if err != nil {
		return nil, err
	}

	out := make([]domain.RefreshTokenEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

func toRow(e domain.RefreshTokenEntry) refreshTokenRow {
	return refreshTokenRow{
		TokenID:       e.TokenID,
		ClientID:      e.ClientID,
		CreatedAt:     toUnix(e.CreatedAt),
		ExpiresAt:     toUnix(e.ExpiresAt),
		Active:        e.Active,
		Reason:        e.Reason,
		ReplacedBy:    e.ReplacedBy,
		DeactivatedAt: toNullUnix(e.DeactivatedAt),
	}
}

func fromRow(r refreshTokenRow) domain.RefreshTokenEntry {
	return domain.RefreshTokenEntry{
		TokenID:       r.TokenID,
		ClientID:      r.ClientID,
		CreatedAt:     fromUnix(r.CreatedAt),
		ExpiresAt:     fromUnix(r.ExpiresAt),
		Active:        r.Active,
		Reason:        r.Reason,
		ReplacedBy:    r.ReplacedBy,
		DeactivatedAt: fromNullUnix(r.DeactivatedAt),
	}
}
