package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/mcauth/internal/auth/domain"
	"github.com/aussiebroadwan/mcauth/internal/auth/store/drivers/memory"
	"github.com/aussiebroadwan/mcauth/pkg/cryptox"
	"github.com/aussiebroadwan/mcauth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

var c1Perms = []string{"contacts:read", "contacts:write", "campaigns:read"}

func newTestClients(t *testing.T) *ClientRegistry {
	t.Helper()

	argon, err := cryptox.HashSecret("c2-secret")
	require.NoError(t, err)

	reg, err := NewClientRegistry([]domain.Client{
		{ID: "c1", Name: "Client One", SecretHash: cryptox.LegacyHash("c1-secret"), Permissions: c1Perms},
		{ID: "c2", Name: "Client Two", SecretHash: argon, Permissions: []string{"assets:read"}},
	})
	require.NoError(t, err)
	return reg
}

func newTestService(t *testing.T) (*TokenService, *testClock) {
	t.Helper()

	clk := &testClock{t: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	codec, err := jwtx.NewCodec(jwtx.CodecOptions{
		Secret: []byte("test-secret-test-secret-test-secret"),
		Issuer: "mcauth-test",
		Now:    clk.Now,
	})
	require.NoError(t, err)

	return &TokenService{
		Clients:    newTestClients(t),
		Codec:      codec,
		Store:      memory.NewStore(),
		AccessTTL:  2 * time.Hour,
		RefreshTTL: 30 * 24 * time.Hour,
		Now:        clk.Now,
	}, clk
}

func TestGrant(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	pair, err := s.Grant(ctx, "c1", "c1-secret", GrantClientCredentials)
	require.NoError(t, err)
	require.Equal(t, TokenTypeBearer, pair.TokenType)
	require.Equal(t, strings.Join(c1Perms, " "), pair.Scope)
	require.Equal(t, "Client One", pair.ClientName)
	require.Equal(t, 2*time.Hour, pair.ExpiresIn)
	require.Equal(t, 30*24*time.Hour, pair.RefreshExpiresIn)

	claims, err := s.VerifyAccess(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "c1", claims.ClientID)
	require.ElementsMatch(t, c1Perms, claims.Permissions)
	require.Equal(t, domain.KindAccess, claims.Kind)

	refresh, err := s.Codec.DecodeAt(pair.RefreshToken, jwtx.TypeRefresh, s.now())
	require.NoError(t, err)

	entry, err := s.Store.RefreshTokens().Get(ctx, refresh.ID)
	require.NoError(t, err)
	require.True(t, entry.Active)
	require.Equal(t, "c1", entry.ClientID)
	require.True(t, entry.ExpiresAt.Equal(refresh.ExpiresAt.Time), "registry expiry must match the signed token")
}

func TestGrant_Argon2Client(t *testing.T) {
	s, _ := newTestService(t)

	pair, err := s.Grant(context.Background(), "c2", "c2-secret", GrantClientCredentials)
	require.NoError(t, err)
	require.Equal(t, "assets:read", pair.Scope)
}

func TestGrant_Errors(t *testing.T) {
	s, _ := newTestService(t)

	tests := []struct {
		name                     string
		clientID, secret, grant string
		want                     error
	}{
		{"missing client id", "", "c1-secret", GrantClientCredentials, ErrMissingField},
		{"missing secret", "c1", "", GrantClientCredentials, ErrMissingField},
		{"missing grant type", "c1", "c1-secret", "", ErrMissingField},
		{"unsupported grant", "c1", "c1-secret", "password", ErrUnsupportedGrant},
		{"unknown client", "nobody", "c1-secret", GrantClientCredentials, ErrUnknownClient},
		{"padded client id", " c1 ", "c1-secret", GrantClientCredentials, ErrUnknownClient},
		{"wrong secret", "c1", "wrong", GrantClientCredentials, ErrBadCredentials},
		{"other client's secret", "c1", "c2-secret", GrantClientCredentials, ErrBadCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := s.Grant(context.Background(), tt.clientID, tt.secret, tt.grant)
			require.ErrorIs(t, err, tt.want)
			require.Nil(t, pair)
		})
	}

	active, err := s.ListActive(context.Background())
	require.NoError(t, err)
	require.Empty(t, active.Entries, "failed grants must not register tokens")
}

func TestRefresh_SingleUse(t *testing.T) {
	ctx := context.Background()
	s, clk := newTestService(t)

	r0, err := s.Grant(ctx, "c1", "c1-secret", GrantClientCredentials)
	require.NoError(t, err)

	clk.Advance(time.Minute)
	r1, err := s.Refresh(ctx, r0.RefreshToken, GrantRefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, r0.RefreshToken, r1.RefreshToken)
	require.Equal(t, r0.Scope, r1.Scope)
	require.Equal(t, "Client One", r1.ClientName)

	claims, err := s.VerifyAccess(ctx, r1.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "c1", claims.ClientID)

	_, err = s.Refresh(ctx, r0.RefreshToken, GrantRefreshToken)
	require.ErrorIs(t, err, ErrTokenRevoked)

	_, err = s.Refresh(ctx, r1.RefreshToken, GrantRefreshToken)
	require.NoError(t, err)

	// The rotated entry records its successor.
	old, err := s.Codec.DecodeIgnoringExpiry(r0.RefreshToken, jwtx.TypeRefresh)
	require.NoError(t, err)
	next, err := s.Codec.DecodeIgnoringExpiry(r1.RefreshToken, jwtx.TypeRefresh)
	require.NoError(t, err)

	entry, err := s.Store.RefreshTokens().Get(ctx, old.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ReasonRotated, entry.Reason)
	require.Equal(t, next.ID, entry.ReplacedBy)
}

func TestRefresh_ConcurrentUseHasOneWinner(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	r0, err := s.Grant(ctx, "c1", "c1-secret", GrantClientCredentials)
	require.NoError(t, err)

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		wins    int
		revoked int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Refresh(ctx, r0.RefreshToken, GrantRefreshToken)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, ErrTokenRevoked):
				revoked++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, wins)
	require.Equal(t, workers-1, revoked)
}

func TestRefresh_Errors(t *testing.T) {
	ctx := context.Background()
	s, clk := newTestService(t)

	pair, err := s.Grant(ctx, "c1", "c1-secret", GrantClientCredentials)
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		_, err := s.Refresh(ctx, "", GrantRefreshToken)
		require.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("wrong grant type", func(t *testing.T) {
		_, err := s.Refresh(ctx, pair.RefreshToken, GrantClientCredentials)
		require.ErrorIs(t, err, ErrUnsupportedGrant)
	})

	t.Run("access token", func(t *testing.T) {
		_, err := s.Refresh(ctx, pair.AccessToken, GrantRefreshToken)
		require.ErrorIs(t, err, ErrInvalidToken)
		require.ErrorIs(t, err, jwtx.ErrWrongKind)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Refresh(ctx, "not-a-jwt", GrantRefreshToken)
		require.ErrorIs(t, err, ErrInvalidToken)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("unknown to the registry", func(t *testing.T) {
		other := *s
		other.Store = memory.NewStore()

		_, err := other.Refresh(ctx, pair.RefreshToken, GrantRefreshToken)
		require.ErrorIs(t, err, ErrTokenNotFound)
	})

	t.Run("expired", func(t *testing.T) {
		clk.Advance(s.RefreshTTL)
		_, err := s.Refresh(ctx, pair.RefreshToken, GrantRefreshToken)
		require.ErrorIs(t, err, ErrInvalidToken)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})
}

func TestRevoke_Idempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	pair, err := s.Grant(ctx, "c1", "c1-secret", GrantClientCredentials)
	require.NoError(t, err)

	res, err := s.Revoke(ctx, pair.RefreshToken, false)
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	require.Equal(t, "c1", res.ClientID)

	res, err = s.Revoke(ctx, pair.RefreshToken, false)
	require.NoError(t, err)
	require.Zero(t, res.Count)

	_, err = s.Refresh(ctx, pair.RefreshToken, GrantRefreshToken)
	require.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRevoke_AllIsScopedToClient(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	a1, err := s.Grant(ctx, "c1", "c1-secret", GrantClientCredentials)
	require.NoError(t, err)
	a2, err := s.Grant(ctx, "c1", "c1-secret", GrantClientCredentials)
	require.NoError(t, err)
	b1, err := s.Grant(ctx, "c2", "c2-secret", GrantClientCredentials)
	require.NoError(t, err)

	res, err := s.Revoke(ctx, a1.RefreshToken, true)
	require.NoError(t, err)
	require.Equal(t, 2, res.Count)
	require.Contains(t, res.Message, "c1")

	_, err = s.Refresh(ctx, a2.RefreshToken, GrantRefreshToken)
	require.ErrorIs(t, err, ErrTokenRevoked)

	_, err = s.Refresh(ctx, b1.RefreshToken, GrantRefreshToken)
	require.NoError(t, err)
}

func TestRevoke_ExpiredTokenIsAccepted(t *testing.T) {
	ctx := context.Background()
	s, clk := newTestService(t)

	pair, err := s.Grant(ctx, "c1", "c1-secret", GrantClientCredentials)
	require.NoError(t, err)

	clk.Advance(s.RefreshTTL + time.Hour)

	_, err = s.Revoke(ctx, pair.RefreshToken, false)
	require.NoError(t, err)
}

func TestRevoke_Errors(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	pair, err := s.Grant(ctx, "c1", "c1-secret", GrantClientCredentials)
	require.NoError(t, err)

	_, err = s.Revoke(ctx, "", false)
	require.ErrorIs(t, err, ErrMissingField)

	_, err = s.Revoke(ctx, pair.AccessToken, true)
	require.ErrorIs(t, err, ErrInvalidToken)

	forger, err := jwtx.NewCodec(jwtx.CodecOptions{Secret: []byte("forged-forged-forged-forged-forged"), Issuer: "mcauth-test"})
	require.NoError(t, err)
	forged, err := forger.Encode(jwtx.NewClaims(jwtx.TypeRefresh, "c2", nil, "", time.Hour, s.now()))
	require.NoError(t, err)

	_, err = s.Revoke(ctx, forged, true)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestAuthorize(t *testing.T) {
	s, _ := newTestService(t)
	claims := domain.TokenClaims{ClientID: "c1", Permissions: []string{"contacts:read"}}

	require.NoError(t, s.Authorize(claims, "contacts:read"))
	require.ErrorIs(t, s.Authorize(claims, "contacts:write"), ErrInsufficientPermission)
}

func TestIntrospect(t *testing.T) {
	ctx := context.Background()
	s, clk := newTestService(t)

	pair, err := s.Grant(ctx, "c1", "c1-secret", GrantClientCredentials)
	require.NoError(t, err)
	revoked, err := s.Grant(ctx, "c1", "c1-secret", GrantClientCredentials)
	require.NoError(t, err)
	_, err = s.Revoke(ctx, revoked.RefreshToken, false)
	require.NoError(t, err)

	t.Run("valid access token", func(t *testing.T) {
		res := s.Introspect(ctx, pair.AccessToken, "")
		require.True(t, res.Valid)
		require.Empty(t, res.Reason)
		require.Equal(t, "c1", res.Claims.ClientID)
		require.Equal(t, domain.KindAccess, res.Claims.Kind)
	})

	t.Run("valid refresh token", func(t *testing.T) {
		res := s.Introspect(ctx, pair.RefreshToken, jwtx.TypeRefresh)
		require.True(t, res.Valid)
		require.Equal(t, domain.KindRefresh, res.Claims.Kind)
	})

	reasons := []struct {
		name  string
		token string
		typ   jwtx.TokenType
		want  string
	}{
		{"missing", "", jwtx.TypeAccess, ReasonMissingToken},
		{"malformed", "abc", jwtx.TypeAccess, ReasonMalformed},
		{"wrong kind", pair.RefreshToken, jwtx.TypeAccess, ReasonWrongKind},
		{"revoked refresh", revoked.RefreshToken, jwtx.TypeRefresh, ReasonRevoked},
	}
	for _, tt := range reasons {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Introspect(ctx, tt.token, tt.typ)
			require.False(t, res.Valid)
			require.Equal(t, tt.want, res.Reason)
		})
	}

	t.Run("tampered", func(t *testing.T) {
		res := s.Introspect(ctx, pair.AccessToken+"x", jwtx.TypeAccess)
		require.False(t, res.Valid)
		require.Equal(t, ReasonBadSignature, res.Reason)
	})

	t.Run("not in registry", func(t *testing.T) {
		other := *s
		other.Store = memory.NewStore()
		res := other.Introspect(ctx, pair.RefreshToken, jwtx.TypeRefresh)
		require.Equal(t, ReasonNotFound, res.Reason)
	})

	t.Run("expired", func(t *testing.T) {
		clk.Advance(s.AccessTTL)
		res := s.Introspect(ctx, pair.AccessToken, jwtx.TypeAccess)
		require.False(t, res.Valid)
		require.Equal(t, ReasonExpired, res.Reason)
	})
}

func TestCleanupAndListActive(t *testing.T) {
	ctx := context.Background()
	s, clk := newTestService(t)

	_, err := s.Grant(ctx, "c1", "c1-secret", GrantClientCredentials)
	require.NoError(t, err)

	clk.Advance(20 * 24 * time.Hour)
	live, err := s.Grant(ctx, "c2", "c2-secret", GrantClientCredentials)
	require.NoError(t, err)

	clk.Advance(15 * 24 * time.Hour)

	active, err := s.ListActive(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, active.Swept)
	require.Len(t, active.Entries, 1)
	require.Equal(t, "c2", active.Entries[0].ClientID)

	n, err := s.Cleanup(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	// Sweeping never changes what a live token can do.
	_, err = s.Refresh(ctx, live.RefreshToken, GrantRefreshToken)
	require.NoError(t, err)
}
