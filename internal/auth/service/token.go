package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/mcauth/internal/auth/domain"
	"github.com/aussiebroadwan/mcauth/internal/auth/store"
	"github.com/aussiebroadwan/mcauth/pkg/jwtx"
	"github.com/aussiebroadwan/mcauth/pkg/slogx"
)

const (
	GrantClientCredentials = "client_credentials"
	GrantRefreshToken      = "refresh_token"

	TokenTypeBearer = "Bearer"
)

// Reasons reported by Introspect when a token is not valid.
const (
	ReasonMalformed    = "malformed"
	ReasonBadSignature = "bad_signature"
	ReasonExpired      = "expired"
	ReasonWrongKind    = "wrong_kind"
	ReasonNotFound     = "not_found"
	ReasonRevoked      = "revoked"
	ReasonMissingToken = "missing_token"

	// ReasonUnavailable is only possible with the persistent registry.
	ReasonUnavailable = "registry_unavailable"
)

// TokenService issues, verifies, rotates and revokes token pairs for
// registered clients. Access tokens are verified statelessly; refresh tokens
// are also checked against the registry in Store.
type TokenService struct {
	Clients    *ClientRegistry
	Codec      *jwtx.Codec
	Store      store.Store
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now defaults to time.Now in UTC.
	Now func() time.Time
}

// RevokeResult describes what Revoke changed.
type RevokeResult struct {
	ClientID string
	Count    int
	Message  string
}

// IntrospectResult is the outcome of Introspect. Claims is only set when
// Valid is true and Reason only when it is false.
type IntrospectResult struct {
	Valid  bool
	Claims domain.TokenClaims
	Reason string
}

// ActiveTokens is the registry listing with the number of entries swept
// just before it was taken.
type ActiveTokens struct {
	Entries []domain.RefreshTokenEntry
	Swept   int
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// Grant implements the client_credentials grant.
func (s *TokenService) Grant(
	ctx context.Context,
	clientID, clientSecret, grantType string,
) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	if clientID == "" || clientSecret == "" || grantType == "" {
		return nil, ErrMissingField
	}
	if grantType != GrantClientCredentials {
		return nil, ErrUnsupportedGrant
	}

	client, err := s.Clients.Lookup(clientID)
	if err != nil {
		l.Info("grant rejected: unknown client", slog.String("client_id", clientID))
		return nil, ErrUnknownClient
	}
	if !s.Clients.VerifySecret(client, clientSecret) {
		l.Info("grant rejected: bad client secret", slog.String("client_id", clientID))
		return nil, ErrBadCredentials
	}

	now := s.now()
	pair, entry, err := s.issue(client.ID, client.Permissions, now)
	if err != nil {
		l.Error("failed to issue tokens", "client_id", client.ID, "err", err)
		return nil, err
	}

	if err := s.Store.RefreshTokens().Put(ctx, entry); err != nil {
		l.Error("failed to register refresh token", "client_id", client.ID, "err", err)
		return nil, err
	}

	pair.ClientName = client.Name
	l.Info("tokens issued", "client_id", client.ID, "refresh_jti", entry.TokenID)
	return pair, nil
}

// issue signs a new access and refresh token and builds the registry entry
// for the refresh token. The entry expires with the signed token.
func (s *TokenService) issue(clientID string, permissions []string, now time.Time) (*domain.TokenPair, domain.RefreshTokenEntry, error) {
	issuer := s.Codec.Issuer()

	accessClaims := jwtx.NewClaims(jwtx.TypeAccess, clientID, permissions, issuer, s.accessTTL(), now)
	access, err := s.Codec.Encode(accessClaims)
	if err != nil {
		return nil, domain.RefreshTokenEntry{}, fmt.Errorf("encode access token: %w", err)
	}

	refreshClaims := jwtx.NewClaims(jwtx.TypeRefresh, clientID, permissions, issuer, s.refreshTTL(), now)
	refresh, err := s.Codec.Encode(refreshClaims)
	if err != nil {
		return nil, domain.RefreshTokenEntry{}, fmt.Errorf("encode refresh token: %w", err)
	}

	entry := domain.RefreshTokenEntry{
		TokenID:   refreshClaims.ID,
		ClientID:  clientID,
		CreatedAt: refreshClaims.IssuedAt.Time,
		ExpiresAt: refreshClaims.ExpiresAt.Time,
		Active:    true,
	}

	pair := &domain.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		TokenType:        TokenTypeBearer,
		ExpiresIn:        s.accessTTL(),
		RefreshExpiresIn: s.refreshTTL(),
		Scope:            strings.Join(permissions, " "),
	}
	return pair, entry, nil
}

// VerifyAccess decodes an access token. Failures wrap ErrInvalidToken
// together with the codec error, so errors.Is works for both.
func (s *TokenService) VerifyAccess(ctx context.Context, token string) (domain.TokenClaims, error) {
	claims, err := s.Codec.DecodeAt(token, jwtx.TypeAccess, s.now())
	if err != nil {
		slogx.FromContext(ctx).Debug("access token rejected",
			"kind", jwtx.ErrorKindOf(err), slogx.Token("token", token))
		return domain.TokenClaims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return toDomainClaims(claims), nil
}

// Authorize checks that claims carry permission.
func (s *TokenService) Authorize(claims domain.TokenClaims, permission string) error {
	if !claims.HasPermission(permission) {
		return fmt.Errorf("%w: %s", ErrInsufficientPermission, permission)
	}
	return nil
}

// Refresh exchanges a live refresh token for a new pair and retires the old
// refresh token. Each refresh token can be used once.
func (s *TokenService) Refresh(ctx context.Context, refreshToken, grantType string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	if refreshToken == "" {
		return nil, ErrMissingField
	}
	if grantType != GrantRefreshToken {
		return nil, ErrUnsupportedGrant
	}

	now := s.now()
	claims, err := s.Codec.DecodeAt(refreshToken, jwtx.TypeRefresh, now)
	if err != nil {
		l.Info("refresh rejected: token did not verify", "kind", jwtx.ErrorKindOf(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	old, err := s.liveEntry(ctx, claims, now)
	if err != nil {
		l.Info("refresh rejected", "client_id", claims.ClientID, "jti", claims.ID, "err", err)
		return nil, err
	}

	pair, next, err := s.issue(claims.ClientID, claims.Permissions, now)
	if err != nil {
		l.Error("failed to issue tokens", "client_id", claims.ClientID, "err", err)
		return nil, err
	}

	if err := s.Store.RefreshTokens().Rotate(ctx, next, old.TokenID, now); err != nil {
		switch {
		case errors.Is(err, store.ErrInactive):
			// Another refresh of the same token won the race.
			l.Info("refresh rejected: token already rotated", "client_id", claims.ClientID, "jti", claims.ID)
			return nil, ErrTokenRevoked
		case errors.Is(err, store.ErrNotFound):
			return nil, ErrTokenNotFound
		default:
			l.Error("failed to rotate refresh token", "client_id", claims.ClientID, "err", err)
			return nil, err
		}
	}

	if c, err := s.Clients.Lookup(claims.ClientID); err == nil {
		pair.ClientName = c.Name
	}

	l.Info("tokens refreshed", "client_id", claims.ClientID, "old_jti", old.TokenID, "new_jti", next.TokenID)
	return pair, nil
}

// liveEntry loads the registry entry behind a decoded refresh token and
// checks that it still authorises a refresh.
func (s *TokenService) liveEntry(ctx context.Context, claims jwtx.Claims, now time.Time) (domain.RefreshTokenEntry, error) {
	entry, err := s.Store.RefreshTokens().Get(ctx, claims.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return entry, ErrTokenNotFound
	case err != nil:
		return entry, err
	}

	if entry.ClientID != claims.ClientID {
		return entry, ErrTokenNotFound
	}
	if !entry.Active {
		return entry, ErrTokenRevoked
	}
	if !now.Before(entry.ExpiresAt) {
		return entry, fmt.Errorf("%w: %w", ErrInvalidToken, jwtx.ErrExpired)
	}
	return entry, nil
}

// Revoke deactivates one refresh token, or every refresh token of its client
// when all is set. Expired tokens can still be revoked as long as their
// signature verifies. Revoking twice is not an error.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string, all bool) (*RevokeResult, error) {
	l := slogx.FromContext(ctx)

	if refreshToken == "" {
		return nil, ErrMissingField
	}

	claims, err := s.Codec.DecodeIgnoringExpiry(refreshToken, jwtx.TypeRefresh)
	if err != nil {
		l.Info("revoke rejected: token did not verify", "kind", jwtx.ErrorKindOf(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	now := s.now()
	res := &RevokeResult{ClientID: claims.ClientID}

	if all {
		n, err := s.Store.RefreshTokens().DeactivateAll(ctx, claims.ClientID, now)
		if err != nil {
			l.Error("failed to revoke client refresh tokens", "client_id", claims.ClientID, "err", err)
			return nil, err
		}
		res.Count = n
		res.Message = fmt.Sprintf("Revoked %d refresh tokens for client %s", n, claims.ClientID)
		l.Info("refresh tokens revoked", "client_id", claims.ClientID, "count", n)
		return res, nil
	}

	changed, err := s.Store.RefreshTokens().Deactivate(ctx, claims.ID, now)
	if err != nil {
		l.Error("failed to revoke refresh token", "client_id", claims.ClientID, "err", err)
		return nil, err
	}
	if changed {
		res.Count = 1
	}
	res.Message = "Refresh token revoked successfully"
	l.Info("refresh token revoked", "client_id", claims.ClientID, "jti", claims.ID, "changed", changed)
	return res, nil
}

// Introspect reports whether token is currently valid as the given type. It
// never fails; every problem becomes a reason.
func (s *TokenService) Introspect(ctx context.Context, token string, typ jwtx.TokenType) IntrospectResult {
	if token == "" {
		return IntrospectResult{Reason: ReasonMissingToken}
	}
	if typ == "" {
		typ = jwtx.TypeAccess
	}

	now := s.now()
	claims, err := s.Codec.DecodeAt(token, typ, now)
	if err != nil {
		return IntrospectResult{Reason: string(jwtx.ErrorKindOf(err))}
	}

	if typ == jwtx.TypeRefresh {
		_, err := s.liveEntry(ctx, claims, now)
		switch {
		case err == nil:
		case errors.Is(err, ErrTokenNotFound):
			return IntrospectResult{Reason: ReasonNotFound}
		case errors.Is(err, ErrTokenRevoked):
			return IntrospectResult{Reason: ReasonRevoked}
		case errors.Is(err, jwtx.ErrExpired):
			return IntrospectResult{Reason: ReasonExpired}
		default:
			slogx.FromContext(ctx).Error("introspect: registry lookup failed", "err", err)
			return IntrospectResult{Reason: ReasonUnavailable}
		}
	}

	return IntrospectResult{Valid: true, Claims: toDomainClaims(claims)}
}

// Cleanup removes expired registry entries and returns how many were swept.
func (s *TokenService) Cleanup(ctx context.Context) (int, error) {
	n, err := s.Store.RefreshTokens().SweepExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slogx.FromContext(ctx).Info("expired refresh tokens removed", "count", n)
	}
	return n, nil
}

// ListActive sweeps expired entries and then lists the live ones.
func (s *TokenService) ListActive(ctx context.Context) (*ActiveTokens, error) {
	swept, err := s.Cleanup(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.Store.RefreshTokens().ListActive(ctx, s.now())
	if err != nil {
		return nil, err
	}

	return &ActiveTokens{Entries: entries, Swept: swept}, nil
}

func toDomainClaims(c jwtx.Claims) domain.TokenClaims {
	out := domain.TokenClaims{
		ClientID:    c.ClientID,
		Permissions: c.Permissions,
		Kind:        domain.TokenKind(c.Type),
		TokenID:     c.ID,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}
