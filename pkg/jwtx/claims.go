package jwtx

import (
	"fmt"
	"slices"
	"time"

	"github.com/aussiebroadwan/mcauth/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs for the client-credentials flow. Services override them
// through configuration.
const (
	DefaultAccessTokenTTL  = 2 * time.Hour
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// TokenType discriminates access from refresh tokens. It is carried in the
// "type" claim and both kinds are signed with the same key, so every decode
// names the type it expects.
type TokenType string

const (
	TypeAccess  TokenType = "access_token"
	TypeRefresh TokenType = "refresh_token"
)

// ParseTokenType accepts the wire values plus the short forms used in
// request bodies. An empty string means access.
func ParseTokenType(s string) (TokenType, error) {
	switch s {
	case "", "access", string(TypeAccess):
		return TypeAccess, nil
	case "refresh", string(TypeRefresh):
		return TypeRefresh, nil
	default:
		return "", fmt.Errorf("%w: unknown token type %q", ErrInvalidClaim, s)
	}
}

func (t TokenType) Valid() bool { return t == TypeAccess || t == TypeRefresh }

// Claims are the signed payload of both token kinds.
type Claims struct {
	jwt.RegisteredClaims

	// Client the token was issued to.
	ClientID string `json:"client_id"`

	// Permission strings granted to the client, e.g. "contacts:read".
	Permissions []string `json:"permissions"`

	Type TokenType `json:"type"`
}

// NewClaims builds claims of the given type issued at now. The jti is a ULID
// stamped with now, and for refresh tokens it doubles as the registry key.
func NewClaims(typ TokenType, clientID string, permissions []string, issuer string, ttl time.Duration, now time.Time) Claims {
	perms := make([]string, len(permissions))
	copy(perms, permissions)

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.NewAt(now).String(),
		},
		ClientID:    clientID,
		Permissions: perms,
		Type:        typ,
	}
}

// HasPermission reports whether p was granted.
func (c *Claims) HasPermission(p string) bool {
	return slices.Contains(c.Permissions, p)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// validateShape enforces the invariants every encoded token must hold.
func (c *Claims) validateShape() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: client_id is empty", ErrInvalidClaim)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidClaim, c.Type)
	}
	if c.IssuedAt == nil || c.ExpiresAt == nil {
		return fmt.Errorf("%w: iat and exp are required", ErrInvalidClaim)
	}
	if !c.ExpiresAt.After(c.IssuedAt.Time) {
		return fmt.Errorf("%w: exp must be after iat", ErrInvalidClaim)
	}
	if c.ID == "" {
		return fmt.Errorf("%w: jti is empty", ErrInvalidClaim)
	}
	return nil
}
