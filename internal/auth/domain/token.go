package domain

import (
	"slices"
	"strings"
	"time"
)

// TokenKind discriminates the two token kinds.
type TokenKind string

const (
	KindAccess  TokenKind = "access_token"
	KindRefresh TokenKind = "refresh_token"
)

// TokenClaims is the verified content of a token.
type TokenClaims struct {
	ClientID    string
	Permissions []string
	Kind        TokenKind
	IssuedAt    time.Time
	ExpiresAt   time.Time
	TokenID     string
}

// HasPermission reports whether p was granted.
func (c TokenClaims) HasPermission(p string) bool {
	return slices.Contains(c.Permissions, p)
}

// Scope is the space-joined permission list.
func (c TokenClaims) Scope() string { return strings.Join(c.Permissions, " ") }

// TokenPair is what grant and refresh hand back to the caller.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	TokenType        string // always "Bearer"
	ExpiresIn        time.Duration
	RefreshExpiresIn time.Duration
	Scope            string // space-delimited
	ClientName       string
}

// Reasons a refresh token entry stopped being active.
const (
	ReasonRotated = "rotated"
	ReasonRevoked = "revoked"
)

// TokenStatus is the lifecycle state of a refresh token lineage entry.
type TokenStatus string

const (
	StatusActive  TokenStatus = "active"
	StatusRotated TokenStatus = "rotated"
	StatusRevoked TokenStatus = "revoked"
	StatusExpired TokenStatus = "expired"
)

// RefreshTokenEntry is the registry record for an issued refresh token. The
// registry decides liveness: a refresh token is usable only while its entry
// exists, is active and has not reached ExpiresAt.
type RefreshTokenEntry struct {
	TokenID   string
	ClientID  string
	CreatedAt time.Time
	ExpiresAt time.Time
	Active    bool

	Reason        string     // "", ReasonRotated or ReasonRevoked
	ReplacedBy    string     // successor token id when rotated
	DeactivatedAt *time.Time // set together with Reason
}

// Usable reports whether the entry still authorises a refresh at now.
func (e RefreshTokenEntry) Usable(now time.Time) bool {
	return e.Active && now.Before(e.ExpiresAt)
}

// Status reports the entry's lifecycle state at now.
func (e RefreshTokenEntry) Status(now time.Time) TokenStatus {
	switch {
	case !e.Active && e.Reason == ReasonRotated:
		return StatusRotated
	case !e.Active:
		return StatusRevoked
	case !now.Before(e.ExpiresAt):
		return StatusExpired
	default:
		return StatusActive
	}
}

// Deactivate marks the entry inactive and records why.
func (e *RefreshTokenEntry) Deactivate(reason, replacedBy string, now time.Time) {
	e.Active = false
	e.Reason = reason
	e.ReplacedBy = replacedBy
	t := now
	e.DeactivatedAt = &t
}
