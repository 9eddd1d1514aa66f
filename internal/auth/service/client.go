package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aussiebroadwan/mcauth/internal/auth/domain"
	"github.com/aussiebroadwan/mcauth/pkg/cryptox"
)

var (
	ErrClientNotFound    = errors.New("client not found")
	ErrInvalidClientSpec = errors.New("invalid client record")
)

// ClientRegistry is the read-only set of clients allowed to request tokens.
type ClientRegistry struct {
	byID    map[string]domain.Client
	ordered []domain.Client
}

// NewClientRegistry validates clients and indexes them by id. Every client
// needs an id, a secret hash in a supported format and only catalogue
// permissions.
func NewClientRegistry(clients []domain.Client) (*ClientRegistry, error) {
	r := &ClientRegistry{byID: make(map[string]domain.Client, len(clients))}

	for _, c := range clients {
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" {
			return nil, fmt.Errorf("%w: empty id", ErrInvalidClientSpec)
		}
		if _, dup := r.byID[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidClientSpec, c.ID)
		}
		if err := cryptox.ValidateHash(c.SecretHash); err != nil {
			return nil, fmt.Errorf("%w: client %q: %v", ErrInvalidClientSpec, c.ID, err)
		}
		for _, p := range c.Permissions {
			if !domain.IsKnownPermission(p) {
				return nil, fmt.Errorf("%w: client %q: unknown permission %q", ErrInvalidClientSpec, c.ID, p)
			}
		}
		if c.Name == "" {
			c.Name = c.ID
		}
		c.Permissions = slices.Clone(c.Permissions)

		r.byID[c.ID] = c
		r.ordered = append(r.ordered, c)
	}

	slices.SortFunc(r.ordered, func(a, b domain.Client) int { return strings.Compare(a.ID, b.ID) })
	return r, nil
}

// Lookup returns the client registered under id.
func (r *ClientRegistry) Lookup(id string) (domain.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return domain.Client{}, ErrClientNotFound
	}
	return c, nil
}

// VerifySecret checks secret against the client's stored hash in constant
// time.
func (r *ClientRegistry) VerifySecret(c domain.Client, secret string) bool {
	return cryptox.VerifySecret(secret, c.SecretHash) == nil
}

// List returns every client ordered by id.
func (r *ClientRegistry) List() []domain.Client {
	return slices.Clone(r.ordered)
}

// Len is the number of registered clients.
func (r *ClientRegistry) Len() int { return len(r.ordered) }
