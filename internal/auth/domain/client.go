package domain

import "slices"

// Client is a registered machine client. Records are loaded once at startup
// and never mutated.
type Client struct {
	ID          string   `json:"client_id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	SecretHash  string   `json:"-" yaml:"secret_hash"`
	Permissions []string `json:"permissions" yaml:"permissions"`
}

// HasPermission reports whether p was granted to the client.
func (c Client) HasPermission(p string) bool {
	return slices.Contains(c.Permissions, p)
}
