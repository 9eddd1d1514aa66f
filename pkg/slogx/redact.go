package slogx

import (
	"log/slog"

	"github.com/aussiebroadwan/mcauth/pkg/cryptox"
)

// Token logs a short fingerprint of a bearer or refresh token under key.
// Raw token strings never reach the log.
func Token(key, token string) slog.Attr {
	if token == "" {
		return slog.String(key, "")
	}
	return slog.String(key, "fp:"+cryptox.Fingerprint(token))
}
