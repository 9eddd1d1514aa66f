package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aussiebroadwan/mcauth/pkg/cryptox"
)

// MinSecretLength is the shortest signing secret accepted outside dev.
const MinSecretLength = 32

var ErrWeakSecret = errors.New("signing secret too short")

// LoadSigningSecret resolves the HS256 secret from AUTH_JWT_SECRET or the
// file named by AUTH_JWT_SECRET_FILE. In dev a random secret is generated
// when none is configured; generated reports that case.
func LoadSigningSecret(cfg Config) (secret []byte, generated bool, err error) {
	value := cfg.JWTSecret

	if value == "" && cfg.JWTSecretFile != "" {
		raw, err := os.ReadFile(cfg.JWTSecretFile)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read secret file: %w", err)
		}
		value = strings.TrimSpace(string(raw))
	}

	if value == "" && cfg.IsDev() {
		value, err = cryptox.RandomSecret(cryptox.SecretSize)
		if err != nil {
			return nil, false, fmt.Errorf("failed to generate dev secret: %w", err)
		}
		return []byte(value), true, nil
	}

	if len(value) < MinSecretLength && !cfg.IsDev() {
		return nil, false, fmt.Errorf("%w: need at least %d characters in %s", ErrWeakSecret, MinSecretLength, cfg.Env)
	}
	return []byte(value), false, nil
}
