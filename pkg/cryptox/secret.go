package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Configuration for Argon2id hashing.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the generated hash
	saltLength  = 16        // Length of the salt
)

// Bounds accepted when reading a stored Argon2id hash. Verification runs on
// unauthenticated requests, so the cost a record can demand is capped.
const (
	maxMemory     = 256 * 1024 // KiB
	maxIterations = 16
	maxKeyLength  = 64
)

var (
	ErrSecretMismatch  = errors.New("cryptox: secret does not match")
	ErrUnsupportedHash = errors.New("cryptox: unsupported secret hash format")
)

// HashSecret generates a PHC-format Argon2id hash string including salt and
// parameters. This is the format cmd/hashsecret writes into clients files.
func HashSecret(secret string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(secret), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// LegacyHash returns the unsalted hex SHA-256 digest of secret. Only kept so
// older client records can be written in tests and tooling.
func LegacyHash(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// VerifySecret compares a plaintext secret against a stored hash. Two formats
// are accepted: PHC Argon2id and 64 hex chars of SHA-256. The comparison is
// constant time in both cases.
func VerifySecret(secret, encodedHash string) error {
	switch {
	case strings.HasPrefix(encodedHash, "$argon2id$"):
		return verifyArgon2id(secret, encodedHash)
	case isLegacyHash(encodedHash):
		want, _ := hex.DecodeString(strings.ToLower(encodedHash))
		got := sha256.Sum256([]byte(secret))
		if subtle.ConstantTimeCompare(got[:], want) == 1 {
			return nil
		}
		return ErrSecretMismatch
	default:
		return ErrUnsupportedHash
	}
}

// ValidateHash reports whether encodedHash is in a format VerifySecret accepts.
func ValidateHash(encodedHash string) error {
	if isLegacyHash(encodedHash) {
		return nil
	}
	if _, err := parseArgon2id(encodedHash); err != nil {
		return err
	}
	return nil
}

func isLegacyHash(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

type argon2Params struct {
	mem   uint32
	iters uint32
	par   uint8
	salt  []byte
	hash  []byte
}

func parseArgon2id(encodedHash string) (argon2Params, error) {
	var p argon2Params

	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return p, fmt.Errorf("%w: expected 6 parts", ErrUnsupportedHash)
	}
	if parts[1] != "argon2id" {
		return p, fmt.Errorf("%w: not argon2id", ErrUnsupportedHash)
	}
	if parts[2] != "v=19" {
		return p, fmt.Errorf("%w: wrong version", ErrUnsupportedHash)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.mem, &p.iters, &p.par); err != nil {
		return p, fmt.Errorf("%w: failed to parse parameters: %v", ErrUnsupportedHash, err)
	}

	switch {
	case p.iters < 1 || p.iters > maxIterations:
		return p, fmt.Errorf("%w: iterations %d out of range", ErrUnsupportedHash, p.iters)
	case p.par < 1:
		return p, fmt.Errorf("%w: parallelism must be at least 1", ErrUnsupportedHash)
	case p.mem < 8*uint32(p.par) || p.mem > maxMemory:
		return p, fmt.Errorf("%w: memory %d KiB out of range", ErrUnsupportedHash, p.mem)
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return p, fmt.Errorf("%w: failed to decode salt: %v", ErrUnsupportedHash, err)
	}
	if p.hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return p, fmt.Errorf("%w: failed to decode hash: %v", ErrUnsupportedHash, err)
	}
	if len(p.hash) == 0 || len(p.hash) > maxKeyLength {
		return p, fmt.Errorf("%w: hash length %d", ErrUnsupportedHash, len(p.hash))
	}

	return p, nil
}

func verifyArgon2id(secret, encodedHash string) error {
	p, err := parseArgon2id(encodedHash)
	if err != nil {
		return err
	}

	computed := argon2.IDKey(
		[]byte(secret),
		p.salt,
		p.iters,
		p.mem,
		p.par,
		uint32(len(p.hash)), // #nosec G115 - at most maxKeyLength
	)

	if subtle.ConstantTimeCompare(computed, p.hash) == 1 {
		return nil
	}
	return ErrSecretMismatch
}
