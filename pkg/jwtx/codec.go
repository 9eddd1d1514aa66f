package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec signs and verifies HS256 tokens with a single process-wide secret.
// It is safe for concurrent use.
type Codec struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// CodecOptions configures a Codec.
type CodecOptions struct {
	// Secret is the HMAC key. Required.
	Secret []byte

	// Issuer is written to and required in the "iss" claim. Empty disables
	// the check.
	Issuer string

	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

// NewCodec builds a codec from opts.
func NewCodec(opts CodecOptions) (*Codec, error) {
	if len(opts.Secret) == 0 {
		return nil, ErrWeakSecret
	}

	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	secret := make([]byte, len(opts.Secret))
	copy(secret, opts.Secret)

	return &Codec{secret: secret, issuer: opts.Issuer, now: now}, nil
}

// Issuer returns the configured issuer.
func (c *Codec) Issuer() string { return c.issuer }

// Encode signs claims. An empty issuer is filled with the codec's own.
func (c *Codec) Encode(claims Claims) (string, error) {
	if claims.Issuer == "" {
		claims.Issuer = c.issuer
	}
	if claims.Permissions == nil {
		claims.Permissions = []string{}
	}
	if err := claims.validateShape(); err != nil {
		return "", err
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Decode verifies token against the codec clock and the expected type.
func (c *Codec) Decode(token string, want TokenType) (Claims, error) {
	return c.DecodeAt(token, want, c.now())
}

// DecodeAt verifies token as of now. A token is expired once now reaches exp,
// compared in whole seconds with no leeway.
func (c *Codec) DecodeAt(token string, want TokenType, now time.Time) (Claims, error) {
	return c.decode(token, want,
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
}

// DecodeIgnoringExpiry verifies signature, issuer and type but not exp. It is
// meant for revocation, where an expired token must still identify its
// client.
func (c *Codec) DecodeIgnoringExpiry(token string, want TokenType) (Claims, error) {
	return c.decode(token, want, jwt.WithoutClaimsValidation())
}

func (c *Codec) decode(token string, want TokenType, extra ...jwt.ParserOption) (Claims, error) {
	if token == "" {
		return Claims{}, fmt.Errorf("%w: empty token", ErrMalformed)
	}

	opts := append([]jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}, extra...)
	parser := jwt.NewParser(opts...)

	var claims Claims
	_, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}

	if err := claims.ValidateIssuer(c.issuer); err != nil {
		return Claims{}, err
	}
	if claims.ClientID == "" || claims.ID == "" {
		return Claims{}, fmt.Errorf("%w: missing client_id or jti", ErrInvalidClaim)
	}
	if claims.Type != want {
		return Claims{}, fmt.Errorf("%w: got %q, want %q", ErrWrongKind, claims.Type, want)
	}

	return claims, nil
}

// classify folds the jwt library's errors into ours.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing), errors.Is(err, jwt.ErrTokenInvalidClaims):
		return fmt.Errorf("%w: %v", ErrInvalidClaim, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
