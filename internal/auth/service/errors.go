package service

import "errors"

// Validation errors. The caller sent an incomplete or unsupported request.
var (
	ErrMissingField     = errors.New("missing_field")
	ErrUnsupportedGrant = errors.New("unsupported_grant_type")
)

// Authentication errors. Handlers report all of these with one generic body.
var (
	ErrUnknownClient  = errors.New("unknown_client")
	ErrBadCredentials = errors.New("bad_credentials")
	ErrInvalidToken   = errors.New("invalid_token")
	ErrTokenNotFound  = errors.New("token_not_found")
	ErrTokenRevoked   = errors.New("token_revoked")
)

// Authorization errors.
var (
	ErrInsufficientPermission = errors.New("insufficient_permission")
)

// IsAuthentication reports whether err is one of the authentication errors.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrUnknownClient) ||
		errors.Is(err, ErrBadCredentials) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrTokenNotFound) ||
		errors.Is(err, ErrTokenRevoked)
}
