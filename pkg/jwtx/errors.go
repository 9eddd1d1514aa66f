package jwtx

import "errors"

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrWrongKind    = errors.New("jwtx: wrong token type")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
	ErrWeakSecret   = errors.New("jwtx: signing secret is empty")
)

// ErrorKind is the enumerated outcome of a failed decode.
type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindMalformed    ErrorKind = "malformed"
	KindBadSignature ErrorKind = "bad_signature"
	KindExpired      ErrorKind = "expired"
	KindWrongKind    ErrorKind = "wrong_kind"
)

// ErrorKindOf maps a codec error to its kind. Unknown non-nil errors are
// reported as malformed since they came from untrusted input.
func ErrorKindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidSig):
		return KindBadSignature
	case errors.Is(err, ErrExpired):
		return KindExpired
	case errors.Is(err, ErrWrongKind):
		return KindWrongKind
	default:
		return KindMalformed
	}
}
