package httpx

import "context"

type ctxKey string

const (
	CtxKeySubject   ctxKey = "subject"
	CtxKeyScopes    ctxKey = "scopes"
	CtxKeyPrincipal ctxKey = "principal"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	// Subject identifies the caller, a client id for machine tokens.
	Subject string

	// Scopes are the permissions granted to the caller.
	Scopes []string

	// Details carries the verifier's own claims type, if it wants to expose it.
	Details any
}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	ctx = context.WithValue(ctx, CtxKeySubject, p.Subject)
	ctx = context.WithValue(ctx, CtxKeyScopes, p.Scopes)
	ctx = context.WithValue(ctx, CtxKeyPrincipal, p)
	return ctx
}

// PrincipalFromContext returns the caller set by AuthnMiddleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(CtxKeyPrincipal).(Principal)
	return p, ok
}

// ScopesFromContext returns the caller's scopes, or nil when unauthenticated.
func ScopesFromContext(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyScopes).([]string); ok {
		return v
	}
	return nil
}
