package auth

import "context"

// Principal is the authenticated actor for a single operation. It is passed
// explicitly (or via context from the HTTP layer) instead of being attached
// to a mutable request object.
type Principal struct {
	UserID  string
	Name    string
	IsAdmin bool
}

type ctxKey struct{}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFrom extracts the principal stored by WithPrincipal.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}
