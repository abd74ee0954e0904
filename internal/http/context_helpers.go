package httpx

import (
	"context"

	domainauth "github.com/medisys/reports-ui-api/internal/domain/auth"
)

// principalKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type principalKey struct{}

// Principal carries the derived session together with the raw identity token
// that backs it. Handlers forward the token to the reports API client.
type Principal struct {
	Session  domainauth.Session
	RawToken string
}

// SetPrincipalInContext returns a child context that carries the given principal.
// If principal is nil, the original ctx is returned unchanged.
func SetPrincipalInContext(ctx context.Context, p *Principal) context.Context {
	if p == nil {
		return ctx
	}
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipalFromContext returns the principal from context and a boolean indicating presence.
func GetPrincipalFromContext(ctx context.Context) (*Principal, bool) {
	if p, ok := ctx.Value(principalKey{}).(*Principal); ok && p != nil {
		return p, true
	}
	return nil, false
}
