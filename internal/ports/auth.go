package ports

// Package ports defines interfaces (hexagonal ports) for auth and upstream
// API behavior. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/medisys/reports-ui-api/internal/domain/auth"
)

// ErrTokenNotFound is returned by TokenStore.Get when no token is stored
// for the session id.
var ErrTokenNotFound = errors.New("token not found")

// TokenDecoder decodes a compact identity token into its claims.
// Implementations may additionally verify the token signature, but they
// never enforce expiry: expiry policy lives in the session service so that
// an expired token can be cleared from storage rather than merely rejected.
type TokenDecoder interface {
	Decode(ctx context.Context, rawToken string) (domainauth.Claims, error)
}

// HostedUI builds URLs for the hosted identity provider pages.
type HostedUI interface {
	// LoginURL returns the hosted login page URL carrying the given state.
	LoginURL(state string) string
	// LogoutURL returns the hosted logout URL, or empty when not configured.
	LogoutURL() string
}

// TokenStore persists the raw identity token keyed by opaque session id.
// It is a pure storage primitive; it holds no expiry policy of its own
// beyond honoring the TTL handed to Set.
type TokenStore interface {
	Get(ctx context.Context, sessionID string) (string, error)
	Set(ctx context.Context, sessionID, rawToken string, ttl time.Duration) error
	Clear(ctx context.Context, sessionID string) error
}

// RoleMapper maps provider groups to application roles.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}
