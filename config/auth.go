package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeHosted uses the hosted identity provider login page.
	AuthModeHosted AuthMode = "hosted"
	// AuthModeMock mints local identity tokens (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "hosted", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: hosted, mock)", v)
	}
}

// HostedUIConfig contains hosted identity provider configuration.
type HostedUIConfig struct {
	ClientID           string `env:"CLIENT_ID"`
	BaseURL            string `env:"BASE_URL"`
	RedirectURL        string `env:"REDIRECT_URL"         envDefault:"http://localhost:8080/"`
	Scope              string `env:"SCOPE"                envDefault:"openid profile email"`
	SignoutRedirectURL string `env:"SIGNOUT_REDIRECT_URL"`
	// DiscoveryURL enables token signature verification via the provider's
	// OIDC discovery document. Leave empty to decode without verification.
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	SubjectID       string        `env:"SUBJECT_ID"       envDefault:"dev-user"`
	Email           string        `env:"EMAIL"            envDefault:"dev@example.com"`
	Name            string        `env:"NAME"             envDefault:"Dev User"`
	Groups          []string      `env:"GROUPS"           envDefault:"MedisysAdmin"    envSeparator:";"`
	ClinicID        string        `env:"CLINIC_ID"        envDefault:""`
	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"8h"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"hosted"`

	// Hosted identity provider configuration (used when Mode=hosted).
	Hosted HostedUIConfig `envPrefix:"HOSTED_UI_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}
