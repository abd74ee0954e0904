package cognito

// Package cognito adapts the hosted identity provider: it decodes the
// compact id_token the browser receives on the login redirect, optionally
// verifies its signature against the provider's published keys, and builds
// the hosted login/logout page URLs.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	domainauth "github.com/medisys/reports-ui-api/internal/domain/auth"
	apperrors "github.com/medisys/reports-ui-api/internal/errors"
)

// Provider implements ports.TokenDecoder and ports.HostedUI.
type Provider struct {
	oauth     *oauth2.Config
	logoutURL string
	parser    *jwt.Parser

	// verifier is non-nil when a discovery URL is configured; it checks the
	// token signature but never expiry, which the session service owns.
	verifier *gooidc.IDTokenVerifier
}

// ProviderConfig holds configuration for the identity provider adapter.
type ProviderConfig struct {
	ClientID string
	// HostedBaseURL is the base URL of the hosted UI
	// (e.g. "https://medisys.auth.us-east-1.amazoncognito.com").
	HostedBaseURL string
	// RedirectURL is the single configured post-login redirect target.
	RedirectURL string
	Scope       string
	// SignoutRedirectURL is where the hosted logout page sends the browser.
	SignoutRedirectURL string
	// DiscoveryURL enables signature verification when set.
	DiscoveryURL string
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
}

// NewProvider creates a new identity provider adapter.
func NewProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.HostedBaseURL == "" {
		return nil, errors.New("hosted UI base URL is required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	base := strings.TrimSuffix(cfg.HostedBaseURL, "/")
	scope := cfg.Scope
	if scope == "" {
		scope = "openid profile email"
	}

	p := &Provider{
		oauth: &oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.RedirectURL,
			Scopes:      strings.Fields(scope),
			Endpoint: oauth2.Endpoint{
				AuthURL:  base + "/login",
				TokenURL: base + "/oauth2/token",
			},
		},
		logoutURL: base + "/logout",
		parser:    jwt.NewParser(),
	}

	if cfg.DiscoveryURL != "" {
		httpClient := cfg.HTTPClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: 30 * time.Second}
		}
		issuer := strings.TrimSuffix(cfg.DiscoveryURL, "/")
		issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
		octx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		op, err := gooidc.NewProvider(octx, issuer)
		if err != nil {
			return nil, fmt.Errorf("oidc discovery: %w", err)
		}
		p.verifier = op.Verifier(&gooidc.Config{
			ClientID: cfg.ClientID,
			// Expiry is enforced by the session service so the stored token
			// can be cleared, not merely rejected.
			SkipExpiryCheck: true,
		})
	}

	if cfg.SignoutRedirectURL != "" {
		q := url.Values{}
		q.Set("client_id", cfg.ClientID)
		q.Set("logout_uri", cfg.SignoutRedirectURL)
		p.logoutURL += "?" + q.Encode()
	}

	return p, nil
}

// LoginURL returns the hosted login page URL for the implicit id_token flow.
func (p *Provider) LoginURL(state string) string {
	return p.oauth.AuthCodeURL(state,
		oauth2.SetAuthURLParam("response_type", "id_token"),
	)
}

// LogoutURL returns the hosted logout URL.
func (p *Provider) LogoutURL() string {
	return p.logoutURL
}

// Decode parses the compact token and maps its claims.
// When a verifier is configured the signature is checked first; any
// verification or parse failure is reported as a MalformedToken error.
// Expiry is surfaced in the claims, never enforced here.
func (p *Provider) Decode(ctx context.Context, rawToken string) (domainauth.Claims, error) {
	if p.verifier != nil {
		if _, err := p.verifier.Verify(ctx, rawToken); err != nil {
			return domainauth.Claims{}, apperrors.Wrap(err, apperrors.ErrCodeMalformedToken, "verify token")
		}
	}

	mapClaims := jwt.MapClaims{}
	if _, _, err := p.parser.ParseUnverified(rawToken, mapClaims); err != nil {
		return domainauth.Claims{}, apperrors.Wrap(err, apperrors.ErrCodeMalformedToken, "decode token")
	}

	return mapToClaims(mapClaims), nil
}

// mapToClaims maps raw token claims into the domain claims shape.
func mapToClaims(mc jwt.MapClaims) domainauth.Claims {
	c := domainauth.Claims{
		SubjectID:  stringClaim(mc, "sub"),
		Name:       stringClaim(mc, "name"),
		Username:   stringClaim(mc, "cognito:username"),
		Email:      stringClaim(mc, "email"),
		Groups:     stringSliceClaim(mc, "cognito:groups"),
		ClinicID:   stringClaim(mc, "custom:clinic_id"),
		ClinicName: stringClaim(mc, "custom:clinic_name"),
	}
	// A missing or unreadable exp leaves ExpiresAt zero, which the session
	// service treats as expired.
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c
}

func stringClaim(mc jwt.MapClaims, key string) string {
	s, _ := mc[key].(string)
	return s
}

func stringSliceClaim(mc jwt.MapClaims, key string) []string {
	raw, ok := mc[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
