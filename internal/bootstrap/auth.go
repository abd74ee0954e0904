package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/medisys/reports-ui-api/config"
	"github.com/medisys/reports-ui-api/internal/adapters/authroles"
	"github.com/medisys/reports-ui-api/internal/adapters/cognito"
	"github.com/medisys/reports-ui-api/internal/adapters/devauth"
	redisadapter "github.com/medisys/reports-ui-api/internal/adapters/redis"
	"github.com/medisys/reports-ui-api/internal/ports"
	"github.com/medisys/reports-ui-api/internal/service"
)

// AuthComponents bundles the session service with the mode-specific extras
// the HTTP layer wires in: the hosted UI URL builder (hosted mode) and the
// local token minter (mock mode).
type AuthComponents struct {
	Sessions *service.SessionService
	Hosted   ports.HostedUI
	Minter   *devauth.Provider
}

// AuthDeps groups dependencies for building the auth components.
type AuthDeps struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuth creates the session service based on the configured auth mode.
func BuildAuth(ctx context.Context, deps AuthDeps) (AuthComponents, error) {
	if deps.RedisClient == nil {
		return AuthComponents{}, fmt.Errorf("auth requires a redis client")
	}

	tokens := redisadapter.NewTokenStore(deps.RedisClient)
	roles := authroles.NewDefaultMapper()

	switch deps.Auth.Mode {
	case config.AuthModeMock:
		return buildMockAuth(deps, tokens, roles)
	case config.AuthModeHosted:
		return buildHostedAuth(ctx, deps, tokens, roles)
	default:
		return AuthComponents{}, fmt.Errorf("unknown auth mode %q", deps.Auth.Mode)
	}
}

func buildMockAuth(
	deps AuthDeps,
	tokens ports.TokenStore,
	roles ports.RoleMapper,
) (AuthComponents, error) {
	minter, err := devauth.NewProvider(devauth.Config{
		SubjectID:       deps.Auth.DevAuth.SubjectID,
		Email:           deps.Auth.DevAuth.Email,
		Name:            deps.Auth.DevAuth.Name,
		Groups:          deps.Auth.DevAuth.Groups,
		ClinicID:        deps.Auth.DevAuth.ClinicID,
		SessionDuration: deps.Auth.DevAuth.SessionDuration,
	})
	if err != nil {
		return AuthComponents{}, fmt.Errorf("build dev auth provider: %w", err)
	}

	sessions := service.NewSessionService(service.SessionServiceOptions{
		Decoder: cognito.NewDecoder(),
		Tokens:  tokens,
		Roles:   roles,
		Logger:  deps.Logger,
	})

	return AuthComponents{Sessions: sessions, Minter: minter}, nil
}

func buildHostedAuth(
	ctx context.Context,
	deps AuthDeps,
	tokens ports.TokenStore,
	roles ports.RoleMapper,
) (AuthComponents, error) {
	hosted := deps.Auth.Hosted
	prov, err := cognito.NewProvider(ctx, cognito.ProviderConfig{
		ClientID:           hosted.ClientID,
		HostedBaseURL:      hosted.BaseURL,
		RedirectURL:        hosted.RedirectURL,
		Scope:              hosted.Scope,
		SignoutRedirectURL: hosted.SignoutRedirectURL,
		DiscoveryURL:       hosted.DiscoveryURL,
	})
	if err != nil {
		return AuthComponents{}, fmt.Errorf("build identity provider: %w", err)
	}

	sessions := service.NewSessionService(service.SessionServiceOptions{
		Decoder: prov,
		Tokens:  tokens,
		Roles:   roles,
		Logger:  deps.Logger,
	})

	return AuthComponents{Sessions: sessions, Hosted: prov}, nil
}
