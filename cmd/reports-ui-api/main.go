package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/medisys/reports-ui-api/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting reports UI API",
		"auth_mode", cfg.Auth.Mode,
		"api_base_url", cfg.API.BaseURL,
		"addr", cfg.HTTP.Addr,
	)

	redisClient, err := bootstrap.ConnectRedis(cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis failed", "error", cerr)
		}
	}()

	auth, err := bootstrap.BuildAuth(ctx, bootstrap.AuthDeps{
		Auth:        cfg.Auth,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	api, err := bootstrap.BuildReportsAPI(cfg.API)
	if err != nil {
		return err
	}

	services := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config: &cfg,
		Auth:   auth,
		API:    api,
		Logger: logger,
	})

	return bootstrap.RunWithShutdown(&bootstrap.RunConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}
