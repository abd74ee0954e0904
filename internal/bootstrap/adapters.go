package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medisys/reports-ui-api/config"
	"github.com/medisys/reports-ui-api/internal/adapters/reportsapi"
)

// ConnectRedis establishes a connection to the token store backend.
//
//nolint:ireturn // returning redis.UniversalClient keeps cluster support open without touching callers.
func ConnectRedis(cfg config.RedisConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	if logger != nil {
		logger.Info("redis connected", "addr", cfg.Addr, "db", cfg.DB)
	}

	return client, nil
}

// ReportsAPIComponents groups the upstream API client and the direct uploader.
type ReportsAPIComponents struct {
	Client   *reportsapi.Client
	Uploader *reportsapi.Uploader
}

// BuildReportsAPI creates the reports API client and file uploader.
func BuildReportsAPI(cfg config.APIConfig) (ReportsAPIComponents, error) {
	client, err := reportsapi.NewClient(reportsapi.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return ReportsAPIComponents{}, fmt.Errorf("build reports API client: %w", err)
	}

	return ReportsAPIComponents{
		Client:   client,
		Uploader: reportsapi.NewUploader(cfg.UploadTimeout),
	}, nil
}
