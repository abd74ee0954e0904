package bootstrap

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/medisys/reports-ui-api/config"
	"github.com/medisys/reports-ui-api/internal/normalize"
	"github.com/medisys/reports-ui-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth    AuthComponents
	Reports *service.ReportService
	Users   *service.UserService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	Auth   AuthComponents
	API    ReportsAPIComponents
	Logger *slog.Logger
}

// NewServices wires the service layer from its adapters.
func NewServices(deps *ServiceDeps) ServiceContainer {
	normalizer := normalize.New()

	reports := service.NewReportService(service.ReportServiceOptions{
		API:        deps.API.Client,
		Uploader:   deps.API.Uploader,
		Normalizer: normalizer,
		Logger:     deps.Logger,
	})
	users := service.NewUserService(service.UserServiceOptions{
		API:        deps.API.Client,
		Normalizer: normalizer,
		Logger:     deps.Logger,
	})

	return ServiceContainer{
		Auth:    deps.Auth,
		Reports: reports,
		Users:   users,
	}
}

// RunConfig groups dependencies for running the service until shutdown.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunWithShutdown starts the HTTP server and blocks until an interrupt or
// termination signal arrives, then drains in-flight requests.
func RunWithShutdown(cfg *RunConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   cfg.Logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return ShutdownHTTPServer(ShutdownConfig{
			Context: context.Background(),
			Server:  server,
			Timeout: cfg.Config.HTTP.ShutdownTimeout,
			Logger:  cfg.Logger,
		})
	})

	return g.Wait()
}
