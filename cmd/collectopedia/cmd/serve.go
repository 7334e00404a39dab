package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/collectopedia/internal/api/handlers"
	"github.com/donaldgifford/collectopedia/internal/api/middleware"
	"github.com/donaldgifford/collectopedia/internal/config"
	"github.com/donaldgifford/collectopedia/internal/engine"
	"github.com/donaldgifford/collectopedia/internal/store"
	"github.com/donaldgifford/collectopedia/internal/tracing"
)

const pricesPath = "/api/v1/prices"

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and refresh scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdownTracing, err := tracing.Setup(ctx, tracing.Settings{
			ServiceName:    cfg.Tracing.ServiceName,
			ServiceVersion: Version,
			Endpoint:       cfg.Tracing.Endpoint,
			Insecure:       cfg.Tracing.Insecure,
			SampleRatio:    cfg.Tracing.SampleRatio,
		})
		if err != nil {
			return fmt.Errorf("setting up tracing: %w", err)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := shutdownTracing(flushCtx); err != nil {
				log.Warn("flushing traces", "error", err)
			}
		}()
		log.Info("tracing enabled", "endpoint", cfg.Tracing.Endpoint, "sample_ratio", cfg.Tracing.SampleRatio)
	}

	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	deps := buildPricing(cfg, log)
	refresher := newRefresher(cfg, s, deps.aggregator, log)

	e := newServer(cfg, log, s, deps, refresher)

	var sched *engine.Scheduler
	if cfg.Refresh.Enabled {
		sched, err = engine.NewScheduler(refresher, cfg.Refresh.Interval, log)
		if err != nil {
			return fmt.Errorf("creating scheduler: %w", err)
		}
		sched.Start()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "refresh_enabled", cfg.Refresh.Enabled)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	if sched != nil {
		select {
		case <-sched.Stop().Done():
		case <-shutdownCtx.Done():
			log.Warn("refresh still running at shutdown deadline")
		}
	}

	log.Info("server stopped")
	return nil
}

// newServer builds the echo instance with every route and middleware wired.
func newServer(
	cfg *config.Config,
	log *slog.Logger,
	s store.Store,
	deps *pricingDeps,
	refresher *engine.Refresher,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(
		middleware.Recovery(log),
		middleware.RequestLog(log),
		middleware.Metrics(),
		middleware.Tracing(),
	)
	if cfg.RateLimit.Requests > 0 {
		limiter := middleware.NewSlidingWindowStore(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		e.Use(middleware.RateLimit(limiter, pricesPath))
	}

	health := handlers.NewHealthHandler(map[string]handlers.Pinger{"database": s})
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Collectopedia API", Version))

	handlers.RegisterPriceRoutes(api, handlers.NewPricesHandler(
		deps.aggregator,
		handlers.WithStrictRegions(cfg.Pricing.StrictRegions),
	))
	handlers.RegisterItemRoutes(api, handlers.NewItemsHandler(s))
	handlers.RegisterRefreshRoutes(api, handlers.NewRefreshHandler(refresher))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(deps.limiters...))

	return e
}
