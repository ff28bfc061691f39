package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/prajwalbharadwajbm/referralhub/internal/assistant"
	"github.com/prajwalbharadwajbm/referralhub/internal/backend"
	"github.com/prajwalbharadwajbm/referralhub/internal/config"
	"github.com/prajwalbharadwajbm/referralhub/internal/endpoint"
	"github.com/prajwalbharadwajbm/referralhub/internal/logger"
	"github.com/prajwalbharadwajbm/referralhub/internal/metrics"
	"github.com/prajwalbharadwajbm/referralhub/internal/middleware"
	"github.com/prajwalbharadwajbm/referralhub/internal/service"
	"github.com/prajwalbharadwajbm/referralhub/internal/session"
	"github.com/prajwalbharadwajbm/referralhub/internal/wizard"
)

const VERSION = "1.0.0"

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		kitlog.NewLogfmtLogger(os.Stderr).Log("level", "error", "msg", "failed to load config", "err", err)
		os.Exit(1)
	}

	l := logger.New(logger.Config{Service: "referralhub", Version: VERSION, Level: cfg.General.LogLevel})
	if err := run(ctx, cfg, l); err != nil {
		level.Error(l).Log("msg", "server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, l kitlog.Logger) error {
	m := metrics.NewPrometheusMetrics(prometheus.DefaultRegisterer)

	store, err := session.NewHybridStore(cfg.StoreConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	api, err := newBackend(cfg, l)
	if err != nil {
		return err
	}
	api = backend.NewInstrumentedAPI(api, m)

	options, err := wizard.DefaultOptions()
	if err != nil {
		return err
	}
	knowledge, err := assistant.DefaultKnowledge()
	if err != nil {
		return err
	}

	mws := []endpoint.Middleware{
		middleware.InstrumentingMiddleware(m),
		middleware.LoggingMiddleware(l),
	}
	console := endpoint.MakeConsoleEndpoints(
		service.NewConsoleService(api, options, assistant.New(knowledge), m, cfg.Insights.PreviousCount),
		mws...,
	)
	portal := endpoint.MakePortalEndpoints(service.NewPortalService(api, m, cfg.Portal.PublicURL), mws...)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      Routes(cfg, console, portal, store, m, l),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		level.Info(l).Log("msg", "starting server", "addr", srv.Addr, "backend", cfg.Backend.Mode, "env", cfg.General.Env)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	level.Info(l).Log("msg", "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newBackend picks the REST client or, in memory mode, the seeded in-process backend
func newBackend(cfg *config.Config, l kitlog.Logger) (backend.API, error) {
	if cfg.Backend.Mode == config.BackendModeMemory {
		level.Warn(l).Log("msg", "using in-memory backend", "admin", cfg.Backend.AdminEmail)
		return backend.NewMemoryAPI(cfg.MemoryAdmin()), nil
	}
	client, err := backend.NewClient(cfg.ClientConfig())
	if err != nil {
		return nil, err
	}
	return client, nil
}
