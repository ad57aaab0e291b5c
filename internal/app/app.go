package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"dateTracker/internal/config"
	"dateTracker/internal/handlers"
	"dateTracker/internal/logger"
	"dateTracker/internal/metrics"
	"dateTracker/internal/service"
	"dateTracker/internal/worker"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config     *config.Config
	server     *http.Server
	handler    http.Handler
	repository service.TaskRepository
	service    *service.TaskService
	metrics    *metrics.Metrics
	monitor    *worker.StoreMonitor
	now        func() time.Time
	shutdowns  []func()
}

type Option func(*App)

// WithRepository skips OpenStore and serves from repo.
func WithRepository(repo service.TaskRepository) Option {
	return func(a *App) {
		a.repository = repo
	}
}

// WithClock replaces time.Now for the date and health endpoints.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

func New(cfg *config.Config, options ...Option) *App {
	a := &App{
		config:    cfg,
		now:       time.Now,
		shutdowns: make([]func(), 0),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// Init wires the store, service, handlers and HTTP server. The logger is
// expected to be initialised by the caller.
func (a *App) Init(ctx context.Context) error {
	if a.repository == nil {
		repo, closeStore, err := OpenStore(ctx, a.config)
		if err != nil {
			return fmt.Errorf("open task store: %w", err)
		}
		a.repository = repo
		a.shutdowns = append(a.shutdowns, closeStore)
	}

	a.metrics = metrics.New()
	a.service = service.NewTaskService(a.repository)
	if interval := a.config.App.StoreCheckInterval; interval > 0 {
		a.monitor = worker.NewStoreMonitor(a.repository, a.metrics, interval)
	}

	development := a.config.IsDevelopment()
	a.handler = NewRouter(RouterDeps{
		Tasks:          handlers.NewTaskHandler(a.service, a.metrics, development),
		Dates:          handlers.NewDateHandler(a.now, a.metrics, development),
		System:         handlers.NewSystemHandler(a.service, a.now),
		Metrics:        a.metrics,
		Development:    development,
		RequestTimeout: a.config.Server.RequestTimeout,
		RateLimitRPM:   a.config.Server.RateLimitRPM,
	})

	a.server = &http.Server{
		Addr:              a.config.GetServerAddr(),
		Handler:           otelhttp.NewHandler(a.handler, "dateTracker"),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}
	return nil
}

// Handler exposes the routed handler without the tracing wrapper.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves until ctx ends or SIGINT/SIGTERM arrives, then drains in-flight
// requests within the shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	if a.server == nil {
		return errors.New("app is not initialised")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("App: server is running",
			zap.String("addr", a.server.Addr),
			zap.String("health", "/health"),
			zap.String("api", "/api"),
			zap.String("repository", a.config.Repository.Type))

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	if a.monitor != nil {
		g.Go(func() error {
			a.monitor.Start(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("App: shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	a.Shutdown()
	return err
}

// Shutdown releases resources in reverse order of acquisition.
func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}
