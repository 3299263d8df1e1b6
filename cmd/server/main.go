package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/p-n-ai/cs-notes/internal/analytics"
	"github.com/p-n-ai/cs-notes/internal/content"
	"github.com/p-n-ai/cs-notes/internal/platform/cache"
	"github.com/p-n-ai/cs-notes/internal/platform/config"
	"github.com/p-n-ai/cs-notes/internal/platform/database"
	"github.com/p-n-ai/cs-notes/internal/platform/logging"
	"github.com/p-n-ai/cs-notes/internal/web"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stdout, cfg.Log)
	if err != nil {
		slog.Error("failed to build logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	catalog, err := loadCatalog(cfg.Content)
	if err != nil {
		slog.Error("failed to load content", "error", err)
		os.Exit(1)
	}

	backends, err := openDeps(ctx, cfg)
	if err != nil {
		slog.Error("failed to connect dependencies", "error", err)
		os.Exit(1)
	}
	defer backends.close()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      newHandler(cfg, catalog, backends),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting",
			"addr", srv.Addr,
			"env", cfg.Server.Env,
			"health", "/api/health",
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func newHandler(cfg *config.Config, catalog *content.Catalog, d *deps) http.Handler {
	return web.New(web.Options{
		Catalog:    catalog,
		Events:     d.events,
		StaticDir:  cfg.Server.StaticDir,
		Production: cfg.IsProduction(),
		Checks:     d.checks,
	}).Handler()
}

func loadCatalog(cfg config.ContentConfig) (*content.Catalog, error) {
	if cfg.Dir != "" {
		return content.LoadDir(cfg.Dir)
	}
	return content.Default()
}

// deps are the optional analytics backends and their readiness checks.
type deps struct {
	events  analytics.EventLogger
	checks  []web.ReadinessCheck
	closers []func()
}

func (d *deps) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// openDeps connects to every configured backend. Unset URLs leave the
// matching sink out.
func openDeps(ctx context.Context, cfg *config.Config) (*deps, error) {
	d := &deps{}
	var sinks []analytics.EventLogger

	if cfg.Database.URL != "" {
		db, err := database.Open(ctx, database.Options{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, db.Close)
		d.checks = append(d.checks, db)

		pg := analytics.NewPostgresEventLogger(db.Pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			d.close()
			return nil, err
		}
		sinks = append(sinks, pg)
		slog.Info("postgres analytics sink enabled")
	}

	if cfg.Cache.URL != "" {
		c, err := cache.Open(ctx, cfg.Cache.URL, cfg.Analytics.Stream)
		if err != nil {
			d.close()
			return nil, err
		}
		d.closers = append(d.closers, func() { _ = c.Close() })
		d.checks = append(d.checks, c)
		sinks = append(sinks, analytics.NewRedisStreamLogger(c.Client, c.Stream))
		slog.Info("redis analytics sink enabled", "stream", c.Stream)
	}

	if cfg.Analytics.Enabled {
		d.events = analytics.Combine(sinks...)
	} else {
		d.events = analytics.NopEventLogger{}
	}
	return d, nil
}
