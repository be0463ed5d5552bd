package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"refugee.info/greece-web/internal/cache"
	"refugee.info/greece-web/internal/config"
	"refugee.info/greece-web/internal/directus"
	"refugee.info/greece-web/internal/i18n"
	"refugee.info/greece-web/internal/locale"
	"refugee.info/greece-web/internal/observability"
	"refugee.info/greece-web/internal/pages"
	"refugee.info/greece-web/internal/zendesk"
)

const (
	cacheNamespace  = "greece-web:pages"
	shutdownTimeout = 10 * time.Second
	upstreamTimeout = 10 * time.Second
)

func main() {
	var envFile string
	flag.StringVar(&envFile, "env", ".env", "dotenv file read after the process environment")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, envFile); err != nil {
		fmt.Fprintf(os.Stderr, "web: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, envFile string) error {
	cfg, err := config.Load(ctx, config.WithEnvFile(envFile))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.store.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           newRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening",
			zap.String("addr", srv.Addr),
			zap.Bool("dev", cfg.Web.Dev),
			zap.Bool("zendesk_remote", cfg.Zendesk.URL != ""),
			zap.Bool("directus", cfg.Directus.URL != ""),
			zap.Bool("use_sections", cfg.Site.UseSections),
			zap.Duration("revalidate", cfg.Cache.Revalidate))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if cfg.Cache.Warm {
		go a.warm(ctx, srv.Handler)
	}

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newApp wires the upstream clients, the page cache and the templates.
func newApp(cfg config.Config, logger *zap.Logger) (*app, error) {
	bundle, err := i18n.Load(cfg.Zendesk.LocalesDir, locale.DefaultCode, locale.Codes())
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}

	httpClient := &http.Client{Timeout: upstreamTimeout}
	hc := zendesk.NewClient(zendesk.Options{
		BaseURL:    cfg.Zendesk.URL,
		MappedURL:  cfg.Zendesk.MappedURL,
		AuthHeader: cfg.Zendesk.AuthHeader(),
		HTTPClient: httpClient,
		ContentDir: cfg.Zendesk.ContentDir,
		Dynamic:    bundle,
	})
	dir := directus.NewClient(cfg.Directus.URL, cfg.Directus.Token, httpClient)

	store, err := cache.New(cfg.Cache.Addr, cacheNamespace, cfg.Cache.Revalidate)
	if err != nil {
		return nil, fmt.Errorf("page cache: %w", err)
	}

	assembler := pages.NewAssembler(hc, dir, pages.Options{
		Site:               cfg.Site,
		CountryID:          cfg.Directus.CountryID,
		GoogleAnalyticsIDs: cfg.Analytics.GoogleAnalyticsIDs,
		Version:            cfg.Web.Version,
	}, logger)

	v, err := newViews(cfg.Web.TemplatesDir, cfg.Web.Dev)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		assembler: assembler,
		views:     v,
		store:     store,
		health:    newHealth(hc, dir, store),
	}, nil
}
