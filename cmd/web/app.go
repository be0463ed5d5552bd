package main

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"refugee.info/greece-web/internal/cache"
	"refugee.info/greece-web/internal/config"
	mw "refugee.info/greece-web/internal/middleware"
	"refugee.info/greece-web/internal/pages"
	"refugee.info/greece-web/internal/status"
)

// app carries the dependencies of the HTTP handlers.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	assembler *pages.Assembler
	views     *views
	store     cache.Store
	health    *status.Checker
}

// newRouter mounts every route. Localized pages share the locale and page
// cache middleware.
func newRouter(a *app) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; only deploy behind a proxy that sets it.
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(a.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(mw.HTMX)

	r.NotFound(a.notFound)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/status", a.status)
	r.Get("/sitemap.xml", a.sitemap)
	r.Handle("/assets/*", mw.AssetsWithCache("/assets", filepath.Join(a.cfg.Web.PublicDir, "assets")))

	r.With(mw.VaryLocale).Get("/", a.rootRedirect)
	r.With(mw.VaryLocale).Get("/locale-select", a.localeSelect)

	r.Route("/{locale}", func(r chi.Router) {
		r.Use(mw.PathLocale(http.HandlerFunc(a.notFound)))
		r.Use(cache.Pages(a.store))
		r.Get("/", a.home)
		r.Get("/sections/{section}", a.section)
		r.Get("/sections/{section}/articles", a.sectionArticles)
		r.Get("/categories/{category}", a.category)
	})
	return r
}
