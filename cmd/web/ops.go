package main

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"refugee.info/greece-web/internal/cache"
	"refugee.info/greece-web/internal/directus"
	handlersPkg "refugee.info/greece-web/internal/handlers"
	"refugee.info/greece-web/internal/locale"
	"refugee.info/greece-web/internal/nav"
	"refugee.info/greece-web/internal/observability"
	"refugee.info/greece-web/internal/status"
	"refugee.info/greece-web/internal/zendesk"
)

const (
	probeTimeout = 5 * time.Second
	statusTTL    = time.Minute
)

// newHealth probes the help center, the service directory and the page
// cache. Upstreams that are not configured report as disabled.
func newHealth(hc *zendesk.Client, dir *directus.Client, store cache.Store) *status.Checker {
	probes := []status.Probe{{Name: "zendesk"}, {Name: "directus"}, {Name: "cache"}}
	if hc.Remote() {
		probes[0].Check = func(ctx context.Context) error {
			_, err := hc.Categories(ctx, locale.DefaultCode)
			return err
		}
	}
	if dir.Configured() {
		probes[1].Check = func(ctx context.Context) error {
			_, err := dir.ServiceCategories(ctx)
			return err
		}
	}
	probes[2].Check = func(ctx context.Context) error {
		_, _, err := store.Get(ctx, "status-probe")
		return err
	}
	return status.NewChecker(probes, probeTimeout, statusTTL)
}

// status reports upstream health as JSON. Degraded upstreams yield 503.
func (a *app) status(w http.ResponseWriter, r *http.Request) {
	summary := a.health.FetchSummary(r.Context())
	code := http.StatusOK
	if summary.State == status.StateDegraded {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(summary)
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// sitemap lists the home page of every locale and every section page.
func (a *app) sitemap(w http.ResponseWriter, r *http.Request) {
	paths, err := a.sitePaths(r.Context())
	if err != nil {
		observability.FromContext(r.Context()).Error("sitemap failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range paths {
		set.URLs = append(set.URLs, sitemapURL{Loc: handlersPkg.AbsoluteURL(r, p)})
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	_ = enc.Encode(set)
}

func (a *app) sitePaths(ctx context.Context) ([]string, error) {
	sections, err := a.assembler.SectionPaths(ctx)
	if err != nil {
		return nil, err
	}
	all := locale.All()
	out := make([]string, 0, len(all)+len(sections))
	for _, l := range all {
		out = append(out, nav.HomePath(l.Code))
	}
	return append(out, sections...), nil
}

// warm renders every known page once so the first visitors hit the cache.
// Requests are addressed to the public URL so canonical links come out right.
func (a *app) warm(ctx context.Context, h http.Handler) {
	public, err := url.Parse(a.cfg.Web.PublicURL)
	if err != nil || public.Host == "" {
		a.logger.Warn("cache warm-up skipped: no public url", zap.String("public_url", a.cfg.Web.PublicURL))
		return
	}
	start := time.Now()
	paths, err := a.sitePaths(ctx)
	if err != nil {
		a.logger.Warn("cache warm-up skipped", zap.Error(err))
		return
	}
	var failed int
	for _, p := range paths {
		if ctx.Err() != nil {
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p, nil)
		if err != nil {
			failed++
			continue
		}
		req.Host = public.Host
		req.Header.Set("X-Forwarded-Proto", public.Scheme)
		rec := &discardWriter{header: http.Header{}, status: http.StatusOK}
		h.ServeHTTP(rec, req)
		if rec.status != http.StatusOK {
			failed++
		}
	}
	a.logger.Info("cache warm-up finished",
		zap.Int("pages", len(paths)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)))
}

// discardWriter records the status of an in-process request and drops the body.
type discardWriter struct {
	header      http.Header
	status      int
	wroteHeader bool
}

func (d *discardWriter) Header() http.Header { return d.header }

func (d *discardWriter) WriteHeader(code int) {
	if d.wroteHeader {
		return
	}
	d.wroteHeader = true
	d.status = code
}

func (d *discardWriter) Write(b []byte) (int, error) {
	if !d.wroteHeader {
		d.WriteHeader(http.StatusOK)
	}
	return len(b), nil
}
