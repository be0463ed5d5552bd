package cache

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"refugee.info/greece-web/internal/observability"
)

// Key derives the cache key of a request. htmx fragments and full pages
// share URLs, so fragment requests get their own key. Boosted navigation
// renders full pages and shares the plain key.
func Key(r *http.Request) string {
	key := r.URL.Path
	if q := r.URL.RawQuery; q != "" {
		key += "?" + q
	}
	if r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-Boosted") != "true" {
		key += "#hx"
	}
	return key
}

// Pages serves GET responses from store and records successful ones that
// set no cookies. Store failures are logged and the request is served live.
func Pages(store Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			logger := observability.FromContext(ctx)
			key := Key(r)

			if e, ok, err := store.Get(ctx, key); err != nil {
				logger.Warn("page cache get failed", zap.String("key", key), zap.Error(err))
			} else if ok {
				writeEntry(w, e, store.TTL())
				return
			}

			rec := &capture{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status != http.StatusOK || len(w.Header().Values("Set-Cookie")) > 0 {
				return
			}
			entry := Entry{
				Status:      rec.status,
				ContentType: w.Header().Get("Content-Type"),
				Body:        rec.buf.Bytes(),
			}
			if err := store.Set(ctx, key, entry); err != nil {
				logger.Warn("page cache set failed", zap.String("key", key), zap.Error(err))
			}
		})
	}
}

func writeEntry(w http.ResponseWriter, e Entry, ttl time.Duration) {
	if e.ContentType != "" {
		w.Header().Set("Content-Type", e.ContentType)
	}
	w.Header().Set("X-Cache", "HIT")
	if !e.StoredAt.IsZero() {
		age := int(time.Since(e.StoredAt) / time.Second)
		if age < 0 {
			age = 0
		}
		w.Header().Set("Age", strconv.Itoa(age))
	}
	if ttl > 0 {
		w.Header().Set("Cache-Control", "public, max-age=0, s-maxage="+strconv.Itoa(int(ttl/time.Second)))
	}
	w.WriteHeader(e.Status)
	_, _ = w.Write(e.Body)
}

type capture struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	buf         bytes.Buffer
}

func (c *capture) WriteHeader(code int) {
	if c.wroteHeader {
		return
	}
	c.wroteHeader = true
	c.status = code
	if code == http.StatusOK {
		c.Header().Set("X-Cache", "MISS")
	}
	c.ResponseWriter.WriteHeader(code)
}

func (c *capture) Write(b []byte) (int, error) {
	if !c.wroteHeader {
		c.WriteHeader(http.StatusOK)
	}
	c.buf.Write(b)
	return c.ResponseWriter.Write(b)
}
