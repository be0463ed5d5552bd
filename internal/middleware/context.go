package middleware

import (
	"context"

	"refugee.info/greece-web/internal/locale"
)

type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyHTMX
	ctxKeyLocale
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

func RequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyRequestID).(string)
	return v, ok
}

func WithHTMX(ctx context.Context, hx HTMXRequest) context.Context {
	return context.WithValue(ctx, ctxKeyHTMX, hx)
}

// HTMXFromContext returns the htmx headers, or false for plain requests.
func HTMXFromContext(ctx context.Context) (HTMXRequest, bool) {
	hx, ok := ctx.Value(ctxKeyHTMX).(HTMXRequest)
	return hx, ok
}

// IsHTMX reports whether the request wants a fragment. Boosted navigation
// renders full pages and does not count.
func IsHTMX(ctx context.Context) bool {
	hx, ok := HTMXFromContext(ctx)
	return ok && !hx.Boosted
}

// WithLocale stores the locale resolved from the path.
func WithLocale(ctx context.Context, l locale.Locale) context.Context {
	return context.WithValue(ctx, ctxKeyLocale, l)
}

// LocaleFromContext returns the path locale, or false outside /{locale} routes.
func LocaleFromContext(ctx context.Context) (locale.Locale, bool) {
	l, ok := ctx.Value(ctxKeyLocale).(locale.Locale)
	return l, ok
}
