package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"refugee.info/greece-web/internal/locale"
)

// LocaleCookie remembers the locale picked on the locale-select page.
const LocaleCookie = "hl"

const localeCookieMaxAge = 365 * 24 * 60 * 60

// PathLocale validates the {locale} URL parameter and stores the matching
// Locale on the request context. Unknown locales are handed to notFound.
// A ?hl= query equal to the path locale is persisted in the hl cookie.
func PathLocale(notFound http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := strings.ToLower(chi.URLParam(r, "locale"))
			if !locale.Supported(code) {
				if IsHTMX(r.Context()) || notFound == nil {
					FragmentError(w, http.StatusNotFound)
					return
				}
				notFound.ServeHTTP(w, r)
				return
			}
			l := locale.Lookup(code)
			if q := strings.ToLower(r.URL.Query().Get(LocaleCookie)); q != "" && q == l.Code {
				http.SetCookie(w, &http.Cookie{
					Name:     LocaleCookie,
					Value:    l.Code,
					Path:     "/",
					MaxAge:   localeCookieMaxAge,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set("Content-Language", l.Code)
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), l)))
		})
	}
}

// PreferredLocale picks the locale for requests without one in the path:
// the hl cookie, then Accept-Language, then the default.
func PreferredLocale(r *http.Request) locale.Locale {
	if c, err := r.Cookie(LocaleCookie); err == nil && locale.Supported(c.Value) {
		return locale.Lookup(c.Value)
	}
	return locale.Match(r.Header.Get("Accept-Language"))
}

// VaryLocale marks responses negotiated from Accept-Language or the hl cookie.
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		w.Header().Add("Vary", "Cookie")
		next.ServeHTTP(w, r)
	})
}
