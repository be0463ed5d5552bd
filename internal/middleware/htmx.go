package middleware

import (
	"net/http"
)

// HTMXRequest holds the htmx headers of a request.
type HTMXRequest struct {
	// Boosted is set for hx-boost navigation, which expects a full page.
	Boosted bool
	Target  string
	Trigger string
}

// HTMX records htmx request headers on the context. Fragments and full pages
// share URLs, so responses vary on HX-Request.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "HX-Request")
		if r.Header.Get("HX-Request") != "true" {
			next.ServeHTTP(w, r)
			return
		}
		hx := HTMXRequest{
			Boosted: r.Header.Get("HX-Boosted") == "true",
			Target:  r.Header.Get("HX-Target"),
			Trigger: r.Header.Get("HX-Trigger"),
		}
		next.ServeHTTP(w, r.WithContext(WithHTMX(r.Context(), hx)))
	})
}
