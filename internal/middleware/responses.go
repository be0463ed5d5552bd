package middleware

import (
	"net/http"
)

// FragmentError answers a failed htmx swap. The body is the status text and
// HX-Reswap keeps the fragment already on the page.
func FragmentError(w http.ResponseWriter, code int) {
	w.Header().Set("HX-Reswap", "none")
	http.Error(w, http.StatusText(code), code)
}
