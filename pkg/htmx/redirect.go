package htmx

import (
	"net/http"
)

// Redirect sends the client to url. HTMX requests get an HX-Redirect
// header with status 200; everything else gets a 303.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	if IsHTMX(r) {
		w.Header().Set(HeaderHXRedirect, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// RefreshOrRedirect reloads the current page for HTMX requests and redirects
// plain requests to fallback. Language switching uses it so the whole page
// is re-rendered in the new language.
func RefreshOrRedirect(w http.ResponseWriter, r *http.Request, fallback string) {
	if IsHTMX(r) {
		w.Header().Set(HeaderHXRefresh, "true")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, fallback, http.StatusSeeOther)
}
