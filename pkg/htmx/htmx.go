package htmx

import "net/http"

// IsHTMX reports whether the request was issued by HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// IsBoosted reports whether the request came from an hx-boost link or form.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderHXBoosted) == "true"
}

// Target returns the id of the element HTMX will swap into.
func Target(r *http.Request) string {
	return r.Header.Get(HeaderHXTarget)
}

// TriggerName returns the name of the element that triggered the request.
// The inline validator uses it to know which field changed.
func TriggerName(r *http.Request) string {
	return r.Header.Get(HeaderHXTriggerName)
}
