// Package handlers wires the portfolio page and the contact form endpoints
// to the web framework.
//
//	GET  /                  full page in the visitor's language
//	POST /contact           submit the form
//	POST /contact/validate  validate one field (?field=name|email|message)
//	GET  /contact/status    status region, polled while a result is pending
//	POST /lang/{code}       remember the language and go back
//
// HTMX requests get fragments; plain form posts are redirected back to the
// page, except for validation errors which re-render the page with 422.
package handlers
