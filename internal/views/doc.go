// Package views renders the portfolio page and its HTMX fragments as
// templ components.
//
// The contact form is split so that polling never touches what the visitor
// is typing: ContactForm is the whole form, StatusRegion holds the banner and
// the poller, and SubmitButton is swapped out of band when the status
// changes.
package views
