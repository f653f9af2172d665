package web

// Handler declares routes on a router.
//
//	func (h *Contact) Routes(r web.Router) {
//		r.POST("/contact", h.submit)
//		r.GET("/contact/status", h.status)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc handles a request. A non-nil error is passed to the
// application's ErrorHandler unless a response was already written.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders an error returned by a handler.
type ErrorHandler func(Context, error) error
