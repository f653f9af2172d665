// Package middlewares provides the HTTP middleware the portfolio server runs.
//
// # Request ID
//
// RequestID keeps an upstream X-Request-ID or generates a UUIDv7, stores it
// in the context and echoes it in the response. RequestIDExtractor adds it
// to every log entry:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor(), middlewares.VisitorIDExtractor())
//
// # Recover
//
// Recover turns panics into *PanicError values for the error handler.
//
// # I18n
//
// I18n resolves the visitor's language from the lang cookie, then the
// Accept-Language header, and stores an *i18n.Translator in the context.
//
// # Visitor
//
// Visitor issues every browser a random id in the signed pf_visitor cookie.
// The id keys the visitor's contact workflow.
//
// # Rate limit
//
// RateLimit counts requests per client IP with a ratelimit.Limiter. When the
// limiter fails the request is let through.
//
//	r.POST("/contact", h.submit, middlewares.RateLimit(limiter))
package middlewares
