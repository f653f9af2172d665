// Package logger builds the slog loggers used by the portfolio server.
//
// Every logger is a JSON or text slog handler wrapped in a decorator that
// pulls request-scoped attributes (request id, visitor id, language) out of
// the context on each call:
//
//	log := logger.New(logger.Config{Level: "debug"}, requestIDExtractor)
//	log.InfoContext(ctx, "page rendered")
//
// When a Sentry DSN is configured, NewWithSentry fans records out to stdout
// and Sentry. Errors become Sentry issues; warnings are kept as breadcrumbs.
// An empty DSN falls back to stdout only, so development and production share
// the same code path.
package logger
