// Package web is the small HTTP layer the portfolio is built on.
//
// It wraps chi with a handler signature that returns errors, a request
// Context carrying the logger, cookies, translator and HTMX helpers, and a
// server runner with graceful shutdown.
//
//	app := web.New(
//		web.WithLogger(log),
//		web.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//		web.WithHandlers(handlers.NewPage(...), handlers.NewContact(...)),
//		web.WithStaticFiles("/static/", assets, "static"),
//		web.WithHealthChecks(web.WithReadinessCheck("cv", src.Healthcheck)),
//	)
//	return app.Run(":8080", web.Logger(log), web.ShutdownHook(registry.Shutdown))
//
// Handlers implement Handler and declare their routes on a Router. A
// handler returning an error hands it to the ErrorHandler; *HTTPError
// values carry the status code and a user-facing message.
//
// For HTMX requests the response writer turns 4xx and 5xx statuses into
// 200 so that error fragments are swapped instead of dropped by the client.
package web
