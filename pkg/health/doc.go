// Package health serves the liveness and readiness probes.
//
// [LivenessHandler] always answers OK while the process runs.
// [ReadinessHandler] runs named [Checks] concurrently under a shared timeout
// and answers 503 when any of them fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"redis": redis.Healthcheck(client),
//		"cv":    cvSource.Healthcheck,
//	}, health.WithLogger(log)))
//
// Responses are plain text unless the client asks for JSON with an
// Accept header or ?format=json.
package health
