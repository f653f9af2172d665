// Package cv serves the downloadable résumé.
//
// The file comes from a Source: the copy embedded in the binary, or an
// object in S3-compatible storage when a bucket is configured. The storage
// copy is cached in memory and concurrent misses share one fetch.
//
//	src := cv.Fallback(
//		cv.NewStorageSource(store, "cv/cv-resume.pdf"),
//		cv.NewEmbeddedSource(assets.FS, "static/cv-resume.pdf"),
//		logger,
//	)
//	app := web.New(web.WithHandlers(cv.NewHandler(src, content.CV)))
package cv
