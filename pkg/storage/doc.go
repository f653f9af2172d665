// Package storage reads and writes objects in an S3-compatible bucket.
//
// The portfolio keeps its CV in a bucket so it can be replaced without a
// redeploy. The package covers exactly that: fetch an object with its
// metadata, probe it with Head, upload a replacement, and presign a download
// link. AWS and MinIO are both supported; MinIO needs PathStyle.
//
//	s, err := storage.New(storage.Config{
//		Bucket:    "portfolio",
//		AccessKey: key,
//		SecretKey: secret,
//	})
//	obj, err := s.Get(ctx, "cv/resume.pdf")
//	if errors.Is(err, storage.ErrNotFound) {
//		...
//	}
//	defer obj.Body.Close()
//
// Errors returned by the AWS SDK are mapped onto the sentinels in this
// package; callers match with errors.Is.
package storage
