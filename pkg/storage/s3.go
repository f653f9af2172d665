package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultURLExpiry is the lifetime of presigned links.
const DefaultURLExpiry = 15 * time.Minute

// S3Storage talks to one bucket.
type S3Storage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	cfg       Config
}

// New creates an S3Storage with static credentials.
func New(cfg Config) (*S3Storage, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := s3.New(s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		}
	})

	return &S3Storage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		cfg:       cfg,
	}, nil
}

// Bucket returns the configured bucket.
func (s *S3Storage) Bucket() string {
	return s.cfg.Bucket
}

// Get opens key.
func (s *S3Storage) Get(ctx context.Context, key string) (*Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrReadFailed)
	}

	return &Object{
		Body: out.Body,
		ObjectInfo: ObjectInfo{
			Key:          key,
			ContentType:  aws.ToString(out.ContentType),
			ETag:         strings.Trim(aws.ToString(out.ETag), `"`),
			Size:         aws.ToInt64(out.ContentLength),
			LastModified: aws.ToTime(out.LastModified),
		},
	}, nil
}

// Head returns key's metadata without its body.
func (s *S3Storage) Head(ctx context.Context, key string) (*ObjectInfo, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrReadFailed)
	}

	return &ObjectInfo{
		Key:          key,
		ContentType:  aws.ToString(out.ContentType),
		ETag:         strings.Trim(aws.ToString(out.ETag), `"`),
		Size:         aws.ToInt64(out.ContentLength),
		LastModified: aws.ToTime(out.LastModified),
	}, nil
}

// Put uploads r to key. An empty contentType is sniffed from the content.
func (s *S3Storage) Put(ctx context.Context, key string, r io.Reader, contentType string) (*ObjectInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("storage: read input: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	if contentType == "" {
		contentType, _, err = DetectMIME(bytes.NewReader(data))
		if err != nil {
			contentType = MIMEOctetStream
		}
	}

	out, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrUploadFailed)
	}

	return &ObjectInfo{
		Key:          key,
		ContentType:  contentType,
		ETag:         strings.Trim(aws.ToString(out.ETag), `"`),
		Size:         int64(len(data)),
		LastModified: time.Now(),
	}, nil
}

// URL presigns a GET for key. A non-empty downloadName adds an attachment
// Content-Disposition; expiry <= 0 uses DefaultURLExpiry.
func (s *S3Storage) URL(ctx context.Context, key, downloadName string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = DefaultURLExpiry
	}

	in := &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}
	if downloadName != "" {
		in.ResponseContentDisposition = aws.String(fmt.Sprintf("attachment; filename=%q", downloadName))
	}

	req, err := s.presigner.PresignGetObject(ctx, in, func(o *s3.PresignOptions) {
		o.Expires = expiry
	})
	if err != nil {
		return "", wrapS3Error(err, ErrPresignFailed)
	}
	return req.URL, nil
}
