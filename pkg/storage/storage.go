package storage

import (
	"io"
	"time"
)

// Config holds S3 settings, parsed with caarlos0/env.
type Config struct {
	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	// Endpoint overrides the AWS endpoint, e.g. for MinIO.
	Endpoint  string `env:"S3_ENDPOINT"`
	Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	PathStyle bool   `env:"S3_PATH_STYLE"`
}

// DefaultRegion is used when Config.Region is empty.
const DefaultRegion = "us-east-1"

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}

// ObjectInfo is object metadata.
type ObjectInfo struct {
	LastModified time.Time
	Key          string
	ContentType  string
	ETag         string
	Size         int64
}

// Object is an open object. The caller closes Body.
type Object struct {
	Body io.ReadCloser
	ObjectInfo
}
