package upload

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

const uploadTimeout = 10 * time.Second

// Config holds the S3 connection settings
type Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	CDNURL    string
}

// Configured reports whether enough settings are present to upload
func (c Config) Configured() bool {
	return c.Bucket != "" && c.AccessKey != ""
}

// Uploader publishes rendered images to an S3-compatible bucket
type Uploader struct {
	client *s3.S3
	config Config
}

// NewUploader creates an uploader from static credentials. Path-style
// addressing keeps non-AWS endpoints working.
func NewUploader(config Config) (*Uploader, error) {
	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, ""),
		Endpoint:         aws.String(config.Endpoint),
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("creating S3 session: %w", err)
	}
	return &Uploader{client: s3.New(sess), config: config}, nil
}

// PutPNG uploads PNG bytes under key with a public-read ACL and returns
// the public URL
func (u *Uploader) PutPNG(ctx context.Context, data []byte, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/png"),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	return u.URL(key), nil
}

// URL returns the public address an uploaded key is served from. The CDN
// URL takes precedence over the raw bucket endpoint.
func (u *Uploader) URL(key string) string {
	if u.config.CDNURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(u.config.CDNURL, "/"), key)
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(u.config.Endpoint, "/"), u.config.Bucket, key)
}
