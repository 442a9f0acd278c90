package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const defaultURLTTL = 24 * time.Hour

// Options configures NewClient.
type Options struct {
	Endpoint  string // optional, for MinIO/LocalStack/R2
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	URLTTL    time.Duration
}

// Artifact is an exported file and its time-limited download link.
type Artifact struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Client stores generated scripts and thumbnails in S3
type Client struct {
	s3Client *s3.Client
	bucket   string
	urlTTL   time.Duration
	now      func() time.Time
}

// NewClient creates a new S3 storage client
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	configOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		configOpts = append(configOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}
	if opts.Endpoint != "" {
		configOpts = append(configOpts, config.WithBaseEndpoint(opts.Endpoint))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Path-style addressing for MinIO. Checksums only when required so
	// S3-compatible backends without CRC32 header support still work.
	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	ttl := opts.URLTTL
	if ttl <= 0 {
		ttl = defaultURLTTL
	}

	log.Info().
		Str("endpoint", opts.Endpoint).
		Str("bucket", opts.Bucket).
		Dur("url_ttl", ttl).
		Msg("S3 artifact store initialized")

	return &Client{s3Client: s3Client, bucket: opts.Bucket, urlTTL: ttl, now: time.Now}, nil
}

// SaveArtifact uploads data under a unique key and returns a presigned download URL.
func (c *Client) SaveArtifact(ctx context.Context, name, contentType string, data []byte) (*Artifact, error) {
	now := c.now().UTC()
	key := artifactKey(now, uuid.New(), name)

	if err := c.upload(ctx, key, data, contentType); err != nil {
		return nil, err
	}
	url, err := c.presignedURL(ctx, key)
	if err != nil {
		return nil, err
	}
	return &Artifact{Key: key, URL: url, ExpiresAt: now.Add(c.urlTTL)}, nil
}

// artifactKey lays artifacts out as artifacts/YYYY/MM/DD/<id>/<name>.
func artifactKey(t time.Time, id uuid.UUID, name string) string {
	return path.Join("artifacts", t.Format("2006/01/02"), id.String(), path.Base("/"+name))
}

// upload sets Content-Length explicitly; S3-compatible backends (e.g. R2) require it.
func (c *Client) upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	log.Info().
		Str("bucket", c.bucket).
		Str("key", key).
		Int("bytes", len(data)).
		Msg("Artifact uploaded to S3")
	return nil
}

func (c *Client) presignedURL(ctx context.Context, key string) (string, error) {
	presignClient := s3.NewPresignClient(c.s3Client)
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = c.urlTTL
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return req.URL, nil
}
