package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Options point the client at an S3-compatible bucket.
type R2Options struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

func (o R2Options) validate() error {
	var missing []string
	if o.Endpoint == "" {
		missing = append(missing, "endpoint")
	}
	if o.AccessKey == "" || o.SecretKey == "" {
		missing = append(missing, "credentials")
	}
	if o.Bucket == "" {
		missing = append(missing, "bucket")
	}
	if o.PublicBaseURL == "" {
		missing = append(missing, "public base url")
	}
	if len(missing) > 0 {
		return errors.New("r2: missing " + strings.Join(missing, ", "))
	}
	return nil
}

type R2Client struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewR2Client(ctx context.Context, opts R2Options) (*R2Client, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				opts.AccessKey,
				opts.SecretKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
		o.UsePathStyle = true
	})

	return &R2Client{
		client:  client,
		bucket:  opts.Bucket,
		baseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
	}, nil
}

// Upload stores body under key and returns its public URL.
func (r *R2Client) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := r.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return r.PublicURL(key), nil
}

func (r *R2Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", r.baseURL, strings.TrimLeft(key, "/"))
}
