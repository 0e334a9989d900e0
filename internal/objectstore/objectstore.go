// Package objectstore reads uploaded resumes from and writes rendered
// documents to an S3 compatible bucket.
package objectstore

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"resuscan/internal/config"
	"resuscan/internal/errors"
)

// Object is a fetched object body with its stored content type.
type Object struct {
	Key         string
	ContentType string
	Data        []byte
}

// Store is a bucket-scoped S3 client.
type Store struct {
	client *s3.Client
	bucket string
}

// New builds a Store from configuration. Static credentials are used when an
// access key is set; otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg config.S3Config) (*Store, error) {
	if !cfg.Enabled() {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "s3 bucket is not configured", nil)
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "failed to load aws configuration", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// Bucket returns the configured bucket name.
func (s *Store) Bucket() string {
	return s.bucket
}

// Fetch downloads one object. A missing key is a not found error.
func (s *Store) Fetch(ctx context.Context, key string) (Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if stderrors.As(err, &noKey) {
			return Object{}, errors.NewNotFoundError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("object not found: %s", key), err)
		}
		return Object{}, errors.NewNetworkError(errors.ErrCodeStorageFailed,
			fmt.Sprintf("failed to get object %s", key), err)
	}
	defer func() { _ = out.Body.Close() }()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return Object{}, errors.NewNetworkError(errors.ErrCodeStorageFailed,
			fmt.Sprintf("failed to read object body %s", key), err)
	}

	return Object{Key: key, ContentType: aws.ToString(out.ContentType), Data: buf.Bytes()}, nil
}

// Put uploads data under key.
func (s *Store) Put(ctx context.Context, key, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return errors.NewNetworkError(errors.ErrCodeStorageFailed,
			fmt.Sprintf("failed to put object %s", key), err)
	}
	return nil
}
