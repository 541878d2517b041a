package kv

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store keeps each slot as an object under prefix in bucket. PutObject
// replaces the whole object, so a slot is never partially written.
type S3Store struct {
	client S3API
	bucket string
	prefix string
	gzip   bool

	// The context to specify when initiating s3 requests.
	ctx context.Context
}

// NewS3Store wraps an S3 client. When gzip is set, objects are compressed and
// their keys carry a ".gz" suffix.
func NewS3Store(ctx context.Context, client S3API, bucket, prefix string, gzip bool) *S3Store {
	if ctx == nil {
		ctx = context.Background()
	}
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
		gzip:   gzip,
		ctx:    ctx,
	}
}

// NewS3Client loads the default AWS configuration (environment, shared
// config and credentials files) and verifies the bucket is reachable.
func NewS3Client(ctx context.Context, bucket string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		return nil, fmt.Errorf("head bucket %s: %w", bucket, err)
	}
	return client, nil
}

func (s *S3Store) objectKey(key string) string {
	objKey := path.Join(s.prefix, key+".json")
	if s.gzip {
		objKey += ".gz"
	}
	return objKey
}

// Get downloads the object for key. A missing object is not an error.
func (s *S3Store) Get(key string) (string, bool, error) {
	if s == nil || s.client == nil {
		return "", false, ErrNotConfigured
	}
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	}
	resp, err := s.client.GetObject(s.ctx, input)
	if err != nil {
		if isNoSuchKey(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get object %s/%s: %w", s.bucket, *input.Key, err)
	}
	defer resp.Body.Close()

	var rdr io.Reader = resp.Body
	if s.gzip {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", false, fmt.Errorf("open compressed object %s/%s: %w", s.bucket, *input.Key, err)
		}
		defer gz.Close()
		rdr = gz
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		return "", false, fmt.Errorf("read object %s/%s: %w", s.bucket, *input.Key, err)
	}
	return string(data), true, nil
}

// Set uploads value as the object for key.
func (s *S3Store) Set(key, value string) error {
	if s == nil || s.client == nil {
		return ErrNotConfigured
	}
	if err := validateKey(key); err != nil {
		return err
	}
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader([]byte(value)),
		ContentType: aws.String("application/json"),
	}
	if s.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write([]byte(value)); err != nil {
			return fmt.Errorf("gzip %s/%s: %w", s.bucket, *input.Key, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("gzip %s/%s: %w", s.bucket, *input.Key, err)
		}
		input.Body = bytes.NewReader(buf.Bytes())
		input.ContentEncoding = aws.String("gzip")
	}
	if _, err := s.client.PutObject(s.ctx, input); err != nil {
		return fmt.Errorf("put object %s/%s: %w", s.bucket, *input.Key, err)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}
