package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3Bucket stores objects in an S3 (or S3-compatible) bucket that is publicly readable.
type S3Bucket struct {
	client        s3API
	bucket        string
	publicBaseURL string
}

type S3Options struct {
	Region string
	// Endpoint overrides the AWS endpoint for S3-compatible services; path-style addressing is used.
	Endpoint string
	// PublicBaseURL is the URL objects are served from. Derived from Endpoint or Region when empty.
	PublicBaseURL string
}

// NewS3Bucket loads credentials from the default AWS chain (env, shared config, instance role).
func NewS3Bucket(ctx context.Context, bucket string, opts S3Options) (*S3Bucket, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Bucket(client, bucket, opts), nil
}

func newS3Bucket(client s3API, bucket string, opts S3Options) *S3Bucket {
	base := opts.PublicBaseURL
	switch {
	case base != "":
	case opts.Endpoint != "":
		base = fmt.Sprintf("%s/%s", strings.TrimRight(opts.Endpoint, "/"), bucket)
	default:
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, opts.Region)
	}

	return &S3Bucket{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(base, "/") + "/",
	}
}

func (s *S3Bucket) Backend() string { return "s3" }

func (s *S3Bucket) Name() string { return s.bucket }

func (s *S3Bucket) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String(fmt.Sprintf("max-age=%d", CacheSeconds)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	return nil
}

func (s *S3Bucket) Remove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	objects := make([]types.ObjectIdentifier, 0, len(keys))
	for _, k := range keys {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(k)})
	}

	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to delete files: %w", err)
	}
	if len(out.Errors) > 0 {
		first := out.Errors[0]
		return fmt.Errorf("failed to delete %s: %s", aws.ToString(first.Key), aws.ToString(first.Message))
	}
	return nil
}

func (s *S3Bucket) PublicURL(key string) string {
	return s.publicBaseURL + escapeKey(key)
}

func (s *S3Bucket) KeyFromURL(publicURL string) string {
	return keyFromPublicURL(s.publicBaseURL, publicURL)
}
