package storage

import (
	"context"
	"fmt"

	"github.com/rpupo63/myfolio-api/config"
)

// Open builds the bucket selected by cfg.StorageBackend.
func Open(ctx context.Context, cfg *config.Config) (Bucket, error) {
	switch cfg.StorageBackend {
	case config.StorageSupabase:
		return NewSupabaseBucket(cfg.SupabaseURL, cfg.SupabaseKey, cfg.BucketName)
	case config.StorageS3:
		return NewS3Bucket(ctx, cfg.BucketName, S3Options{
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
}
