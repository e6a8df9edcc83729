package storage

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	storage_go "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"
)

// SupabaseBucket stores objects in a Supabase Storage bucket.
type SupabaseBucket struct {
	client  *storage_go.Client
	bucket  string
	baseURL string
}

func NewSupabaseBucket(supabaseURL, key, bucket string) (*SupabaseBucket, error) {
	baseURL := strings.TrimRight(supabaseURL, "/")

	client, err := supabase.NewClient(baseURL, key, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}

	return &SupabaseBucket{
		client:  client.Storage,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

func (s *SupabaseBucket) Backend() string { return "supabase" }

func (s *SupabaseBucket) Name() string { return s.bucket }

// Upload does not overwrite: an existing object at key makes the upload fail.
func (s *SupabaseBucket) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cacheControl := strconv.Itoa(CacheSeconds)
	upsert := false
	_, err := s.client.UploadFile(s.bucket, key, bytes.NewReader(data), storage_go.FileOptions{
		CacheControl: &cacheControl,
		ContentType:  &contentType,
		Upsert:       &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	log.Debug().Str("bucket", s.bucket).Str("key", key).Int("bytes", len(data)).Msg("uploaded object")
	return nil
}

func (s *SupabaseBucket) Remove(ctx context.Context, keys []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.client.RemoveFile(s.bucket, keys); err != nil {
		return fmt.Errorf("failed to delete files: %w", err)
	}
	return nil
}

func (s *SupabaseBucket) publicPrefix() string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/", s.baseURL, s.bucket)
}

func (s *SupabaseBucket) PublicURL(key string) string {
	return s.publicPrefix() + escapeKey(key)
}

func (s *SupabaseBucket) KeyFromURL(publicURL string) string {
	return keyFromPublicURL(s.publicPrefix(), publicURL)
}
