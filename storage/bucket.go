// Package storage adapts object-storage services to the small surface the API needs:
// put a document, remove documents, and map keys to public URLs and back.
package storage

import (
	"context"
	"net/url"
	"path"
	"strings"
)

// CacheSeconds is the cache lifetime attached to every uploaded object.
const CacheSeconds = 3600

// UploadPrefix is the folder all documents are stored under.
const UploadPrefix = "uploads"

type Bucket interface {
	// Backend names the storage service, e.g. "supabase" or "s3".
	Backend() string
	Name() string
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Remove(ctx context.Context, keys []string) error
	PublicURL(key string) string
	// KeyFromURL is the inverse of PublicURL.
	KeyFromURL(publicURL string) string
}

// UploadKey returns the object key for a client-supplied filename. Directory
// components are dropped so a filename cannot address objects outside UploadPrefix.
func UploadKey(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return UploadPrefix + "/" + name
}

// escapeKey escapes each path segment of key for use in a URL.
func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// keyFromPublicURL strips prefix from publicURL and unescapes the rest. URLs that
// do not carry the prefix fall back to their last two path segments
// ("uploads/<file>"), which is how keys are laid out.
func keyFromPublicURL(prefix, publicURL string) string {
	if rest, ok := strings.CutPrefix(publicURL, prefix); ok {
		if i := strings.IndexAny(rest, "?#"); i >= 0 {
			rest = rest[:i]
		}
		if key, err := url.PathUnescape(rest); err == nil {
			return key
		}
		return rest
	}

	u, err := url.Parse(publicURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) >= 2 {
		segments = segments[len(segments)-2:]
	}
	return strings.Join(segments, "/")
}
