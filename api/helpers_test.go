package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rpupo63/myfolio-api/config"
	"github.com/rpupo63/myfolio-api/database"
	"github.com/rpupo63/myfolio-api/testutil"
)

const testPublicPrefix = "https://files.test/storage/v1/object/public/demo-pdfs/"

type fakeBucket struct {
	mu        sync.Mutex
	objects   map[string][]byte
	types     map[string]string
	removed   [][]string
	uploadErr error
	removeErr error
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: map[string][]byte{}, types: map[string]string{}}
}

func (b *fakeBucket) Backend() string { return "fake" }

func (b *fakeBucket) Name() string { return "demo-pdfs" }

func (b *fakeBucket) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.uploadErr != nil {
		return b.uploadErr
	}
	b.objects[key] = append([]byte(nil), data...)
	b.types[key] = contentType
	return nil
}

func (b *fakeBucket) Remove(ctx context.Context, keys []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removed = append(b.removed, keys)
	if b.removeErr != nil {
		return b.removeErr
	}
	for _, k := range keys {
		delete(b.objects, k)
	}
	return nil
}

func (b *fakeBucket) PublicURL(key string) string {
	return testPublicPrefix + key
}

func (b *fakeBucket) KeyFromURL(publicURL string) string {
	return strings.TrimPrefix(publicURL, testPublicPrefix)
}

func (b *fakeBucket) object(key string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[key]
	return data, ok
}

func testConfig() *config.Config {
	return &config.Config{
		DatabaseURL:     "file::memory:",
		StorageBackend:  config.StorageSupabase,
		SupabaseURL:     "https://files.test",
		SupabaseKey:     "service-role-secret",
		BucketName:      "demo-pdfs",
		MaxUploadBytes:  1 << 20,
		AcceptedOrigins: config.DefaultOrigins,
	}
}

type testEnv struct {
	router http.Handler
	db     *gorm.DB
	bucket *fakeBucket
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.OpenSQLite(t)
	bucket := newFakeBucket()
	cfg := testConfig()
	return &testEnv{
		router: newRouter(cfg, database.New(db), bucket),
		db:     db,
		bucket: bucket,
		cfg:    cfg,
	}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) countDemoProjects(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Table("demo_projects").Count(&n).Error)
	return n
}

type uploadFile struct {
	name        string
	contentType string
	data        []byte
}

// newUploadRequest builds a multipart upload. Empty fields are left out of the form.
func newUploadRequest(t *testing.T, title, description string, file *uploadFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if title != "" {
		require.NoError(t, mw.WriteField("title", title))
	}
	if description != "" {
		require.NoError(t, mw.WriteField("description", description))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+file.name+`"`)
		if file.contentType != "" {
			h.Set("Content-Type", file.contentType)
		}
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/demo-projects/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
