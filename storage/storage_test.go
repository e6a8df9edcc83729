package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadKey(t *testing.T) {
	tests := map[string]string{
		"resume.pdf":            "uploads/resume.pdf",
		"my resume.pdf":         "uploads/my resume.pdf",
		"../../etc/passwd":      "uploads/passwd",
		`C:\Users\me\cv.pdf`:    "uploads/cv.pdf",
		"nested/dir/report.pdf": "uploads/report.pdf",
		"":                      "",
		"..":                    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, UploadKey(in), "filename %q", in)
	}
}

func TestSupabasePublicURLRoundTrip(t *testing.T) {
	b := &SupabaseBucket{bucket: "demo-pdfs", baseURL: "https://abc.supabase.co"}

	u := b.PublicURL("uploads/my resume.pdf")
	assert.Equal(t, "https://abc.supabase.co/storage/v1/object/public/demo-pdfs/uploads/my%20resume.pdf", u)
	assert.Equal(t, "uploads/my resume.pdf", b.KeyFromURL(u))
	assert.Equal(t, "uploads/resume.pdf", b.KeyFromURL(b.PublicURL("uploads/resume.pdf")+"?download=1"))
}

func TestKeyFromForeignURLFallsBackToLastTwoSegments(t *testing.T) {
	b := &SupabaseBucket{bucket: "demo-pdfs", baseURL: "https://abc.supabase.co"}

	assert.Equal(t, "uploads/old.pdf", b.KeyFromURL("https://old-project.supabase.co/storage/v1/object/public/demo-pdfs/uploads/old.pdf"))
	assert.Equal(t, "old.pdf", b.KeyFromURL("https://cdn.example/old.pdf"))
}

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	deletes []*s3.DeleteObjectsInput
	putErr  error
	delOut  *s3.DeleteObjectsOutput
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	f.deletes = append(f.deletes, in)
	if f.delOut != nil {
		return f.delOut, nil
	}
	return &s3.DeleteObjectsOutput{}, nil
}

func TestS3BucketUpload(t *testing.T) {
	fake := &fakeS3{}
	b := newS3Bucket(fake, "demo-pdfs", S3Options{Region: "us-east-1"})

	require.NoError(t, b.Upload(context.Background(), "uploads/cv.pdf", []byte("%PDF-1.4"), "application/pdf"))
	require.Len(t, fake.puts, 1)

	put := fake.puts[0]
	assert.Equal(t, "demo-pdfs", aws.ToString(put.Bucket))
	assert.Equal(t, "uploads/cv.pdf", aws.ToString(put.Key))
	assert.Equal(t, "max-age=3600", aws.ToString(put.CacheControl))
	assert.Equal(t, "application/pdf", aws.ToString(put.ContentType))
	body, err := io.ReadAll(put.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))
}

func TestS3BucketUploadError(t *testing.T) {
	fake := &fakeS3{putErr: errors.New("access denied")}
	b := newS3Bucket(fake, "demo-pdfs", S3Options{Region: "us-east-1"})

	err := b.Upload(context.Background(), "uploads/cv.pdf", nil, "application/pdf")
	assert.ErrorContains(t, err, "access denied")
}

func TestS3BucketRemove(t *testing.T) {
	fake := &fakeS3{}
	b := newS3Bucket(fake, "demo-pdfs", S3Options{Region: "us-east-1"})

	require.NoError(t, b.Remove(context.Background(), nil))
	assert.Empty(t, fake.deletes)

	require.NoError(t, b.Remove(context.Background(), []string{"uploads/a.pdf", "uploads/b.pdf"}))
	require.Len(t, fake.deletes, 1)
	assert.Len(t, fake.deletes[0].Delete.Objects, 2)

	fake.delOut = &s3.DeleteObjectsOutput{Errors: []types.Error{{Key: aws.String("uploads/a.pdf"), Message: aws.String("denied")}}}
	err := b.Remove(context.Background(), []string{"uploads/a.pdf"})
	assert.ErrorContains(t, err, "uploads/a.pdf")
}

func TestS3PublicURL(t *testing.T) {
	amazon := newS3Bucket(&fakeS3{}, "demo-pdfs", S3Options{Region: "eu-west-1"})
	assert.Equal(t, "https://demo-pdfs.s3.eu-west-1.amazonaws.com/uploads/cv.pdf", amazon.PublicURL("uploads/cv.pdf"))
	assert.Equal(t, "uploads/cv.pdf", amazon.KeyFromURL(amazon.PublicURL("uploads/cv.pdf")))

	minio := newS3Bucket(&fakeS3{}, "demo-pdfs", S3Options{Region: "us-east-1", Endpoint: "http://localhost:9000/"})
	assert.Equal(t, "http://localhost:9000/demo-pdfs/uploads/a%23b.pdf", minio.PublicURL("uploads/a#b.pdf"))
	assert.Equal(t, "uploads/a#b.pdf", minio.KeyFromURL(minio.PublicURL("uploads/a#b.pdf")))

	cdn := newS3Bucket(&fakeS3{}, "demo-pdfs", S3Options{Region: "us-east-1", PublicBaseURL: "https://files.example.com"})
	assert.Equal(t, "https://files.example.com/uploads/cv.pdf", cdn.PublicURL("uploads/cv.pdf"))
}
