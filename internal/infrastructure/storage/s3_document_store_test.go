package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/pressworks/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type recordedRequest struct {
	method      string
	path        string
	contentType string
	body        string
}

// fakeS3 answers path-style S3 calls with a fixed status and records them
type fakeS3 struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   func(r *http.Request) int
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		method:      r.Method,
		path:        r.URL.Path,
		contentType: r.Header.Get("Content-Type"),
		body:        string(body),
	})
	f.mu.Unlock()

	status := http.StatusOK
	if f.status != nil {
		status = f.status(r)
	}
	if status == http.StatusForbidden {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
		return
	}
	w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
	w.WriteHeader(status)
}

func newTestStore(t *testing.T, fake *fakeS3, prefix string) *S3DocumentStore {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	store, err := NewS3DocumentStore(context.Background(), &config.StorageConfig{
		Enabled:         true,
		Bucket:          "invoices",
		Region:          "eu-west-1",
		Endpoint:        server.URL,
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		UsePathStyle:    true,
		Prefix:          prefix,
	}, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return store
}

func TestNewS3DocumentStore_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3DocumentStore(ctx, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3DocumentStore(ctx, &config.StorageConfig{Enabled: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("half a key pair returns error", func(t *testing.T) {
		_, err := NewS3DocumentStore(ctx, &config.StorageConfig{
			Bucket:      "invoices",
			AccessKeyID: "test-key",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be set together")
	})

	t.Run("valid config creates store", func(t *testing.T) {
		store, err := NewS3DocumentStore(ctx, &config.StorageConfig{
			Bucket:          "invoices",
			Endpoint:        "minio.local:9000",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
			Prefix:          "/pressworks/",
		})
		require.NoError(t, err)
		assert.Equal(t, "invoices", store.Bucket())
		assert.Equal(t, "pressworks", store.prefix)
	})
}

func TestS3DocumentStore_Put(t *testing.T) {
	fake := &fakeS3{}
	store := newTestStore(t, fake, "pressworks")

	location, err := store.Put(context.Background(), "invoices/00000042.pdf", "application/pdf", []byte("%PDF-1.4 test"))

	require.NoError(t, err)
	assert.Equal(t, "s3://invoices/pressworks/invoices/00000042.pdf", location)
	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/invoices/pressworks/invoices/00000042.pdf", req.path)
	assert.Equal(t, "application/pdf", req.contentType)
	assert.Contains(t, req.body, "%PDF-1.4 test")
}

func TestS3DocumentStore_Put_WithoutPrefix(t *testing.T) {
	fake := &fakeS3{}
	store := newTestStore(t, fake, "")

	location, err := store.Put(context.Background(), "/invoices/00000001.pdf", "application/pdf", []byte("x"))

	require.NoError(t, err)
	assert.Equal(t, "s3://invoices/invoices/00000001.pdf", location)
}

func TestS3DocumentStore_Put_Errors(t *testing.T) {
	t.Run("empty key", func(t *testing.T) {
		fake := &fakeS3{}
		store := newTestStore(t, fake, "")

		_, err := store.Put(context.Background(), "", "application/pdf", []byte("x"))

		require.Error(t, err)
		assert.Empty(t, fake.requests)
	})

	t.Run("access denied", func(t *testing.T) {
		fake := &fakeS3{status: func(*http.Request) int { return http.StatusForbidden }}
		store := newTestStore(t, fake, "")

		location, err := store.Put(context.Background(), "invoices/00000001.pdf", "application/pdf", []byte("x"))

		require.Error(t, err)
		assert.Empty(t, location)
		assert.Contains(t, err.Error(), "invoices/00000001.pdf")
	})
}

func TestS3DocumentStore_EnsureBucket(t *testing.T) {
	t.Run("existing bucket", func(t *testing.T) {
		fake := &fakeS3{}
		store := newTestStore(t, fake, "")

		require.NoError(t, store.EnsureBucket(context.Background()))
		require.Len(t, fake.requests, 1)
		assert.Equal(t, http.MethodHead, fake.requests[0].method)
	})

	t.Run("missing bucket is created", func(t *testing.T) {
		fake := &fakeS3{status: func(r *http.Request) int {
			if r.Method == http.MethodHead {
				return http.StatusNotFound
			}
			return http.StatusOK
		}}
		store := newTestStore(t, fake, "")

		require.NoError(t, store.EnsureBucket(context.Background()))
		require.Len(t, fake.requests, 2)
		assert.Equal(t, http.MethodPut, fake.requests[1].method)
		assert.Equal(t, "/invoices", fake.requests[1].path)
	})
}
