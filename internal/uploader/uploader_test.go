package uploader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"devEvents/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	key         string
	contentType string
	data        []byte
	calls       int
	err         error
}

func (f *fakeProvider) Put(_ context.Context, key, contentType string, data []byte) (string, error) {
	f.calls++
	f.key, f.contentType, f.data = key, contentType, data
	if f.err != nil {
		return "", f.err
	}

	return "https://cdn.example.com/" + key, nil
}

func newTestUploader(p Provider) *Uploader {
	u := NewWithProvider(p, config.Uploader{Folder: "/DevEvents/", MaxWidth: 100, MaxHeight: 100})
	u.now = func() time.Time { return time.Date(2026, 3, 4, 23, 0, 0, 0, time.UTC) }
	u.newID = func() string { return "0d9c8f5e" }

	return u
}

func TestUploader_Upload(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		p := &fakeProvider{}
		u := newTestUploader(p)

		url, err := u.Upload(context.Background(), "cover.png", pngBytes(t, 50, 50))
		require.NoError(t, err)

		assert.Equal(t, "DevEvents/20260304-0d9c8f5e.png", p.key)
		assert.Equal(t, "image/png", p.contentType)
		assert.NotEmpty(t, p.data)
		assert.Equal(t, "https://cdn.example.com/DevEvents/20260304-0d9c8f5e.png", url)
	})

	t.Run("invalid image never reaches provider", func(t *testing.T) {
		t.Parallel()

		p := &fakeProvider{}
		u := newTestUploader(p)

		_, err := u.Upload(context.Background(), "cover.txt", []byte("hello"))
		assert.ErrorIs(t, err, ErrInvalidImage)
		assert.Zero(t, p.calls)
	})

	t.Run("oversized canvas never reaches provider", func(t *testing.T) {
		t.Parallel()

		p := &fakeProvider{}
		u := NewWithProvider(p, config.Uploader{MaxWidth: 100, MaxHeight: 100, MaxPixels: 1_000_000})

		_, err := u.Upload(context.Background(), "bomb.png", pngWithDeclaredSize(t, 5000, 5000))
		assert.ErrorIs(t, err, ErrInvalidImage)
		assert.Zero(t, p.calls)
	})

	t.Run("provider error", func(t *testing.T) {
		t.Parallel()

		storeErr := errors.New("bucket unavailable")
		p := &fakeProvider{err: storeErr}
		u := newTestUploader(p)

		_, err := u.Upload(context.Background(), "cover.jpg", jpegBytes(t, 10, 10))
		assert.ErrorIs(t, err, storeErr)
		assert.Equal(t, 1, p.calls)
	})
}

func TestUploader_ObjectKeyWithoutFolder(t *testing.T) {
	t.Parallel()

	u := NewWithProvider(&fakeProvider{}, config.Uploader{})
	u.now = func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }
	u.newID = func() string { return "abc" }

	assert.Equal(t, "20260102-abc.jpg", u.objectKey(".jpg"))
}

func TestNew(t *testing.T) {
	t.Parallel()

	u, err := New(config.Uploader{Provider: ProviderLocal, Local: config.LocalUpload{Dir: t.TempDir(), BaseURL: "/static/uploads"}})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, u.provider)

	_, err = New(config.Uploader{Provider: "ftp"})
	assert.Error(t, err)

	_, err = New(config.Uploader{Provider: ProviderS3})
	assert.Error(t, err)

	_, err = New(config.Uploader{Provider: ProviderOSS})
	assert.Error(t, err)
}

func TestLocal_Put(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	l := NewLocal(config.LocalUpload{Dir: dir, BaseURL: "/static/uploads/"})

	url, err := l.Put(context.Background(), "DevEvents/a.png", "image/png", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/DevEvents/a.png", url)

	got, err := os.ReadFile(filepath.Join(dir, "DevEvents", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = l.Put(ctx, "DevEvents/b.png", "image/png", []byte("data"))
	assert.ErrorIs(t, err, context.Canceled)
}
