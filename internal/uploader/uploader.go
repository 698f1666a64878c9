// Package uploader stores event images. Images are decoded, downscaled to
// fit the configured box and re-encoded before they reach a provider.
package uploader

import (
	"context"
	"fmt"
	"strings"
	"time"

	"devEvents/internal/config"

	"github.com/google/uuid"
)

const (
	ProviderLocal = "local"
	ProviderS3    = "s3"
	ProviderOSS   = "oss"
)

// Provider puts an object under key and returns its public URL.
type Provider interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type Uploader struct {
	provider  Provider
	folder    string
	maxWidth  int
	maxHeight int
	maxPixels int
	now       func() time.Time
	newID     func() string
}

func New(cfg config.Uploader) (*Uploader, error) {
	const op = "uploader.New"

	var (
		provider Provider
		err      error
	)

	switch cfg.Provider {
	case ProviderLocal, "":
		provider = NewLocal(cfg.Local)
	case ProviderS3:
		provider, err = NewS3(cfg.S3)
	case ProviderOSS:
		provider, err = NewOSS(cfg.OSS)
	default:
		return nil, fmt.Errorf("%s: unknown provider %q", op, cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return NewWithProvider(provider, cfg), nil
}

func NewWithProvider(provider Provider, cfg config.Uploader) *Uploader {
	return &Uploader{
		provider:  provider,
		folder:    strings.Trim(cfg.Folder, "/"),
		maxWidth:  cfg.MaxWidth,
		maxHeight: cfg.MaxHeight,
		maxPixels: cfg.MaxPixels,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Upload prepares the image and stores it. Undecodable input fails with
// ErrInvalidImage before the provider is called.
func (u *Uploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	const op = "uploader.Upload"

	img, err := Prepare(data, u.maxWidth, u.maxHeight, u.maxPixels)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	key := u.objectKey(img.Ext)

	url, err := u.provider.Put(ctx, key, img.ContentType, img.Data)
	if err != nil {
		return "", fmt.Errorf("%s: failed to store %q: %w", op, filename, err)
	}

	return url, nil
}

func (u *Uploader) objectKey(ext string) string {
	name := fmt.Sprintf("%s-%s%s", u.now().UTC().Format("20060102"), u.newID(), ext)
	if u.folder == "" {
		return name
	}

	return u.folder + "/" + name
}
