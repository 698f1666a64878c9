package uploader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"devEvents/internal/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type ossBucket interface {
	PutObject(objectKey string, reader io.Reader, options ...oss.Option) error
}

type OSS struct {
	bucket     ossBucket
	bucketName string
	endpoint   string
}

func NewOSS(cfg config.OSSUpload) (*OSS, error) {
	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" || cfg.Bucket == "" {
		return nil, errors.New("oss endpoint, access key, secret key and bucket are required")
	}

	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return newOSSWithBucket(bucket, cfg), nil
}

func newOSSWithBucket(bucket ossBucket, cfg config.OSSUpload) *OSS {
	endpoint := strings.TrimPrefix(cfg.Endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	return &OSS{
		bucket:     bucket,
		bucketName: cfg.Bucket,
		endpoint:   strings.TrimRight(endpoint, "/"),
	}
}

func (o *OSS) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	const op = "uploader.OSS.Put"

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}

	if err := o.bucket.PutObject(key, bytes.NewReader(data), opts...); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Sprintf("https://%s.%s/%s", o.bucketName, o.endpoint, key), nil
}
