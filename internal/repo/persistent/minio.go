package persistent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/andreyxaxa/Media-Service/internal/repo"
	"github.com/andreyxaxa/Media-Service/pkg/minioclient"
	"github.com/andreyxaxa/Media-Service/pkg/types/errs"
	"github.com/minio/minio-go/v7"
)

// MinioObjectStore is the "minio" storage driver.
type MinioObjectStore struct {
	*minioclient.MinioClient
	bucket string
	region string
}

var _ repo.ObjectStore = (*MinioObjectStore)(nil)

func NewMinioObjectStore(mc *minioclient.MinioClient, bucket, region string) *MinioObjectStore {
	return &MinioObjectStore{mc, bucket, region}
}

func (r *MinioObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := r.Client.PutObject(ctx, r.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("MinioObjectStore - Put - r.Client.PutObject: %w: %w", errs.ErrStorageWriteFailed, err)
	}

	return nil
}

func (r *MinioObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := r.Client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("MinioObjectStore - Get - r.Client.GetObject: %w: %w", errs.ErrStorageReadFailed, err)
	}
	defer obj.Close()

	// GetObject is lazy, errors surface on the first read
	b, err := io.ReadAll(obj)
	if err != nil {
		if isMinioNotFound(err) {
			return nil, fmt.Errorf("MinioObjectStore - Get: %w", errs.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("MinioObjectStore - Get - io.ReadAll: %w: %w", errs.ErrStorageReadFailed, err)
	}

	return b, nil
}

func (r *MinioObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := r.Client.StatObject(ctx, r.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isMinioNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("MinioObjectStore - Exists - r.Client.StatObject: %w: %w", errs.ErrStorageReadFailed, err)
	}

	return true, nil
}

func (r *MinioObjectStore) SignedReadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := r.Client.PresignedGetObject(ctx, r.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("MinioObjectStore - SignedReadURL - r.Client.PresignedGetObject: %w", err)
	}

	return u.String(), nil
}

func (r *MinioObjectStore) BucketExists(ctx context.Context) (bool, error) {
	exists, err := r.Client.BucketExists(ctx, r.bucket)
	if err != nil {
		return false, fmt.Errorf("MinioObjectStore - BucketExists - r.Client.BucketExists: %w", err)
	}

	return exists, nil
}

func (r *MinioObjectStore) CreateBucket(ctx context.Context) error {
	err := r.Client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{Region: r.region})
	if err != nil {
		if code := minio.ToErrorResponse(err).Code; code == "BucketAlreadyOwnedByYou" {
			return nil
		}
		return fmt.Errorf("MinioObjectStore - CreateBucket - r.Client.MakeBucket: %w", err)
	}

	return nil
}

func isMinioNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return true
	}

	return false
}
