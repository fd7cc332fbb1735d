package persistent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/andreyxaxa/Media-Service/internal/repo"
	"github.com/andreyxaxa/Media-Service/pkg/s3client"
	"github.com/andreyxaxa/Media-Service/pkg/types/errs"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

type S3ObjectStore struct {
	*s3client.S3Client
	bucket string
}

var _ repo.ObjectStore = (*S3ObjectStore)(nil)

func NewS3ObjectStore(s3c *s3client.S3Client, bucket string) *S3ObjectStore {
	return &S3ObjectStore{s3c, bucket}
}

func (r *S3ObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("S3ObjectStore - Put - r.Client.PutObject: %w: %w", errs.ErrStorageWriteFailed, err)
	}

	return nil
}

func (r *S3ObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("S3ObjectStore - Get: %w", errs.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("S3ObjectStore - Get - r.Client.GetObject: %w: %w", errs.ErrStorageReadFailed, err)
	}
	defer result.Body.Close()

	b, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("S3ObjectStore - Get - io.ReadAll: %w: %w", errs.ErrStorageReadFailed, err)
	}

	return b, nil
}

func (r *S3ObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := r.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("S3ObjectStore - Exists - r.Client.HeadObject: %w: %w", errs.ErrStorageReadFailed, err)
	}

	return true, nil
}

func (r *S3ObjectStore) SignedReadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := r.Presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("S3ObjectStore - SignedReadURL - r.Presign.PresignGetObject: %w", err)
	}

	return req.URL, nil
}

func (r *S3ObjectStore) BucketExists(ctx context.Context) (bool, error) {
	_, err := r.Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(r.bucket),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("S3ObjectStore - BucketExists - r.Client.HeadBucket: %w", err)
	}

	return true, nil
}

func (r *S3ObjectStore) CreateBucket(ctx context.Context) error {
	_, err := r.Client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(r.bucket),
	})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("S3ObjectStore - CreateBucket - r.Client.CreateBucket: %w", err)
	}

	return nil
}

func isNotFound(err error) bool {
	var (
		notFound *types.NotFound
		noKey    *types.NoSuchKey
		noBucket *types.NoSuchBucket
	)
	if errors.As(err, &notFound) || errors.As(err, &noKey) || errors.As(err, &noBucket) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "NoSuchBucket":
			return true
		}
	}

	return false
}
