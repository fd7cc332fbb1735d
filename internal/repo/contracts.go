package repo

import (
	"context"
	"time"

	"github.com/andreyxaxa/Media-Service/internal/entity"
)

type (
	// ObjectStore holds opaque blobs in a single bucket.
	ObjectStore interface {
		Put(ctx context.Context, key string, data []byte, contentType string) error
		Get(ctx context.Context, key string) ([]byte, error)
		Exists(ctx context.Context, key string) (bool, error)
		// SignedReadURL does not check that the object exists.
		SignedReadURL(ctx context.Context, key string, ttl time.Duration) (string, error)
		BucketExists(ctx context.Context) (bool, error)
		CreateBucket(ctx context.Context) error
	}

	AssetRepo interface {
		Insert(ctx context.Context, asset *entity.MediaAsset) error
		// UpdateDerivedKeys sets both derived keys in one write and returns the
		// number of matched records; zero means the asset does not exist.
		UpdateDerivedKeys(ctx context.Context, fileKey, thumbnailKey, webpKey string) (int64, error)
		FindByKey(ctx context.Context, fileKey string) (*entity.MediaAsset, error)
		EnsureIndexes(ctx context.Context) error
	}
)

// EnsureBucket creates the bucket when it is missing.
func EnsureBucket(ctx context.Context, store ObjectStore) (created bool, err error) {
	exists, err := store.BucketExists(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := store.CreateBucket(ctx); err != nil {
		return false, err
	}

	return true, nil
}
