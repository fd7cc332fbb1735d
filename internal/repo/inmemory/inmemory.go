// Package inmemory provides map-backed repositories for tests and local runs.
package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andreyxaxa/Media-Service/internal/entity"
	"github.com/andreyxaxa/Media-Service/internal/repo"
	"github.com/andreyxaxa/Media-Service/pkg/types/errs"
)

type Object struct {
	Data        []byte
	ContentType string
}

// ObjectStore keeps objects in memory. The *Err hooks inject failures.
type ObjectStore struct {
	mu      sync.RWMutex
	objects map[string]Object
	bucket  bool

	PutErr  func(key string) error
	SignErr error
}

var _ repo.ObjectStore = (*ObjectStore)(nil)

func NewObjectStore() *ObjectStore {
	return &ObjectStore{objects: make(map[string]Object)}
}

func (s *ObjectStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	if s.PutErr != nil {
		if err := s.PutErr(key); err != nil {
			return fmt.Errorf("inmemory - Put: %w: %w", errs.ErrStorageWriteFailed, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[key] = Object{Data: append([]byte(nil), data...), ContentType: contentType}

	return nil
}

func (s *ObjectStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("inmemory - Get: %w", errs.ErrObjectNotFound)
	}

	return append([]byte(nil), obj.Data...), nil
}

func (s *ObjectStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.objects[key]

	return ok, nil
}

func (s *ObjectStore) SignedReadURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	if s.SignErr != nil {
		return "", s.SignErr
	}

	return fmt.Sprintf("memory://bucket/%s?expires=%d", key, int(ttl.Seconds())), nil
}

func (s *ObjectStore) BucketExists(context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.bucket, nil
}

func (s *ObjectStore) CreateBucket(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bucket = true

	return nil
}

// Object returns a stored object for assertions.
func (s *ObjectStore) Object(key string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]

	return obj, ok
}

func (s *ObjectStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.objects)
}

// AssetRepo keeps MediaAssets in memory and enforces file_key uniqueness.
type AssetRepo struct {
	mu     sync.RWMutex
	assets map[string]entity.MediaAsset

	InsertErr error
	UpdateErr error
}

var _ repo.AssetRepo = (*AssetRepo)(nil)

func NewAssetRepo() *AssetRepo {
	return &AssetRepo{assets: make(map[string]entity.MediaAsset)}
}

func (r *AssetRepo) Insert(_ context.Context, asset *entity.MediaAsset) error {
	if r.InsertErr != nil {
		return r.InsertErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.assets[asset.FileKey]; ok {
		return fmt.Errorf("inmemory - Insert: duplicate file_key %s", asset.FileKey)
	}
	r.assets[asset.FileKey] = *asset

	return nil
}

func (r *AssetRepo) UpdateDerivedKeys(_ context.Context, fileKey, thumbnailKey, webpKey string) (int64, error) {
	if r.UpdateErr != nil {
		return 0, r.UpdateErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	asset, ok := r.assets[fileKey]
	if !ok {
		return 0, nil
	}
	asset.ThumbnailKey = &thumbnailKey
	asset.WebPKey = &webpKey
	r.assets[fileKey] = asset

	return 1, nil
}

func (r *AssetRepo) FindByKey(_ context.Context, fileKey string) (*entity.MediaAsset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	asset, ok := r.assets[fileKey]
	if !ok {
		return nil, fmt.Errorf("inmemory - FindByKey: %w", errs.ErrMetadataNotFound)
	}

	return &asset, nil
}

func (r *AssetRepo) EnsureIndexes(context.Context) error {
	return nil
}

func (r *AssetRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.assets)
}
