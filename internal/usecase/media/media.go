package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/andreyxaxa/Media-Service/internal/dto"
	"github.com/andreyxaxa/Media-Service/internal/entity"
	"github.com/andreyxaxa/Media-Service/internal/infrastructure"
	"github.com/andreyxaxa/Media-Service/internal/repo"
	"github.com/andreyxaxa/Media-Service/internal/usecase"
	"github.com/andreyxaxa/Media-Service/pkg/logger"
	"github.com/andreyxaxa/Media-Service/pkg/types/errs"
)

const (
	_defaultMaxFileSize int64 = 10 * 1024 * 1024
	_defaultURLTTL            = time.Hour
)

var _defaultContentTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

type MediaUseCase struct {
	store     repo.ObjectStore
	assets    repo.AssetRepo
	codec     infrastructure.ImageCodec
	scheduler usecase.Scheduler
	observer  infrastructure.Observer

	maxFileSize         int64
	allowedContentTypes map[string]struct{}
	urlTTL              time.Duration

	logger logger.Interface
}

var _ usecase.MediaUseCase = (*MediaUseCase)(nil)

func New(
	store repo.ObjectStore,
	assets repo.AssetRepo,
	codec infrastructure.ImageCodec,
	scheduler usecase.Scheduler,
	observer infrastructure.Observer,
	l logger.Interface,
	opts ...Option,
) *MediaUseCase {
	uc := &MediaUseCase{
		store:       store,
		assets:      assets,
		codec:       codec,
		scheduler:   scheduler,
		observer:    observer,
		maxFileSize: _defaultMaxFileSize,
		urlTTL:      _defaultURLTTL,
		logger:      l,
	}

	AllowedContentTypes(_defaultContentTypes)(uc)

	for _, opt := range opts {
		opt(uc)
	}

	if uc.observer == nil {
		uc.observer = infrastructure.NopObserver{}
	}

	return uc
}

// UploadImage validates and stores an original, records its metadata and
// hands it to the background derivation. It returns before derivation runs.
func (uc *MediaUseCase) UploadImage(ctx context.Context, in dto.UploadImage, content io.Reader) (*dto.UploadResult, error) {
	contentType := normalizeContentType(in.ContentType)

	// 1. validation, no side effects on failure
	if err := uc.validateContentType(contentType); err != nil {
		uc.observer.RecordUpload(infrastructure.OutcomeRejected, 0)

		return nil, fmt.Errorf("MediaUseCase - UploadImage - uc.validateContentType: %w", err)
	}

	data, err := uc.readContent(content)
	if err != nil {
		uc.observer.RecordUpload(infrastructure.OutcomeRejected, 0)

		return nil, fmt.Errorf("MediaUseCase - UploadImage - uc.readContent: %w", err)
	}
	size := int64(len(data))

	fileKey := entity.NewFileKey(in.Filename)

	// 2. original goes to the object store before any metadata exists
	if err = uc.store.Put(ctx, fileKey, data, contentType); err != nil {
		uc.observer.RecordUpload(infrastructure.OutcomeFailed, size)

		return nil, fmt.Errorf("MediaUseCase - UploadImage - uc.store.Put: %w", err)
	}

	asset := &entity.MediaAsset{
		FileKey:          fileKey,
		OriginalFilename: in.Filename,
		ContentType:      contentType,
		FileSize:         size,
		UploadedBy:       in.UploadedBy,
		UploadedAt:       time.Now().UTC(),
	}

	// 3. dimensions are best effort
	width, height, err := uc.codec.Probe(data)
	if err != nil {
		uc.logger.Warn("MediaUseCase - UploadImage - uc.codec.Probe: key=%s, error=%v", fileKey, err)
	} else {
		asset.Width, asset.Height = &width, &height
	}

	// 4. the original stays stored but unindexed if this fails
	if err = uc.assets.Insert(ctx, asset); err != nil {
		uc.observer.RecordUpload(infrastructure.OutcomeFailed, size)

		return nil, fmt.Errorf("MediaUseCase - UploadImage - uc.assets.Insert: %w", err)
	}

	// 5. fire and forget
	if err = uc.scheduler.Schedule(dto.DerivationTask{FileKey: fileKey, Data: data}); err != nil {
		uc.observer.RecordDropped()
		uc.logger.Error(err, "MediaUseCase - UploadImage - uc.scheduler.Schedule: key=%s", fileKey)
	}

	uc.observer.RecordUpload(infrastructure.OutcomeAccepted, size)

	// 6. a signing failure degrades the response, the upload stands
	result := &dto.UploadResult{Asset: asset}

	url, err := uc.store.SignedReadURL(ctx, fileKey, uc.urlTTL)
	if err != nil {
		uc.logger.Warn("MediaUseCase - UploadImage - uc.store.SignedReadURL: key=%s, error=%v", fileKey, err)
	} else {
		result.PresignedURL = &url
	}

	return result, nil
}

// GetFileURL signs a read URL for an existing object.
func (uc *MediaUseCase) GetFileURL(ctx context.Context, fileKey string) (*dto.FileURL, error) {
	exists, err := uc.store.Exists(ctx, fileKey)
	if err != nil {
		return nil, fmt.Errorf("MediaUseCase - GetFileURL - uc.store.Exists: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("MediaUseCase - GetFileURL: %w", errs.ErrObjectNotFound)
	}

	url, err := uc.store.SignedReadURL(ctx, fileKey, uc.urlTTL)
	if err != nil {
		return nil, fmt.Errorf("MediaUseCase - GetFileURL - uc.store.SignedReadURL: %w", err)
	}

	return &dto.FileURL{FileKey: fileKey, PresignedURL: url}, nil
}

func (uc *MediaUseCase) GetMetadata(ctx context.Context, fileKey string) (*entity.MediaAsset, error) {
	asset, err := uc.assets.FindByKey(ctx, fileKey)
	if err != nil {
		return nil, fmt.Errorf("MediaUseCase - GetMetadata - uc.assets.FindByKey: %w", err)
	}

	return asset, nil
}
