package derivation

import (
	"context"
	"fmt"
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
	thumbnailContentType = "image/jpeg"
	webpContentType      = "image/webp"
)

type DerivationUseCase struct {
	store    repo.ObjectStore
	assets   repo.AssetRepo
	codec    infrastructure.ImageCodec
	observer infrastructure.Observer

	logger logger.Interface
}

var _ usecase.DerivationUseCase = (*DerivationUseCase)(nil)

func New(
	store repo.ObjectStore,
	assets repo.AssetRepo,
	codec infrastructure.ImageCodec,
	observer infrastructure.Observer,
	l logger.Interface,
) *DerivationUseCase {
	if observer == nil {
		observer = infrastructure.NopObserver{}
	}

	return &DerivationUseCase{
		store:    store,
		assets:   assets,
		codec:    codec,
		observer: observer,
		logger:   l,
	}
}

// Derive produces the thumbnail and WebP variants of an original and records
// their keys. Any failure stops the remaining steps; the asset then keeps only
// its original, which is a valid final state. Nothing is retried.
func (uc *DerivationUseCase) Derive(ctx context.Context, task dto.DerivationTask) (res *dto.DerivedVariants, err error) {
	start := time.Now()
	defer func() {
		uc.observer.RecordDerivation(time.Since(start), err)
	}()

	res, err = uc.derive(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("DerivationUseCase - Derive - key=%s: %w: %w", task.FileKey, errs.ErrDerivationFailed, err)
	}

	return res, nil
}

func (uc *DerivationUseCase) derive(ctx context.Context, task dto.DerivationTask) (*dto.DerivedVariants, error) {
	// 1. decode with orientation fix
	img, err := uc.codec.Decode(ctx, task.Data)
	if err != nil {
		return nil, fmt.Errorf("uc.codec.Decode: %w", err)
	}

	// 2. encode both variants before touching storage
	thumb, err := uc.codec.Thumbnail(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("uc.codec.Thumbnail: %w", err)
	}

	webp, err := uc.codec.WebP(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("uc.codec.WebP: %w", err)
	}

	// 3. keys depend only on the file key, so a re-run overwrites the same objects
	res := &dto.DerivedVariants{
		ThumbnailKey: entity.ThumbnailKey(task.FileKey),
		WebPKey:      entity.WebPKey(task.FileKey),
	}

	if err = uc.store.Put(ctx, res.ThumbnailKey, thumb, thumbnailContentType); err != nil {
		return nil, fmt.Errorf("uc.store.Put thumbnail: %w", err)
	}

	if err = uc.store.Put(ctx, res.WebPKey, webp, webpContentType); err != nil {
		return nil, fmt.Errorf("uc.store.Put webp: %w", err)
	}

	// 4. both keys in one write
	res.Matched, err = uc.assets.UpdateDerivedKeys(ctx, task.FileKey, res.ThumbnailKey, res.WebPKey)
	if err != nil {
		return nil, fmt.Errorf("uc.assets.UpdateDerivedKeys: %w", err)
	}

	if res.Matched == 0 {
		uc.logger.Warn("DerivationUseCase - Derive - no asset matched key=%s", task.FileKey)
	}

	return res, nil
}

// DeriveStored re-runs derivation for an original already in the object store.
func (uc *DerivationUseCase) DeriveStored(ctx context.Context, fileKey string) (*dto.DerivedVariants, error) {
	data, err := uc.store.Get(ctx, fileKey)
	if err != nil {
		return nil, fmt.Errorf("DerivationUseCase - DeriveStored - uc.store.Get: %w", err)
	}

	return uc.Derive(ctx, dto.DerivationTask{FileKey: fileKey, Data: data})
}
