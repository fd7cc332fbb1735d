package usecase

import (
	"context"
	"io"

	"github.com/andreyxaxa/Media-Service/internal/dto"
	"github.com/andreyxaxa/Media-Service/internal/entity"
)

type (
	MediaUseCase interface {
		UploadImage(ctx context.Context, in dto.UploadImage, content io.Reader) (*dto.UploadResult, error)
		GetFileURL(ctx context.Context, fileKey string) (*dto.FileURL, error)
		GetMetadata(ctx context.Context, fileKey string) (*entity.MediaAsset, error)
	}

	DerivationUseCase interface {
		Derive(ctx context.Context, task dto.DerivationTask) (*dto.DerivedVariants, error)
	}

	// Scheduler runs derivation in the background. Schedule never blocks on
	// the work itself.
	Scheduler interface {
		Schedule(task dto.DerivationTask) error
	}
)
