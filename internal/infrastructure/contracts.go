package infrastructure

import (
	"context"
	"image"
	"time"
)

type (
	// ImageCodec decodes uploads and encodes the derived variants.
	ImageCodec interface {
		Probe(data []byte) (width, height int, err error)
		// Decode applies EXIF orientation when present.
		Decode(ctx context.Context, data []byte) (image.Image, error)
		Thumbnail(ctx context.Context, img image.Image) ([]byte, error)
		WebP(ctx context.Context, img image.Image) ([]byte, error)
	}

	Observer interface {
		RecordUpload(outcome string, sizeBytes int64)
		RecordDerivation(duration time.Duration, err error)
		RecordDropped()
	}
)

// Upload outcomes reported to Observer.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// NopObserver discards everything.
type NopObserver struct{}

func (NopObserver) RecordUpload(string, int64) {}

func (NopObserver) RecordDerivation(time.Duration, error) {}

func (NopObserver) RecordDropped() {}
