package app

import (
	"context"
	"fmt"

	"github.com/andreyxaxa/Media-Service/config"
	"github.com/andreyxaxa/Media-Service/internal/infrastructure/processor"
	"github.com/andreyxaxa/Media-Service/internal/repo"
	"github.com/andreyxaxa/Media-Service/internal/repo/persistent"
	"github.com/andreyxaxa/Media-Service/pkg/minioclient"
	"github.com/andreyxaxa/Media-Service/pkg/mongodb"
	"github.com/andreyxaxa/Media-Service/pkg/s3client"
)

// NewMongo connects to the metadata store.
func NewMongo(ctx context.Context, cfg *config.Config) (*mongodb.Mongo, error) {
	return mongodb.New(ctx, cfg.Mongo.URI, cfg.Mongo.DBName, mongodb.PingTimeout(cfg.Mongo.ConnectTimeout))
}

// NewObjectStore connects to the object store through the configured driver.
func NewObjectStore(ctx context.Context, cfg *config.Config) (repo.ObjectStore, error) {
	st := cfg.Storage

	switch st.Driver {
	case config.DriverMinio:
		mc, err := minioclient.New(ctx, st.Address(), st.AccessKey, st.SecretKey,
			minioclient.Region(st.Region),
			minioclient.Secure(st.UseSSL),
		)
		if err != nil {
			return nil, fmt.Errorf("minioclient.New: %w", err)
		}

		return persistent.NewMinioObjectStore(mc, st.Bucket, st.Region), nil
	case config.DriverS3:
		s3c, err := s3client.New(ctx, st.URL(), st.AccessKey, st.SecretKey,
			s3client.Region(st.Region),
			s3client.UsePathStyle(true),
		)
		if err != nil {
			return nil, fmt.Errorf("s3client.New: %w", err)
		}

		return persistent.NewS3ObjectStore(s3c, st.Bucket), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", st.Driver)
	}
}

func NewProcessor(cfg *config.Config) *processor.ImageProcessor {
	d := cfg.Derivation

	return processor.New(
		processor.ThumbnailBound(d.ThumbnailWidth, d.ThumbnailHeight),
		processor.ThumbnailQuality(d.ThumbnailQuality),
		processor.WebPQuality(d.WebPQuality),
		processor.WebPMethod(d.WebPMethod),
		processor.MaxPixels(d.MaxImagePixels),
	)
}
