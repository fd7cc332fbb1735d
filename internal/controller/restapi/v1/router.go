package v1

import (
	"github.com/andreyxaxa/Media-Service/internal/usecase"
	"github.com/andreyxaxa/Media-Service/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

// NewMediaRoutes mounts the media API on group. basePath is the absolute path
// of group and is used to build public URLs.
func NewMediaRoutes(group fiber.Router, basePath string, media usecase.MediaUseCase, l logger.Interface) {
	r := &V1{media: media, logger: l, basePath: basePath}

	{
		group.Post("/upload-image", r.uploadImage)
		group.Get("/file/*", r.getFile)
		group.Get("/metadata/*", r.getMetadata)
		group.Get("/health", r.health)
	}
}
