package v1

import (
	"github.com/andreyxaxa/Media-Service/internal/usecase"
	"github.com/andreyxaxa/Media-Service/pkg/logger"
)

type V1 struct {
	media  usecase.MediaUseCase
	logger logger.Interface

	// prefix of public_url, the group the routes are mounted on
	basePath string
}
