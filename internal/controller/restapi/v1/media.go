package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/andreyxaxa/Media-Service/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Media-Service/internal/dto"
	"github.com/andreyxaxa/Media-Service/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// @Summary  	Upload image
// @Description Stores the original in object storage, saves metadata to MongoDB and schedules thumbnail and WebP derivation
// @Tags 		media
// @Accept 		mpfd
// @Produce 	json
// @Param 		file 	    formData file   true  "Image file (jpeg, png, webp, gif)"
// @Param 		uploaded_by formData string false "Uploader id"
// @Success 	200 {object} response.Upload
// @Failure 	400 {object} response.Error "Missing file, invalid type or file too large"
// @Failure 	500 {object} response.Error "Storage failure"
// @Router 		/api/media/upload-image [post]
func (r *V1) uploadImage(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "file is required")
	}

	in := dto.UploadImage{
		Filename:    file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
	}

	// 1. uploaded_by is accepted as a form field or a query parameter
	uploadedBy := ctx.FormValue("uploaded_by")
	if uploadedBy == "" {
		uploadedBy = ctx.Query("uploaded_by")
	}
	if uploadedBy != "" {
		// fiber strings point into the request buffer
		uploadedBy = utils.CopyString(uploadedBy)
		in.UploadedBy = &uploadedBy
	}

	fileReader, err := file.Open()
	if err != nil {
		r.logger.Error(err, "restapi - v1 - uploadImage - file.Open")

		return errorResponse(ctx, http.StatusInternalServerError, "problems with opening the file")
	}
	defer fileReader.Close()

	// 2. upload
	res, err := r.media.UploadImage(ctx.UserContext(), in, fileReader)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidContentType):
			return errorResponse(ctx, http.StatusBadRequest, "invalid file type")
		case errors.Is(err, errs.ErrFileTooLarge):
			return errorResponse(ctx, http.StatusBadRequest, "file too large")
		}
		r.logger.Error(err, "restapi - v1 - uploadImage")

		return errorResponse(ctx, http.StatusInternalServerError, "failed to upload file")
	}

	// 3. response
	asset := res.Asset
	resp := response.Upload{
		FileKey:      asset.FileKey,
		PresignedURL: res.PresignedURL,
		PublicURL:    r.basePath + "/file/" + asset.FileKey,
		Metadata: response.UploadMetadata{
			OriginalFilename: asset.OriginalFilename,
			ContentType:      asset.ContentType,
			FileSize:         asset.FileSize,
			Width:            asset.Width,
			Height:           asset.Height,
		},
	}

	return ctx.Status(http.StatusOK).JSON(resp)
}

// @Summary 	Get file URL
// @Description Returns a time-limited signed URL for a stored object
// @Tags 		media
// @Produce 	json
// @Param 		file_key path string true "Object key, e.g. images/<uuid>.png"
// @Success 	200 {object} response.FileURL
// @Failure 	404 {object} response.Error "File not found"
// @Router 		/api/media/file/{file_key} [get]
func (r *V1) getFile(ctx *fiber.Ctx) error {
	fileKey := fileKeyParam(ctx)
	if fileKey == "" {
		return errorResponse(ctx, http.StatusNotFound, "file not found")
	}

	url, err := r.media.GetFileURL(ctx.UserContext(), fileKey)
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			r.logger.Error(err, "restapi - v1 - getFile")
		}

		return errorResponse(ctx, http.StatusNotFound, "file not found")
	}

	return ctx.Status(http.StatusOK).JSON(response.FileURL{
		PresignedURL: url.PresignedURL,
		FileKey:      url.FileKey,
	})
}

// @Summary 	Get metadata
// @Description Returns the stored metadata record of an upload
// @Tags 		media
// @Produce 	json
// @Param 		file_key path string true "Object key, e.g. images/<uuid>.png"
// @Success 	200 {object} entity.MediaAsset
// @Failure 	404 {object} response.Error "Metadata not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/api/media/metadata/{file_key} [get]
func (r *V1) getMetadata(ctx *fiber.Ctx) error {
	fileKey := fileKeyParam(ctx)
	if fileKey == "" {
		return errorResponse(ctx, http.StatusNotFound, "file metadata not found")
	}

	asset, err := r.media.GetMetadata(ctx.UserContext(), fileKey)
	if err != nil {
		if errors.Is(err, errs.ErrMetadataNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "file metadata not found")
		}
		r.logger.Error(err, "restapi - v1 - getMetadata")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusOK).JSON(asset)
}

// @Summary 	Health
// @Tags 		media
// @Produce 	json
// @Success 	200 {object} response.Health
// @Router 		/api/media/health [get]
func (r *V1) health(ctx *fiber.Ctx) error {
	return ctx.Status(http.StatusOK).JSON(response.Healthy())
}

// fileKeyParam returns the wildcard remainder, which may contain slashes.
func fileKeyParam(ctx *fiber.Ctx) string {
	return utils.CopyString(strings.TrimPrefix(ctx.Params("*"), "/"))
}
