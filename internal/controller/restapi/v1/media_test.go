package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/andreyxaxa/Media-Service/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Media-Service/internal/dto"
	"github.com/andreyxaxa/Media-Service/internal/entity"
	"github.com/andreyxaxa/Media-Service/pkg/logger"
	"github.com/andreyxaxa/Media-Service/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMedia struct {
	upload   func(in dto.UploadImage, data []byte) (*dto.UploadResult, error)
	fileURL  func(key string) (*dto.FileURL, error)
	metadata func(key string) (*entity.MediaAsset, error)
}

func (f *fakeMedia) UploadImage(_ context.Context, in dto.UploadImage, content io.Reader) (*dto.UploadResult, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}

	return f.upload(in, data)
}

func (f *fakeMedia) GetFileURL(_ context.Context, key string) (*dto.FileURL, error) {
	return f.fileURL(key)
}

func (f *fakeMedia) GetMetadata(_ context.Context, key string) (*entity.MediaAsset, error) {
	return f.metadata(key)
}

func newApp(media *fakeMedia) *fiber.App {
	app := fiber.New()
	NewMediaRoutes(app.Group("/api/media"), "/api/media", media, logger.NewWithWriter("debug", io.Discard))

	return app
}

func multipartBody(t *testing.T, filename, contentType string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	return &body, w.FormDataContentType()
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))

	return v
}

func TestUploadImage(t *testing.T) {
	var got dto.UploadImage
	width, height := 1, 1
	url := "http://minio/media/images/abc.png?sig"

	app := newApp(&fakeMedia{upload: func(in dto.UploadImage, data []byte) (*dto.UploadResult, error) {
		got = in
		return &dto.UploadResult{
			Asset: &entity.MediaAsset{
				FileKey:          "images/abc.png",
				OriginalFilename: in.Filename,
				ContentType:      in.ContentType,
				FileSize:         int64(len(data)),
				Width:            &width,
				Height:           &height,
			},
			PresignedURL: &url,
		}, nil
	}})

	body, ct := multipartBody(t, "test.png", "image/png", []byte("pngdata"), map[string]string{"uploaded_by": "user123"})
	req := httptest.NewRequest(http.MethodPost, "/api/media/upload-image", body)
	req.Header.Set(fiber.HeaderContentType, ct)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[response.Upload](t, resp)
	assert.Equal(t, "images/abc.png", out.FileKey)
	assert.Equal(t, "/api/media/file/images/abc.png", out.PublicURL)
	require.NotNil(t, out.PresignedURL)
	assert.Equal(t, url, *out.PresignedURL)
	assert.Equal(t, "test.png", out.Metadata.OriginalFilename)
	assert.Equal(t, "image/png", out.Metadata.ContentType)
	assert.Equal(t, int64(7), out.Metadata.FileSize)
	assert.Equal(t, &width, out.Metadata.Width)

	require.NotNil(t, got.UploadedBy)
	assert.Equal(t, "user123", *got.UploadedBy)
}

func TestUploadImageUploadedByQuery(t *testing.T) {
	var got dto.UploadImage
	app := newApp(&fakeMedia{upload: func(in dto.UploadImage, _ []byte) (*dto.UploadResult, error) {
		got = in
		return &dto.UploadResult{Asset: &entity.MediaAsset{FileKey: "images/x.png"}}, nil
	}})

	body, ct := multipartBody(t, "x.png", "image/png", []byte("x"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/media/upload-image?uploaded_by=u42", body)
	req.Header.Set(fiber.HeaderContentType, ct)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, got.UploadedBy)
	assert.Equal(t, "u42", *got.UploadedBy)

	// signing failed upstream: null, not omitted
	raw := decode[map[string]any](t, resp)
	v, ok := raw["presigned_url"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestUploadImageErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid type", fmt.Errorf("wrap: %w", errs.ErrInvalidContentType), http.StatusBadRequest, "invalid file type"},
		{"too large", fmt.Errorf("wrap: %w", errs.ErrFileTooLarge), http.StatusBadRequest, "file too large"},
		{"storage", fmt.Errorf("wrap: %w", errs.ErrStorageWriteFailed), http.StatusInternalServerError, "failed to upload file"},
		{"metadata", errors.New("mongo down"), http.StatusInternalServerError, "failed to upload file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(&fakeMedia{upload: func(dto.UploadImage, []byte) (*dto.UploadResult, error) {
				return nil, tt.err
			}})

			body, ct := multipartBody(t, "a.txt", "text/plain", []byte("a"), nil)
			req := httptest.NewRequest(http.MethodPost, "/api/media/upload-image", body)
			req.Header.Set(fiber.HeaderContentType, ct)

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Equal(t, tt.wantMsg, decode[response.Error](t, resp).Error)
		})
	}
}

func TestUploadImageMissingFile(t *testing.T) {
	app := newApp(&fakeMedia{})

	body, ct := multipartBody(t, "", "", nil, map[string]string{"uploaded_by": "u"})
	req := httptest.NewRequest(http.MethodPost, "/api/media/upload-image", body)
	req.Header.Set(fiber.HeaderContentType, ct)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "file is required", decode[response.Error](t, resp).Error)
}

func TestGetFile(t *testing.T) {
	var gotKey string
	app := newApp(&fakeMedia{fileURL: func(key string) (*dto.FileURL, error) {
		gotKey = key
		return &dto.FileURL{FileKey: key, PresignedURL: "http://signed"}, nil
	}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/media/file/images/abc.png", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[response.FileURL](t, resp)
	assert.Equal(t, "images/abc.png", gotKey)
	assert.Equal(t, "images/abc.png", out.FileKey)
	assert.Equal(t, "http://signed", out.PresignedURL)
}

func TestGetFileNotFound(t *testing.T) {
	for _, err := range []error{errs.ErrObjectNotFound, errors.New("signer broken")} {
		app := newApp(&fakeMedia{fileURL: func(string) (*dto.FileURL, error) {
			return nil, err
		}})

		resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/api/media/file/images/missing.png", nil), -1)
		require.NoError(t, testErr)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
}

func TestGetMetadata(t *testing.T) {
	thumb := "thumbnails/abc_thumb.jpg"
	app := newApp(&fakeMedia{metadata: func(key string) (*entity.MediaAsset, error) {
		return &entity.MediaAsset{FileKey: key, ContentType: "image/png", ThumbnailKey: &thumb}, nil
	}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/media/metadata/images/abc.png", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw := decode[map[string]any](t, resp)
	assert.Equal(t, "images/abc.png", raw["file_key"])
	assert.Equal(t, thumb, raw["thumbnail_key"])
	assert.Nil(t, raw["webp_key"])
	assert.NotContains(t, raw, "_id")
}

func TestGetMetadataErrors(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
	}{
		{fmt.Errorf("wrap: %w", errs.ErrMetadataNotFound), http.StatusNotFound},
		{errors.New("mongo down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		app := newApp(&fakeMedia{metadata: func(string) (*entity.MediaAsset, error) {
			return nil, tt.err
		}})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/media/metadata/images/nope.png", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, tt.wantCode, resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	resp, err := newApp(&fakeMedia{}).Test(httptest.NewRequest(http.MethodGet, "/api/media/health", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, response.Healthy(), decode[response.Health](t, resp))
}
