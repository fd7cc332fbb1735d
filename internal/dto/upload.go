package dto

import "github.com/andreyxaxa/Media-Service/internal/entity"

type UploadImage struct {
	Filename    string
	ContentType string
	UploadedBy  *string
}

type UploadResult struct {
	Asset *entity.MediaAsset
	// PresignedURL is nil when signing failed after the upload was persisted.
	PresignedURL *string
}

type FileURL struct {
	FileKey      string
	PresignedURL string
}
