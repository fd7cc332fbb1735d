package response

type Upload struct {
	FileKey      string         `json:"file_key"`
	PresignedURL *string        `json:"presigned_url"`
	PublicURL    string         `json:"public_url"`
	Metadata     UploadMetadata `json:"metadata"`
}

type UploadMetadata struct {
	OriginalFilename string `json:"original_filename"`
	ContentType      string `json:"content_type"`
	FileSize         int64  `json:"file_size"`
	Width            *int   `json:"width"`
	Height           *int   `json:"height"`
}

type FileURL struct {
	PresignedURL string `json:"presigned_url"`
	FileKey      string `json:"file_key"`
}
