package entity

import (
	"time"
)

// MediaAsset is the metadata record of one uploaded original and its derived variants.
// Optional fields stay nil until known; they serialize as null in JSON and are
// omitted from the stored document.
type MediaAsset struct {
	FileKey          string `json:"file_key" bson:"file_key"`
	OriginalFilename string `json:"original_filename" bson:"original_filename"`
	ContentType      string `json:"content_type" bson:"content_type"`
	FileSize         int64  `json:"file_size" bson:"file_size"`

	Width  *int `json:"width" bson:"width,omitempty"`
	Height *int `json:"height" bson:"height,omitempty"`

	ThumbnailKey *string `json:"thumbnail_key" bson:"thumbnail_key,omitempty"`
	WebPKey      *string `json:"webp_key" bson:"webp_key,omitempty"`

	UploadedBy *string   `json:"uploaded_by" bson:"uploaded_by,omitempty"`
	UploadedAt time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

// Derived reports whether both variants have been recorded.
func (a *MediaAsset) Derived() bool {
	return a.ThumbnailKey != nil && a.WebPKey != nil
}
