package entity

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

const (
	OriginalsPrefix  = "images/"
	ThumbnailsPrefix = "thumbnails/"
	WebPPrefix       = "webp/"

	defaultExtension = "jpg"
)

// NewFileKey returns a fresh "images/<uuid>.<ext>" key. The extension comes from
// the filename when it has one, "jpg" otherwise.
func NewFileKey(filename string) string {
	return OriginalsPrefix + uuid.NewString() + "." + extension(filename)
}

func extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 || i == len(filename)-1 {
		return defaultExtension
	}

	return filename[i+1:]
}

// basename strips the directory and everything from the first dot:
// "images/abc.def.png" -> "abc".
func basename(fileKey string) string {
	base := path.Base(fileKey)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}

	return base
}

func ThumbnailKey(fileKey string) string {
	return ThumbnailsPrefix + basename(fileKey) + "_thumb.jpg"
}

func WebPKey(fileKey string) string {
	return WebPPrefix + basename(fileKey) + ".webp"
}
