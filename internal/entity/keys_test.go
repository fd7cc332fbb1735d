package entity

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var uuidPattern = `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`

func TestNewFileKey(t *testing.T) {
	tests := []struct {
		filename string
		pattern  string
	}{
		{"photo.png", `^images/` + uuidPattern + `\.png$`},
		{"archive.tar.gz", `^images/` + uuidPattern + `\.gz$`},
		{"noext", `^images/` + uuidPattern + `\.jpg$`},
		{"trailing.", `^images/` + uuidPattern + `\.jpg$`},
		{"", `^images/` + uuidPattern + `\.jpg$`},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Regexp(t, regexp.MustCompile(tt.pattern), NewFileKey(tt.filename))
		})
	}
}

func TestNewFileKeyIsUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		key := NewFileKey("same.png")
		_, dup := seen[key]
		assert.False(t, dup, "duplicate key %s", key)
		seen[key] = struct{}{}
	}
}

func TestDerivedKeys(t *testing.T) {
	key := "images/0b6e7c9a-3f0e-4d5c-9a4b-6a1f2d3c4b5a.png"

	assert.Equal(t, "thumbnails/0b6e7c9a-3f0e-4d5c-9a4b-6a1f2d3c4b5a_thumb.jpg", ThumbnailKey(key))
	assert.Equal(t, "webp/0b6e7c9a-3f0e-4d5c-9a4b-6a1f2d3c4b5a.webp", WebPKey(key))

	// deterministic
	assert.Equal(t, ThumbnailKey(key), ThumbnailKey(key))
	assert.Equal(t, WebPKey(key), WebPKey(key))
}

func TestDerivedKeysMultiDot(t *testing.T) {
	assert.Equal(t, "thumbnails/abc_thumb.jpg", ThumbnailKey("images/abc.tar.gz"))
	assert.Equal(t, "webp/abc.webp", WebPKey("images/abc.tar.gz"))
}

func TestMediaAssetDerived(t *testing.T) {
	thumb, webp := "t", "w"

	a := &MediaAsset{}
	assert.False(t, a.Derived())

	a.ThumbnailKey = &thumb
	assert.False(t, a.Derived())

	a.WebPKey = &webp
	assert.True(t, a.Derived())
}
