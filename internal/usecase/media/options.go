package media

import (
	"strings"
	"time"
)

type Option func(*MediaUseCase)

func MaxFileSize(size int64) Option {
	return func(uc *MediaUseCase) {
		uc.maxFileSize = size
	}
}

// AllowedContentTypes replaces the default allow-list.
func AllowedContentTypes(types []string) Option {
	return func(uc *MediaUseCase) {
		uc.allowedContentTypes = make(map[string]struct{}, len(types))
		for _, t := range types {
			uc.allowedContentTypes[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
		}
	}
}

// URLTTL sets the lifetime of signed read URLs.
func URLTTL(ttl time.Duration) Option {
	return func(uc *MediaUseCase) {
		uc.urlTTL = ttl
	}
}
