package media

import (
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/andreyxaxa/Media-Service/pkg/types/errs"
)

// normalizeContentType drops parameters and case: "Image/PNG; x=y" -> "image/png".
func normalizeContentType(ct string) string {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}

	return mediaType
}

func (uc *MediaUseCase) validateContentType(ct string) error {
	if _, ok := uc.allowedContentTypes[ct]; !ok {
		return fmt.Errorf("content type %q not allowed: %w", ct, errs.ErrInvalidContentType)
	}

	return nil
}

// readContent reads the whole stream but never buffers more than max+1 bytes.
func (uc *MediaUseCase) readContent(content io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(content, uc.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	if int64(len(data)) > uc.maxFileSize {
		return nil, fmt.Errorf("file size exceeds maximum allowed size of %d bytes: %w", uc.maxFileSize, errs.ErrFileTooLarge)
	}

	return data, nil
}
