package errs

import "errors"

var (
	// validation
	ErrInvalidContentType = errors.New("invalid content type")
	ErrFileTooLarge       = errors.New("file too large")
	ErrInvalidImageData   = errors.New("invalid image data")

	// object store
	ErrStorageWriteFailed = errors.New("storage write failed")
	ErrStorageReadFailed  = errors.New("storage read failed")
	ErrObjectNotFound     = errors.New("object not found")

	// metadata store
	ErrMetadataNotFound = errors.New("metadata not found")

	// derivation, never surfaced to clients
	ErrDerivationFailed = errors.New("derivation failed")
	ErrQueueFull        = errors.New("derivation queue is full")
	ErrSchedulerClosed  = errors.New("derivation scheduler is closed")
)
