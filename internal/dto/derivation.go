package dto

// DerivationTask carries the original bytes already held in memory by the
// upload path, so the pipeline does not re-read them from storage.
type DerivationTask struct {
	FileKey string
	Data    []byte
}

// DerivedVariants is what the pipeline produced for one original.
type DerivedVariants struct {
	ThumbnailKey string
	WebPKey      string
	Matched      int64
}
