package processor

type Option func(*ImageProcessor)

// ThumbnailBound sets the box the thumbnail must fit in.
func ThumbnailBound(width, height int) Option {
	return func(p *ImageProcessor) {
		p.thumbWidth = width
		p.thumbHeight = height
	}
}

func ThumbnailQuality(quality int) Option {
	return func(p *ImageProcessor) {
		p.thumbQuality = quality
	}
}

func WebPQuality(quality int) Option {
	return func(p *ImageProcessor) {
		p.webpQuality = quality
	}
}

// WebPMethod is the libwebp effort level, 0 (fast) to 6 (smallest output).
func WebPMethod(method int) Option {
	return func(p *ImageProcessor) {
		p.webpMethod = method
	}
}

// MaxPixels caps width*height accepted by Decode. Non-positive values are ignored.
func MaxPixels(n int64) Option {
	return func(p *ImageProcessor) {
		if n > 0 {
			p.maxPixels = n
		}
	}
}
