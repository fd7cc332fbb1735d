package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	// register decoders beyond the ones imaging pulls in
	_ "golang.org/x/image/webp"

	"github.com/andreyxaxa/Media-Service/internal/infrastructure"
	"github.com/andreyxaxa/Media-Service/pkg/types/errs"
	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

const (
	_defaultThumbWidth   = 400
	_defaultThumbHeight  = 400
	_defaultThumbQuality = 85
	_defaultWebPQuality  = 85
	_defaultWebPMethod   = 6

	// decompression bomb threshold
	_defaultMaxPixels = 178956970
)

type ImageProcessor struct {
	thumbWidth   int
	thumbHeight  int
	thumbQuality int
	webpQuality  int
	webpMethod   int
	maxPixels    int64
}

var _ infrastructure.ImageCodec = (*ImageProcessor)(nil)

func New(opts ...Option) *ImageProcessor {
	p := &ImageProcessor{
		thumbWidth:   _defaultThumbWidth,
		thumbHeight:  _defaultThumbHeight,
		thumbQuality: _defaultThumbQuality,
		webpQuality:  _defaultWebPQuality,
		webpMethod:   _defaultWebPMethod,
		maxPixels:    _defaultMaxPixels,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Probe reads the dimensions from the image header without decoding pixels.
func (p *ImageProcessor) Probe(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("ImageProcessor - Probe - image.DecodeConfig: %w: %w", errs.ErrInvalidImageData, err)
	}

	return cfg.Width, cfg.Height, nil
}

// Decode refuses images whose header declares more pixels than the configured
// limit before any pixel data is allocated.
func (p *ImageProcessor) Decode(ctx context.Context, data []byte) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ImageProcessor - Decode: %w", err)
	}

	w, h, err := p.Probe(data)
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - Decode - p.Probe: %w", err)
	}
	if pixels := int64(w) * int64(h); pixels > p.maxPixels {
		return nil, fmt.Errorf("ImageProcessor - Decode - %dx%d exceeds %d pixels: %w", w, h, p.maxPixels, errs.ErrInvalidImageData)
	}

	// AutoOrientation silently skips missing or broken EXIF
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - Decode - imaging.Decode: %w: %w", errs.ErrInvalidImageData, err)
	}

	return img, nil
}

// Thumbnail fits img into the configured bound keeping the aspect ratio and
// encodes it as JPEG. Images smaller than the bound are not upscaled.
func (p *ImageProcessor) Thumbnail(ctx context.Context, img image.Image) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ImageProcessor - Thumbnail: %w", err)
	}

	thumb := flatten(imaging.Fit(img, p.thumbWidth, p.thumbHeight, imaging.Lanczos))

	var buf bytes.Buffer
	err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(p.thumbQuality))
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - Thumbnail - imaging.Encode: %w", err)
	}

	return buf.Bytes(), nil
}

// WebP encodes img at full size. Alpha is kept since WebP supports it.
func (p *ImageProcessor) WebP(ctx context.Context, img image.Image) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ImageProcessor - WebP: %w", err)
	}

	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(p.webpQuality))
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - WebP - encoder.NewLossyEncoderOptions: %w", err)
	}
	opts.Method = p.webpMethod

	var buf bytes.Buffer
	if err = webp.Encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("ImageProcessor - WebP - webp.Encode: %w", err)
	}

	return buf.Bytes(), nil
}

// flatten composites images with transparency onto opaque white.
func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}

	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)

	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}
