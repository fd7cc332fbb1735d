package processor

import (
	"bytes"
	"compress/zlib"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/andreyxaxa/Media-Service/pkg/types/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xwebp "golang.org/x/image/webp"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

// withOrientation inserts a minimal EXIF APP1 segment right after SOI.
func withOrientation(t *testing.T, jpg []byte, orientation uint16) []byte {
	t.Helper()
	require.True(t, len(jpg) > 2 && jpg[0] == 0xFF && jpg[1] == 0xD8)

	var tiff bytes.Buffer
	tiff.WriteString("MM")
	_ = binary.Write(&tiff, binary.BigEndian, uint16(0x002A))
	_ = binary.Write(&tiff, binary.BigEndian, uint32(8))
	_ = binary.Write(&tiff, binary.BigEndian, uint16(1))      // entries
	_ = binary.Write(&tiff, binary.BigEndian, uint16(0x0112)) // orientation
	_ = binary.Write(&tiff, binary.BigEndian, uint16(3))      // SHORT
	_ = binary.Write(&tiff, binary.BigEndian, uint32(1))
	_ = binary.Write(&tiff, binary.BigEndian, orientation)
	_ = binary.Write(&tiff, binary.BigEndian, uint16(0))
	_ = binary.Write(&tiff, binary.BigEndian, uint32(0)) // next IFD

	payload := append([]byte("Exif\x00\x00"), tiff.Bytes()...)

	var out bytes.Buffer
	out.Write(jpg[:2])
	out.Write([]byte{0xFF, 0xE1})
	_ = binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(jpg[2:])

	return out.Bytes()
}

func TestProbe(t *testing.T) {
	p := New()

	w, h, err := p.Probe(encodePNG(t, solid(1, 1, color.Black)))
	require.NoError(t, err)
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)

	w, h, err = p.Probe(encodeJPEG(t, solid(320, 240, color.White)))
	require.NoError(t, err)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}

func TestProbeInvalid(t *testing.T) {
	_, _, err := New().Probe([]byte("not an image"))
	assert.ErrorIs(t, err, errs.ErrInvalidImageData)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := New().Decode(context.Background(), []byte("not an image"))
	assert.ErrorIs(t, err, errs.ErrInvalidImageData)
}

// grayPNG writes a 1-bit all-black PNG by hand so large dimensions stay cheap
// to build: the zlib stream of zero rows compresses to a few hundred KB.
func grayPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	var out bytes.Buffer
	out.WriteString("\x89PNG\r\n\x1a\n")

	chunk := func(typ string, data []byte) {
		_ = binary.Write(&out, binary.BigEndian, uint32(len(data)))
		body := append([]byte(typ), data...)
		out.Write(body)
		_ = binary.Write(&out, binary.BigEndian, crc32.ChecksumIEEE(body))
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(w))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(h))
	ihdr[8] = 1 // bit depth, color type 0 (gray)
	chunk("IHDR", ihdr)

	var idat bytes.Buffer
	zw := zlib.NewWriter(&idat)
	row := make([]byte, 1+(w+7)/8) // filter byte + packed pixels
	for y := 0; y < h; y++ {
		_, err := zw.Write(row)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	chunk("IDAT", idat.Bytes())
	chunk("IEND", nil)

	return out.Bytes()
}

func TestDecodeRejectsDecompressionBomb(t *testing.T) {
	data := grayPNG(t, 15000, 15000)
	require.Less(t, len(data), 10<<20)

	p := New()

	// the header is fine, uploads still record dimensions
	w, h, err := p.Probe(data)
	require.NoError(t, err)
	assert.Equal(t, 15000, w)
	assert.Equal(t, 15000, h)

	img, err := p.Decode(context.Background(), data)
	require.ErrorIs(t, err, errs.ErrInvalidImageData)
	assert.Nil(t, img)
}

func TestDecodeMaxPixels(t *testing.T) {
	data := grayPNG(t, 20, 20)

	_, err := New(MaxPixels(399)).Decode(context.Background(), data)
	require.ErrorIs(t, err, errs.ErrInvalidImageData)

	img, err := New(MaxPixels(400)).Decode(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())

	// non-positive limits keep the default
	_, err = New(MaxPixels(0)).Decode(context.Background(), data)
	require.NoError(t, err)
}

func TestDecodeAppliesOrientation(t *testing.T) {
	p := New()
	data := withOrientation(t, encodeJPEG(t, solid(200, 100, color.White)), 6)

	// header dimensions are the stored ones
	w, h, err := p.Probe(data)
	require.NoError(t, err)
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)

	img, err := p.Decode(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestDecodeWithoutExif(t *testing.T) {
	img, err := New().Decode(context.Background(), encodeJPEG(t, solid(200, 100, color.White)))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestThumbnailPreservesAspectRatio(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"landscape", 2000, 1000, 400, 200},
		{"portrait", 500, 1000, 200, 400},
		{"square", 800, 800, 400, 400},
		{"smaller than bound", 100, 50, 100, 50},
	}

	p := New(ThumbnailBound(400, 400))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := p.Thumbnail(context.Background(), solid(tt.w, tt.h, color.Black))
			require.NoError(t, err)

			cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
			require.NoError(t, err)
			assert.Equal(t, "jpeg", format)
			assert.Equal(t, tt.wantW, cfg.Width)
			assert.Equal(t, tt.wantH, cfg.Height)
		})
	}
}

func TestThumbnailFlattensTransparency(t *testing.T) {
	transparent := solid(10, 10, color.NRGBA{R: 0, G: 0, B: 0, A: 0})

	out, err := New().Thumbnail(context.Background(), transparent)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	r, g, b, _ := img.At(5, 5).RGBA()
	// JPEG is lossy; white stays close to 0xffff
	assert.Greater(t, r, uint32(0xf000))
	assert.Greater(t, g, uint32(0xf000))
	assert.Greater(t, b, uint32(0xf000))
}

func TestThumbnailPaletted(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 20, 10), color.Palette{
		color.NRGBA{A: 0},
		color.NRGBA{R: 255, A: 255},
	})

	out, err := New().Thumbnail(context.Background(), pal)
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, 10, cfg.Height)
}

func TestWebP(t *testing.T) {
	src := solid(64, 32, color.NRGBA{R: 200, G: 10, B: 10, A: 255})

	out, err := New(WebPQuality(85), WebPMethod(6)).WebP(context.Background(), src)
	require.NoError(t, err)
	require.True(t, len(out) > 12)
	assert.Equal(t, "RIFF", string(out[0:4]))
	assert.Equal(t, "WEBP", string(out[8:12]))

	cfg, err := xwebp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New()
	_, err := p.Decode(ctx, encodePNG(t, solid(1, 1, color.Black)))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = p.Thumbnail(ctx, solid(1, 1, color.Black))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = p.WebP(ctx, solid(1, 1, color.Black))
	assert.ErrorIs(t, err, context.Canceled)
}
