package uploader

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

var ErrInvalidImage = errors.New("unsupported or corrupt image")

const (
	jpegQuality = 85

	DefaultMaxPixels = 40_000_000
)

type Image struct {
	Data        []byte
	ContentType string
	Ext         string
}

// Prepare decodes data, shrinks it to fit maxWidth x maxHeight (a zero bound
// is ignored) and re-encodes it. PNG stays PNG to keep transparency, every
// other format becomes JPEG. Images whose header declares more than
// maxPixels pixels are rejected before any pixel data is decoded; a
// non-positive maxPixels means DefaultMaxPixels.
func Prepare(data []byte, maxWidth, maxHeight, maxPixels int) (Image, error) {
	if len(data) == 0 {
		return Image{}, fmt.Errorf("%w: empty file", ErrInvalidImage)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return Image{}, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidImage, cfg.Width, cfg.Height, maxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	img = fit(img, maxWidth, maxHeight)

	out := Image{ContentType: "image/jpeg", Ext: ".jpg"}
	target := imaging.JPEG
	if format == "png" {
		out = Image{ContentType: "image/png", Ext: ".png"}
		target = imaging.PNG
	}

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, img, target, imaging.JPEGQuality(jpegQuality)); err != nil {
		return Image{}, fmt.Errorf("failed to encode image: %w", err)
	}

	out.Data = buf.Bytes()

	return out, nil
}

func fit(img image.Image, maxWidth, maxHeight int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if maxWidth <= 0 {
		maxWidth = w
	}
	if maxHeight <= 0 {
		maxHeight = h
	}

	if w <= maxWidth && h <= maxHeight {
		return img
	}

	return imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
}
