package imageload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// maxDecodePixels bounds the pixel count of an image before it is decoded
const maxDecodePixels = 64 << 20

// Decode decodes data and scales it down so neither edge exceeds maxEdge.
// A maxEdge of zero disables scaling. Images whose header declares more
// than maxDecodePixels pixels are rejected with ErrTooLarge.
func Decode(data []byte, maxEdge int) (image.Image, string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, "", ErrNotImage
	}
	if err != nil {
		return nil, "", fmt.Errorf("decode image header: %w", err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > maxDecodePixels {
		return nil, "", fmt.Errorf("%dx%d image: %w", cfg.Width, cfg.Height, ErrTooLarge)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, "", ErrNotImage
	}
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return fit(img, maxEdge), format, nil
}

// fit returns img scaled to fit a maxEdge square, preserving aspect ratio
func fit(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxEdge <= 0 || (w <= maxEdge && h <= maxEdge) {
		return img
	}

	if w >= h {
		h = max(1, h*maxEdge/w)
		w = maxEdge
	} else {
		w = max(1, w*maxEdge/h)
		h = maxEdge
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
