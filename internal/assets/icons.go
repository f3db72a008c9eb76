package assets

import (
	"bytes"
	_ "embed"
	"image"
	"image/png"
	"sync"

	"fyne.io/fyne/v2"
)

//go:embed app.png
var appIconData []byte

//go:embed placeholder.png
var placeholderData []byte

var (
	placeholderOnce sync.Once
	placeholderImg  image.Image
)

// AppIcon returns the application icon resource
func AppIcon() fyne.Resource {
	return fyne.NewStaticResource("app.png", appIconData)
}

// Placeholder returns the image shown until a real image has loaded
func Placeholder() image.Image {
	placeholderOnce.Do(func() {
		img, err := png.Decode(bytes.NewReader(placeholderData))
		if err != nil {
			img = image.NewNRGBA(image.Rect(0, 0, 1, 1))
		}
		placeholderImg = img
	})
	return placeholderImg
}
