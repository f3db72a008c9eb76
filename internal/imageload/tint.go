package imageload

import (
	"image"
	"image/color"
)

// Modulate multiplies every pixel of img by tint, channel by channel,
// including alpha. A white opaque tint leaves the image unchanged.
func Modulate(img image.Image, tint color.Color) *image.NRGBA {
	t := color.NRGBAModel.Convert(tint).(color.NRGBA)
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.SetNRGBA(x-b.Min.X, y-b.Min.Y, color.NRGBA{
				R: mul8(p.R, t.R),
				G: mul8(p.G, t.G),
				B: mul8(p.B, t.B),
				A: mul8(p.A, t.A),
			})
		}
	}
	return out
}

func mul8(a, b uint8) uint8 {
	return uint8((uint16(a)*uint16(b) + 127) / 255)
}
