package main

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

func main() {
	dir := filepath.Join("internal", "assets")
	os.MkdirAll(dir, 0755)

	savePNG(appIcon(), filepath.Join(dir, "app.png"))
	savePNG(placeholder(), filepath.Join(dir, "placeholder.png"))
}

// appIcon draws two overlapping photo cards on a dark rounded square
func appIcon() *image.RGBA {
	size := 64
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	bgColor := color.RGBA{32, 33, 35, 255}      // Dark bg
	sourceBlue := color.RGBA{88, 140, 236, 255} // Drag source
	dropGreen := color.RGBA{0, 255, 0, 255}     // Active drop tint

	// Draw rounded rectangle background
	drawRect(img, 2, 2, size-4, size-4, 12, bgColor)

	// Source card (top-left) and drop card (bottom-right)
	drawRect(img, 10, 12, 26, 20, 3, sourceBlue)
	drawRect(img, 28, 32, 26, 20, 3, dropGreen)

	return img
}

// placeholder is shown until an image finishes loading
func placeholder() *image.RGBA {
	w, h := 60, 40
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	track := color.RGBA{55, 57, 61, 255}
	frame := color.RGBA{80, 83, 88, 255}

	drawRect(img, 0, 0, w, h, 0, track)
	drawRect(img, 20, 12, 20, 16, 3, frame)
	return img
}

func drawRect(img *image.RGBA, x, y, w, h int, r float64, c color.Color) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			px := float64(x + dx)
			py := float64(y + dy)
			if inRoundedRect(px, py, float64(x), float64(y), float64(w), float64(h), r) {
				img.Set(x+dx, y+dy, c)
			}
		}
	}
}

func inRoundedRect(px, py, rx, ry, rw, rh, radius float64) bool {
	if px < rx || px >= rx+rw || py < ry || py >= ry+rh {
		return false
	}
	if radius <= 0 {
		return true
	}

	// Check corners
	corners := [][2]float64{
		{rx + radius, ry + radius},           // top-left
		{rx + rw - radius, ry + radius},      // top-right
		{rx + radius, ry + rh - radius},      // bottom-left
		{rx + rw - radius, ry + rh - radius}, // bottom-right
	}

	for _, corner := range corners {
		cx, cy := corner[0], corner[1]
		inCornerX := (px < rx+radius && cx == rx+radius) || (px >= rx+rw-radius && cx == rx+rw-radius)
		inCornerY := (py < ry+radius && cy == ry+radius) || (py >= ry+rh-radius && cy == ry+rh-radius)

		if inCornerX && inCornerY {
			dist := math.Sqrt((px-cx)*(px-cx) + (py-cy)*(py-cy))
			if dist > radius {
				return false
			}
		}
	}

	return true
}

func savePNG(img image.Image, path string) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	png.Encode(f, img)
}
