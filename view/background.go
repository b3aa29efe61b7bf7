package view

import (
	"image"
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"
)

// BackgroundCell is the size in plane units of one background texel.
const BackgroundCell = 4

// NoiseField renders a faint perlin texture covering a w x h plane at
// 1/BackgroundCell resolution.
func NoiseField(noise *perlin.Perlin, w, h int, scale float64) *image.RGBA {
	cols := max(1, (w+BackgroundCell-1)/BackgroundCell)
	rows := max(1, (h+BackgroundCell-1)/BackgroundCell)
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			n := noise.Noise2D(float64(x*BackgroundCell)*scale, float64(y*BackgroundCell)*scale)
			v := math.Min(math.Max((n+1)/2, 0), 1)
			img.SetRGBA(x, y, color.RGBA{R: uint8(v * 8), G: uint8(v * 14), B: uint8(v * 30), A: 255})
		}
	}
	return img
}
