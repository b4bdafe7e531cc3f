package filter

import (
	"image"

	"oxsvg/svgren/internal/canvas"
)

// ToImage converts a straight-alpha canvas.Surface (one that has already
// gone through canvas.Canvas.Release, per spec.md's one-time-unpremultiply
// rule) into an image.RGBA, the shape cmd/svgrasterize hands to image/png
// and the root svgren package returns from Rasterize.
func ToImage(s *canvas.Surface) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			r, g, b, a := s.At(x, y)
			o := img.PixOffset(x, y)
			img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = r, g, b, a
		}
	}
	return img
}
