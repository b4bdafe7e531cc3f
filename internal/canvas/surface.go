package canvas

// Surface is a premultiplied-alpha RGBA8 pixel buffer, 4 bytes per pixel
// in R,G,B,A order, matching internal/pixfmt's default RGBA byte order.
// It backs both the canvas's final output and every pushed group/mask
// layer.
type Surface struct {
	Width, Height int
	Pix           []uint8
}

// NewSurface allocates a transparent (all-zero, which is transparent
// black under premultiplied alpha) surface.
func NewSurface(w, h int) *Surface {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Surface{Width: w, Height: h, Pix: make([]uint8, w*h*4)}
}

func (s *Surface) offset(x, y int) int { return (y*s.Width + x) * 4 }

// At returns the premultiplied R,G,B,A at (x,y). Out-of-bounds reads
// return transparent black.
func (s *Surface) At(x, y int) (r, g, b, a uint8) {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return 0, 0, 0, 0
	}
	o := s.offset(x, y)
	return s.Pix[o], s.Pix[o+1], s.Pix[o+2], s.Pix[o+3]
}

// Set writes premultiplied R,G,B,A at (x,y).
func (s *Surface) Set(x, y int, r, g, b, a uint8) {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return
	}
	o := s.offset(x, y)
	s.Pix[o], s.Pix[o+1], s.Pix[o+2], s.Pix[o+3] = r, g, b, a
}

// BlendOver composites src atop the surface in place at full coverage,
// using the Porter-Duff "over" formula on premultiplied channels:
// result = src + dst*(1-srcA). This is the formula canvas.cpp's
// pop_group uses for cairo_paint_with_alpha(1) / blend_from.
func (s *Surface) BlendOver(src *Surface, opacity float64) {
	n := len(s.Pix) / 4
	if len(src.Pix)/4 != n {
		return
	}
	op := clamp01(opacity)
	for i := 0; i < n; i++ {
		o := i * 4
		sa := float64(src.Pix[o+3]) * op / 255
		inv := 1 - sa
		s.Pix[o] = clampByte(float64(src.Pix[o])*op + float64(s.Pix[o])*inv)
		s.Pix[o+1] = clampByte(float64(src.Pix[o+1])*op + float64(s.Pix[o+1])*inv)
		s.Pix[o+2] = clampByte(float64(src.Pix[o+2])*op + float64(s.Pix[o+2])*inv)
		s.Pix[o+3] = clampByte(sa*255 + float64(s.Pix[o+3])*inv)
	}
}

// ModulateByLuminanceMask multiplies every premultiplied channel of s by
// the luminance-derived alpha of mask at the same pixel, implementing the
// mask half of pop_mask_and_group: gc *= ma; gc /= 0xff per channel,
// where ma is the mask surface's luminance-to-alpha value.
func (s *Surface) ModulateByLuminanceMask(mask *Surface) {
	n := len(s.Pix) / 4
	if len(mask.Pix)/4 != n {
		return
	}
	for i := 0; i < n; i++ {
		o := i * 4
		// Luminance-to-alpha per SVG: 0.2125 R + 0.7154 G + 0.0721 B,
		// applied to the mask's own (already premultiplied) color, then
		// multiplied by the mask's own alpha since premultiplied color
		// channels already carry that factor.
		lum := 0.2125*float64(mask.Pix[o]) + 0.7154*float64(mask.Pix[o+1]) + 0.0721*float64(mask.Pix[o+2])
		ma := lum / 255
		s.Pix[o] = clampByte(float64(s.Pix[o]) * ma)
		s.Pix[o+1] = clampByte(float64(s.Pix[o+1]) * ma)
		s.Pix[o+2] = clampByte(float64(s.Pix[o+2]) * ma)
		s.Pix[o+3] = clampByte(float64(s.Pix[o+3]) * ma)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// Unpremultiply converts the surface in place from premultiplied to
// straight alpha, the canvas's release-time operation (spec.md §4.1):
// each channel becomes channel*0xff/a, clamped to 0xff, matching
// canvas.cpp's release().
func (s *Surface) Unpremultiply() {
	n := len(s.Pix) / 4
	for i := 0; i < n; i++ {
		o := i * 4
		a := s.Pix[o+3]
		if a == 0 {
			s.Pix[o], s.Pix[o+1], s.Pix[o+2] = 0, 0, 0
			continue
		}
		if a == 255 {
			continue
		}
		for c := 0; c < 3; c++ {
			v := uint32(s.Pix[o+c]) * 0xff / uint32(a)
			if v > 0xff {
				v = 0xff
			}
			s.Pix[o+c] = uint8(v)
		}
	}
}
