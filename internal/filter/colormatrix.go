package filter

import (
	"math"

	"oxsvg/svgren/internal/canvas"
)

// ColorMatrixMode selects which of feColorMatrix's four derived matrices
// to use.
type ColorMatrixMode int

const (
	ColorMatrixValues ColorMatrixMode = iota
	ColorMatrixSaturate
	ColorMatrixHueRotate
	ColorMatrixLuminanceToAlpha
)

// colorMatrix5x4 multiplies straight-alpha RGBA (each channel in [0,1])
// by a row-major 5x4 matrix (4 rows, 5 columns, the 5th column is the
// constant term), per SVG 1.1's feColorMatrix.
type colorMatrix5x4 [20]float64

func identityMatrix() colorMatrix5x4 {
	return colorMatrix5x4{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func saturateMatrix(s float64) colorMatrix5x4 {
	return colorMatrix5x4{
		0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s, 0, 0,
		0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s, 0, 0,
		0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func hueRotateMatrix(degrees float64) colorMatrix5x4 {
	a := degrees * math.Pi / 180
	c, s := math.Cos(a), math.Sin(a)
	return colorMatrix5x4{
		0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928, 0, 0,
		0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283, 0, 0,
		0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func luminanceToAlphaMatrix() colorMatrix5x4 {
	return colorMatrix5x4{
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0.2125, 0.7154, 0.0721, 0, 0,
	}
}

// BuildColorMatrix resolves a feColorMatrix element's mode/values into the
// concrete 5x4 matrix to apply.
func BuildColorMatrix(mode ColorMatrixMode, values []float64) colorMatrix5x4 {
	switch mode {
	case ColorMatrixSaturate:
		s := 1.0
		if len(values) > 0 {
			s = values[0]
		}
		return saturateMatrix(s)
	case ColorMatrixHueRotate:
		a := 0.0
		if len(values) > 0 {
			a = values[0]
		}
		return hueRotateMatrix(a)
	case ColorMatrixLuminanceToAlpha:
		return luminanceToAlphaMatrix()
	default:
		if len(values) != 20 {
			return identityMatrix()
		}
		var m colorMatrix5x4
		copy(m[:], values)
		return m
	}
}

// ColorMatrix applies m to every pixel of src. Each pixel is unpremultiplied
// (when its alpha is neither 0 nor 255), clamped to [0,1], multiplied by m,
// then clamped and re-premultiplied, per SPEC_FULL §4.3.
func ColorMatrix(src *canvas.Surface, m colorMatrix5x4) *canvas.Surface {
	w, h := src.Width, src.Height
	out := canvas.NewSurface(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := src.At(x, y)
			out.Set(x, y, applyColorMatrixPixel(m, r, g, b, a))
		}
	}
	return out
}

func applyColorMatrixPixel(m colorMatrix5x4, r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
	fr, fg, fb, fa := float64(r)/255, float64(g)/255, float64(b)/255, float64(a)/255
	if a != 0 && a != 255 {
		fr, fg, fb = fr/fa, fg/fa, fb/fa
	}

	nr := m[0]*fr + m[1]*fg + m[2]*fb + m[3]*fa + m[4]
	ng := m[5]*fr + m[6]*fg + m[7]*fb + m[8]*fa + m[9]
	nb := m[10]*fr + m[11]*fg + m[12]*fb + m[13]*fa + m[14]
	na := m[15]*fr + m[16]*fg + m[17]*fb + m[18]*fa + m[19]

	nr, ng, nb, na = clamp01(nr), clamp01(ng), clamp01(nb), clamp01(na)
	return clampByte(nr * na * 255), clampByte(ng * na * 255), clampByte(nb * na * 255), clampByte(na * 255)
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
