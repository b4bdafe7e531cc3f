// Package gradient resolves <linearGradient>/<radialGradient> elements
// (including href-chained inheritance of stops/spread/coordinates) into a
// renderable span generator backed by internal/span's gradient machinery.
//
// Grounded on original_source/src/svgren/canvas.hxx's gradient/
// linear_gradient/radial_gradient class hierarchy, which wraps an AGG
// gradient function with a pad/reflect/repeat spread adaptor and bakes
// stops into an agg::gradient_lut.
package gradient

import (
	"math"

	"oxsvg/svgren/internal/color"
	"oxsvg/svgren/internal/span"
	"oxsvg/svgren/internal/transform"
)

// Spread is the gradient spread method beyond its defined range.
type Spread int

const (
	SpreadPad Spread = iota
	SpreadReflect
	SpreadRepeat
)

// Stop is one gradient color stop. Color is straight (non-premultiplied)
// RGBA, matching how stop-color/stop-opacity are authored in SVG; it is
// premultiplied only when the LUT is built, matching canvas's
// premultiply-at-the-boundary convention (spec.md §4.1).
type Stop struct {
	Offset float64
	Color  [4]uint8 // R,G,B,A straight
}

// Generator is the minimal surface internal/canvas needs from a built
// gradient: a span.SpanGradient instantiated over some concrete shape
// function, type-erased so linear and radial gradients (different
// GradientFunction type parameters) can be held behind one interface.
type Generator interface {
	Prepare()
	Generate(span []color.RGBA8[color.Linear], x, y, length int)
}

// lutColorFunction adapts span.GradientLUT's At(i) to the ColorAt(i) name
// span.SpanGradient's ColorFunction constraint expects.
type lutColorFunction struct {
	lut *span.GradientLUT[color.RGBA8[color.Linear], *span.ColorInterpolatorRGBA8[color.Linear]]
}

func (f *lutColorFunction) Size() int { return f.lut.Size() }
func (f *lutColorFunction) ColorAt(i int) color.RGBA8[color.Linear] { return f.lut.At(i) }

func buildLUT(stops []Stop) *lutColorFunction {
	lut := span.NewGradientLUT[color.RGBA8[color.Linear], *span.ColorInterpolatorRGBA8[color.Linear]](256)
	if len(stops) == 1 {
		// A single stop is defined by the SVG spec to paint as a solid
		// color; duplicate it so the LUT machinery (which wants >= 2
		// stops to interpolate between) still produces the right result.
		stops = []Stop{stops[0], stops[0]}
	}
	for _, s := range stops {
		c := premultiply(s.Color)
		lut.AddColor(s.Offset, c)
	}
	lut.BuildLUT(span.NewColorInterpolatorRGBA8[color.Linear])
	return &lutColorFunction{lut: lut}
}

func premultiply(c [4]uint8) color.RGBA8[color.Linear] {
	a := uint32(c[3])
	return color.RGBA8[color.Linear]{
		R: uint8(uint32(c[0]) * a / 0xff),
		G: uint8(uint32(c[1]) * a / 0xff),
		B: uint8(uint32(c[2]) * a / 0xff),
		A: uint8(a),
	}
}

func spreadLinear(spread Spread) span.GradientFunction {
	base := span.GradientLinearX{}
	switch spread {
	case SpreadReflect:
		return span.NewGradientReflectAdaptor[span.GradientLinearX](base)
	case SpreadRepeat:
		return span.NewGradientRepeatAdaptor[span.GradientLinearX](base)
	default:
		return base
	}
}

func spreadRadial(spread Spread) span.GradientFunction {
	base := span.GradientRadial{}
	switch spread {
	case SpreadReflect:
		return span.NewGradientReflectAdaptor[span.GradientRadial](base)
	case SpreadRepeat:
		return span.NewGradientRepeatAdaptor[span.GradientRadial](base)
	default:
		return base
	}
}

// NewLinear builds a span generator for a linear gradient running from
// (x1,y1) to (x2,y2) in gradient-local space, mapped into device space by
// localMatrix (the gradient's own gradientTransform composed with the
// element's CTM). NewLinear inverts it, since AGG gradients sample
// backward from device pixels into gradient space.
func NewLinear(x1, y1, x2, y2 float64, stops []Stop, spread Spread, localMatrix *transform.TransAffine) Generator {
	lut := buildLUT(stops)

	dx, dy := x2-x1, y2-y1
	length := dx*dx + dy*dy
	if length < 1e-12 {
		length = 1
	}

	// Build a matrix that maps device space to the gradient-axis space
	// GradientLinearX expects: undo localMatrix, then move (x1,y1) to the
	// origin and rotate the x1->x2 direction onto the positive x-axis, so
	// the 0..d2 range (d2 being the segment length) spans the stops.
	angle := math.Atan2(dy, dx)
	norm := transform.NewTransAffine()
	norm.Multiply(localMatrix)
	norm.Invert()
	norm.Translate(-x1, -y1)
	norm.Rotate(-angle)

	interp := span.NewSpanInterpolatorLinearDefault(norm)
	d2 := math.Sqrt(length)

	gf := spreadLinear(spread)
	switch g := gf.(type) {
	case span.GradientLinearX:
		return span.NewSpanGradient[color.RGBA8[color.Linear], *span.SpanInterpolatorLinear[*transform.TransAffine], span.GradientLinearX, *lutColorFunction](
			interp, g, lut, 0, d2)
	case *span.GradientReflectAdaptor[span.GradientLinearX]:
		return span.NewSpanGradient[color.RGBA8[color.Linear], *span.SpanInterpolatorLinear[*transform.TransAffine], *span.GradientReflectAdaptor[span.GradientLinearX], *lutColorFunction](
			interp, g, lut, 0, d2)
	case *span.GradientRepeatAdaptor[span.GradientLinearX]:
		return span.NewSpanGradient[color.RGBA8[color.Linear], *span.SpanInterpolatorLinear[*transform.TransAffine], *span.GradientRepeatAdaptor[span.GradientLinearX], *lutColorFunction](
			interp, g, lut, 0, d2)
	default:
		return span.NewSpanGradient[color.RGBA8[color.Linear], *span.SpanInterpolatorLinear[*transform.TransAffine], span.GradientLinearX, *lutColorFunction](
			interp, span.GradientLinearX{}, lut, 0, d2)
	}
}

// NewRadial builds a span generator for a radial gradient centered at
// (cx,cy) with radius r, in gradient-local space mapped into device space
// by localMatrix. There is no focal point: the gradient's origin is
// always (cx,cy), and fx/fy play no part in it.
func NewRadial(cx, cy, r float64, stops []Stop, spread Spread, localMatrix *transform.TransAffine) Generator {
	lut := buildLUT(stops)
	if r < 1e-6 {
		r = 1e-6
	}

	// Map device space back into gradient space with (cx,cy) at the
	// origin; GradientRadial's 0..d2 range then spans the radius r.
	norm := transform.NewTransAffine()
	norm.Multiply(localMatrix)
	norm.Invert()
	norm.Translate(-cx, -cy)

	interp := span.NewSpanInterpolatorLinearDefault(norm)
	d2 := r

	gf := spreadRadial(spread)
	switch g := gf.(type) {
	case span.GradientRadial:
		return span.NewSpanGradient[color.RGBA8[color.Linear], *span.SpanInterpolatorLinear[*transform.TransAffine], span.GradientRadial, *lutColorFunction](
			interp, g, lut, 0, d2)
	case *span.GradientReflectAdaptor[span.GradientRadial]:
		return span.NewSpanGradient[color.RGBA8[color.Linear], *span.SpanInterpolatorLinear[*transform.TransAffine], *span.GradientReflectAdaptor[span.GradientRadial], *lutColorFunction](
			interp, g, lut, 0, d2)
	case *span.GradientRepeatAdaptor[span.GradientRadial]:
		return span.NewSpanGradient[color.RGBA8[color.Linear], *span.SpanInterpolatorLinear[*transform.TransAffine], *span.GradientRepeatAdaptor[span.GradientRadial], *lutColorFunction](
			interp, g, lut, 0, d2)
	default:
		return span.NewSpanGradient[color.RGBA8[color.Linear], *span.SpanInterpolatorLinear[*transform.TransAffine], span.GradientRadial, *lutColorFunction](
			interp, span.GradientRadial{}, lut, 0, d2)
	}
}
