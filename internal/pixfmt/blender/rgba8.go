package blender

import (
	"oxsvg/svgren/internal/basics"
	"oxsvg/svgren/internal/color"
	"oxsvg/svgren/internal/order"
)

////////////////////////////////////////////////////////////////////////////////
// RGBA Blender interface
////////////////////////////////////////////////////////////////////////////////

// plainRGBABlender defines the minimal interface used by the free blend
// helpers below. The blender handles color space interpretation; pixel
// ordering is baked into the concrete blender's methods.
type plainRGBABlender[S color.Space] interface {
	// GetPlain reads a pixel and returns plain (non-premultiplied) RGBA components
	// interpreted according to color space S
	GetPlain(px []byte) (r, g, b, a basics.Int8u)

	// SetPlain writes plain RGBA components to a pixel, mapping them to the
	// internal order and storage format of the blender
	SetPlain(px []byte, r, g, b, a basics.Int8u)

	// BlendPix blends plain RGBA source into the pixel with given coverage
	// r,g,b,a are interpreted according to S, and mapped to the order internal to the blender
	BlendPix(px []byte, r, g, b, a, cover basics.Int8u)
}

// RawRGBAOrder provides optional fast path for zero-cost index access.
// Blenders that expose direct index access should implement this interface
// to allow optimized operations when order-specific code is needed.
type RawRGBAOrder interface {
	IdxR() int
	IdxG() int
	IdxB() int
	IdxA() int
}

////////////////////////////////////////////////////////////////////////////////
// Plain (non-premultiplied) source -> Premultiplied destination
////////////////////////////////////////////////////////////////////////////////

// BlenderRGBA8 blends *plain* source into a premultiplied destination buffer.
// Matches AGG's blender_rgba (plain → premultiplied).
type BlenderRGBA8[S color.Space, O order.RGBAOrder] struct{}

// BlendPix blends a non-premultiplied RGBA source into a premultiplied buffer.
// Alpha is scaled by coverage; channels use lerp; alpha uses prelerp.
func (BlenderRGBA8[S, O]) BlendPix(dst []basics.Int8u, r, g, b, a, cover basics.Int8u) {
	a = color.RGBA8MultCover(a, cover)
	if a == 0 {
		return
	}
	var o O
	dst[o.IdxR()] = color.RGBA8Lerp(dst[o.IdxR()], r, a)
	dst[o.IdxG()] = color.RGBA8Lerp(dst[o.IdxG()], g, a)
	dst[o.IdxB()] = color.RGBA8Lerp(dst[o.IdxB()], b, a)
	dst[o.IdxA()] = color.RGBA8Prelerp(dst[o.IdxA()], a, a)
}

func (BlenderRGBA8[S, O]) SetPlain(dst []basics.Int8u, r, g, b, a basics.Int8u) {
	var o O
	// SetPlain should set the exact plain/straight alpha values without premultiplying
	// The blending operations (BlendPix, etc.) handle premultiplication as needed
	dst[o.IdxR()], dst[o.IdxG()], dst[o.IdxB()], dst[o.IdxA()] = r, g, b, a
}

func (BlenderRGBA8[S, O]) GetPlain(src []basics.Int8u) (r, g, b, a basics.Int8u) {
	var o O
	// GetPlain returns the exact stored values without demultiplying
	// This matches SetPlain which stores plain/straight alpha values
	return src[o.IdxR()], src[o.IdxG()], src[o.IdxB()], src[o.IdxA()]
}

// RawRGBAOrder interface implementation for fast path access
func (BlenderRGBA8[S, O]) IdxR() int { var o O; return o.IdxR() }
func (BlenderRGBA8[S, O]) IdxG() int { var o O; return o.IdxG() }
func (BlenderRGBA8[S, O]) IdxB() int { var o O; return o.IdxB() }
func (BlenderRGBA8[S, O]) IdxA() int { var o O; return o.IdxA() }

////////////////////////////////////////////////////////////////////////////////
// Premultiplied source -> Premultiplied destination
////////////////////////////////////////////////////////////////////////////////

// BlenderRGBA8Pre blends *premultiplied* source into a premultiplied destination buffer.
// Matches AGG's blender_rgba_pre (premultiplied → premultiplied). The canvas's
// framebuffer format is built on this blender exclusively.
type BlenderRGBA8Pre[S color.Space, O order.RGBAOrder] struct{}

// BlendPix blends a premultiplied RGBA source into a premultiplied buffer.
// Channels and alpha use prelerp. Coverage scales all premultiplied components.
func (BlenderRGBA8Pre[S, O]) BlendPix(dst []basics.Int8u, r, g, b, a, cover basics.Int8u) {
	if cover != 255 {
		r = color.RGBA8MultCover(r, cover)
		g = color.RGBA8MultCover(g, cover)
		b = color.RGBA8MultCover(b, cover)
		a = color.RGBA8MultCover(a, cover)
	}
	if a == 0 && r == 0 && g == 0 && b == 0 {
		return
	}
	var o O
	dst[o.IdxR()] = color.RGBA8Prelerp(dst[o.IdxR()], r, a)
	dst[o.IdxG()] = color.RGBA8Prelerp(dst[o.IdxG()], g, a)
	dst[o.IdxB()] = color.RGBA8Prelerp(dst[o.IdxB()], b, a)
	dst[o.IdxA()] = color.RGBA8Prelerp(dst[o.IdxA()], a, a)
}

func (BlenderRGBA8Pre[S, O]) SetPlain(dst []basics.Int8u, r, g, b, a basics.Int8u) {
	BlenderRGBA8[S, O]{}.SetPlain(dst, r, g, b, a)
}

func (BlenderRGBA8Pre[S, O]) GetPlain(src []basics.Int8u) (r, g, b, a basics.Int8u) {
	return BlenderRGBA8[S, O]{}.GetPlain(src)
}

// RawRGBAOrder interface implementation for fast path access
func (BlenderRGBA8Pre[S, O]) IdxR() int { var o O; return o.IdxR() }
func (BlenderRGBA8Pre[S, O]) IdxG() int { var o O; return o.IdxG() }
func (BlenderRGBA8Pre[S, O]) IdxB() int { var o O; return o.IdxB() }
func (BlenderRGBA8Pre[S, O]) IdxA() int { var o O; return o.IdxA() }

////////////////////////////////////////////////////////////////////////////////
// Plain (non-premultiplied) source -> Plain destination
////////////////////////////////////////////////////////////////////////////////

// BlenderRGBA8Plain blends *plain* source into a *plain* destination buffer.
// Matches AGG's blender_rgba_plain (plain → plain): it premultiplies dst on-the-fly,
// blends in premultiplied space, then demultiplies to store plain again.
type BlenderRGBA8Plain[S color.Space, O order.RGBAOrder] struct{}

// BlendPix blends non-premultiplied src into non-premultiplied dst using the classic
// "premultiply → blend in premul → demultiply" approach.
func (BlenderRGBA8Plain[S, O]) BlendPix(dst []basics.Int8u, r, g, b, a, cover basics.Int8u) {
	a = color.RGBA8MultCover(a, cover)
	if a == 0 {
		return
	}
	var o O

	da := dst[o.IdxA()]
	// premultiply dst on the fly
	dr := color.RGBA8Multiply(dst[o.IdxR()], da)
	dg := color.RGBA8Multiply(dst[o.IdxG()], da)
	db := color.RGBA8Multiply(dst[o.IdxB()], da)

	dr = color.RGBA8Lerp(dr, r, a)
	dg = color.RGBA8Lerp(dg, g, a)
	db = color.RGBA8Lerp(db, b, a)
	da = color.RGBA8Prelerp(da, a, a)

	if da > 0 {
		dst[o.IdxR()] = demul8(dr, da)
		dst[o.IdxG()] = demul8(dg, da)
		dst[o.IdxB()] = demul8(db, da)
		dst[o.IdxA()] = da
	} else {
		dst[o.IdxR()], dst[o.IdxG()], dst[o.IdxB()], dst[o.IdxA()] = 0, 0, 0, 0
	}
}

func (BlenderRGBA8Plain[S, O]) SetPlain(dst []basics.Int8u, r, g, b, a basics.Int8u) {
	var o O
	dst[o.IdxR()], dst[o.IdxG()], dst[o.IdxB()], dst[o.IdxA()] = r, g, b, a
}

func (BlenderRGBA8Plain[S, O]) GetPlain(src []basics.Int8u) (r, g, b, a basics.Int8u) {
	var o O
	return src[o.IdxR()], src[o.IdxG()], src[o.IdxB()], src[o.IdxA()]
}

// RawRGBAOrder interface implementation for fast path access
func (BlenderRGBA8Plain[S, O]) IdxR() int { var o O; return o.IdxR() }
func (BlenderRGBA8Plain[S, O]) IdxG() int { var o O; return o.IdxG() }
func (BlenderRGBA8Plain[S, O]) IdxB() int { var o O; return o.IdxB() }
func (BlenderRGBA8Plain[S, O]) IdxA() int { var o O; return o.IdxA() }

// BlendRGBAPixel blends a single pixel using the provided blender B.
// Works for any Space S and Order O, and never branches on order at runtime.
func BlendRGBAPixel[S color.Space, O order.RGBAOrder](
	dst []basics.Int8u,
	src color.RGBA8[S],
	cover basics.Int8u,
	b plainRGBABlender[S],
) {
	if src.IsTransparent() || cover == 0 {
		return
	}
	b.BlendPix(dst, src.R, src.G, src.B, src.A, cover)
}

// CopyRGBAPixel writes the *plain* RGBA components to dst in order O.
// (Use this when you want a raw copy with no blending.)
func CopyRGBAPixel[S color.Space, O order.RGBAOrder](
	dst []basics.Int8u,
	src color.RGBA8[S],
) {
	var o O
	dst[o.IdxR()] = src.R
	dst[o.IdxG()] = src.G
	dst[o.IdxB()] = src.B
	dst[o.IdxA()] = src.A
}

// Blend a horizontal span
func BlendRGBAHline[S color.Space, O order.RGBAOrder](
	dst []basics.Int8u,
	x, length int,
	src color.RGBA8[S],
	covers []basics.Int8u, // nil => full cover
	b plainRGBABlender[S],
) {
	if length <= 0 || src.IsTransparent() {
		return
	}
	const pixStep = 4
	p := x * pixStep

	if covers == nil {
		for i := 0; i < length; i++ {
			b.BlendPix(dst[p:p+4], src.R, src.G, src.B, src.A, 255)
			p += pixStep
		}
		return
	}
	for i := 0; i < length; i++ {
		if c := covers[i]; c != 0 {
			b.BlendPix(dst[p:p+4], src.R, src.G, src.B, src.A, c)
		}
		p += pixStep
	}
}

// CopyRGBAHline copies a horizontal run of the same plain color into dst in order O.
func CopyRGBAHline[S color.Space, O order.RGBAOrder](
	dst []basics.Int8u,
	x, length int,
	src color.RGBA8[S],
) {
	if length <= 0 {
		return
	}
	var o O
	const pixStep = 4
	p := x * pixStep
	for i := 0; i < length; i++ {
		dst[p+o.IdxR()] = src.R
		dst[p+o.IdxG()] = src.G
		dst[p+o.IdxB()] = src.B
		dst[p+o.IdxA()] = src.A
		p += pixStep
	}
}

// FillRGBASpan is a synonym of CopyRGBAHline (explicit name for intent).
func FillRGBASpan[S color.Space, O order.RGBAOrder](
	dst []basics.Int8u,
	x, length int,
	src color.RGBA8[S],
) {
	CopyRGBAHline[S, O](dst, x, length, src)
}

// demul8 converts a premultiplied component x back to straight by x * 255 / a with rounding.
func demul8(x, a basics.Int8u) basics.Int8u {
	// (x*255 + a/2) / a  — classic rounded divide
	return basics.Int8u((uint32(x)*255 + uint32(a)/2) / uint32(a))
}
