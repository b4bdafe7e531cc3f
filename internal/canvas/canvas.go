// Package canvas implements the vector-canvas contract used by the SVG
// renderer: path construction, transform/paint state, anti-aliased
// fill/stroke rendering, and a group stack with opacity and luminance-mask
// compositing.
//
// It is a from-scratch facade over the kept low-level AGG engine
// (path/conv/rasterizer/scanline/pixfmt/span/shapes), built the same way
// agg2d.Agg2D builds a drawing API on top of the same engine, but shaped
// for SVG semantics instead of a generic 2D drawing API: no text, no image
// blitting, and a group/mask stack modeled on a C++ svgren canvas instead
// of a generic save/restore context stack.
package canvas

import (
	"fmt"
	"log/slog"
	"math"

	"oxsvg/svgren/internal/basics"
	"oxsvg/svgren/internal/buffer"
	"oxsvg/svgren/internal/color"
	"oxsvg/svgren/internal/conv"
	"oxsvg/svgren/internal/gradient"
	"oxsvg/svgren/internal/path"
	"oxsvg/svgren/internal/pixfmt"
	"oxsvg/svgren/internal/rasterizer"
	"oxsvg/svgren/internal/scanline"
	"oxsvg/svgren/internal/shapes"
	"oxsvg/svgren/internal/transform"
)

// FillRule mirrors basics.FillingRule under an SVG-shaped name.
type FillRule int

const (
	FillNonZero FillRule = iota
	FillEvenOdd
)

// LineCap/LineJoin mirror the SVG stroke-linecap/stroke-linejoin values.
type LineCap int
type LineJoin int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// Paint is either a solid color or a gradient span generator. Exactly one
// of Gradient or a solid color (Kind==PaintSolid) is meaningful.
type PaintKind int

const (
	PaintNone PaintKind = iota
	PaintSolid
	PaintGradient
)

type Paint struct {
	Kind     PaintKind
	Color    [4]uint8 // straight RGBA, used when Kind == PaintSolid
	Gradient gradient.Generator
	Opacity  float64 // additional paint-level opacity (fill-opacity/stroke-opacity), folded in at render time
}

// SolidPaint builds a solid-color paint, straight (non-premultiplied) RGBA.
func SolidPaint(r, g, b, a uint8) Paint {
	return Paint{Kind: PaintSolid, Color: [4]uint8{r, g, b, a}, Opacity: 1}
}

// Canvas is the rasterization target plus its current path/transform/
// paint state. It holds no package-level state (spec.md §5).
type Canvas struct {
	groups []*Surface // group stack; groups[0] is the root surface, always present

	transform *transform.TransAffine

	path       *path.PathStorageStl
	convCurve  *conv.ConvCurve
	hasLastCtrl bool
	lastCtrlX, lastCtrlY float64

	fillRule FillRule
	fill     Paint
	stroke   Paint

	lineWidth  float64
	lineCap    LineCap
	lineJoin   LineJoin
	miterLimit float64
	dashes     []float64
	dashOffset float64

	log *slog.Logger
}

// New creates a canvas with the given pixel dimensions and pushes the
// root surface, matching canvas.cpp's constructor (which calls
// push_group() once up front so there is always a current group to draw
// into).
func New(width, height int, logger *slog.Logger) *Canvas {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Canvas{
		transform:  transform.NewTransAffine(),
		path:       path.NewPathStorageStl(),
		fillRule:   FillNonZero,
		fill:       SolidPaint(0, 0, 0, 255),
		stroke:     Paint{Kind: PaintNone},
		lineWidth:  1,
		lineCap:    CapButt,
		lineJoin:   JoinMiter,
		miterLimit: 4,
		log:        logger,
	}
	c.convCurve = conv.NewConvCurve(path.NewPathStorageStlVertexSourceAdapter(c.path))
	c.groups = []*Surface{NewSurface(width, height)}
	return c
}

// Width/Height report the root surface's dimensions.
func (c *Canvas) Width() int  { return c.groups[0].Width }
func (c *Canvas) Height() int { return c.groups[0].Height }

func (c *Canvas) top() *Surface { return c.groups[len(c.groups)-1] }

// --- transform mutators, grounded on canvas.cpp's transform/translate/rotate/scale ---

// Transform left-multiplies the CTM by m (new = m * current), matching
// the original's premultiply-onto-context.matrix behavior: m becomes the
// innermost transform (applied to local coordinates first), and whatever
// was already accumulated in the CTM from ancestors wraps around it.
func (c *Canvas) Transform(m *transform.TransAffine) {
	c.transform.Premultiply(m)
}

func (c *Canvas) Translate(dx, dy float64) {
	m := transform.NewTransAffine()
	m.Translate(dx, dy)
	c.Transform(m)
}

func (c *Canvas) Rotate(radians float64) {
	m := transform.NewTransAffine()
	m.Rotate(radians)
	c.Transform(m)
}

func (c *Canvas) Scale(sx, sy float64) {
	m := transform.NewTransAffine()
	m.ScaleXY(sx, sy)
	c.Transform(m)
}

// CTM returns a copy of the current transform, for callers (internal/walk)
// that need to save/restore it around scoped element visits.
func (c *Canvas) CTM() *transform.TransAffine {
	cp := *c.transform
	return &cp
}

// SetCTM replaces the current transform wholesale, used to restore a
// saved CTM when a scoped element visit ends.
func (c *Canvas) SetCTM(m *transform.TransAffine) {
	cp := *m
	c.transform = &cp
}

// --- path construction ---

func (c *Canvas) ResetPath() {
	c.path.RemoveAll()
	c.hasLastCtrl = false
}

func (c *Canvas) MoveTo(x, y float64) { c.path.MoveTo(x, y); c.hasLastCtrl = false }
func (c *Canvas) LineTo(x, y float64) { c.path.LineTo(x, y); c.hasLastCtrl = false }
func (c *Canvas) ClosePolygon()       { c.path.ClosePolygon(); c.hasLastCtrl = false }

// CubicTo appends a cubic Bezier curve to (x,y) with the given control
// points, tracking the last control point for SVG's "S" smooth-curve
// reflection.
func (c *Canvas) CubicTo(x1, y1, x2, y2, x, y float64) {
	c.path.Curve4(x1, y1, x2, y2, x, y)
	c.lastCtrlX, c.lastCtrlY = x2, y2
	c.hasLastCtrl = true
}

// QuadTo appends a quadratic Bezier curve (elevated to cubic internally
// by path.PathStorageStl.Curve3, matching the teacher's QuadricCurveTo).
func (c *Canvas) QuadTo(xCtrl, yCtrl, x, y float64) {
	c.path.Curve3(xCtrl, yCtrl, x, y)
	c.lastCtrlX, c.lastCtrlY = xCtrl, yCtrl
	c.hasLastCtrl = true
}

// LastControlPoint returns the most recent cubic/quadratic control point
// and whether one is tracked (broken by MoveTo/LineTo/ClosePolygon),
// backing the "S"/"T" smooth path commands in internal/walk's path-data
// stepper.
func (c *Canvas) LastControlPoint() (x, y float64, ok bool) {
	return c.lastCtrlX, c.lastCtrlY, c.hasLastCtrl
}

// CurrentPoint returns the path's current point.
func (c *Canvas) CurrentPoint() (x, y float64) {
	x, y, _ = c.path.LastVertex()
	return x, y
}

// ArcTo appends an SVG elliptical arc (endpoint parameterization),
// delegating to path.PathStorageStl.ArcTo, which decomposes it into
// cubic Bezier segments via internal/bezierarc.
func (c *Canvas) ArcTo(rx, ry, xAxisRotation float64, largeArc, sweep bool, x, y float64) {
	c.path.ArcTo(rx, ry, xAxisRotation, largeArc, sweep, x, y)
	c.hasLastCtrl = false
}

// AddRoundedRect appends a rounded rectangle (zero radii degenerate to a
// plain rectangle), grounded on internal/shapes.RoundedRect and the
// teacher's agg2d RoundedRectXY helper.
func (c *Canvas) AddRoundedRect(x1, y1, x2, y2, rx, ry float64) {
	rr := shapes.NewRoundedRectEmpty()
	rr.SetRect(x1, y1, x2, y2)
	rr.SetRadiusBottomTop(rx, ry, rx, ry)
	appendVertexSource(c.path, rr)
}

// AddEllipse appends a full ellipse outline as a closed subpath.
func (c *Canvas) AddEllipse(cx, cy, rx, ry float64) {
	e := shapes.NewEllipseWithParams(cx, cy, rx, ry, 0, false)
	appendVertexSource(c.path, e)
}

// AddLine appends a single open line segment (used for SVG <line>).
func (c *Canvas) AddLine(x1, y1, x2, y2 float64) {
	c.path.MoveTo(x1, y1)
	c.path.LineTo(x2, y2)
	c.hasLastCtrl = false
}

type vertexSource interface {
	Rewind(pathID uint)
	Vertex() (x, y float64, cmd basics.PathCommand)
}

func appendVertexSource(dst *path.PathStorageStl, src vertexSource) {
	src.Rewind(0)
	for {
		x, y, cmd := src.Vertex()
		if basics.IsStop(cmd) {
			break
		}
		switch {
		case basics.IsMoveTo(cmd):
			dst.MoveTo(x, y)
		case basics.IsLineTo(cmd) || basics.IsCurve(cmd):
			dst.LineTo(x, y)
		default:
			dst.ClosePolygon()
		}
	}
}

// BoundingBox returns the tight user-space bounding box of the current
// path (curves flattened, stroke width/clipping/filters excluded), per
// spec.md's get_shape_bounding_box. ok is false for an empty path.
func (c *Canvas) BoundingBox() (x0, y0, x1, y1 float64, ok bool) {
	c.convCurve.Rewind(0)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for {
		x, y, cmd := c.convCurve.Vertex()
		if basics.IsStop(cmd) {
			break
		}
		if basics.IsVertex(cmd) {
			ok = true
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
	}
	if !ok {
		return 0, 0, 0, 0, false
	}
	return minX, minY, maxX, maxY, true
}

// --- paint / stroke configuration ---

func (c *Canvas) SetFillRule(r FillRule)   { c.fillRule = r }
func (c *Canvas) SetFill(p Paint)          { c.fill = p }
func (c *Canvas) SetStroke(p Paint)        { c.stroke = p }
func (c *Canvas) SetLineWidth(w float64)   { c.lineWidth = w }
func (c *Canvas) SetLineCap(cap LineCap)   { c.lineCap = cap }
func (c *Canvas) SetLineJoin(join LineJoin) { c.lineJoin = join }
func (c *Canvas) SetMiterLimit(m float64)  { c.miterLimit = m }

// SetDashPattern sets the dash array and offset, applying the original
// implementation's edge-case rules (canvas.cpp's set_dash_pattern): an
// empty array disables dashing; odd-length arrays are implicitly doubled
// so the pattern always alternates dash/gap; any non-positive entry is
// replaced with a small epsilon so VCGenDash never receives a zero-length
// segment, which would otherwise stall its internal state machine.
func (c *Canvas) SetDashPattern(dashes []float64, offset float64) {
	if len(dashes) == 0 {
		c.dashes = nil
		c.dashOffset = 0
		return
	}
	d := make([]float64, len(dashes))
	copy(d, dashes)
	if len(d)%2 == 1 {
		d = append(d, d...)
	}
	const epsilonDash = 1e-8
	allZero := true
	for i, v := range d {
		if v <= 0 {
			d[i] = epsilonDash
		} else {
			allZero = false
		}
	}
	if allZero {
		c.dashes = nil
		c.dashOffset = 0
		return
	}
	c.dashes = d
	c.dashOffset = offset
}

// --- rendering ---

// Fill rasterizes the current path using the fill paint and fill rule.
func (c *Canvas) Fill() error {
	return c.render(c.buildFillSource(), c.fill, basics.FillingRule(c.fillRule))
}

// Stroke rasterizes the current path's outline using the stroke paint.
func (c *Canvas) Stroke() error {
	src := c.buildStrokeSource()
	return c.render(src, c.stroke, basics.FillNonZero)
}

func (c *Canvas) buildFillSource() vertexSourceF64 {
	return conv.NewConvTransform[*conv.ConvCurve, *transform.TransAffine](c.convCurve, c.transform)
}

func (c *Canvas) buildStrokeSource() vertexSourceF64 {
	var base vertexSourceF64 = c.convCurve
	if len(c.dashes) > 0 {
		dash := conv.NewConvDash(c.convCurve)
		dash.RemoveAllDashes()
		for i := 0; i+1 < len(c.dashes); i += 2 {
			dash.AddDash(c.dashes[i], c.dashes[i+1])
		}
		dash.DashStart(c.dashOffset)
		base = dash
	}
	stroke := conv.NewConvStroke(base)
	stroke.SetWidth(c.lineWidth)
	stroke.SetLineCap(basics.LineCap(c.lineCap))
	stroke.SetLineJoin(basics.LineJoin(c.lineJoin))
	stroke.SetMiterLimit(c.miterLimit)
	return conv.NewConvTransform[*conv.ConvStroke, *transform.TransAffine](stroke, c.transform)
}

// vertexSourceF64 is the minimal surface conv.ConvTransform etc. expose
// (Rewind/Vertex), used here only to let Fill/Stroke share one render
// path regardless of which converter chain produced the vertices.
type vertexSourceF64 interface {
	Rewind(pathID uint)
	Vertex() (x, y float64, cmd basics.PathCommand)
}

func (c *Canvas) render(src vertexSourceF64, paint Paint, rule basics.FillingRule) error {
	if paint.Kind == PaintNone {
		return nil
	}
	target := c.top()
	if target.Width == 0 || target.Height == 0 {
		return nil
	}

	rbuf := buffer.NewRenderingBufferU8WithData(target.Pix, target.Width, target.Height, target.Width*4)
	pf := pixfmt.NewPixFmtRGBA32Pre[color.Linear](rbuf)

	ras := rasterizer.NewRasterizerScanlineAA[int, rasterizer.RasConvInt, *rasterizer.RasterizerSlNoClip](
		rasterizer.RasConvInt{}, rasterizer.NewRasterizerSlNoClip())
	ras.Reset()
	ras.FillingRule(rule)

	src.Rewind(0)
	for {
		x, y, cmd := src.Vertex()
		if basics.IsStop(cmd) {
			break
		}
		ras.AddVertex(x, y, uint32(cmd))
	}

	sl := scanline.NewScanlineU8()

	switch paint.Kind {
	case PaintSolid:
		col := premultiplyWithOpacity(paint.Color, paint.Opacity)
		renderScanlinesSolid(ras, sl, pf, col)
	case PaintGradient:
		if paint.Gradient == nil {
			return fmt.Errorf("canvas: gradient paint has no generator")
		}
		renderScanlinesGradient(ras, sl, pf, paint.Gradient, clamp01(paint.Opacity))
	}
	return nil
}

// scanlineSweeper is the subset of RasterizerScanlineAA used by the two
// render loops below, named so they don't repeat its full generic
// instantiation.
type scanlineSweeper interface {
	RewindScanlines() bool
	SweepScanline(sl *scanline.ScanlineU8) bool
}

// renderScanlinesSolid drives the rasterizer/scanline pair directly,
// matching AGG's render_scanlines_aa_solid free function, and blends each
// span straight into the premultiplied pixel format using
// PixFmtRGBA32Pre's concrete, unboxed span methods.
func renderScanlinesSolid(ras scanlineSweeper, sl *scanline.ScanlineU8, pf *pixfmt.PixFmtRGBA32Pre[color.Linear], col color.RGBA8[color.Linear]) {
	if !ras.RewindScanlines() {
		return
	}
	for ras.SweepScanline(sl) {
		y := sl.Y()
		for _, span := range sl.Begin()[:sl.NumSpans()] {
			x, length := int(span.X), int(span.Len)
			if length < 0 {
				// Negative length marks a solid (fully covered) span in
				// AGG's scanline encoding; a single cover value applies
				// to the whole run.
				length = -length
				pf.BlendHline(x, y, length, col, span.Covers[0])
				continue
			}
			pf.BlendSolidHspan(x, y, length, col, span.Covers[:length])
		}
	}
}

// renderScanlinesGradient mirrors renderScanlinesSolid but asks the
// gradient generator for a color per pixel of each span instead of using
// one fixed color, matching AGG's render_scanlines_aa (span-generator)
// free function.
func renderScanlinesGradient(ras scanlineSweeper, sl *scanline.ScanlineU8, pf *pixfmt.PixFmtRGBA32Pre[color.Linear], gen gradient.Generator, opacity float64) {
	if !ras.RewindScanlines() {
		return
	}
	gen.Prepare()
	buf := make([]color.RGBA8[color.Linear], 0, 256)
	for ras.SweepScanline(sl) {
		y := sl.Y()
		for _, span := range sl.Begin()[:sl.NumSpans()] {
			x, length := int(span.X), int(span.Len)
			covers := span.Covers
			if length < 0 {
				length = -length
				covers = repeatCover(span.Covers[0], length)
			}
			if cap(buf) < length {
				buf = make([]color.RGBA8[color.Linear], length)
			}
			buf = buf[:length]
			gen.Generate(buf, x, y, length)
			if opacity < 1 {
				for i := range buf {
					buf[i].A = clampByte(float64(buf[i].A) * opacity)
					buf[i].R = clampByte(float64(buf[i].R) * opacity)
					buf[i].G = clampByte(float64(buf[i].G) * opacity)
					buf[i].B = clampByte(float64(buf[i].B) * opacity)
				}
			}
			pf.BlendColorHspan(x, y, length, buf, covers[:length], 255)
		}
	}
}

func repeatCover(c basics.Int8u, n int) []basics.Int8u {
	out := make([]basics.Int8u, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func premultiplyWithOpacity(straight [4]uint8, opacity float64) color.RGBA8[color.Linear] {
	a := clamp01(float64(straight[3])/255) * clamp01(opacity)
	return color.RGBA8[color.Linear]{
		R: clampByte(float64(straight[0]) * a),
		G: clampByte(float64(straight[1]) * a),
		B: clampByte(float64(straight[2]) * a),
		A: clampByte(a * 255),
	}
}

// --- group stack ---

// PushGroup pushes a new, transparent offscreen surface the same size as
// the root, matching canvas.cpp's push_group(). Filters, masks, and
// opacity compositing all render into this surface and are later merged
// by PopGroup/PopMaskAndGroup.
func (c *Canvas) PushGroup() {
	c.groups = append(c.groups, NewSurface(c.groups[0].Width, c.groups[0].Height))
}

// PopGroup merges the top group onto the one beneath it at the given
// opacity (1 = fully opaque) and removes it, matching canvas.cpp's
// pop_group(opacity).
func (c *Canvas) PopGroup(opacity float64) error {
	if len(c.groups) < 2 {
		return fmt.Errorf("canvas: pop_group with no pushed group")
	}
	top := c.groups[len(c.groups)-1]
	c.groups = c.groups[:len(c.groups)-1]
	c.top().BlendOver(top, opacity)
	return nil
}

// PopMaskAndGroup treats the top group as a luminance mask for the group
// beneath it, modulates that group's alpha by the mask's luminance, pops
// the mask, and then performs a normal PopGroup(1) of the now-modulated
// group. Matches canvas.cpp's pop_mask_and_group().
func (c *Canvas) PopMaskAndGroup() error {
	if len(c.groups) < 2 {
		return fmt.Errorf("canvas: pop_mask_and_group with no pushed mask")
	}
	mask := c.groups[len(c.groups)-1]
	c.groups = c.groups[:len(c.groups)-1]
	if len(c.groups) < 2 {
		return fmt.Errorf("canvas: pop_mask_and_group with no pushed group beneath mask")
	}
	group := c.top()
	group.ModulateByLuminanceMask(mask)
	return c.PopGroup(1)
}

// GetSubSurface returns the current top group's surface, used by
// internal/walk to snapshot a BackgroundImage at an enable-background:new
// boundary.
func (c *Canvas) GetSubSurface() *Surface { return c.top() }

// Release finalizes rendering: unpremultiplies the root surface's alpha
// exactly once, matching canvas.cpp's release(). Any groups still pushed
// at this point indicate a push/pop imbalance upstream; Release logs and
// discards them rather than silently corrupting the output.
func (c *Canvas) Release() *Surface {
	if len(c.groups) != 1 {
		c.log.Warn("canvas: release with unbalanced group stack", "depth", len(c.groups))
		c.groups = c.groups[:1]
	}
	root := c.groups[0]
	root.Unpremultiply()
	return root
}

// WarnNonInvertible is called by internal/walk when a
// requested transform is singular (zero scale). Per spec.md's documented
// failure mode this is non-fatal: the element is skipped and a warning is
// logged rather than returning an error, matching the original
// implementation's silent-skip behavior for a degenerate viewBox/scale.
func (c *Canvas) WarnNonInvertible(context string) {
	c.log.Warn("canvas: non-invertible transform, skipping element", "context", context)
}
