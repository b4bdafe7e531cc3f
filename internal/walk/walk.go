// Package walk implements the tree-walking SVG renderer of spec.md §4.2: a
// visitor over the in-memory DOM that resolves the style-inheritance
// stack, establishes viewports and viewBox transforms, emits path geometry
// to internal/canvas, resolves gradient/mask/filter references, and tracks
// the bounding boxes those references need.
//
// Grounded on original_source/src/svgren/renderer.cpp for the per-element
// visit order (style push, visibility gate, common element push, matrix
// transform, geometry, render, filter, common element pop) and on
// render.cpp for the backend-independent viewBox/preserveAspectRatio and
// path-stepper algorithms.
package walk

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"oxsvg/svgren/internal/canvas"
	"oxsvg/svgren/internal/dom"
	"oxsvg/svgren/internal/filter"
	"oxsvg/svgren/internal/style"
	"oxsvg/svgren/internal/transform"
)

// Renderer walks a dom.Document and drives a canvas.Canvas. It holds no
// package-level state (spec.md §5); every field here is per-render.
type Renderer struct {
	canvas *canvas.Canvas
	finder *dom.Finder
	style  *style.Stack
	dpi    float64
	log    *slog.Logger

	// bg is the enable-background:new stack: bg[len(bg)-1] is the
	// surface a descendant's "BackgroundImage" filter input resolves
	// to, set by the nearest ancestor with enable-background:new.
	bg []*canvas.Surface

	// useDepth bounds <use> reference recursion, guarding against a
	// use cycle walking the call stack into the ground the way
	// dom.Finder bounds gradient href chains.
	useDepth int
}

// New returns a Renderer ready to walk a document against c, resolving
// href/url(#...) references through finder.
func New(c *canvas.Canvas, finder *dom.Finder, dpi float64, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{canvas: c, finder: finder, style: style.New(), dpi: dpi, log: log}
}

// Render walks root (always an <svg> element) as the outermost element,
// its established viewport being exactly the caller-supplied canvas
// dimensions (spec.md §4.2: "the outer svg uses the caller-supplied
// initial viewport") rather than anything derived from root's own
// width/height a second time.
func (r *Renderer) Render(root *dom.Element, canvasW, canvasH float64) error {
	synthetic := *root
	synthetic.Attrs = overrideAttrs(root.Attrs, map[string]string{
		"x": "0", "y": "0",
		"width":  formatNum(canvasW),
		"height": formatNum(canvasH),
	})
	_, _, err := r.visit(&synthetic, canvasW, canvasH)
	return err
}

// visit implements one element's full step sequence (spec.md §4.2 1-8)
// and returns the element's own content bounding box, expressed in the
// coordinate system active just BEFORE e's "transform" attribute was
// applied (i.e. the caller's frame), so a container can union its
// children's boxes without separately tracking each child's matrix.
func (r *Renderer) visit(e *dom.Element, vw, vh float64) (filter.Rect, bool, error) {
	r.style.Push(e)
	defer r.style.Pop()

	if d, ok := e.StyleProperty("display"); ok && strings.TrimSpace(d) == "none" {
		return filter.Rect{}, false, nil
	}
	visible := true
	if v, ok := r.style.Get("visibility"); ok {
		v = strings.TrimSpace(v)
		visible = v != "hidden" && v != "collapse"
	}

	ownM := transform.NewTransAffine()
	if ta, ok := e.Attr("transform"); ok {
		ownM = dom.ParseTransformList(ta)
	}
	if !ownM.IsValid(1e-12) {
		r.canvas.WarnNonInvertible(e.Tag)
		return filter.Rect{}, false, nil
	}

	saved := r.canvas.CTM()
	r.canvas.Transform(ownM)
	defer r.canvas.SetCTM(saved)

	opacity := parseOpacity(r.style.GetOr("opacity", "1"))
	filterElem, hasFilter := r.filterElement(e)
	maskElem, hasMask := r.maskElement(e)
	enableBG := strings.TrimSpace(r.style.GetOr("enable-background", "")) == "new"
	group := hasFilter || hasMask || enableBG || (opacity < 1 && !r.canFoldOpacity(e))
	foldOpacity := 1.0
	if !group && opacity < 1 {
		foldOpacity = opacity
	}

	if group {
		r.canvas.PushGroup()
	}
	if enableBG {
		r.bg = append(r.bg, r.canvas.GetSubSurface())
	}

	localBBox, hasBBox, err := r.renderContent(e, vw, vh, visible, foldOpacity)
	if err != nil {
		r.unwind(group, enableBG)
		return filter.Rect{}, false, err
	}

	if hasFilter {
		if ferr := r.applyFilter(filterElem, localBBox, hasBBox); ferr != nil {
			r.unwind(group, enableBG)
			return filter.Rect{}, false, ferr
		}
	}

	if enableBG {
		r.bg = r.bg[:len(r.bg)-1]
	}

	if group {
		if hasMask {
			r.canvas.PushGroup()
			if _, _, merr := r.visitChildren(maskElem.Children, vw, vh); merr != nil {
				r.canvas.PopGroup(0)
				r.canvas.PopGroup(0)
				return filter.Rect{}, false, merr
			}
			if perr := r.canvas.PopMaskAndGroup(); perr != nil {
				return filter.Rect{}, false, perr
			}
		} else if perr := r.canvas.PopGroup(opacity); perr != nil {
			return filter.Rect{}, false, perr
		}
	}

	if !hasBBox {
		return filter.Rect{}, false, nil
	}
	return mapRect(ownM, localBBox), true, nil
}

// unwind discards any group/background-stack entries this visit pushed,
// keeping the stacks balanced after an error (spec.md §5: "a failure
// between push and the matching pop must unwind the stack before
// reporting").
func (r *Renderer) unwind(group, enableBG bool) {
	if enableBG && len(r.bg) > 0 {
		r.bg = r.bg[:len(r.bg)-1]
	}
	if group {
		r.canvas.PopGroup(0)
	}
}

func (r *Renderer) applyFilter(filterElem *dom.Element, bbox filter.Rect, hasBBox bool) error {
	ctx := filter.Context{CTM: r.canvas.CTM(), Dpi: r.dpi}
	if hasBBox {
		ctx.UserBBox = bbox
	}
	region := filter.ComputeRegion(filterElem, ctx)
	var bgSurf *canvas.Surface
	if len(r.bg) > 0 {
		bgSurf = r.bg[len(r.bg)-1]
	}
	applier := filter.NewApplier(r.canvas.GetSubSurface(), bgSurf, region, r.log)
	out, err := applier.Run(filterElem, ctx)
	if err != nil {
		return err
	}
	target := r.canvas.GetSubSurface()
	clearSurface(target)
	filter.Blit(target, out, region)
	return nil
}

// renderContent dispatches to the element-kind-specific content renderer.
// visible and foldOpacity only matter to graphical leaves.
func (r *Renderer) renderContent(e *dom.Element, vw, vh float64, visible bool, foldOpacity float64) (filter.Rect, bool, error) {
	switch e.Kind {
	case dom.KindSVG, dom.KindSymbol:
		return r.visitSVGContent(e, vw, vh)
	case dom.KindG:
		return r.visitChildren(e.Children, vw, vh)
	case dom.KindUse:
		return r.visitUse(e, vw, vh)
	case dom.KindPath, dom.KindRect, dom.KindCircle, dom.KindEllipse, dom.KindLine, dom.KindPolyline, dom.KindPolygon:
		return r.visitShape(e, vw, vh, visible, foldOpacity)
	default:
		// Unsupported/unknown elements render nothing (spec.md §7:
		// "Unknown SVG elements are skipped").
		return filter.Rect{}, false, nil
	}
}

// visitChildren renders each of children in document order and returns
// the union of their bounding boxes, already expressed in the caller's
// (this container's) own frame.
func (r *Renderer) visitChildren(children []*dom.Element, vw, vh float64) (filter.Rect, bool, error) {
	var acc filter.Rect
	has := false
	for _, c := range children {
		if skipContainerChild(c.Kind) {
			continue
		}
		b, ok, err := r.visit(c, vw, vh)
		if err != nil {
			return filter.Rect{}, false, err
		}
		if !ok {
			continue
		}
		if has {
			acc = unionRect(acc, b)
		} else {
			acc, has = b, true
		}
	}
	return acc, has, nil
}

// skipContainerChild reports whether a child element is only ever
// rendered by reference (gradient/filter/mask definitions, style rules,
// and symbol, which renders solely through <use>) rather than inline in
// document order.
func skipContainerChild(k dom.Kind) bool {
	switch k {
	case dom.KindDefs, dom.KindMask, dom.KindFilter, dom.KindLinearGradient,
		dom.KindRadialGradient, dom.KindStyle, dom.KindStop, dom.KindSymbol:
		return true
	default:
		return false
	}
}

func (r *Renderer) filterElement(e *dom.Element) (*dom.Element, bool) {
	v, ok := e.StyleProperty("filter")
	if !ok {
		return nil, false
	}
	v = strings.TrimSpace(v)
	if v == "" || v == "none" {
		return nil, false
	}
	el, found := r.finder.Resolve(v)
	if !found || el.Kind != dom.KindFilter {
		return nil, false
	}
	return el, true
}

func (r *Renderer) maskElement(e *dom.Element) (*dom.Element, bool) {
	v, ok := e.StyleProperty("mask")
	if !ok {
		return nil, false
	}
	v = strings.TrimSpace(v)
	if v == "" || v == "none" {
		return nil, false
	}
	el, found := r.finder.Resolve(v)
	if !found || el.Kind != dom.KindMask {
		return nil, false
	}
	return el, true
}

// canFoldOpacity reports whether e qualifies for the single-source-color
// optimization (SPEC_FULL §4.2): a non-container leaf whose fill and
// stroke are not both active paints, and whose one active paint is a
// plain color rather than a gradient reference, can fold its own opacity
// into that paint's alpha instead of paying for an offscreen group.
func (r *Renderer) canFoldOpacity(e *dom.Element) bool {
	if e.Kind.IsContainer() {
		return false
	}
	fill := strings.TrimSpace(r.style.GetOr("fill", "black"))
	stroke := strings.TrimSpace(r.style.GetOr("stroke", "none"))
	fillNone := fill == "none"
	strokeNone := stroke == "none"
	fillURL := strings.HasPrefix(fill, "url(")
	strokeURL := strings.HasPrefix(stroke, "url(")
	switch {
	case fillNone && !strokeNone && !strokeURL:
		return true
	case strokeNone && !fillNone && !fillURL:
		return true
	default:
		return false
	}
}

func clearSurface(s *canvas.Surface) {
	for i := range s.Pix {
		s.Pix[i] = 0
	}
}

// mapRect transforms r's four corners through m and returns their
// axis-aligned bounds.
func mapRect(m *transform.TransAffine, r filter.Rect) filter.Rect {
	corners := [4][2]float64{
		{r.X, r.Y}, {r.X + r.W, r.Y},
		{r.X, r.Y + r.H}, {r.X + r.W, r.Y + r.H},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		x, y := c[0], c[1]
		m.Transform(&x, &y)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return filter.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

func unionRect(a, b filter.Rect) filter.Rect {
	x0 := math.Min(a.X, b.X)
	y0 := math.Min(a.Y, b.Y)
	x1 := math.Max(a.X+a.W, b.X+b.W)
	y1 := math.Max(a.Y+a.H, b.Y+b.H)
	return filter.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func overrideAttrs(base map[string]string, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func formatNum(v float64) string {
	return fmt.Sprintf("%g", v)
}
