package walk

import (
	"strconv"
	"strings"

	"oxsvg/svgren/internal/dom"
	"oxsvg/svgren/internal/filter"
	"oxsvg/svgren/internal/transform"
)

// visitSVGContent implements the svg/symbol viewport establishment step
// (spec.md §4.2): translate by (x, y), resolve width/height against the
// caller's viewport, then apply the viewBox/preserveAspectRatio mapping
// (if any) before recursing into children under the new viewport.
func (r *Renderer) visitSVGContent(e *dom.Element, vw, vh float64) (filter.Rect, bool, error) {
	x := lengthAttr(e, "x", r.dpi, vw, "0")
	y := lengthAttr(e, "y", r.dpi, vh, "0")
	width := lengthAttr(e, "width", r.dpi, vw, "100%")
	height := lengthAttr(e, "height", r.dpi, vh, "100%")
	if width <= 0 || height <= 0 {
		return filter.Rect{}, false, nil
	}

	tr := transform.NewTransAffine()
	tr.Translate(x, y)
	r.canvas.Transform(tr)

	contentVW, contentVH := r.applyViewBox(e, width, height)
	return r.visitChildren(e.Children, contentVW, contentVH)
}

// applyViewBox folds a viewBox/preserveAspectRatio pair into the current
// CTM and returns the viewport dimensions children should resolve their
// own percentages against (the viewBox's own width/height when present).
func (r *Renderer) applyViewBox(e *dom.Element, width, height float64) (contentVW, contentVH float64) {
	vbStr, hasVB := e.Attr("viewBox")
	if !hasVB {
		return width, height
	}
	minX, minY, w, h, ok := parseViewBox(vbStr)
	if !ok || w <= 0 || h <= 0 {
		return width, height
	}
	ax, ay, ratio := parsePreserveAspectRatio(e.AttrOr("preserveAspectRatio", "xMidYMid meet"))
	vp := transform.NewTransViewport()
	vp.WorldViewport(minX, minY, minX+w, minY+h)
	vp.DeviceViewport(0, 0, width, height)
	vp.PreserveAspectRatio(ax, ay, ratio)
	r.canvas.Transform(vp.ToAffine())
	return w, h
}

func parseViewBox(s string) (minX, minY, w, h float64, ok bool) {
	fields := splitNums(s)
	if len(fields) != 4 {
		return 0, 0, 0, 0, false
	}
	vals := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0, 0, 0, false
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], vals[3], true
}

func splitNums(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

func parsePreserveAspectRatio(s string) (ax, ay float64, ratio transform.AspectRatio) {
	align := "xMidYMid"
	meetOrSlice := "meet"
	for _, f := range strings.Fields(strings.TrimSpace(s)) {
		switch f {
		case "none", "xMinYMin", "xMidYMin", "xMaxYMin",
			"xMinYMid", "xMidYMid", "xMaxYMid",
			"xMinYMax", "xMidYMax", "xMaxYMax":
			align = f
		case "meet", "slice":
			meetOrSlice = f
		}
	}
	if align == "none" {
		return 0, 0, transform.AspectRatioStretch
	}
	ax = alignFraction(align[1:4])
	ay = alignFraction(align[5:8])
	if meetOrSlice == "slice" {
		ratio = transform.AspectRatioSlice
	} else {
		ratio = transform.AspectRatioMeet
	}
	return
}

func alignFraction(tok string) float64 {
	switch tok {
	case "Min":
		return 0
	case "Max":
		return 1
	default:
		return 0.5
	}
}

// visitUse implements <use> resolution (spec.md §4.2): translate by the
// use element's own (x, y), then render the referenced element. A
// referenced symbol or nested svg is rendered as an svg element whose
// width/height default from the use element when not set on the target
// itself; any other referenced element renders as if it were a direct
// child, under the use element's own style/transform frame (already
// established by visit before renderContent dispatched here).
func (r *Renderer) visitUse(e *dom.Element, vw, vh float64) (filter.Rect, bool, error) {
	href, ok := e.Attr("xlink:href")
	if !ok {
		href, ok = e.Attr("href")
	}
	if !ok {
		return filter.Rect{}, false, nil
	}
	target, found := r.finder.Resolve(href)
	if !found {
		return filter.Rect{}, false, nil
	}
	if r.useDepth >= dom.MaxHrefDepth() {
		r.log.Warn("use reference depth exceeded, skipping", "id", e.ID)
		return filter.Rect{}, false, nil
	}

	x := lengthAttr(e, "x", r.dpi, vw, "0")
	y := lengthAttr(e, "y", r.dpi, vh, "0")
	tr := transform.NewTransAffine()
	tr.Translate(x, y)
	r.canvas.Transform(tr)

	r.useDepth++
	defer func() { r.useDepth-- }()

	if target.Kind == dom.KindSymbol || target.Kind == dom.KindSVG {
		synthetic := *target
		synthetic.Attrs = overrideAttrs(target.Attrs, useOverrides(e, "width", "height"))
		return r.visit(&synthetic, vw, vh)
	}
	return r.visit(target, vw, vh)
}

func useOverrides(e *dom.Element, keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := e.Attr(k); ok {
			out[k] = v
		}
	}
	return out
}

func lengthAttr(e *dom.Element, name string, dpi, percentBase float64, def string) float64 {
	s := e.AttrOr(name, def)
	return dom.ParseLength(s).ToPx(dpi, percentBase, 16)
}
