package walk

import (
	"math"
	"strconv"
	"strings"

	"oxsvg/svgren/internal/canvas"
	"oxsvg/svgren/internal/dom"
	"oxsvg/svgren/internal/filter"
)

// visitShape builds a leaf element's path, fills/strokes it (when
// visible), and returns its own bounding box, used both for the parent's
// bbox accumulation and as the objectBoundingBox reference for any
// gradient paint this same shape resolves.
func (r *Renderer) visitShape(e *dom.Element, vw, vh float64, visible bool, foldOpacity float64) (filter.Rect, bool, error) {
	r.canvas.ResetPath()
	switch e.Kind {
	case dom.KindRect:
		r.emitRect(e, vw, vh)
	case dom.KindCircle:
		r.emitCircle(e, vw, vh)
	case dom.KindEllipse:
		r.emitEllipse(e, vw, vh)
	case dom.KindLine:
		r.emitLine(e, vw, vh)
	case dom.KindPolyline:
		r.emitPolyline(e, false)
	case dom.KindPolygon:
		r.emitPolyline(e, true)
	case dom.KindPath:
		r.emitPath(e)
	}

	x0, y0, x1, y1, ok := r.canvas.BoundingBox()
	if !ok {
		r.canvas.ResetPath()
		return filter.Rect{}, false, nil
	}
	bbox := filter.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}

	if visible {
		diag := math.Hypot(vw, vh) / math.Sqrt2

		fillOpacity := parseOpacity(r.style.GetOr("fill-opacity", "1"))
		r.canvas.SetFillRule(fillRuleOf(r.style.GetOr("fill-rule", "nonzero")))
		r.canvas.SetFill(r.resolvePaint(r.style.GetOr("fill", "black"), fillOpacity, foldOpacity, bbox))

		strokeOpacity := parseOpacity(r.style.GetOr("stroke-opacity", "1"))
		r.canvas.SetStroke(r.resolvePaint(r.style.GetOr("stroke", "none"), strokeOpacity, foldOpacity, bbox))

		r.canvas.SetLineWidth(lengthPx(r.style.GetOr("stroke-width", "1"), r.dpi, diag))
		r.canvas.SetLineCap(lineCapOf(r.style.GetOr("stroke-linecap", "butt")))
		r.canvas.SetLineJoin(lineJoinOf(r.style.GetOr("stroke-linejoin", "miter")))
		r.canvas.SetMiterLimit(parseFloatOr(r.style.GetOr("stroke-miterlimit", "4"), 4))
		r.canvas.SetDashPattern(
			parseDashArray(r.style.GetOr("stroke-dasharray", ""), r.dpi, diag),
			lengthPx(r.style.GetOr("stroke-dashoffset", "0"), r.dpi, diag),
		)

		if err := r.canvas.Fill(); err != nil {
			r.canvas.ResetPath()
			return bbox, true, err
		}
		if err := r.canvas.Stroke(); err != nil {
			r.canvas.ResetPath()
			return bbox, true, err
		}
	}
	r.canvas.ResetPath()
	return bbox, true, nil
}

func (r *Renderer) emitRect(e *dom.Element, vw, vh float64) {
	x := lengthAttr(e, "x", r.dpi, vw, "0")
	y := lengthAttr(e, "y", r.dpi, vh, "0")
	w := lengthAttr(e, "width", r.dpi, vw, "0")
	h := lengthAttr(e, "height", r.dpi, vh, "0")
	if w <= 0 || h <= 0 {
		return
	}
	rxStr, hasRX := e.Attr("rx")
	ryStr, hasRY := e.Attr("ry")
	var rx, ry float64
	if hasRX {
		rx = dom.ParseLength(rxStr).ToPx(r.dpi, vw, 16)
	}
	if hasRY {
		ry = dom.ParseLength(ryStr).ToPx(r.dpi, vh, 16)
	}
	switch {
	case hasRX && !hasRY:
		ry = rx
	case hasRY && !hasRX:
		rx = ry
	}
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	r.canvas.AddRoundedRect(x, y, x+w, y+h, rx, ry)
}

func (r *Renderer) emitCircle(e *dom.Element, vw, vh float64) {
	cx := lengthAttr(e, "cx", r.dpi, vw, "0")
	cy := lengthAttr(e, "cy", r.dpi, vh, "0")
	diag := math.Hypot(vw, vh) / math.Sqrt2
	rad := lengthAttr(e, "r", r.dpi, diag, "0")
	if rad <= 0 {
		return
	}
	r.canvas.AddEllipse(cx, cy, rad, rad)
}

func (r *Renderer) emitEllipse(e *dom.Element, vw, vh float64) {
	cx := lengthAttr(e, "cx", r.dpi, vw, "0")
	cy := lengthAttr(e, "cy", r.dpi, vh, "0")
	rx := lengthAttr(e, "rx", r.dpi, vw, "0")
	ry := lengthAttr(e, "ry", r.dpi, vh, "0")
	if rx <= 0 || ry <= 0 {
		return
	}
	r.canvas.AddEllipse(cx, cy, rx, ry)
}

func (r *Renderer) emitLine(e *dom.Element, vw, vh float64) {
	x1 := lengthAttr(e, "x1", r.dpi, vw, "0")
	y1 := lengthAttr(e, "y1", r.dpi, vh, "0")
	x2 := lengthAttr(e, "x2", r.dpi, vw, "0")
	y2 := lengthAttr(e, "y2", r.dpi, vh, "0")
	r.canvas.AddLine(x1, y1, x2, y2)
}

func (r *Renderer) emitPolyline(e *dom.Element, closed bool) {
	pts := parsePoints(e.AttrOr("points", ""))
	if len(pts) < 4 {
		return
	}
	r.canvas.MoveTo(pts[0], pts[1])
	for i := 2; i+1 < len(pts); i += 2 {
		r.canvas.LineTo(pts[i], pts[i+1])
	}
	if closed {
		r.canvas.ClosePolygon()
	}
}

func parsePoints(s string) []float64 {
	fields := splitNums(s)
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func fillRuleOf(s string) canvas.FillRule {
	if strings.TrimSpace(s) == "evenodd" {
		return canvas.FillEvenOdd
	}
	return canvas.FillNonZero
}

func lineCapOf(s string) canvas.LineCap {
	switch strings.TrimSpace(s) {
	case "round":
		return canvas.CapRound
	case "square":
		return canvas.CapSquare
	default:
		return canvas.CapButt
	}
}

func lineJoinOf(s string) canvas.LineJoin {
	switch strings.TrimSpace(s) {
	case "round":
		return canvas.JoinRound
	case "bevel":
		return canvas.JoinBevel
	default:
		return canvas.JoinMiter
	}
}

func parseFloatOr(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}

func lengthPx(s string, dpi, percentBase float64) float64 {
	return dom.ParseLength(s).ToPx(dpi, percentBase, 16)
}

func parseDashArray(s string, dpi, percentBase float64) []float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return nil
	}
	fields := splitNums(s)
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		out = append(out, lengthPx(f, dpi, percentBase))
	}
	return out
}
