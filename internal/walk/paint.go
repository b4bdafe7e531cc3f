package walk

import (
	"strconv"
	"strings"

	"oxsvg/svgren/internal/canvas"
	"oxsvg/svgren/internal/dom"
	"oxsvg/svgren/internal/filter"
	"oxsvg/svgren/internal/gradient"
)

func parseOpacity(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 1
	}
	return clamp01(v)
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

// resolvePaint resolves a fill or stroke style value to a canvas.Paint.
// A url(#id) reference to a gradient element resolves through
// internal/gradient against bbox, the shape's own bounding box, since
// fill/stroke paint is always relative to the element carrying it. A
// url() reference with a fallback paint after the closing paren
// (url(#id) red) falls back to that paint when the id does not resolve
// to a gradient, per the SVG paint grammar.
func (r *Renderer) resolvePaint(value string, propOpacity, extraOpacity float64, bbox filter.Rect) canvas.Paint {
	value = strings.TrimSpace(value)
	currentColor := r.style.GetOr("color", "black")

	if strings.HasPrefix(value, "url(") {
		ref := value
		fallback := "none"
		if end := strings.Index(value, ")"); end >= 0 {
			ref = value[:end+1]
			if rest := strings.TrimSpace(value[end+1:]); rest != "" {
				fallback = rest
			}
		}
		if el, ok := r.finder.Resolve(ref); ok && (el.Kind == dom.KindLinearGradient || el.Kind == dom.KindRadialGradient) {
			gbbox := gradient.BBox{X: bbox.X, Y: bbox.Y, W: bbox.W, H: bbox.H}
			if gen, ok := gradient.Resolve(el, r.finder, r.canvas.CTM(), gbbox, r.dpi); ok {
				return canvas.Paint{Kind: canvas.PaintGradient, Gradient: gen, Opacity: clamp01(propOpacity * extraOpacity)}
			}
		}
		value = fallback
	}

	cr, cg, cb, ok := parseColor(value, currentColor)
	if !ok {
		return canvas.Paint{Kind: canvas.PaintNone}
	}
	return canvas.Paint{Kind: canvas.PaintSolid, Color: [4]uint8{cr, cg, cb, 255}, Opacity: clamp01(propOpacity * extraOpacity)}
}

// parseColor parses the small CSS color subset fill/stroke values use:
// #rgb/#rrggbb hex, rgb(r,g,b), a handful of named colors, "none"
// (reports ok=false), and "currentColor" (resolves against the
// inherited "color" property).
func parseColor(s, currentColor string) (r, g, b uint8, ok bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "none":
		return 0, 0, 0, false
	case "currentColor":
		return parseColor(currentColor, "black")
	}
	switch {
	case strings.HasPrefix(s, "#"):
		hex := strings.TrimPrefix(s, "#")
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) == 6 {
			if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
				return uint8(v >> 16), uint8(v >> 8), uint8(v), true
			}
		}
	case strings.HasPrefix(s, "rgb("):
		inner := strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")")
		parts := strings.Split(inner, ",")
		if len(parts) == 3 {
			return paintComponent(parts[0]), paintComponent(parts[1]), paintComponent(parts[2]), true
		}
	}
	if c, ok := namedColors[s]; ok {
		return c[0], c[1], c[2], true
	}
	// Unrecognized keyword: fall back to opaque black rather than
	// dropping the paint, matching internal/gradient's stop-color
	// fallback for the same situation.
	return 0, 0, 0, true
}

func paintComponent(s string) uint8 {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, _ := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return clampComponent(v / 100 * 255)
	}
	v, _ := strconv.ParseFloat(s, 64)
	return clampComponent(v)
}

func clampComponent(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

var namedColors = map[string][3]uint8{
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"lime":    {0, 255, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"silver":  {192, 192, 192},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"navy":    {0, 0, 128},
	"maroon":  {128, 0, 0},
	"olive":   {128, 128, 0},
	"teal":    {0, 128, 128},
}
