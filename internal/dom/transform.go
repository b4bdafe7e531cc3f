package dom

import (
	"math"
	"strconv"
	"strings"

	"oxsvg/svgren/internal/transform"
)

// ParseTransformList parses an SVG "transform" attribute value, a
// whitespace/comma separated list of translate/scale/rotate/skewX/skewY/
// matrix functions, and returns the combined matrix. Per SVG transform-list
// semantics, the rightmost (last-written) function acts on the object's own
// geometry first; each function to its left wraps further around that
// result. Each step is premultiplied in, so it becomes the new innermost
// transform while whatever was folded in so far moves outward.
func ParseTransformList(s string) *transform.TransAffine {
	m := transform.NewTransAffine()
	for _, fn := range splitFunctions(s) {
		name, args := fn.name, fn.args
		var step *transform.TransAffine
		switch name {
		case "translate":
			tx := arg(args, 0, 0)
			ty := arg(args, 1, 0)
			step = transform.NewTransAffine()
			step.Translate(tx, ty)
		case "scale":
			sx := arg(args, 0, 1)
			sy := sx
			if len(args) > 1 {
				sy = args[1]
			}
			step = transform.NewTransAffine()
			step.ScaleXY(sx, sy)
		case "rotate":
			angle := arg(args, 0, 0) * degToRad
			step = transform.NewTransAffine()
			if len(args) >= 3 {
				cx, cy := args[1], args[2]
				step.Translate(-cx, -cy)
				rot := transform.NewTransAffine()
				rot.Rotate(angle)
				step.Multiply(rot)
				back := transform.NewTransAffine()
				back.Translate(cx, cy)
				step.Multiply(back)
			} else {
				step.Rotate(angle)
			}
		case "skewX":
			step = transform.NewTransAffineFromValues(1, 0, tanDeg(arg(args, 0, 0)), 1, 0, 0)
		case "skewY":
			step = transform.NewTransAffineFromValues(1, tanDeg(arg(args, 0, 0)), 0, 1, 0, 0)
		case "matrix":
			if len(args) == 6 {
				step = transform.NewTransAffineFromValues(args[0], args[1], args[2], args[3], args[4], args[5])
			}
		}
		if step != nil {
			m.Premultiply(step)
		}
	}
	return m
}

const degToRad = 3.141592653589793 / 180

func tanDeg(deg float64) float64 {
	r := deg * degToRad
	return math.Sin(r) / math.Cos(r)
}

func arg(args []float64, i int, def float64) float64 {
	if i < len(args) {
		return args[i]
	}
	return def
}

type transformFn struct {
	name string
	args []float64
}

func splitFunctions(s string) []transformFn {
	var out []transformFn
	s = strings.TrimSpace(s)
	for len(s) > 0 {
		open := strings.IndexByte(s, '(')
		if open < 0 {
			break
		}
		name := strings.TrimSpace(s[:open])
		close := strings.IndexByte(s[open:], ')')
		if close < 0 {
			break
		}
		close += open
		argStr := s[open+1 : close]
		args := parseFloatList(argStr)
		out = append(out, transformFn{name: name, args: args})
		s = strings.TrimSpace(s[close+1:])
	}
	return out
}

func parseFloatList(s string) []float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err == nil {
			out = append(out, v)
		}
	}
	return out
}
