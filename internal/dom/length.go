package dom

import (
	"strconv"
	"strings"
)

// Unit is the unit suffix of an SVG length or coordinate.
type Unit int

const (
	UnitNumber Unit = iota
	UnitPx
	UnitPercent
	UnitEm
	UnitEx
	UnitPt
	UnitPc
	UnitMm
	UnitCm
	UnitIn
)

// Length is a parsed SVG length: a value plus its unit.
type Length struct {
	Value float64
	Unit  Unit
}

// ParseLength parses an SVG length string such as "10", "50%", "2.5cm".
// An empty string yields the zero Length (0, UnitNumber); a number that
// does not parse yields value 0 with whatever unit suffix was recognized.
func ParseLength(s string) Length {
	s = strings.TrimSpace(s)
	if s == "" {
		return Length{}
	}
	if strings.HasSuffix(s, "%") {
		v, _ := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return Length{Value: v, Unit: UnitPercent}
	}
	suffixes := []struct {
		s string
		u Unit
	}{
		{"px", UnitPx}, {"em", UnitEm}, {"ex", UnitEx},
		{"pt", UnitPt}, {"pc", UnitPc}, {"mm", UnitMm},
		{"cm", UnitCm}, {"in", UnitIn},
	}
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf.s) {
			v, _ := strconv.ParseFloat(strings.TrimSuffix(s, suf.s), 64)
			return Length{Value: v, Unit: suf.u}
		}
	}
	v, _ := strconv.ParseFloat(s, 64)
	return Length{Value: v, Unit: UnitNumber}
}

// ToPx resolves the length to device-independent pixels.
//
// percentBase is the value a percentage is relative to (viewport width,
// height, or diagonal/sqrt(2) per the SVG percentage rules, chosen by the
// caller) and is ignored for non-percent units. dpi is used for the
// physical units (in, cm, mm, pt, pc); fontSize backs em/ex.
func (l Length) ToPx(dpi, percentBase, fontSize float64) float64 {
	switch l.Unit {
	case UnitNumber, UnitPx:
		return l.Value
	case UnitPercent:
		return l.Value / 100 * percentBase
	case UnitEm:
		return l.Value * fontSize
	case UnitEx:
		return l.Value * fontSize / 2
	case UnitIn:
		return l.Value * dpi
	case UnitCm:
		return l.Value * dpi / 2.54
	case UnitMm:
		return l.Value * dpi / 25.4
	case UnitPt:
		return l.Value * dpi / 72
	case UnitPc:
		return l.Value * dpi / 6
	default:
		return l.Value
	}
}

// PercentToFraction mirrors percent_to_fraction from the original
// implementation: percentages become a 0..1 fraction, plain numbers pass
// through unchanged, and any other unit resolves to zero (it has no
// meaning without a reference box).
func PercentToFraction(l Length) float64 {
	switch l.Unit {
	case UnitPercent:
		return l.Value / 100
	case UnitNumber:
		return l.Value
	default:
		return 0
	}
}
