package walk

import (
	"testing"

	"oxsvg/svgren/internal/canvas"
	"oxsvg/svgren/internal/dom"
)

func TestFillRuleOfEvenOdd(t *testing.T) {
	if fillRuleOf("evenodd") != canvas.FillEvenOdd {
		t.Error("evenodd should map to FillEvenOdd")
	}
	if fillRuleOf("nonzero") != canvas.FillNonZero {
		t.Error("nonzero should map to FillNonZero")
	}
	if fillRuleOf("bogus") != canvas.FillNonZero {
		t.Error("an unrecognized fill-rule should default to nonzero")
	}
}

func TestLineCapOf(t *testing.T) {
	cases := map[string]canvas.LineCap{
		"round":  canvas.CapRound,
		"square": canvas.CapSquare,
		"butt":   canvas.CapButt,
		"":       canvas.CapButt,
	}
	for in, want := range cases {
		if got := lineCapOf(in); got != want {
			t.Errorf("lineCapOf(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLineJoinOf(t *testing.T) {
	cases := map[string]canvas.LineJoin{
		"round": canvas.JoinRound,
		"bevel": canvas.JoinBevel,
		"miter": canvas.JoinMiter,
		"":      canvas.JoinMiter,
	}
	for in, want := range cases {
		if got := lineJoinOf(in); got != want {
			t.Errorf("lineJoinOf(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParsePointsOddTrailingValueIgnored(t *testing.T) {
	pts := parsePoints("0,0 10,0 10,10")
	if len(pts) != 6 {
		t.Fatalf("expected 6 coordinate values, got %d", len(pts))
	}
	if pts[4] != 10 || pts[5] != 10 {
		t.Errorf("unexpected last point: (%v,%v)", pts[4], pts[5])
	}
}

func TestParseDashArrayNoneIsNil(t *testing.T) {
	if parseDashArray("none", 96, 10) != nil {
		t.Error("none should produce a nil dash pattern")
	}
	if parseDashArray("", 96, 10) != nil {
		t.Error("an absent dasharray should produce a nil dash pattern")
	}
}

func TestParseDashArrayResolvesLengths(t *testing.T) {
	dashes := parseDashArray("5,10", 96, 10)
	if len(dashes) != 2 || dashes[0] != 5 || dashes[1] != 10 {
		t.Errorf("unexpected dash pattern: %v", dashes)
	}
}

func TestRectZeroWidthProducesNoBoundingBox(t *testing.T) {
	root := svgRoot(rectElement("0", "0", "0", "10", nil))
	doc := dom.NewDocument(root)
	c := canvas.New(10, 10, nil)
	r := New(c, doc.Finder, 96, nil)
	if err := r.Render(root, 10, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRectSingleRadiusInheritsOtherAxis(t *testing.T) {
	root := svgRoot(rectElement("0", "0", "10", "10", map[string]string{"rx": "3", "fill": "#ff00ff"}))
	doc := dom.NewDocument(root)
	c := canvas.New(10, 10, nil)
	r := New(c, doc.Finder, 96, nil)
	if err := r.Render(root, 10, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	surf := c.Release()
	red, _, blue, a := surf.At(5, 5)
	if a == 0 || red != 255 || blue != 255 {
		t.Errorf("expected magenta fill at center, got (%d,_,%d,%d)", red, blue, a)
	}
}

func TestCircleZeroRadiusDoesNotPaint(t *testing.T) {
	circle := &dom.Element{
		Kind:  dom.KindCircle,
		Attrs: map[string]string{"cx": "5", "cy": "5", "r": "0", "fill": "#ff0000"},
		Style: map[string]string{},
	}
	root := svgRoot(circle)
	doc := dom.NewDocument(root)
	c := canvas.New(10, 10, nil)
	r := New(c, doc.Finder, 96, nil)
	if err := r.Render(root, 10, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	surf := c.Release()
	_, _, _, a := surf.At(5, 5)
	if a != 0 {
		t.Errorf("a zero-radius circle should not paint, got alpha %d", a)
	}
}
