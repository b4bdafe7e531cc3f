package walk

import (
	"testing"

	"oxsvg/svgren/internal/canvas"
	"oxsvg/svgren/internal/filter"
)

func TestParseOpacityClampsRange(t *testing.T) {
	if parseOpacity("2") != 1 {
		t.Error("opacity above 1 should clamp to 1")
	}
	if parseOpacity("-1") != 0 {
		t.Error("opacity below 0 should clamp to 0")
	}
	if parseOpacity("not-a-number") != 1 {
		t.Error("an unparseable opacity should default to fully opaque")
	}
}

func TestParseColorHexShortAndLong(t *testing.T) {
	r, g, b, ok := parseColor("#0f0", "black")
	if !ok || r != 0 || g != 255 || b != 0 {
		t.Errorf("short hex #0f0 mismatch: (%d,%d,%d,%v)", r, g, b, ok)
	}
	r, g, b, ok = parseColor("#00ff00", "black")
	if !ok || r != 0 || g != 255 || b != 0 {
		t.Errorf("long hex #00ff00 mismatch: (%d,%d,%d,%v)", r, g, b, ok)
	}
}

func TestParseColorRGBFunction(t *testing.T) {
	r, g, b, ok := parseColor("rgb(255, 0, 128)", "black")
	if !ok || r != 255 || g != 0 || b != 128 {
		t.Errorf("rgb() mismatch: (%d,%d,%d,%v)", r, g, b, ok)
	}
}

func TestParseColorNoneReportsNotOK(t *testing.T) {
	if _, _, _, ok := parseColor("none", "black"); ok {
		t.Error("none should report ok=false")
	}
}

func TestParseColorCurrentColorResolvesInheritedColor(t *testing.T) {
	r, g, b, ok := parseColor("currentColor", "#ff8000")
	if !ok || r != 0xff || g != 0x80 || b != 0x00 {
		t.Errorf("currentColor should resolve against the passed color, got (%d,%d,%d,%v)", r, g, b, ok)
	}
}

func TestParseColorNamedColor(t *testing.T) {
	r, g, b, ok := parseColor("orange", "black")
	if !ok || r != 255 || g != 165 || b != 0 {
		t.Errorf("named color orange mismatch: (%d,%d,%d,%v)", r, g, b, ok)
	}
}

func TestParseColorUnknownKeywordFallsBackToBlack(t *testing.T) {
	r, g, b, ok := parseColor("notAColor", "black")
	if !ok || r != 0 || g != 0 || b != 0 {
		t.Errorf("an unrecognized keyword should fall back to opaque black, got (%d,%d,%d,%v)", r, g, b, ok)
	}
}

func TestResolvePaintNoneReturnsPaintNone(t *testing.T) {
	r, _ := newTestRenderer(10, 10)
	e := rectElement("0", "0", "1", "1", nil)
	r.style.Push(e)
	defer r.style.Pop()
	p := r.resolvePaint("none", 1, 1, filter.Rect{W: 10, H: 10})
	if p.Kind != canvas.PaintNone {
		t.Errorf("expected PaintNone, got %v", p.Kind)
	}
}

func TestResolvePaintSolidColorMultipliesOpacities(t *testing.T) {
	r, _ := newTestRenderer(10, 10)
	e := rectElement("0", "0", "1", "1", nil)
	r.style.Push(e)
	defer r.style.Pop()
	p := r.resolvePaint("#ff0000", 0.5, 0.5, filter.Rect{W: 10, H: 10})
	if p.Kind != canvas.PaintSolid {
		t.Fatalf("expected PaintSolid, got %v", p.Kind)
	}
	if p.Opacity != 0.25 {
		t.Errorf("expected combined opacity 0.25, got %v", p.Opacity)
	}
	if p.Color[0] != 255 {
		t.Errorf("expected red channel 255, got %d", p.Color[0])
	}
}

func TestResolvePaintURLFallsBackWhenUnresolved(t *testing.T) {
	r, _ := newTestRenderer(10, 10)
	e := rectElement("0", "0", "1", "1", nil)
	r.style.Push(e)
	defer r.style.Pop()
	p := r.resolvePaint("url(#missing) red", 1, 1, filter.Rect{W: 10, H: 10})
	if p.Kind != canvas.PaintSolid || p.Color[0] != 255 {
		t.Errorf("expected the fallback red paint after an unresolved url(), got %+v", p)
	}
}
