package svgren

import (
	"strings"
	"testing"

	"oxsvg/svgren/internal/dom"
)

func loadSVG(t *testing.T, src string) *dom.Document {
	t.Helper()
	doc, err := dom.Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return doc
}

func TestRasterizeDimsFromRootWhenRequestIsZero(t *testing.T) {
	doc := loadSVG(t, `<svg width="10" height="10"></svg>`)
	img, err := Rasterize(doc, Parameters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Width != 10 || img.Height != 10 {
		t.Errorf("expected 10x10, got %dx%d", img.Width, img.Height)
	}
}

func TestRasterizeOneDimZeroPreservesAspectRatio(t *testing.T) {
	doc := loadSVG(t, `<svg width="20" height="10"></svg>`)
	img, err := Rasterize(doc, Parameters{DimsRequest: Dims{Width: 40}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Width != 40 || img.Height != 20 {
		t.Errorf("expected 40x20 preserving aspect ratio, got %dx%d", img.Width, img.Height)
	}
}

func TestRasterizeBothDimsNonZeroUsesThemAsIs(t *testing.T) {
	doc := loadSVG(t, `<svg width="20" height="10"></svg>`)
	img, err := Rasterize(doc, Parameters{DimsRequest: Dims{Width: 5, Height: 5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Width != 5 || img.Height != 5 {
		t.Errorf("expected anisotropic 5x5, got %dx%d", img.Width, img.Height)
	}
}

func TestRasterizeNegativeRequestIsInvalidArgument(t *testing.T) {
	doc := loadSVG(t, `<svg width="10" height="10"></svg>`)
	_, err := Rasterize(doc, Parameters{DimsRequest: Dims{Width: -1}})
	if err == nil {
		t.Fatal("expected an error for a negative requested dimension")
	}
	rerr, ok := err.(*Error)
	if !ok || rerr.Kind != InvalidArgument {
		t.Errorf("expected InvalidArgument, got %+v", err)
	}
}

func TestRasterizeSolidCircleCenterAndCornerPixels(t *testing.T) {
	doc := loadSVG(t, `<svg width="10" height="10"><circle cx="5" cy="5" r="4" fill="#ff0000"/></svg>`)
	img, err := Rasterize(doc, Parameters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	center := img.Pix[(5*10+5)*4:]
	if center[0] != 255 || center[3] != 255 {
		t.Errorf("expected opaque red at the center, got %v", center[:4])
	}
	corner := img.Pix[(0*10+0)*4:]
	if corner[3] != 0 {
		t.Errorf("expected the corner outside the circle to stay transparent, got alpha %d", corner[3])
	}
}

func TestRasterizeFeColorMatrixIdentityIsPixelExact(t *testing.T) {
	src := `<svg width="4" height="4">
		<rect x="0" y="0" width="4" height="4" fill="#204060" filter="url(#f)"/>
		<filter id="f"><feColorMatrix type="matrix" values="1 0 0 0 0  0 1 0 0 0  0 0 1 0 0  0 0 0 1 0"/></filter>
	</svg>`
	doc := loadSVG(t, src)
	img, err := Rasterize(doc, Parameters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	px := img.Pix[(1*4+1)*4:]
	if px[0] != 0x20 || px[1] != 0x40 || px[2] != 0x60 || px[3] != 255 {
		t.Errorf("identity color matrix should leave the pixel unchanged, got %v", px[:4])
	}
}

func TestRasterizeUseSymbolWidthOverrideMatchesDirectRect(t *testing.T) {
	direct := loadSVG(t, `<svg width="10" height="10"><rect x="2" y="2" width="4" height="4" fill="#ff00ff"/></svg>`)
	viaUse := loadSVG(t, `<svg width="10" height="10">
		<use x="2" y="2" width="4" height="4" xlink:href="#s"/>
		<symbol id="s" viewBox="0 0 1 1"><rect x="0" y="0" width="1" height="1" fill="#ff00ff"/></symbol>
	</svg>`)

	imgA, err := Rasterize(direct, Parameters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	imgB, err := Rasterize(viaUse, Parameters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pxA := imgA.Pix[(4*10+4)*4:]
	pxB := imgB.Pix[(4*10+4)*4:]
	for i := 0; i < 4; i++ {
		if pxA[i] != pxB[i] {
			t.Errorf("use+symbol with an overridden width should match a direct rect pixel-for-pixel at channel %d: %d vs %d", i, pxA[i], pxB[i])
		}
	}
}

func TestRasterizeBackgroundFillsFullyOpaqueCanvas(t *testing.T) {
	doc := loadSVG(t, `<svg width="4" height="4"></svg>`)
	bg := [4]uint8{10, 20, 30, 255}
	img, err := Rasterize(doc, Parameters{Background: &bg})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	px := img.Pix[0:4]
	if px[0] != 10 || px[1] != 20 || px[2] != 30 || px[3] != 255 {
		t.Errorf("expected the background color to fill the canvas, got %v", px)
	}
}

func TestErrorKindString(t *testing.T) {
	if InvalidArgument.String() != "invalid argument" {
		t.Errorf("unexpected Kind string: %s", InvalidArgument.String())
	}
}
