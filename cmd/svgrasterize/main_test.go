package main

import (
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseHexColorRRGGBB(t *testing.T) {
	c, err := parseHexColor("#204060")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != [4]uint8{0x20, 0x40, 0x60, 255} {
		t.Errorf("unexpected color: %v", c)
	}
}

func TestParseHexColorRRGGBBAA(t *testing.T) {
	c, err := parseHexColor("204060ff")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != [4]uint8{0x20, 0x40, 0x60, 0xff} {
		t.Errorf("unexpected color: %v", c)
	}
}

func TestParseHexColorRejectsWrongLength(t *testing.T) {
	if _, err := parseHexColor("#abc"); err == nil {
		t.Error("expected an error for a 3-digit color")
	}
}

func TestRunWritesPNG(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.svg")
	out := filepath.Join(dir, "out.png")
	if err := os.WriteFile(in, []byte(`<svg width="4" height="4"><rect x="0" y="0" width="4" height="4" fill="#ff0000"/></svg>`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(in, out, 0, 0, 96, "", 0, "", log); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output png: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("expected a 4x4 output image, got %v", img.Bounds())
	}
}

func TestRunWritesThumbnail(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.svg")
	out := filepath.Join(dir, "out.png")
	thumbOut := filepath.Join(dir, "thumb.png")
	if err := os.WriteFile(in, []byte(`<svg width="8" height="8"><circle cx="4" cy="4" r="3" fill="#00ff00"/></svg>`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(in, out, 0, 0, 96, "", 2, thumbOut, log); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(thumbOut)
	if err != nil {
		t.Fatalf("open thumbnail: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode thumbnail png: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Errorf("expected a 2x2 thumbnail, got %v", img.Bounds())
	}
}

func TestRunMissingFileReturnsError(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run("/no/such/file.svg", "out.png", 0, 0, 96, "", 0, "", log); err == nil {
		t.Error("expected an error for a missing input file")
	}
}
