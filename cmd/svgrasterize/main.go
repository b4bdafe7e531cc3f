// Command svgrasterize is ambient CLI tooling around package svgren: it
// is not part of the spec's scope (SPEC_FULL.md §6), just a thin driver
// that reads an SVG file, rasterizes it, and writes a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"golang.org/x/image/draw"

	"oxsvg/svgren"
	"oxsvg/svgren/internal/dom"
)

func main() {
	var (
		width      = flag.Int("width", 0, "requested output width (0 = derive from the SVG root)")
		height     = flag.Int("height", 0, "requested output height (0 = derive from the SVG root)")
		dpi        = flag.Float64("dpi", 96, "dots per inch for absolute length units")
		out        = flag.String("o", "out.png", "output PNG path")
		background = flag.String("background", "", "optional background color as #rrggbb or #rrggbbaa")
		thumb      = flag.Int("thumb", 0, "if non-zero, also write a square thumbnail of this size using golang.org/x/image/draw")
		thumbOut   = flag.String("thumb-out", "thumb.png", "thumbnail output PNG path")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: svgrasterize [flags] input.svg")
		flag.PrintDefaults()
		os.Exit(2)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(flag.Arg(0), *out, *width, *height, *dpi, *background, *thumb, *thumbOut, log); err != nil {
		log.Error("svgrasterize failed", "err", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string, width, height int, dpi float64, background string, thumbSize int, thumbOut string, log *slog.Logger) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inPath, err)
	}
	defer f.Close()

	doc, err := dom.Load(f)
	if err != nil {
		return fmt.Errorf("load %s: %w", inPath, err)
	}

	params := svgren.Parameters{
		Dpi:         dpi,
		DimsRequest: svgren.Dims{Width: width, Height: height},
		Log:         log,
	}
	if background != "" {
		c, err := parseHexColor(background)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		params.Background = &c
	}

	img, err := svgren.Rasterize(doc, params)
	if err != nil {
		return fmt.Errorf("rasterize: %w", err)
	}

	rgba := &image.RGBA{
		Pix:    img.Pix,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
	if err := writePNG(outPath, rgba); err != nil {
		return err
	}

	if thumbSize > 0 {
		dst := image.NewRGBA(image.Rect(0, 0, thumbSize, thumbSize))
		draw.CatmullRom.Scale(dst, dst.Bounds(), rgba, rgba.Bounds(), draw.Over, nil)
		if err := writePNG(thumbOut, dst); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func parseHexColor(s string) ([4]uint8, error) {
	var c [4]uint8
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var v uint32
	switch len(s) {
	case 6:
		if _, err := fmt.Sscanf(s, "%06x", &v); err != nil {
			return c, fmt.Errorf("invalid color %q", s)
		}
		c = [4]uint8{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
	case 8:
		if _, err := fmt.Sscanf(s, "%08x", &v); err != nil {
			return c, fmt.Errorf("invalid color %q", s)
		}
		c = [4]uint8{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}
	default:
		return c, fmt.Errorf("invalid color %q: want #rrggbb or #rrggbbaa", s)
	}
	return c, nil
}
