// Package svgren rasterizes a parsed SVG document tree into a raster RGBA
// image. It ties together internal/dom (the in-memory document and its
// id index), internal/walk (the tree-walking renderer), internal/canvas
// (the vector canvas and its anti-aliased scanline pipeline), and
// internal/filter (the SVG filter primitive pipeline).
//
// Grounded on original_source/src/svgren/render.cpp's top-level entry
// point: resolve output dimensions, build a canvas sized to them, run the
// renderer, release and return the pixels.
package svgren

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"oxsvg/svgren/internal/canvas"
	"oxsvg/svgren/internal/dom"
	"oxsvg/svgren/internal/filter"
	"oxsvg/svgren/internal/walk"
)

// Kind is the error taxonomy of spec.md §7. It names a category, not a
// concrete type, matching how the rest of this module reports failure.
type Kind int

const (
	// InvalidArgument covers negative dash lengths, negative
	// Parameters dimensions, and malformed numeric literals surfacing
	// from the DOM layer.
	InvalidArgument Kind = iota
	// Unimplemented covers filter input names the pipeline does not
	// support (SourceAlpha, BackgroundAlpha, FillPaint, StrokePaint).
	Unimplemented
	// OutOfMemory covers allocation failure for pixel buffers or
	// filter results.
	OutOfMemory
	// Internal covers an invariant violation in the canvas, such as a
	// non-balanced group stack.
	Internal
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case Unimplemented:
		return "unimplemented"
	case OutOfMemory:
		return "out of memory"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the error type Rasterize returns on failure, carrying both a
// Kind and the underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func newError(k Kind, err error) *Error {
	return &Error{Kind: k, Err: err}
}

var errNegativeDims = errors.New("negative requested dimension")

// classifyRenderErr maps an error surfaced from the renderer to a Kind,
// per spec.md §7's taxonomy.
func classifyRenderErr(err error) *Error {
	var unimpl *filter.ErrUnimplementedInput
	if errors.As(err, &unimpl) {
		return newError(Unimplemented, err)
	}
	return newError(Internal, err)
}

// Dims is a requested or resolved pixel width/height pair.
type Dims struct {
	Width, Height int
}

// Parameters configures a Rasterize call.
type Parameters struct {
	// Dpi converts absolute length units (cm, in, pt, ...) to pixels.
	// Zero means the default of 96.
	Dpi float64
	// DimsRequest is the requested output dimensions. Both zero takes
	// both from the SVG root; one zero computes that dimension
	// preserving the SVG root's aspect ratio; both non-zero uses them
	// as-is (anisotropic scale may occur).
	DimsRequest Dims
	// Background, if non-nil, fills the output with this color before
	// rendering; otherwise the output starts fully transparent.
	Background *[4]uint8
	// Log receives renderer diagnostics (non-invertible transforms,
	// unsupported filter primitives, ...). Defaults to slog.Default().
	Log *slog.Logger
}

// Image is the rasterized output: straight (unpremultiplied) RGBA,
// row-major, width*height*4 bytes.
type Image struct {
	Width, Height int
	Pix           []byte
}

// Rasterize renders doc into an Image per Parameters. It returns an
// *Error on failure; partial results are never returned, matching
// spec.md §7's "the output is produced only if the entire tree walk
// completes".
func Rasterize(doc *dom.Document, params Parameters) (*Image, error) {
	if params.DimsRequest.Width < 0 || params.DimsRequest.Height < 0 {
		return nil, newError(InvalidArgument, errNegativeDims)
	}
	dpi := params.Dpi
	if dpi == 0 {
		dpi = 96
	}
	log := params.Log
	if log == nil {
		log = slog.Default()
	}

	w, h := resolveDims(doc.Root, params.DimsRequest, dpi)
	if w <= 0 || h <= 0 {
		return &Image{Width: w, Height: h}, nil
	}

	c := canvas.New(w, h, log)
	if params.Background != nil {
		fillBackground(c, *params.Background)
	}

	r := walk.New(c, doc.Finder, dpi, log)
	if err := r.Render(doc.Root, float64(w), float64(h)); err != nil {
		return nil, classifyRenderErr(err)
	}

	root := c.Release()
	img := filter.ToImage(root)
	return &Image{Width: img.Rect.Dx(), Height: img.Rect.Dy(), Pix: img.Pix}, nil
}

// fillBackground paints color (straight alpha, as Parameters.Background
// is documented) onto the root surface before rendering begins. Surface
// pixels are premultiplied, so the color is premultiplied once here.
func fillBackground(c *canvas.Canvas, color [4]uint8) {
	a := uint32(color[3])
	pr := uint8(uint32(color[0]) * a / 255)
	pg := uint8(uint32(color[1]) * a / 255)
	pb := uint8(uint32(color[2]) * a / 255)
	s := c.GetSubSurface()
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			s.Set(x, y, pr, pg, pb, color[3])
		}
	}
}

// resolveDims implements spec.md §6's dims_request rules.
func resolveDims(root *dom.Element, req Dims, dpi float64) (int, int) {
	rootW, rootH := rootDims(root, dpi)
	switch {
	case req.Width == 0 && req.Height == 0:
		return roundDim(rootW), roundDim(rootH)
	case req.Width == 0:
		if rootH <= 0 {
			return 0, req.Height
		}
		return roundDim(float64(req.Height) * rootW / rootH), req.Height
	case req.Height == 0:
		if rootW <= 0 {
			return req.Width, 0
		}
		return req.Width, roundDim(float64(req.Width) * rootH / rootW)
	default:
		return req.Width, req.Height
	}
}

func roundDim(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(v + 0.5)
}

// rootDims resolves the SVG root's intrinsic size: its own width/height
// attributes, falling back to the viewBox's own dimensions when width or
// height is absent (the common "viewBox only" authoring style).
func rootDims(root *dom.Element, dpi float64) (float64, float64) {
	_, _, vbw, vbh, hasVB := parseViewBoxNums(root.AttrOr("viewBox", ""))

	wDefault, hDefault := "100", "100"
	if hasVB {
		wDefault, hDefault = formatFloat(vbw), formatFloat(vbh)
	}
	w := dom.ParseLength(root.AttrOr("width", wDefault)).ToPx(dpi, vbw, 16)
	h := dom.ParseLength(root.AttrOr("height", hDefault)).ToPx(dpi, vbh, 16)
	return w, h
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseViewBoxNums(s string) (minX, minY, w, h float64, ok bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
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
