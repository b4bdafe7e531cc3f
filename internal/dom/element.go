// Package dom models the in-memory SVG document tree the renderer walks.
//
// This package does not parse SVG from scratch the way a full XML/SVG
// toolkit would; it declares the node shapes the renderer needs and a thin
// encoding/xml-based loader good enough to build a tree from a file or a
// test fixture. Production callers are expected to hand Rasterize an
// already-built *Document, the same way the original implementation
// treats the DOM as something handed to it, not something it produces.
package dom

// Kind identifies the element's SVG tag.
type Kind int

const (
	KindUnknown Kind = iota
	KindSVG
	KindG
	KindUse
	KindSymbol
	KindPath
	KindRect
	KindCircle
	KindEllipse
	KindLine
	KindPolyline
	KindPolygon
	KindDefs
	KindStyle
	KindMask
	KindFilter
	KindLinearGradient
	KindRadialGradient
	KindStop
	KindFeGaussianBlur
	KindFeColorMatrix
	KindFeBlend
	KindFeComposite
	KindFeOffset
	KindFeMerge
	KindFeMergeNode
)

// IsContainer reports whether the element kind is a container per the
// opacity/group-push optimization in common-element-push (SPEC_FULL §4.2).
func (k Kind) IsContainer() bool {
	switch k {
	case KindSVG, KindG, KindUse, KindSymbol, KindDefs, KindMask:
		return true
	default:
		return false
	}
}

// IsFilterPrimitive reports whether the element kind is one of the
// supported <filter> children.
func (k Kind) IsFilterPrimitive() bool {
	switch k {
	case KindFeGaussianBlur, KindFeColorMatrix, KindFeBlend, KindFeComposite, KindFeOffset, KindFeMerge:
		return true
	default:
		return false
	}
}

// Element is one node of the SVG document tree.
type Element struct {
	Kind     Kind
	Tag      string // original tag name, kept for KindUnknown and diagnostics
	ID       string
	Attrs    map[string]string // raw presentation/geometry attributes, as written
	Style    map[string]string // parsed inline "style" attribute, overrides Attrs for the same property
	Children []*Element
	Parent   *Element

	// PathData holds the parsed "d" attribute for KindPath elements.
	PathData []PathCommand
}

// Attr returns the raw attribute value and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// AttrOr returns the raw attribute value, or def if absent.
func (e *Element) AttrOr(name, def string) string {
	if v, ok := e.Attrs[name]; ok {
		return v
	}
	return def
}

// StyleProperty resolves a presentation property, checking the inline
// style attribute first (it wins over the same-named presentation
// attribute per CSS cascade rules) and falling back to the attribute.
func (e *Element) StyleProperty(name string) (string, bool) {
	if v, ok := e.Style[name]; ok {
		return v, true
	}
	if v, ok := e.Attrs[name]; ok {
		return v, true
	}
	return "", false
}

// Document is a parsed SVG document: a root <svg> element plus an id
// index built once at load time.
type Document struct {
	Root   *Element
	Finder *Finder
}

// NewDocument builds a Document from an already-constructed tree, indexing
// ids for href/url(#...) resolution.
func NewDocument(root *Element) *Document {
	f := NewFinder()
	f.index(root)
	return &Document{Root: root, Finder: f}
}
