package dom

import "strings"

// maxHrefDepth bounds href/url(#...)/use resolution recursion. Cyclic
// references (a gradient that hrefs itself, a use that references its own
// ancestor) are broken by refusing to look past this depth rather than by
// tracking a visited set per call site, mirroring Finder.cpp's approach of
// a single depth-bounded recursive lookup.
const maxHrefDepth = 64

// Finder resolves "#id" / "url(#id)" references to elements by id.
type Finder struct {
	byID map[string]*Element
}

// NewFinder returns an empty Finder.
func NewFinder() *Finder {
	return &Finder{byID: make(map[string]*Element)}
}

func (f *Finder) index(e *Element) {
	if e == nil {
		return
	}
	if e.ID != "" {
		if _, exists := f.byID[e.ID]; !exists {
			f.byID[e.ID] = e
		}
	}
	for _, c := range e.Children {
		c.Parent = e
		f.index(c)
	}
}

// FindByID looks up an element by its bare id (no "#" or "url()" wrapper).
func (f *Finder) FindByID(id string) (*Element, bool) {
	e, ok := f.byID[id]
	return e, ok
}

// LocalID extracts the id from an IRI reference such as "#foo" or
// "url(#foo)", matching svgdom::get_local_id_from_iri.
func LocalID(ref string) string {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "url(") && strings.HasSuffix(ref, ")") {
		ref = strings.TrimSuffix(strings.TrimPrefix(ref, "url("), ")")
		ref = strings.Trim(ref, `"'`)
	}
	return strings.TrimPrefix(ref, "#")
}

// Resolve looks up an IRI reference directly, combining LocalID and
// FindByID for the common call pattern.
func (f *Finder) Resolve(ref string) (*Element, bool) {
	id := LocalID(ref)
	if id == "" {
		return nil, false
	}
	return f.FindByID(id)
}

// MaxHrefDepth exposes the recursion bound so href-chain walkers (gradient
// inheritance, use/symbol resolution) in internal/walk can cap their own
// loops without duplicating the constant.
func MaxHrefDepth() int { return maxHrefDepth }
