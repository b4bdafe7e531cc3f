// Package style implements the presentation-attribute inheritance stack
// used while walking the SVG tree: each element pushes its own style
// properties, lookups walk from the current element back to the root, and
// inherited properties fall through to an ancestor's value while
// non-inherited ones stop at the first frame that doesn't set them.
//
// Grounded on original_source/src/svgren/StyleStack.cpp. This module has
// no CSS selector engine: specificity does not exist, only "inline style
// attribute and presentation attributes on this element" vs. "whatever an
// ancestor set", exactly as the original stack does.
package style

import "oxsvg/svgren/internal/dom"

// inherited lists presentation properties that, when absent on the
// current frame, fall through to the nearest ancestor that sets them
// instead of resolving to "not set". Properties not in this set (opacity,
// filter, mask, clip-path, enable-background, display, stop-color,
// stop-opacity) only ever resolve from the current frame.
var inherited = map[string]bool{
	"fill":                true,
	"fill-rule":           true,
	"fill-opacity":        true,
	"stroke":              true,
	"stroke-width":        true,
	"stroke-linecap":      true,
	"stroke-linejoin":     true,
	"stroke-miterlimit":   true,
	"stroke-dasharray":    true,
	"stroke-dashoffset":   true,
	"stroke-opacity":      true,
	"color":               true,
	"visibility":          true,
	"clip-rule":           true,
	"font-size":           true,
}

// Stack is a push/pop style-resolution stack over dom.Element frames.
type Stack struct {
	frames []*dom.Element
}

// New returns an empty Stack.
func New() *Stack {
	return &Stack{}
}

// Push adds e as the current (innermost) frame. Callers must pair this
// with a matching Pop, normally via defer, the same scoped-acquisition
// pattern used for canvas state (spec.md §9: explicit scoped release
// instead of RAII).
func (s *Stack) Push(e *dom.Element) {
	s.frames = append(s.frames, e)
}

// Pop removes the current frame.
func (s *Stack) Pop() {
	if len(s.frames) == 0 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Get resolves a presentation property by walking from the current frame
// toward the root. An explicit "inherit" value forces the walk to
// continue past a frame even for non-inherited properties.
func (s *Stack) Get(prop string) (string, bool) {
	explicitInherit := false
	for i := len(s.frames) - 1; i >= 0; i-- {
		v, ok := s.frames[i].StyleProperty(prop)
		if !ok {
			if !explicitInherit && !inherited[prop] {
				return "", false
			}
			continue
		}
		if v == "inherit" {
			explicitInherit = true
			continue
		}
		return v, true
	}
	return "", false
}

// GetOr resolves prop via Get, returning def when unset.
func (s *Stack) GetOr(prop, def string) string {
	if v, ok := s.Get(prop); ok {
		return v
	}
	return def
}

// Current returns the innermost frame, or nil if the stack is empty.
func (s *Stack) Current() *dom.Element {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}
