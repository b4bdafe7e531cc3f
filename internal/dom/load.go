package dom

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

var tagKinds = map[string]Kind{
	"svg":             KindSVG,
	"g":               KindG,
	"use":             KindUse,
	"symbol":          KindSymbol,
	"path":            KindPath,
	"rect":            KindRect,
	"circle":          KindCircle,
	"ellipse":         KindEllipse,
	"line":            KindLine,
	"polyline":        KindPolyline,
	"polygon":         KindPolygon,
	"defs":            KindDefs,
	"style":           KindStyle,
	"mask":            KindMask,
	"filter":          KindFilter,
	"linearGradient":  KindLinearGradient,
	"radialGradient":  KindRadialGradient,
	"stop":            KindStop,
	"feGaussianBlur":  KindFeGaussianBlur,
	"feColorMatrix":   KindFeColorMatrix,
	"feBlend":         KindFeBlend,
	"feComposite":     KindFeComposite,
	"feOffset":        KindFeOffset,
	"feMerge":         KindFeMerge,
	"feMergeNode":     KindFeMergeNode,
}

// Load reads an SVG document from r. This is ambient test/CLI tooling,
// not the renderer's contract: it understands only the subset of XML this
// module cares about (elements, attributes, and the "style" attribute's
// ";"-separated declarations) and ignores everything else (comments,
// processing instructions, namespaces beyond the bare local name,
// CDATA/text content outside <style>).
func Load(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)

	var root *Element
	var stack []*Element
	var textBuf strings.Builder
	var current *Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dom: parse: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			e := &Element{
				Kind:  tagKinds[name],
				Tag:   name,
				Attrs: make(map[string]string, len(t.Attr)),
			}
			for _, a := range t.Attr {
				key := a.Name.Local
				e.Attrs[key] = a.Value
				if key == "id" {
					e.ID = a.Value
				}
			}
			e.Style = parseInlineStyle(e.Attrs["style"])
			if e.Kind == KindPath {
				e.PathData = ParsePathData(e.Attrs["d"])
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, e)
				e.Parent = parent
			} else if root == nil {
				root = e
			}
			stack = append(stack, e)
			current = e
			textBuf.Reset()
		case xml.CharData:
			textBuf.Write(t)
		case xml.EndElement:
			if current != nil && current.Kind == KindStyle {
				current.Attrs["__text__"] = textBuf.String()
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if len(stack) > 0 {
				current = stack[len(stack)-1]
			} else {
				current = nil
			}
			textBuf.Reset()
		}
	}

	if root == nil {
		return nil, fmt.Errorf("dom: no root element")
	}
	return NewDocument(root), nil
}

func parseInlineStyle(s string) map[string]string {
	out := make(map[string]string)
	if s == "" {
		return out
	}
	for _, decl := range strings.Split(s, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}
