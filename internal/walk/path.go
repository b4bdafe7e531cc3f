package walk

import "oxsvg/svgren/internal/dom"

// emitPath steps a path element's command list onto the canvas, folding
// relative commands to absolute coordinates and reflecting the implicit
// control point for the S/s and T/t smooth-curve commands off the
// previous command's own control point, per spec.md §4.2's path stepper.
func (r *Renderer) emitPath(e *dom.Element) {
	cmds := e.PathData
	if cmds == nil {
		if d, ok := e.Attr("d"); ok {
			cmds = dom.ParsePathData(d)
		}
	}

	var curX, curY, startX, startY float64
	havePoint := false
	var prevFamily byte // 'C' after a cubic-family command, 'Q' after a quad-family one, 0 otherwise

	for _, cmd := range cmds {
		switch cmd.Cmd {
		case dom.CmdMoveTo, dom.CmdMoveToRel:
			x, y := cmd.Args[0], cmd.Args[1]
			if cmd.Cmd == dom.CmdMoveToRel && havePoint {
				x += curX
				y += curY
			}
			r.canvas.MoveTo(x, y)
			curX, curY = x, y
			startX, startY = x, y
			havePoint = true
			prevFamily = 0

		case dom.CmdLineTo, dom.CmdLineToRel:
			x, y := cmd.Args[0], cmd.Args[1]
			if cmd.Cmd == dom.CmdLineToRel {
				x += curX
				y += curY
			}
			r.canvas.LineTo(x, y)
			curX, curY = x, y
			prevFamily = 0

		case dom.CmdHLineTo, dom.CmdHLineToRel:
			x := cmd.Args[0]
			if cmd.Cmd == dom.CmdHLineToRel {
				x += curX
			}
			r.canvas.LineTo(x, curY)
			curX = x
			prevFamily = 0

		case dom.CmdVLineTo, dom.CmdVLineToRel:
			y := cmd.Args[0]
			if cmd.Cmd == dom.CmdVLineToRel {
				y += curY
			}
			r.canvas.LineTo(curX, y)
			curY = y
			prevFamily = 0

		case dom.CmdCurveTo, dom.CmdCurveToRel:
			x1, y1, x2, y2, x, y := cmd.Args[0], cmd.Args[1], cmd.Args[2], cmd.Args[3], cmd.Args[4], cmd.Args[5]
			if cmd.Cmd == dom.CmdCurveToRel {
				x1 += curX
				y1 += curY
				x2 += curX
				y2 += curY
				x += curX
				y += curY
			}
			r.canvas.CubicTo(x1, y1, x2, y2, x, y)
			curX, curY = x, y
			prevFamily = 'C'

		case dom.CmdSmoothCurve, dom.CmdSmoothCurveR:
			x2, y2, x, y := cmd.Args[0], cmd.Args[1], cmd.Args[2], cmd.Args[3]
			if cmd.Cmd == dom.CmdSmoothCurveR {
				x2 += curX
				y2 += curY
				x += curX
				y += curY
			}
			x1, y1 := r.reflectedControl(prevFamily == 'C', curX, curY)
			r.canvas.CubicTo(x1, y1, x2, y2, x, y)
			curX, curY = x, y
			prevFamily = 'C'

		case dom.CmdQuadTo, dom.CmdQuadToRel:
			xc, yc, x, y := cmd.Args[0], cmd.Args[1], cmd.Args[2], cmd.Args[3]
			if cmd.Cmd == dom.CmdQuadToRel {
				xc += curX
				yc += curY
				x += curX
				y += curY
			}
			r.canvas.QuadTo(xc, yc, x, y)
			curX, curY = x, y
			prevFamily = 'Q'

		case dom.CmdSmoothQuad, dom.CmdSmoothQuadR:
			x, y := cmd.Args[0], cmd.Args[1]
			if cmd.Cmd == dom.CmdSmoothQuadR {
				x += curX
				y += curY
			}
			xc, yc := r.reflectedControl(prevFamily == 'Q', curX, curY)
			r.canvas.QuadTo(xc, yc, x, y)
			curX, curY = x, y
			prevFamily = 'Q'

		case dom.CmdArcTo, dom.CmdArcToRel:
			rx, ry, rot, large, sweep, x, y := cmd.Args[0], cmd.Args[1], cmd.Args[2], cmd.Args[3], cmd.Args[4], cmd.Args[5], cmd.Args[6]
			if cmd.Cmd == dom.CmdArcToRel {
				x += curX
				y += curY
			}
			if rx <= 0 || ry <= 0 {
				// A zero radius degenerates to no segment at all; the
				// current point does not move (spec.md §4.2 edge case).
				continue
			}
			r.canvas.ArcTo(rx, ry, rot, large != 0, sweep != 0, x, y)
			curX, curY = x, y
			prevFamily = 0

		case dom.CmdClose, dom.CmdCloseRel:
			r.canvas.ClosePolygon()
			curX, curY = startX, startY
			prevFamily = 0
		}
	}
}

// reflectedControl returns the implicit control point for a smooth
// curve/quad command: the current point's reflection of the previous
// command's own trailing control point when the previous command was of
// the same curve family, or the current point itself otherwise.
func (r *Renderer) reflectedControl(sameFamily bool, curX, curY float64) (float64, float64) {
	if sameFamily {
		if lx, ly, ok := r.canvas.LastControlPoint(); ok {
			return 2*curX - lx, 2*curY - ly
		}
	}
	return curX, curY
}
