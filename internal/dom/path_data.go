package dom

import "strconv"

// PathCmd is the command letter of one path-data segment, as written (its
// case carries the absolute/relative distinction, matching the "d"
// attribute grammar directly instead of splitting it into a separate
// bool).
type PathCmd byte

const (
	CmdMoveTo       PathCmd = 'M'
	CmdMoveToRel    PathCmd = 'm'
	CmdLineTo       PathCmd = 'L'
	CmdLineToRel    PathCmd = 'l'
	CmdHLineTo      PathCmd = 'H'
	CmdHLineToRel   PathCmd = 'h'
	CmdVLineTo      PathCmd = 'V'
	CmdVLineToRel   PathCmd = 'v'
	CmdCurveTo      PathCmd = 'C'
	CmdCurveToRel   PathCmd = 'c'
	CmdSmoothCurve  PathCmd = 'S'
	CmdSmoothCurveR PathCmd = 's'
	CmdQuadTo       PathCmd = 'Q'
	CmdQuadToRel    PathCmd = 'q'
	CmdSmoothQuad   PathCmd = 'T'
	CmdSmoothQuadR  PathCmd = 't'
	CmdArcTo        PathCmd = 'A'
	CmdArcToRel     PathCmd = 'a'
	CmdClose        PathCmd = 'Z'
	CmdCloseRel     PathCmd = 'z'
)

// PathCommand is one parsed path-data segment with its numeric arguments
// in the order the grammar defines for that command letter.
type PathCommand struct {
	Cmd  PathCmd
	Args []float64
}

// argCount is the number of numeric arguments a command letter consumes
// per repetition (path data allows a command letter to be followed by
// multiple argument groups, implicitly repeating the same command).
func argCount(c PathCmd) int {
	switch c {
	case CmdMoveTo, CmdMoveToRel, CmdLineTo, CmdLineToRel, CmdSmoothQuad, CmdSmoothQuadR:
		return 2
	case CmdHLineTo, CmdHLineToRel, CmdVLineTo, CmdVLineToRel:
		return 1
	case CmdCurveTo, CmdCurveToRel:
		return 6
	case CmdSmoothCurve, CmdSmoothCurveR, CmdQuadTo, CmdQuadToRel:
		return 4
	case CmdArcTo, CmdArcToRel:
		return 7
	case CmdClose, CmdCloseRel:
		return 0
	default:
		return 0
	}
}

// ParsePathData parses an SVG "d" attribute into a command list. Malformed
// trailing content is silently truncated rather than rejected outright,
// matching how renderer implementations typically render as much of a
// path as parses rather than discarding the whole shape.
func ParsePathData(d string) []PathCommand {
	toks := tokenizePathData(d)
	var cmds []PathCommand
	var cur PathCmd
	i := 0
	for i < len(toks) {
		if isCommandLetter(toks[i]) {
			cur = PathCmd(toks[i][0])
			i++
			// MoveTo's repeated argument groups after the first are
			// treated as implicit LineTo per the SVG grammar.
			first := true
			for i < len(toks) && !isCommandLetter(toks[i]) {
				n := argCount(cur)
				if n == 0 {
					break
				}
				if i+n > len(toks) {
					break
				}
				args := make([]float64, n)
				for j := 0; j < n; j++ {
					args[j], _ = strconv.ParseFloat(toks[i+j], 64)
				}
				effective := cur
				if !first {
					if cur == CmdMoveTo {
						effective = CmdLineTo
					} else if cur == CmdMoveToRel {
						effective = CmdLineToRel
					}
				}
				cmds = append(cmds, PathCommand{Cmd: effective, Args: args})
				i += n
				first = false
			}
			if argCount(cur) == 0 {
				cmds = append(cmds, PathCommand{Cmd: cur})
			}
		} else {
			i++
		}
	}
	return cmds
}

func isCommandLetter(tok string) bool {
	if len(tok) != 1 {
		return false
	}
	switch tok[0] {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	default:
		return false
	}
}

// tokenizePathData splits path data into command letters and numbers,
// handling the grammar's relaxed separators: numbers may be separated by
// whitespace, a comma, or simply by a sign/decimal point with no
// separator at all (e.g. "1.5.5" means "1.5 .5", "10-5" means "10 -5").
func tokenizePathData(d string) []string {
	var toks []string
	n := len(d)
	i := 0
	for i < n {
		c := d[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			i++
		case isCommandLetter(string(c)):
			toks = append(toks, string(c))
			i++
		case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
			start := i
			i++
			seenDot := d[start] == '.'
			for i < n {
				cc := d[i]
				if cc >= '0' && cc <= '9' {
					i++
					continue
				}
				if cc == '.' && !seenDot {
					seenDot = true
					i++
					continue
				}
				if (cc == 'e' || cc == 'E') && i+1 < n && (d[i+1] == '+' || d[i+1] == '-' || (d[i+1] >= '0' && d[i+1] <= '9')) {
					i += 2
					for i < n && d[i] >= '0' && d[i] <= '9' {
						i++
					}
					continue
				}
				break
			}
			toks = append(toks, d[start:i])
		default:
			i++
		}
	}
	return toks
}
