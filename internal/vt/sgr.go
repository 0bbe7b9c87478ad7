package vt

import (
	"image/color"

	"github.com/Gaurav-Gosain/tuimux/internal/geom"
	"github.com/charmbracelet/x/ansi"
)

// sgr applies a Select Graphic Rendition parameter list to the pen.
func (s *Screen) sgr(params [][]int) {
	if len(params) == 0 {
		s.resetPen()
		return
	}
	for i := 0; i < len(params); i++ {
		g := params[i]
		code := param(params, i, 0)
		switch {
		case code == 0:
			s.resetPen()
		case code == 1:
			s.pen.Attrs |= AttrBold
		case code == 2:
			s.pen.Attrs |= AttrFaint
		case code == 3:
			s.pen.Attrs |= AttrItalic
		case code == 4:
			if len(g) > 1 && g[1] == 0 {
				s.pen.Attrs &^= AttrUnderline
			} else {
				s.pen.Attrs |= AttrUnderline
			}
		case code == 5 || code == 6:
			s.pen.Attrs |= AttrBlink
		case code == 7:
			s.pen.Attrs |= AttrReverse
		case code == 8:
			s.pen.Attrs |= AttrConceal
		case code == 9:
			s.pen.Attrs |= AttrStrikethrough
		case code == 21:
			s.pen.Attrs |= AttrUnderline
		case code == 22:
			s.pen.Attrs &^= AttrBold | AttrFaint
		case code == 23:
			s.pen.Attrs &^= AttrItalic
		case code == 24:
			s.pen.Attrs &^= AttrUnderline
		case code == 25:
			s.pen.Attrs &^= AttrBlink
		case code == 27:
			s.pen.Attrs &^= AttrReverse
		case code == 28:
			s.pen.Attrs &^= AttrConceal
		case code == 29:
			s.pen.Attrs &^= AttrStrikethrough
		case code >= 30 && code <= 37:
			s.pen.Fg = ansi.BasicColor(code - 30)
		case code == 38:
			c, used := extendedColor(params, i)
			i += used
			if c != nil {
				s.pen.Fg = c
			}
		case code == 39:
			s.pen.Fg = nil
		case code >= 40 && code <= 47:
			s.pen.Bg = ansi.BasicColor(code - 40)
		case code == 48:
			c, used := extendedColor(params, i)
			i += used
			if c != nil {
				s.pen.Bg = c
			}
		case code == 49:
			s.pen.Bg = nil
		case code == 58:
			// Underline color is not rendered, but its arguments must be skipped.
			_, used := extendedColor(params, i)
			i += used
		case code >= 90 && code <= 97:
			s.pen.Fg = ansi.BasicColor(code - 90 + 8)
		case code >= 100 && code <= 107:
			s.pen.Bg = ansi.BasicColor(code - 100 + 8)
		}
	}
}

// resetPen restores default rendition. Protection is not part of SGR state.
func (s *Screen) resetPen() {
	s.pen = Cell{Rune: ' ', Width: 1, Attrs: s.pen.Attrs & AttrProtected}
}

// extendedColor decodes the 38/48/58 forms starting at params[i]. It returns
// the color and how many extra semicolon groups were consumed.
func extendedColor(params [][]int, i int) (color.Color, int) {
	if g := params[i]; len(g) > 1 {
		return subColor(g[1:]), 0
	}
	rest := len(params) - i - 1
	switch param(params, i+1, MissingParam) {
	case 5:
		if rest >= 2 {
			return indexedColor(param(params, i+2, 0)), 2
		}
	case 2:
		if rest >= 4 {
			return rgbColor(param(params, i+2, 0), param(params, i+3, 0), param(params, i+4, 0)), 4
		}
	default:
		return nil, min(rest, 1)
	}
	return nil, rest
}

// subColor decodes the colon form, with or without a color space id.
func subColor(sub []int) color.Color {
	v := func(k int) int {
		if k < len(sub) && sub[k] != MissingParam {
			return sub[k]
		}
		return 0
	}
	switch v(0) {
	case 5:
		return indexedColor(v(1))
	case 2:
		if len(sub) >= 5 {
			return rgbColor(v(2), v(3), v(4))
		}
		return rgbColor(v(1), v(2), v(3))
	}
	return nil
}

func indexedColor(n int) color.Color {
	return ansi.IndexedColor(uint8(geom.Clamp(n, 0, 255)))
}

func rgbColor(r, g, b int) color.Color {
	return color.RGBA{
		R: uint8(geom.Clamp(r, 0, 255)),
		G: uint8(geom.Clamp(g, 0, 255)),
		B: uint8(geom.Clamp(b, 0, 255)),
		A: 0xff,
	}
}
