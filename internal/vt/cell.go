package vt

import (
	"image/color"

	"github.com/charmbracelet/x/ansi"
)

// Attr is a set of cell style flags.
type Attr uint16

// Cell style flags.
const (
	AttrBold Attr = 1 << iota
	AttrFaint
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrConceal
	AttrStrikethrough
	// AttrProtected marks a cell that selective erase leaves alone (DECSCA).
	AttrProtected
)

// Cell is one character position. Width is 1 for ordinary runes, 2 for the
// leading cell of a wide rune, and 0 for the cell a wide rune spills into.
type Cell struct {
	Rune  rune
	Width int
	Fg    color.Color
	Bg    color.Color
	Attrs Attr
}

// blankCell is an empty cell with default colors.
var blankCell = Cell{Rune: ' ', Width: 1}

// Blank reports whether the cell shows nothing but its background.
func (c Cell) Blank() bool {
	return (c.Rune == ' ' || c.Rune == 0) && c.Attrs&^AttrProtected == 0 && c.Fg == nil
}

// sameStyle reports whether two cells render with identical SGR state.
func (c Cell) sameStyle(o Cell) bool {
	return c.Attrs&^AttrProtected == o.Attrs&^AttrProtected &&
		colorEqual(c.Fg, o.Fg) && colorEqual(c.Bg, o.Bg)
}

// sgr returns the escape sequence that selects this cell's style, or an
// empty string for the default style.
func (c Cell) sgr() string {
	var te ansi.Style
	if c.Fg != nil {
		te = te.ForegroundColor(c.Fg)
	}
	if c.Bg != nil {
		te = te.BackgroundColor(c.Bg)
	}
	if c.Attrs&AttrBold != 0 {
		te = te.Bold()
	}
	if c.Attrs&AttrFaint != 0 {
		te = te.Faint()
	}
	if c.Attrs&AttrItalic != 0 {
		te = te.Italic(true)
	}
	if c.Attrs&AttrUnderline != 0 {
		te = te.Underline(true)
	}
	if c.Attrs&AttrBlink != 0 {
		te = te.Blink(true)
	}
	if c.Attrs&AttrReverse != 0 {
		te = te.Reverse(true)
	}
	if c.Attrs&AttrStrikethrough != 0 {
		te = te.Strikethrough(true)
	}
	return te.String()
}

func colorEqual(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}
