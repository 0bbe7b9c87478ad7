// Package testutil holds helpers for feeding terminal output to screens and
// panels in tests.
package testutil

import (
	"fmt"
	"strings"
)

// ANSIBuilder builds escape-sequence strings fluently.
type ANSIBuilder struct {
	sb strings.Builder
}

// NewANSIBuilder returns an empty builder.
func NewANSIBuilder() *ANSIBuilder {
	return &ANSIBuilder{}
}

func (b *ANSIBuilder) csi(format string, args ...any) *ANSIBuilder {
	b.sb.WriteString("\x1b[")
	fmt.Fprintf(&b.sb, format, args...)
	return b
}

// count renders a repeat count, leaving out the default of 1.
func count(n int) string {
	if n == 1 {
		return ""
	}
	return fmt.Sprint(n)
}

// Text appends plain text.
func (b *ANSIBuilder) Text(s string) *ANSIBuilder {
	b.sb.WriteString(s)
	return b
}

// Newline appends CR LF.
func (b *ANSIBuilder) Newline() *ANSIBuilder {
	b.sb.WriteString("\r\n")
	return b
}

// LineFeed appends a bare LF.
func (b *ANSIBuilder) LineFeed() *ANSIBuilder {
	b.sb.WriteByte('\n')
	return b
}

// CursorHome moves to the top left.
func (b *ANSIBuilder) CursorHome() *ANSIBuilder { return b.csi("H") }

// CursorTo moves to a 1-based row and column.
func (b *ANSIBuilder) CursorTo(row, col int) *ANSIBuilder { return b.csi("%d;%dH", row, col) }

// CursorUp moves up n rows.
func (b *ANSIBuilder) CursorUp(n int) *ANSIBuilder { return b.csi("%sA", count(n)) }

// CursorDown moves down n rows.
func (b *ANSIBuilder) CursorDown(n int) *ANSIBuilder { return b.csi("%sB", count(n)) }

// CursorForward moves right n columns.
func (b *ANSIBuilder) CursorForward(n int) *ANSIBuilder { return b.csi("%sC", count(n)) }

// CursorBackward moves left n columns.
func (b *ANSIBuilder) CursorBackward(n int) *ANSIBuilder { return b.csi("%sD", count(n)) }

// SaveCursor emits DECSC.
func (b *ANSIBuilder) SaveCursor() *ANSIBuilder {
	b.sb.WriteString("\x1b7")
	return b
}

// RestoreCursor emits DECRC.
func (b *ANSIBuilder) RestoreCursor() *ANSIBuilder {
	b.sb.WriteString("\x1b8")
	return b
}

// ReverseIndex emits RI.
func (b *ANSIBuilder) ReverseIndex() *ANSIBuilder {
	b.sb.WriteString("\x1bM")
	return b
}

// ClearScreen erases the whole display.
func (b *ANSIBuilder) ClearScreen() *ANSIBuilder { return b.csi("2J") }

// ClearLine erases the whole line.
func (b *ANSIBuilder) ClearLine() *ANSIBuilder { return b.csi("2K") }

// ClearToEndOfLine erases from the cursor to the end of the line.
func (b *ANSIBuilder) ClearToEndOfLine() *ANSIBuilder { return b.csi("K") }

// ClearToEndOfScreen erases from the cursor to the end of the display.
func (b *ANSIBuilder) ClearToEndOfScreen() *ANSIBuilder { return b.csi("J") }

// InsertLines emits IL.
func (b *ANSIBuilder) InsertLines(n int) *ANSIBuilder { return b.csi("%sL", count(n)) }

// DeleteLines emits DL.
func (b *ANSIBuilder) DeleteLines(n int) *ANSIBuilder { return b.csi("%sM", count(n)) }

// InsertChars emits ICH.
func (b *ANSIBuilder) InsertChars(n int) *ANSIBuilder { return b.csi("%s@", count(n)) }

// DeleteChars emits DCH.
func (b *ANSIBuilder) DeleteChars(n int) *ANSIBuilder { return b.csi("%sP", count(n)) }

// EraseChars emits ECH.
func (b *ANSIBuilder) EraseChars(n int) *ANSIBuilder { return b.csi("%sX", count(n)) }

// Reset clears all SGR attributes.
func (b *ANSIBuilder) Reset() *ANSIBuilder { return b.csi("0m") }

// Bold sets bold.
func (b *ANSIBuilder) Bold() *ANSIBuilder { return b.csi("1m") }

// Underline sets underline.
func (b *ANSIBuilder) Underline() *ANSIBuilder { return b.csi("4m") }

// FgColor sets a basic foreground color code (30-37, 90-97).
func (b *ANSIBuilder) FgColor(code int) *ANSIBuilder { return b.csi("%dm", code) }

// BgColor sets a basic background color code (40-47, 100-107).
func (b *ANSIBuilder) BgColor(code int) *ANSIBuilder { return b.csi("%dm", code) }

// Fg256 sets a 256-color foreground.
func (b *ANSIBuilder) Fg256(n int) *ANSIBuilder { return b.csi("38;5;%dm", n) }

// FgRGB sets a truecolor foreground.
func (b *ANSIBuilder) FgRGB(r, g, bl int) *ANSIBuilder { return b.csi("38;2;%d;%d;%dm", r, g, bl) }

// Protect toggles DECSCA.
func (b *ANSIBuilder) Protect(on bool) *ANSIBuilder {
	if on {
		return b.csi("1\"q")
	}
	return b.csi("0\"q")
}

// AltScreen enters the alternate screen with cursor save.
func (b *ANSIBuilder) AltScreen() *ANSIBuilder { return b.csi("?1049h") }

// MainScreen leaves the alternate screen.
func (b *ANSIBuilder) MainScreen() *ANSIBuilder { return b.csi("?1049l") }

// ShowCursor sets DECTCEM.
func (b *ANSIBuilder) ShowCursor() *ANSIBuilder { return b.csi("?25h") }

// HideCursor resets DECTCEM.
func (b *ANSIBuilder) HideCursor() *ANSIBuilder { return b.csi("?25l") }

// OriginMode toggles DECOM.
func (b *ANSIBuilder) OriginMode(on bool) *ANSIBuilder {
	if on {
		return b.csi("?6h")
	}
	return b.csi("?6l")
}

// AutoWrap toggles DECAWM.
func (b *ANSIBuilder) AutoWrap(on bool) *ANSIBuilder {
	if on {
		return b.csi("?7h")
	}
	return b.csi("?7l")
}

// OSCTitle sets the window title, terminated by BEL.
func (b *ANSIBuilder) OSCTitle(title string) *ANSIBuilder {
	fmt.Fprintf(&b.sb, "\x1b]0;%s\x07", title)
	return b
}

// ScrollRegion sets DECSTBM with 1-based rows.
func (b *ANSIBuilder) ScrollRegion(top, bottom int) *ANSIBuilder {
	return b.csi("%d;%dr", top, bottom)
}

// ScrollUp emits SU.
func (b *ANSIBuilder) ScrollUp(n int) *ANSIBuilder { return b.csi("%sS", count(n)) }

// ScrollDown emits SD.
func (b *ANSIBuilder) ScrollDown(n int) *ANSIBuilder { return b.csi("%sT", count(n)) }

// Clear empties the builder.
func (b *ANSIBuilder) Clear() *ANSIBuilder {
	b.sb.Reset()
	return b
}

// String returns the built sequence.
func (b *ANSIBuilder) String() string { return b.sb.String() }

// Bytes returns the built sequence as bytes.
func (b *ANSIBuilder) Bytes() []byte { return []byte(b.sb.String()) }

// NumberedLines returns n CR LF separated lines "line 1" to "line n".
func NumberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\r\n")
}

// CursorPositionResponse is the CPR a terminal sends for a 1-based position.
func CursorPositionResponse(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dR", row, col)
}
