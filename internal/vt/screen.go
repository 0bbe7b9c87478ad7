package vt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/Gaurav-Gosain/tuimux/internal/geom"
	"github.com/mattn/go-runewidth"
)

// ErrInvalidSize is returned for a screen size with zero rows or columns.
var ErrInvalidSize = errors.New("invalid screen size")

// Logger represents a logger interface.
type Logger interface {
	Printf(format string, v ...any)
}

const (
	primary = iota
	alternate
)

// cursorState is what DECSC and friends save.
type cursorState struct {
	valid       bool
	pos         geom.Point
	pen         Cell
	origin      bool
	pendingWrap bool
	charsets    [2]bool
	gl          int
}

type modes struct {
	origin        bool
	autoWrap      bool
	cursorVisible bool
	insert        bool
	newline       bool
	appCursor     bool
	appKeypad     bool
	bracketPaste  bool
}

// Screen is the state of one terminal: the primary and alternate grids,
// cursor, scroll region, modes and scrollback. It consumes [Event]s and is not
// safe for concurrent use.
type Screen struct {
	size   geom.Size
	grids  [2]*Grid
	active int

	cursor geom.Point
	// pendingWrap is set after a print lands in the last column. The next
	// print wraps first.
	pendingWrap bool
	saved       [2]cursorState

	// Scroll region, inclusive.
	top, bottom int

	pen      Cell
	modes    modes
	tabs     []bool
	charsets [2]bool
	gl       int
	lastRune rune

	defaultAutoWrap bool
	cursorStyle     int

	scrollback *Scrollback
	offset     int

	title, iconName string
	cwd             string
	bells           int
	unhandled       int
	dcsBytes        int

	decoder   *Decoder
	logger    Logger
	responder io.Writer
}

// Option configures a Screen.
type Option func(*Screen)

// WithLogger sets the logger that receives diagnostics.
func WithLogger(l Logger) Option {
	return func(s *Screen) { s.logger = l }
}

// WithScrollback sets the maximum number of history rows.
func WithScrollback(maxLines int) Option {
	return func(s *Screen) { s.scrollback.SetMaxLines(maxLines) }
}

// WithAutoWrap sets the power-on state of DECAWM. With it off, prints at the
// right margin overwrite the last column.
func WithAutoWrap(on bool) Option {
	return func(s *Screen) {
		s.defaultAutoWrap = on
		s.modes.autoWrap = on
	}
}

// WithResponder sets where replies to device status queries are written,
// usually the child's PTY.
func WithResponder(w io.Writer) Option {
	return func(s *Screen) { s.responder = w }
}

// NewScreen returns a blank screen of the given size.
func NewScreen(size geom.Size, opts ...Option) (*Screen, error) {
	if size.Empty() {
		return nil, fmt.Errorf("new screen %v: %w", size, ErrInvalidSize)
	}
	s := &Screen{
		size:            size,
		grids:           [2]*Grid{NewGrid(size), NewGrid(size)},
		scrollback:      NewScrollback(DefaultScrollbackSize),
		decoder:         NewDecoder(),
		defaultAutoWrap: true,
	}
	s.reset()
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Screen) reset() {
	s.active = primary
	s.grids[primary].Fill(blankCell)
	s.grids[alternate].Fill(blankCell)
	s.cursor = geom.Point{}
	s.pendingWrap = false
	s.saved = [2]cursorState{}
	s.top, s.bottom = 0, s.size.Rows-1
	s.pen = blankCell
	s.modes = modes{autoWrap: s.defaultAutoWrap, cursorVisible: true}
	s.charsets = [2]bool{}
	s.gl = 0
	s.lastRune = 0
	s.cursorStyle = 0
	s.title, s.iconName = "", ""
	s.offset = 0
	s.resetTabs()
}

// Write decodes p and applies every resulting event. It never fails.
func (s *Screen) Write(p []byte) (int, error) {
	for _, ev := range s.decoder.Feed(p) {
		s.Apply(ev)
	}
	return len(p), nil
}

// WriteString is Write for strings.
func (s *Screen) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// Apply mutates the screen for one event.
func (s *Screen) Apply(ev Event) {
	switch ev := ev.(type) {
	case Print:
		s.print(ev.Rune)
	case Execute:
		s.execute(ev.Code)
	case CsiDispatch:
		s.csi(ev)
	case EscDispatch:
		s.esc(ev)
	case OscDispatch:
		s.osc(ev)
	case Hook:
		s.dcsBytes = 0
		s.logf("dcs hook: %c", ev.Final)
	case Put:
		s.dcsBytes++
	case Unhook:
		s.logf("dcs passthrough ignored: %d bytes", s.dcsBytes)
	case UnhandledSequence:
		s.reportUnhandled(fmt.Sprintf("%s %q", ev.Kind, ev.Raw))
	}
}

func (s *Screen) logf(format string, v ...any) {
	if s.logger != nil {
		s.logger.Printf(format, v...)
	}
}

func (s *Screen) reportUnhandled(desc string) {
	s.unhandled++
	s.logf("unhandled sequence: %s", desc)
}

func (s *Screen) grid() *Grid {
	return s.grids[s.active]
}

// blank is the fill cell for erased and inserted space.
func (s *Screen) blank() Cell {
	return Cell{Rune: ' ', Width: 1, Bg: s.pen.Bg}
}

// Size returns the screen dimensions.
func (s *Screen) Size() geom.Size { return s.size }

// Cursor returns the cursor position.
func (s *Screen) Cursor() geom.Point { return s.cursor }

// CursorVisible reports DECTCEM.
func (s *Screen) CursorVisible() bool { return s.modes.cursorVisible }

// CursorStyle returns the last DECSCUSR value (0 is the terminal default).
func (s *Screen) CursorStyle() int { return s.cursorStyle }

// PendingWrap reports whether the next print wraps first.
func (s *Screen) PendingWrap() bool { return s.pendingWrap }

// ScrollRegion returns the inclusive scroll region rows.
func (s *Screen) ScrollRegion() (top, bottom int) { return s.top, s.bottom }

// OriginMode reports DECOM.
func (s *Screen) OriginMode() bool { return s.modes.origin }

// AutoWrap reports DECAWM.
func (s *Screen) AutoWrap() bool { return s.modes.autoWrap }

// AltScreen reports whether the alternate grid is active.
func (s *Screen) AltScreen() bool { return s.active == alternate }

// AppCursorKeys reports DECCKM.
func (s *Screen) AppCursorKeys() bool { return s.modes.appCursor }

// BracketedPaste reports mode 2004.
func (s *Screen) BracketedPaste() bool { return s.modes.bracketPaste }

// Title returns the last title set by OSC 0 or 2.
func (s *Screen) Title() string { return s.title }

// WorkingDir returns the directory last reported with OSC 7.
func (s *Screen) WorkingDir() string { return s.cwd }

// IconName returns the last icon name set by OSC 0 or 1.
func (s *Screen) IconName() string { return s.iconName }

// Bells returns how many BEL controls were received.
func (s *Screen) Bells() int { return s.bells }

// Unhandled returns how many sequences were dropped as unsupported.
func (s *Screen) Unhandled() int { return s.unhandled }

// Cell returns the cell at p in the active grid.
func (s *Screen) Cell(p geom.Point) Cell { return s.grid().Cell(p) }

// Scrollback returns the history of the primary grid.
func (s *Screen) Scrollback() *Scrollback { return s.scrollback }

// ScrollbackLen returns the number of history rows.
func (s *Screen) ScrollbackLen() int { return s.scrollback.Len() }

// SetScrollbackMaxLines changes the history capacity.
func (s *Screen) SetScrollbackMaxLines(maxLines int) {
	s.scrollback.SetMaxLines(maxLines)
	s.offset = min(s.offset, s.scrollback.Len())
}

// SetScrollback scrolls the view back n rows: the newest n history rows are
// shown above the live grid, whose bottom rows drop out of view. n is clamped
// to the history length and the applied offset is returned.
func (s *Screen) SetScrollback(n int) int {
	s.offset = geom.Clamp(n, 0, s.scrollback.Len())
	return s.offset
}

// ScrollbackOffset returns the current history offset.
func (s *Screen) ScrollbackOffset() int { return s.offset }

// Resize changes the screen size. Content is clipped or padded, not
// reflowed. When the primary grid loses rows below the cursor the top rows go
// to scrollback first so the cursor row stays visible. A size with zero rows
// or columns is rejected and nothing changes.
func (s *Screen) Resize(size geom.Size) error {
	if size.Empty() {
		return fmt.Errorf("resize to %v: %w", size, ErrInvalidSize)
	}
	if size == s.size {
		return nil
	}
	if s.active == primary && s.cursor.Row >= size.Rows {
		n := s.cursor.Row - size.Rows + 1
		s.archive(s.grids[primary].ScrollUp(0, s.size.Rows-1, n, blankCell))
		s.cursor.Row -= n
	}
	for _, g := range s.grids {
		g.Resize(size)
	}
	s.size = size
	s.top, s.bottom = 0, size.Rows-1
	s.cursor = s.cursor.Clamp(size)
	s.pendingWrap = s.pendingWrap && s.cursor.Col == size.Cols-1
	for i := range s.saved {
		s.saved[i].pos = s.saved[i].pos.Clamp(size)
	}
	s.resizeTabs()
	s.offset = min(s.offset, s.scrollback.Len())
	return nil
}

// visibleRows returns the rows on display at the current offset.
func (s *Screen) visibleRows() []Line {
	rows := make([]Line, 0, s.size.Rows)
	if s.offset > 0 {
		n := s.scrollback.Len()
		for i := n - s.offset; i < n && len(rows) < s.size.Rows; i++ {
			rows = append(rows, s.scrollback.Line(i))
		}
	}
	for i := 0; len(rows) < s.size.Rows; i++ {
		rows = append(rows, s.grid().Row(i))
	}
	return rows
}

// Lines returns the displayed rows as plain text without trailing blanks.
func (s *Screen) Lines() []string {
	rows := s.visibleRows()
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = lineText(r)
	}
	return out
}

// Contents returns the displayed rows joined by newlines, with trailing
// empty rows removed.
func (s *Screen) Contents() string {
	return strings.TrimRight(strings.Join(s.Lines(), "\n"), "\n")
}

// RenderLines returns the displayed rows with SGR styling, each at most as
// wide as the screen.
func (s *Screen) RenderLines() []string {
	rows := s.visibleRows()
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = renderLine(r, s.size.Cols)
	}
	return out
}

func lineText(l Line) string {
	var b strings.Builder
	for _, c := range l {
		switch {
		case c.Width == 0:
			continue
		case c.Rune == 0 || c.Attrs&AttrConceal != 0:
			b.WriteByte(' ')
		default:
			b.WriteRune(c.Rune)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

const sgrReset = "\x1b[0m"

func renderLine(l Line, cols int) string {
	end := min(len(l), cols)
	for end > 0 && l[end-1].Blank() && l[end-1].Bg == nil {
		end--
	}
	var b strings.Builder
	styled := false
	var cur Cell
	for x := 0; x < end; x++ {
		c := l[x]
		if c.Width == 0 {
			continue
		}
		if c.Width == 2 && x+1 >= cols {
			c = Cell{Rune: ' ', Width: 1, Bg: c.Bg}
		}
		if x == 0 || !c.sameStyle(cur) {
			if styled {
				b.WriteString(sgrReset)
			}
			seq := c.sgr()
			b.WriteString(seq)
			styled = seq != ""
			cur = c
		}
		switch {
		case c.Rune == 0 || c.Attrs&AttrConceal != 0:
			b.WriteString(strings.Repeat(" ", c.Width))
		default:
			b.WriteRune(c.Rune)
		}
	}
	if styled {
		b.WriteString(sgrReset)
	}
	return b.String()
}

// print writes r at the cursor with DECAWM semantics.
func (s *Screen) print(r rune) {
	r = translateCharset(r, s.charsets[s.gl])
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return
	}
	if w > s.size.Cols {
		w = 1
	}
	s.lastRune = r

	if s.pendingWrap && s.modes.autoWrap {
		s.cursor.Col = 0
		s.index()
	}
	s.pendingWrap = false

	if s.cursor.Col+w > s.size.Cols {
		if s.modes.autoWrap {
			s.cursor.Col = 0
			s.index()
		} else {
			s.cursor.Col = s.size.Cols - w
		}
	}

	blank := s.blank()
	if s.modes.insert {
		s.grid().InsertCells(s.cursor.Row, s.cursor.Col, w, blank)
	}
	cell := s.pen
	cell.Rune = r
	cell.Width = w
	s.grid().Put(s.cursor, cell, blank)

	if s.cursor.Col+w >= s.size.Cols {
		s.cursor.Col = s.size.Cols - 1
		s.pendingWrap = s.modes.autoWrap
		return
	}
	s.cursor.Col += w
}

// offsetFollow keeps a scrolled-back view from pointing past the history.
func (s *Screen) offsetFollow() {
	if s.offset > s.scrollback.Len() {
		s.offset = s.scrollback.Len()
	}
}

func (s *Screen) execute(code byte) {
	switch code {
	case 0x07: // BEL
		s.bells++
	case 0x08: // BS
		if s.cursor.Col > 0 {
			s.cursor.Col--
		}
		s.pendingWrap = false
	case 0x09: // HT
		s.tabForward(1)
	case 0x0a, 0x0b, 0x0c: // LF, VT, FF
		s.index()
		if s.modes.newline {
			s.cursor.Col = 0
		}
	case 0x0d: // CR
		s.cursor.Col = 0
		s.pendingWrap = false
	case 0x0e: // SO
		s.gl = 1
	case 0x0f: // SI
		s.gl = 0
	case 0x84: // IND
		s.index()
	case 0x85: // NEL
		s.nextLine()
	case 0x88: // HTS
		s.tabs[s.cursor.Col] = true
	case 0x8d: // RI
		s.reverseIndex()
	}
}

// index moves the cursor down, scrolling the region at its bottom margin.
func (s *Screen) index() {
	s.pendingWrap = false
	switch {
	case s.cursor.Row == s.bottom:
		s.scrollUp(1)
	case s.cursor.Row < s.size.Rows-1:
		s.cursor.Row++
	}
}

// reverseIndex moves the cursor up, scrolling the region at its top margin.
func (s *Screen) reverseIndex() {
	s.pendingWrap = false
	switch {
	case s.cursor.Row == s.top:
		s.scrollDown(1)
	case s.cursor.Row > 0:
		s.cursor.Row--
	}
}

func (s *Screen) nextLine() {
	s.index()
	s.cursor.Col = 0
}

// scrollUp scrolls the region up by n. Rows leave into scrollback only when
// the region starts at the top of the primary grid.
func (s *Screen) scrollUp(n int) {
	evicted := s.grid().ScrollUp(s.top, s.bottom, n, s.blank())
	if s.active == primary && s.top == 0 {
		s.archive(evicted)
	}
}

func (s *Screen) archive(lines []Line) {
	for _, l := range lines {
		s.scrollback.PushLine(l)
	}
	s.offsetFollow()
}

func (s *Screen) scrollDown(n int) {
	s.grid().ScrollDown(s.top, s.bottom, n, s.blank())
}

// moveTo places the cursor at an absolute grid position, clamped to the
// grid, or to the scroll region under origin mode.
func (s *Screen) moveTo(row, col int) {
	lo, hi := 0, s.size.Rows-1
	if s.modes.origin {
		lo, hi = s.top, s.bottom
	}
	s.cursor = geom.Pt(geom.Clamp(row, lo, hi), geom.Clamp(col, 0, s.size.Cols-1))
	s.pendingWrap = false
}

// moveToOrigin is moveTo with row relative to the origin-mode home.
func (s *Screen) moveToOrigin(row, col int) {
	if s.modes.origin {
		row += s.top
	}
	s.moveTo(row, col)
}

func (s *Screen) cursorUp(n int) {
	lo := 0
	if s.cursor.Row >= s.top {
		lo = s.top
	}
	s.cursor.Row = max(s.cursor.Row-n, lo)
	s.pendingWrap = false
}

func (s *Screen) cursorDown(n int) {
	hi := s.size.Rows - 1
	if s.cursor.Row <= s.bottom {
		hi = s.bottom
	}
	s.cursor.Row = min(s.cursor.Row+n, hi)
	s.pendingWrap = false
}

func (s *Screen) cursorForward(n int) {
	s.cursor.Col = min(s.cursor.Col+n, s.size.Cols-1)
	s.pendingWrap = false
}

func (s *Screen) cursorBackward(n int) {
	s.cursor.Col = max(s.cursor.Col-n, 0)
	s.pendingWrap = false
}

func (s *Screen) resetTabs() {
	s.tabs = make([]bool, s.size.Cols)
	for i := 8; i < s.size.Cols; i += 8 {
		s.tabs[i] = true
	}
}

func (s *Screen) resizeTabs() {
	old := s.tabs
	s.tabs = make([]bool, s.size.Cols)
	copy(s.tabs, old)
	for i := 8; i < s.size.Cols; i += 8 {
		if i >= len(old) {
			s.tabs[i] = true
		}
	}
}

func (s *Screen) tabForward(n int) {
	for ; n > 0 && s.cursor.Col < s.size.Cols-1; n-- {
		s.cursor.Col++
		for s.cursor.Col < s.size.Cols-1 && !s.tabs[s.cursor.Col] {
			s.cursor.Col++
		}
	}
	s.pendingWrap = false
}

func (s *Screen) tabBackward(n int) {
	for ; n > 0 && s.cursor.Col > 0; n-- {
		s.cursor.Col--
		for s.cursor.Col > 0 && !s.tabs[s.cursor.Col] {
			s.cursor.Col--
		}
	}
	s.pendingWrap = false
}

func (s *Screen) saveCursor() {
	s.saved[s.active] = cursorState{
		valid:       true,
		pos:         s.cursor,
		pen:         s.pen,
		origin:      s.modes.origin,
		pendingWrap: s.pendingWrap,
		charsets:    s.charsets,
		gl:          s.gl,
	}
}

// restoreCursor restores the last save, or homes the cursor with default
// rendition when nothing was saved.
func (s *Screen) restoreCursor() {
	st := s.saved[s.active]
	if !st.valid {
		s.modes.origin = false
		s.resetPen()
		s.moveTo(0, 0)
		return
	}
	s.pen = st.pen
	s.modes.origin = st.origin
	s.charsets = st.charsets
	s.gl = st.gl
	s.cursor = st.pos.Clamp(s.size)
	s.pendingWrap = st.pendingWrap && s.cursor.Col == s.size.Cols-1
}

func (s *Screen) setAltScreen(on, withCursor bool) {
	if on == (s.active == alternate) {
		return
	}
	if on {
		if withCursor {
			s.saveCursor()
		}
		s.active = alternate
		s.grids[alternate].Fill(s.blank())
	} else {
		s.active = primary
		if withCursor {
			s.restoreCursor()
		}
	}
	s.pendingWrap = false
	s.offset = 0
}

func (s *Screen) eraseDisplay(mode int, selective bool) {
	g, blank, c := s.grid(), s.blank(), s.cursor
	switch mode {
	case 0:
		g.Clear(c.Row, c.Col, s.size.Cols, blank, selective)
		for y := c.Row + 1; y < s.size.Rows; y++ {
			g.Clear(y, 0, s.size.Cols, blank, selective)
		}
	case 1:
		for y := 0; y < c.Row; y++ {
			g.Clear(y, 0, s.size.Cols, blank, selective)
		}
		g.Clear(c.Row, 0, c.Col+1, blank, selective)
	case 2:
		for y := 0; y < s.size.Rows; y++ {
			g.Clear(y, 0, s.size.Cols, blank, selective)
		}
	case 3:
		s.scrollback.Clear()
		s.offset = 0
	default:
		s.reportUnhandled(fmt.Sprintf("erase display mode %d", mode))
	}
}

func (s *Screen) eraseLine(mode int, selective bool) {
	g, blank, c := s.grid(), s.blank(), s.cursor
	switch mode {
	case 0:
		g.Clear(c.Row, c.Col, s.size.Cols, blank, selective)
	case 1:
		g.Clear(c.Row, 0, c.Col+1, blank, selective)
	case 2:
		g.Clear(c.Row, 0, s.size.Cols, blank, selective)
	default:
		s.reportUnhandled(fmt.Sprintf("erase line mode %d", mode))
	}
}

func (s *Screen) insertLines(n int) {
	if s.cursor.Row < s.top || s.cursor.Row > s.bottom {
		return
	}
	s.grid().ScrollDown(s.cursor.Row, s.bottom, n, s.blank())
	s.cursor.Col = 0
	s.pendingWrap = false
}

func (s *Screen) deleteLines(n int) {
	if s.cursor.Row < s.top || s.cursor.Row > s.bottom {
		return
	}
	s.grid().ScrollUp(s.cursor.Row, s.bottom, n, s.blank())
	s.cursor.Col = 0
	s.pendingWrap = false
}

func (s *Screen) setScrollRegion(c CsiDispatch) {
	top := c.Count(0, 1)
	bottom := min(c.Count(1, s.size.Rows), s.size.Rows)
	if top >= bottom {
		return
	}
	s.top, s.bottom = top-1, bottom-1
	s.moveToOrigin(0, 0)
}

func (s *Screen) reply(seq string) {
	if s.responder == nil {
		return
	}
	if _, err := io.WriteString(s.responder, seq); err != nil {
		s.logf("failed to write reply %q: %v", seq, err)
	}
}

func (s *Screen) csi(c CsiDispatch) {
	switch {
	case c.Prefix == '?' && len(c.Intermediates) == 0:
		s.csiPrivate(c)
		return
	case c.Prefix != 0 || len(c.Intermediates) > 0:
		s.csiExtended(c)
		return
	}

	switch c.Final {
	case 'A':
		s.cursorUp(c.Count(0, 1))
	case 'B', 'e':
		s.cursorDown(c.Count(0, 1))
	case 'C', 'a':
		s.cursorForward(c.Count(0, 1))
	case 'D':
		s.cursorBackward(c.Count(0, 1))
	case 'E':
		s.cursorDown(c.Count(0, 1))
		s.cursor.Col = 0
	case 'F':
		s.cursorUp(c.Count(0, 1))
		s.cursor.Col = 0
	case 'G', '`':
		s.moveTo(s.cursor.Row, c.Count(0, 1)-1)
	case 'H', 'f':
		s.moveToOrigin(c.Count(0, 1)-1, c.Count(1, 1)-1)
	case 'd':
		s.moveToOrigin(c.Count(0, 1)-1, s.cursor.Col)
	case 'I':
		s.tabForward(c.Count(0, 1))
	case 'Z':
		s.tabBackward(c.Count(0, 1))
	case 'J':
		s.eraseDisplay(c.Param(0, 0), false)
	case 'K':
		s.eraseLine(c.Param(0, 0), false)
	case 'L':
		s.insertLines(c.Count(0, 1))
	case 'M':
		s.deleteLines(c.Count(0, 1))
	case '@':
		s.grid().InsertCells(s.cursor.Row, s.cursor.Col, c.Count(0, 1), s.blank())
		s.pendingWrap = false
	case 'P':
		s.grid().DeleteCells(s.cursor.Row, s.cursor.Col, c.Count(0, 1), s.blank())
		s.pendingWrap = false
	case 'X':
		s.grid().Clear(s.cursor.Row, s.cursor.Col, s.cursor.Col+c.Count(0, 1), s.blank(), false)
		s.pendingWrap = false
	case 'S':
		s.scrollUp(c.Count(0, 1))
	case 'T':
		s.scrollDown(c.Count(0, 1))
	case 'b':
		if s.lastRune != 0 {
			for range c.Count(0, 1) {
				s.print(s.lastRune)
			}
		}
	case 'g':
		switch c.Param(0, 0) {
		case 0:
			s.tabs[s.cursor.Col] = false
		case 3:
			clear(s.tabs)
		}
	case 'h', 'l':
		s.setANSIModes(c, c.Final == 'h')
	case 'm':
		s.sgr(c.Params)
	case 'n':
		switch c.Param(0, 0) {
		case 5:
			s.reply("\x1b[0n")
		case 6:
			row := s.cursor.Row
			if s.modes.origin {
				row -= s.top
			}
			s.reply(fmt.Sprintf("\x1b[%d;%dR", row+1, s.cursor.Col+1))
		default:
			s.reportUnhandled(c.String())
		}
	case 'c':
		if c.Param(0, 0) == 0 {
			s.reply("\x1b[?62;22c")
		}
	case 'r':
		s.setScrollRegion(c)
	case 's':
		s.saveCursor()
	case 'u':
		s.restoreCursor()
	case 't':
		// Window manipulation is owned by the multiplexer.
		s.logf("ignored window op: %s", c)
	default:
		s.reportUnhandled(c.String())
	}
}

func (s *Screen) csiPrivate(c CsiDispatch) {
	switch c.Final {
	case 'h', 'l':
		s.setDECModes(c, c.Final == 'h')
	case 'J':
		s.eraseDisplay(c.Param(0, 0), true)
	case 'K':
		s.eraseLine(c.Param(0, 0), true)
	default:
		s.reportUnhandled(c.String())
	}
}

func (s *Screen) csiExtended(c CsiDispatch) {
	var inter byte
	if len(c.Intermediates) > 0 {
		inter = c.Intermediates[0]
	}
	switch {
	case c.Prefix == '>' && c.Final == 'c':
		s.reply("\x1b[>0;10;1c")
	case inter == '"' && c.Final == 'q':
		// DECSCA
		if c.Param(0, 0) == 1 {
			s.pen.Attrs |= AttrProtected
		} else {
			s.pen.Attrs &^= AttrProtected
		}
	case inter == ' ' && c.Final == 'q':
		s.cursorStyle = c.Param(0, 0)
	case inter == '!' && c.Final == 'p':
		s.softReset()
	default:
		s.reportUnhandled(c.String())
	}
}

func (s *Screen) setANSIModes(c CsiDispatch, on bool) {
	for i := range c.Params {
		switch m := param(c.Params, i, 0); m {
		case 4:
			s.modes.insert = on
		case 20:
			s.modes.newline = on
		default:
			s.reportUnhandled(fmt.Sprintf("ANSI mode %d", m))
		}
	}
}

func (s *Screen) setDECModes(c CsiDispatch, on bool) {
	for i := range c.Params {
		switch m := param(c.Params, i, 0); m {
		case 1:
			s.modes.appCursor = on
		case 6:
			s.modes.origin = on
			s.moveToOrigin(0, 0)
		case 7:
			s.modes.autoWrap = on
			if !on {
				s.pendingWrap = false
			}
		case 12:
			// Cursor blink is left to the host terminal.
		case 25:
			s.modes.cursorVisible = on
		case 47, 1047:
			s.setAltScreen(on, false)
		case 1048:
			if on {
				s.saveCursor()
			} else {
				s.restoreCursor()
			}
		case 1049:
			s.setAltScreen(on, true)
		case 2004:
			s.modes.bracketPaste = on
		default:
			s.reportUnhandled(fmt.Sprintf("DEC private mode %d", m))
		}
	}
}

func (s *Screen) softReset() {
	s.modes.origin = false
	s.modes.insert = false
	s.modes.autoWrap = s.defaultAutoWrap
	s.modes.cursorVisible = true
	s.modes.appCursor = false
	s.modes.appKeypad = false
	s.top, s.bottom = 0, s.size.Rows-1
	s.pen = blankCell
	s.charsets = [2]bool{}
	s.gl = 0
	s.saved[s.active] = cursorState{}
	s.pendingWrap = false
}

func (s *Screen) esc(e EscDispatch) {
	if len(e.Intermediates) == 0 {
		switch e.Final {
		case '7':
			s.saveCursor()
		case '8':
			s.restoreCursor()
		case 'D':
			s.index()
		case 'E':
			s.nextLine()
		case 'M':
			s.reverseIndex()
		case 'H':
			s.tabs[s.cursor.Col] = true
		case 'c':
			s.reset()
		case '=':
			s.modes.appKeypad = true
		case '>':
			s.modes.appKeypad = false
		case '\\':
			// String terminator left over from OSC, DCS or APC.
		default:
			s.reportUnhandled(e.String())
		}
		return
	}

	switch e.Intermediates[0] {
	case '#':
		if e.Final != '8' {
			s.reportUnhandled(e.String())
			return
		}
		// DECALN
		s.top, s.bottom = 0, s.size.Rows-1
		fill := Cell{Rune: 'E', Width: 1}
		g := s.grid()
		for y := range s.size.Rows {
			for x := range s.size.Cols {
				g.Put(geom.Pt(y, x), fill, blankCell)
			}
		}
		s.moveTo(0, 0)
	case '(':
		s.charsets[0] = e.Final == '0'
	case ')':
		s.charsets[1] = e.Final == '0'
	case '*', '+':
		// G2 and G3 are never invoked into GL.
	default:
		s.reportUnhandled(e.String())
	}
}

func (s *Screen) osc(o OscDispatch) {
	if len(o.Params) == 0 {
		s.reportUnhandled(o.String())
		return
	}
	code, err := strconv.Atoi(string(o.Params[0]))
	if err != nil {
		s.reportUnhandled(o.String())
		return
	}
	text := string(bytes.Join(o.Params[1:], []byte{';'}))
	switch code {
	case 0:
		s.title, s.iconName = text, text
	case 1:
		s.iconName = text
	case 2:
		s.title = text
	case 7:
		s.cwd = parseWorkingDir(text)
	default:
		s.reportUnhandled(o.String())
	}
}

// parseWorkingDir accepts either a file:// URL or a bare path.
func parseWorkingDir(text string) string {
	u, err := url.Parse(text)
	if err != nil || u.Scheme != "file" {
		return text
	}
	return u.Path
}
