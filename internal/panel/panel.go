// Package panel holds the per-process display state: a screen buffer, its
// place on the display, and the backend process it mirrors.
package panel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"

	"github.com/Gaurav-Gosain/tuimux/internal/geom"
	"github.com/Gaurav-Gosain/tuimux/internal/vt"
	"github.com/google/uuid"
)

// EnvPaneID is the environment variable carrying a panel's handle to its
// child process.
const EnvPaneID = "TUIMUX_PANE_ID"

// ErrNoBackend is returned when writing to a panel with no process attached.
var ErrNoBackend = errors.New("panel has no backend")

// Backend is the process behind a panel, usually a PTY.
type Backend interface {
	io.ReadWriteCloser
	Resize(size geom.Size) error
}

// namer is implemented by backends that can report the foreground process.
type namer interface {
	ForegroundName() string
}

// Panel mirrors one child process. All methods are safe for concurrent use.
type Panel struct {
	ID     int
	Handle uuid.UUID

	mu           sync.Mutex
	rect         geom.Rect
	screen       *vt.Screen
	scrollOffset int
	exited       bool
	bellsSeen    int
	// replies holds terminal responses produced while feeding, sent to the
	// backend once mu is released.
	replies []byte

	ioMu    sync.Mutex
	backend Backend
}

// New creates a panel whose screen fills rect. Screen options such as the
// scrollback size or a diagnostics logger are passed through.
func New(id int, rect geom.Rect, opts ...vt.Option) (*Panel, error) {
	p := &Panel{
		ID:     id,
		Handle: uuid.New(),
		rect:   rect,
	}
	opts = append(opts, vt.WithResponder(responder{p}))
	screen, err := vt.NewScreen(rect.Size, opts...)
	if err != nil {
		return nil, fmt.Errorf("panel %d: %w", id, err)
	}
	p.screen = screen
	return p, nil
}

// responder queues terminal replies. It runs inside Screen.Write, so p.mu is
// already held.
type responder struct{ p *Panel }

func (r responder) Write(b []byte) (int, error) {
	r.p.replies = append(r.p.replies, b...)
	return len(b), nil
}

// Env returns the environment entries identifying this panel to its child.
func (p *Panel) Env() []string {
	return []string{
		EnvPaneID + "=" + p.Handle.String(),
		"TUIMUX_PANE=" + strconv.Itoa(p.ID),
	}
}

// Attach connects the process whose output this panel shows. The backend is
// resized to the panel.
func (p *Panel) Attach(b Backend) error {
	p.ioMu.Lock()
	p.backend = b
	p.ioMu.Unlock()
	return b.Resize(p.Size())
}

// Backend returns the attached backend, or nil.
func (p *Panel) Backend() Backend {
	p.ioMu.Lock()
	defer p.ioMu.Unlock()
	return p.backend
}

// Feed applies output from the child to the screen. Replies the screen
// generates (cursor reports, device attributes) are written to the backend
// after the screen is unlocked, so a child that is not reading its input
// cannot block readers of the screen.
func (p *Panel) Feed(data []byte) {
	p.mu.Lock()
	_, _ = p.screen.Write(data)
	p.scrollOffset = p.screen.ScrollbackOffset()
	replies := p.replies
	p.replies = nil
	p.mu.Unlock()

	if len(replies) > 0 {
		_, _ = p.writeBackend(replies)
	}
}

// Write sends input to the child. Typing returns the view to live output.
func (p *Panel) Write(data []byte) (int, error) {
	p.ScrollReset()
	return p.writeBackend(data)
}

func (p *Panel) writeBackend(data []byte) (int, error) {
	p.ioMu.Lock()
	defer p.ioMu.Unlock()
	if p.backend == nil {
		return 0, ErrNoBackend
	}
	n, err := p.backend.Write(data)
	if err != nil {
		return n, fmt.Errorf("write to panel %d: %w", p.ID, err)
	}
	return n, nil
}

// Rect returns the panel's absolute position on the display.
func (p *Panel) Rect() geom.Rect {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rect
}

// Size returns the screen size. It equals the rect's size unless the rect is
// empty, in which case the screen keeps its last usable size.
func (p *Panel) Size() geom.Size {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.screen.Size()
}

// SetRect moves the panel to r and resizes its screen and backend when the
// size changes. An empty r hides the panel: the rect follows it but the
// screen and backend keep their size until r has room again.
func (p *Panel) SetRect(r geom.Rect) error {
	if !r.Empty() {
		if err := p.Resize(r.Size); err != nil {
			return err
		}
	}
	p.mu.Lock()
	p.rect = r
	p.mu.Unlock()
	return nil
}

// Resize changes the screen size. An empty size is rejected and the panel
// keeps its previous size.
func (p *Panel) Resize(size geom.Size) error {
	p.mu.Lock()
	if size == p.screen.Size() {
		p.rect.Size = size
		p.mu.Unlock()
		return nil
	}
	if err := p.screen.Resize(size); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("panel %d: %w", p.ID, err)
	}
	p.rect.Size = size
	p.scrollOffset = p.screen.ScrollbackOffset()
	p.mu.Unlock()

	if b := p.Backend(); b != nil {
		if err := b.Resize(size); err != nil {
			return fmt.Errorf("resize panel %d backend: %w", p.ID, err)
		}
	}
	return nil
}

// ScrollUp moves the view n rows further into history.
func (p *Panel) ScrollUp(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scrollOffset = p.screen.SetScrollback(p.scrollOffset + n)
	return p.scrollOffset
}

// ScrollDown moves the view n rows towards live output.
func (p *Panel) ScrollDown(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scrollOffset = p.screen.SetScrollback(p.scrollOffset - n)
	return p.scrollOffset
}

// ScrollReset returns the view to live output.
func (p *Panel) ScrollReset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scrollOffset = p.screen.SetScrollback(0)
}

// ScrollOffset returns how many history rows are in view.
func (p *Panel) ScrollOffset() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scrollOffset
}

// History returns the number of rows in scrollback.
func (p *Panel) History() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.screen.ScrollbackLen()
}

// Content returns the displayed rows with their styling.
func (p *Panel) Content() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	lines := p.screen.RenderLines()
	out := make([][]byte, len(lines))
	for i, l := range lines {
		out[i] = []byte(l)
	}
	return out
}

// Text returns the displayed rows as plain text.
func (p *Panel) Text() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.screen.Lines()
}

// Cursor returns the panel-local cursor and whether it should be shown. The
// cursor is hidden while the view is scrolled back.
func (p *Panel) Cursor() (geom.Point, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.screen.Cursor(), p.screen.CursorVisible() && p.scrollOffset == 0
}

// Title returns the title set by the child, else its icon name, else the
// foreground process name, else the last directory it reported, else a
// generic name.
func (p *Panel) Title() string {
	p.mu.Lock()
	title, icon, cwd := p.screen.Title(), p.screen.IconName(), p.screen.WorkingDir()
	p.mu.Unlock()
	switch {
	case title != "":
		return title
	case icon != "":
		return icon
	}
	if n, ok := p.Backend().(namer); ok {
		if name := n.ForegroundName(); name != "" {
			return name
		}
	}
	if cwd != "" {
		return filepath.Base(cwd)
	}
	return "panel " + strconv.Itoa(p.ID)
}

// Bells returns how many bells rang since the last ClearBells.
func (p *Panel) Bells() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.screen.Bells() - p.bellsSeen
}

// ClearBells marks every bell so far as seen.
func (p *Panel) ClearBells() {
	p.mu.Lock()
	p.bellsSeen = p.screen.Bells()
	p.mu.Unlock()
}

// AppCursorKeys reports whether the child asked for application cursor keys.
func (p *Panel) AppCursorKeys() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.screen.AppCursorKeys()
}

// CursorStyle returns the child's last DECSCUSR request.
func (p *Panel) CursorStyle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.screen.CursorStyle()
}

// BracketedPaste reports whether the child enabled bracketed paste.
func (p *Panel) BracketedPaste() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.screen.BracketedPaste()
}

// MarkExited records that the child process has gone away.
func (p *Panel) MarkExited() {
	p.mu.Lock()
	p.exited = true
	p.mu.Unlock()
}

// Exited reports whether the child process has gone away.
func (p *Panel) Exited() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exited
}

// Close closes the backend, if any.
func (p *Panel) Close() error {
	p.ioMu.Lock()
	b := p.backend
	p.backend = nil
	p.ioMu.Unlock()
	if b == nil {
		return nil
	}
	return b.Close()
}

// Pump copies the backend's output into the screen until the backend closes
// or ctx is done, calling notify after each chunk. It marks the panel exited
// on return and reports any read error other than EOF.
func (p *Panel) Pump(ctx context.Context, notify func()) error {
	b := p.Backend()
	if b == nil {
		return ErrNoBackend
	}
	defer p.MarkExited()

	buf := make([]byte, 32*1024)
	for {
		if ctx.Err() != nil {
			return nil
		}
		n, err := b.Read(buf)
		if n > 0 {
			p.Feed(buf[:n])
			if notify != nil {
				notify()
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) || errors.Is(err, syscall.EIO) {
				return nil
			}
			return fmt.Errorf("read panel %d: %w", p.ID, err)
		}
	}
}
