// Package display coordinates the panel arena and the subdivision tree. It is
// the single writer for structural changes; the compositor reads it through
// View.
package display

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Gaurav-Gosain/tuimux/internal/geom"
	"github.com/Gaurav-Gosain/tuimux/internal/layout"
	"github.com/Gaurav-Gosain/tuimux/internal/panel"
	"github.com/Gaurav-Gosain/tuimux/internal/vt"
)

var (
	// ErrNoSelection is returned by operations on the selected panel when
	// none is selected.
	ErrNoSelection = errors.New("no panel selected")
	// ErrUnknownPanel is returned for an id not in the arena.
	ErrUnknownPanel = errors.New("unknown panel")
	// ErrNoSlot is returned by NewPanel when every leaf is occupied.
	ErrNoSlot = errors.New("no free slot, split a panel first")
	// ErrLeafMismatch is returned when a panel is resized to a size other
	// than its leaf's.
	ErrLeafMismatch = errors.New("size does not match the panel's leaf")
)

// StatusRows is the number of rows kept at the bottom for messages and the
// command line.
const StatusRows = 1

// Display owns every panel and the tree that places them.
type Display struct {
	mu sync.Mutex

	size   geom.Size
	header bool
	tree   *layout.Tree
	panels map[int]*panel.Panel
	nextID int

	selected    int
	hasSelected bool

	errMsg    string
	status    string
	prompt    string
	promptOn  bool
	style     layout.Style
	screenOps []vt.Option
	logger    vt.Logger
}

// Option configures a Display.
type Option func(*Display)

// WithHeader reserves the top row for the panel list.
func WithHeader(on bool) Option {
	return func(d *Display) { d.header = on }
}

// WithStyle sets the separator style.
func WithStyle(s layout.Style) Option {
	return func(d *Display) { d.style = s }
}

// WithScreenOptions passes options to every panel's screen.
func WithScreenOptions(opts ...vt.Option) Option {
	return func(d *Display) { d.screenOps = append(d.screenOps, opts...) }
}

// WithLogger sets where layout problems are reported.
func WithLogger(l vt.Logger) Option {
	return func(d *Display) { d.logger = l }
}

// New returns an empty display for a terminal of the given size.
func New(size geom.Size, opts ...Option) *Display {
	d := &Display{
		size:   size,
		panels: make(map[int]*panel.Panel),
		nextID: 1,
		style:  layout.DefaultStyle(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.tree = layout.New(d.area())
	return d
}

// area is the part of the terminal given to the tree.
func (d *Display) area() geom.Rect {
	top := 0
	if d.header {
		top = 1
	}
	rows := max(d.size.Rows-top-StatusRows, 0)
	return geom.R(top, 0, rows, max(d.size.Cols, 0))
}

func (d *Display) logf(format string, v ...any) {
	if d.logger != nil {
		d.logger.Printf(format, v...)
	}
}

// NextID returns an unused panel id.
func (d *Display) NextID() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	for {
		id := d.nextID
		d.nextID++
		if _, ok := d.panels[id]; !ok {
			return id
		}
	}
}

// OpenPanel returns the next empty slot, or false when the tree is full.
func (d *Display) OpenPanel() (layout.Slot, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tree.FindNextEmptySlot()
}

// InsertPanel creates panel id in the empty leaf at path and selects it.
func (d *Display) InsertPanel(id int, path layout.Path) (*panel.Panel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.insertLocked(id, path)
}

func (d *Display) insertLocked(id int, path layout.Path) (*panel.Panel, error) {
	if _, ok := d.panels[id]; ok {
		return nil, d.fail(fmt.Errorf("insert panel %d: %w", id, layout.ErrDuplicatePanel))
	}
	if err := d.tree.InsertPanelAtPath(id, path); err != nil {
		return nil, d.fail(err)
	}
	rect, _ := d.tree.Geometry(id)
	p, err := panel.New(id, rect, d.screenOps...)
	if err != nil {
		d.tree.ClosePanelWithID(id)
		return nil, d.fail(err)
	}
	d.panels[id] = p
	d.selectLocked(id)
	return p, nil
}

// selectLocked moves the selection to id. Bells rung in the panels on either
// side of the move count as seen.
func (d *Display) selectLocked(id int) {
	if p, ok := d.panels[d.selected]; ok && d.hasSelected {
		p.ClearBells()
	}
	d.selected, d.hasSelected = id, true
	if p, ok := d.panels[id]; ok {
		p.ClearBells()
	}
}

// NewPanel creates panel id in the next empty slot.
func (d *Display) NewPanel(id int) (*panel.Panel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	slot, ok := d.tree.FindNextEmptySlot()
	if !ok {
		return nil, d.fail(ErrNoSlot)
	}
	return d.insertLocked(id, slot.Path)
}

// ClosePanel removes panel id, closes its backend and gives its space to its
// sibling. Selection moves to the first remaining panel.
func (d *Display) ClosePanel(id int) error {
	d.mu.Lock()
	p, ok := d.panels[id]
	if !ok || !d.tree.ClosePanelWithID(id) {
		err := d.fail(fmt.Errorf("close panel %d: %w", id, ErrUnknownPanel))
		d.mu.Unlock()
		return err
	}
	delete(d.panels, id)
	if d.hasSelected && d.selected == id {
		d.hasSelected = false
		if ids := d.tree.PanelIDs(); len(ids) > 0 {
			d.selectLocked(ids[0])
		}
	}
	d.relayoutLocked()
	d.mu.Unlock()

	return p.Close()
}

// SplitSelected splits the selected panel's leaf along axis. The panel keeps
// the first half; the second is left empty for OpenPanel.
func (d *Display) SplitSelected(axis layout.Axis) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.hasSelected {
		return d.fail(ErrNoSelection)
	}
	id := d.selected
	if _, err := d.tree.Split(&id, axis); err != nil {
		return d.fail(err)
	}
	d.relayoutLocked()
	return nil
}

// SplitRoot splits an empty display along axis.
func (d *Display) SplitRoot(axis layout.Axis) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.tree.Split(nil, axis); err != nil {
		return d.fail(err)
	}
	return nil
}

// FocusDirection moves the selection to the neighbouring panel in dir and
// reports whether it moved.
func (d *Display) FocusDirection(dir layout.Direction) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.hasSelected {
		return false
	}
	next, ok := d.tree.FocusNextID(d.selected, dir)
	if ok {
		d.selectLocked(next)
	}
	return ok
}

// SetSelected selects panel id.
func (d *Display) SetSelected(id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.panels[id]; !ok {
		return d.fail(fmt.Errorf("select panel %d: %w", id, ErrUnknownPanel))
	}
	d.selectLocked(id)
	return nil
}

// Selected returns the selected panel.
func (d *Display) Selected() (*panel.Panel, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.hasSelected {
		return nil, false
	}
	p, ok := d.panels[d.selected]
	return p, ok
}

// Panel returns panel id.
func (d *Display) Panel(id int) (*panel.Panel, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.panels[id]
	return p, ok
}

// Panels returns every panel in layout order.
func (d *Display) Panels() []*panel.Panel {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.orderedLocked()
}

func (d *Display) orderedLocked() []*panel.Panel {
	ids := d.tree.PanelIDs()
	out := make([]*panel.Panel, 0, len(ids))
	for _, id := range ids {
		if p, ok := d.panels[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// ResizePanel resizes panel id's screen and backend. Panel geometry follows
// the layout, so size must be the size of the panel's leaf.
func (d *Display) ResizePanel(id int, size geom.Size) error {
	d.mu.Lock()
	p, ok := d.panels[id]
	leaf, _ := d.tree.Geometry(id)
	d.mu.Unlock()
	if !ok {
		return d.Fail(fmt.Errorf("resize panel %d: %w", id, ErrUnknownPanel))
	}
	if size != leaf.Size {
		return d.Fail(fmt.Errorf("resize panel %d to %v: %w", id, size, ErrLeafMismatch))
	}
	if err := p.Resize(size); err != nil {
		return d.Fail(err)
	}
	return nil
}

// Feed applies output bytes to panel id. Only that panel's lock is held while
// the bytes are decoded.
func (d *Display) Feed(id int, data []byte) error {
	p, ok := d.Panel(id)
	if !ok {
		return fmt.Errorf("feed panel %d: %w", id, ErrUnknownPanel)
	}
	p.Feed(data)
	return nil
}

// GetContent returns panel id's displayed rows.
func (d *Display) GetContent(id int) ([][]byte, error) {
	p, ok := d.Panel(id)
	if !ok {
		return nil, fmt.Errorf("get content of panel %d: %w", id, ErrUnknownPanel)
	}
	return p.Content(), nil
}

// Resize adapts the layout to a new terminal size and resizes every panel.
func (d *Display) Resize(size geom.Size) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.size = size
	d.tree.Resize(d.area())
	d.relayoutLocked()
}

// Size returns the terminal size.
func (d *Display) Size() geom.Size {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.size
}

// relayoutLocked moves every panel to its leaf.
func (d *Display) relayoutLocked() {
	for _, leaf := range d.tree.Leaves() {
		if !leaf.Occupied {
			continue
		}
		p, ok := d.panels[leaf.PanelID]
		if !ok {
			continue
		}
		if err := p.SetRect(leaf.Rect); err != nil {
			d.logf("layout: panel %d to %v: %v", leaf.PanelID, leaf.Rect, err)
		}
	}
}

// SetErrorMessage shows msg in the status row until cleared.
func (d *Display) SetErrorMessage(msg string) {
	d.mu.Lock()
	d.errMsg = msg
	d.mu.Unlock()
}

// ClearError removes the error message.
func (d *Display) ClearError() {
	d.mu.Lock()
	d.errMsg = ""
	d.mu.Unlock()
}

// ErrorMessage returns the current error message.
func (d *Display) ErrorMessage() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errMsg
}

// Fail records err as the error message and returns it.
func (d *Display) Fail(err error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fail(err)
}

func (d *Display) fail(err error) error {
	d.errMsg = err.Error()
	d.logf("display: %v", err)
	return err
}

// SetStatus sets the informational text shown when there is no error.
func (d *Display) SetStatus(s string) {
	d.mu.Lock()
	d.status = s
	d.mu.Unlock()
}

// SetPrompt shows the command line in the status row. The cursor moves to
// its end while it is shown.
func (d *Display) SetPrompt(text string, on bool) {
	d.mu.Lock()
	d.prompt, d.promptOn = text, on
	d.mu.Unlock()
}

// Frame is a consistent view of the display for one render pass. Tree is
// only valid inside the View callback.
type Frame struct {
	Size         geom.Size
	Header       bool
	Area         geom.Rect
	Tree         *layout.Tree
	Panels       []*panel.Panel
	Selected     int
	HasSelection bool
	Error        string
	Status       string
	Prompt       string
	PromptActive bool
	Style        layout.Style
}

// Panel returns the frame's panel with id.
func (f Frame) Panel(id int) *panel.Panel {
	for _, p := range f.Panels {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// View calls fn with the display locked against structural changes.
func (d *Display) View(fn func(Frame)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(Frame{
		Size:         d.size,
		Header:       d.header,
		Area:         d.tree.Area(),
		Tree:         d.tree,
		Panels:       d.orderedLocked(),
		Selected:     d.selected,
		HasSelection: d.hasSelected,
		Error:        d.errMsg,
		Status:       d.status,
		Prompt:       d.prompt,
		PromptActive: d.promptOn,
		Style:        d.style,
	})
}
