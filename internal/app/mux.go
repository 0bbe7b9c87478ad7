// Package app implements the tuimux Bubble Tea model: the display, the
// panels' processes and the input modes that drive them.
package app

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/tuimux/internal/config"
	"github.com/Gaurav-Gosain/tuimux/internal/display"
	"github.com/Gaurav-Gosain/tuimux/internal/geom"
	"github.com/Gaurav-Gosain/tuimux/internal/layout"
	"github.com/Gaurav-Gosain/tuimux/internal/logging"
	"github.com/Gaurav-Gosain/tuimux/internal/panel"
	"github.com/Gaurav-Gosain/tuimux/internal/render"
	"github.com/Gaurav-Gosain/tuimux/internal/terminal"
	"github.com/Gaurav-Gosain/tuimux/internal/vt"
)

// Mode represents the current input mode.
type Mode int

const (
	// TerminalMode forwards keys to the selected panel.
	TerminalMode Mode = iota
	// PrefixMode waits for the key following the leader key.
	PrefixMode
	// ScrollbackMode moves the selected panel's view through its history.
	ScrollbackMode
	// CommandMode edits the command line in the status row.
	CommandMode
)

func (m Mode) String() string {
	switch m {
	case PrefixMode:
		return "prefix"
	case ScrollbackMode:
		return "scrollback"
	case CommandMode:
		return "command"
	default:
		return "terminal"
	}
}

// SpawnFunc starts the process behind a new panel. The panel's size and
// environment are already set.
type SpawnFunc func(p *panel.Panel) (panel.Backend, error)

// Options configure a Mux.
type Options struct {
	Shell           string
	Header          bool
	ScrollbackLines int
	AutoWrap        bool
	Border          lipgloss.Border
	BorderColor     string
	Logger          *logging.Logger
	// Spawn replaces the default shell launcher, mainly for tests.
	Spawn SpawnFunc
}

// OptionsFromConfig builds options from the resolved config settings.
func OptionsFromConfig(logger *logging.Logger) Options {
	return Options{
		Shell:           config.PreferredShell,
		Header:          config.ShowHeader,
		ScrollbackLines: config.ScrollbackLines,
		AutoWrap:        config.AutoWrap,
		Border:          config.GetBorderForStyle(),
		BorderColor:     config.BorderColor,
		Logger:          logger,
	}
}

// Mux is the main application model.
type Mux struct {
	Display *display.Display
	Logger  *logging.Logger

	// Mode is the current input mode.
	Mode Mode
	// CommandLine holds the text typed in CommandMode.
	CommandLine string
	// PrefixActivatedAt is when the leader key was pressed.
	PrefixActivatedAt time.Time

	opts       Options
	compositor *render.Compositor
	spawn      SpawnFunc

	ctx    context.Context
	cancel context.CancelFunc

	exitChan     chan int
	hasNewOutput atomic.Bool
	started      bool
	quitting     bool

	// Frame skipping: View reuses the last content while nothing changed.
	renderSkipped     bool
	cachedViewContent string
	cachedCursor      *tea.Cursor
}

// New returns a Mux with no panels. The first panel is opened when the
// terminal size is known.
func New(opts Options) *Mux {
	if opts.Logger == nil {
		opts.Logger, _ = logging.New(nil, "error")
	}
	if opts.Border == (lipgloss.Border{}) {
		opts.Border = config.GetBorderForStyle()
	}
	ctx, cancel := context.WithCancel(context.Background())

	screenOpts := []vt.Option{
		vt.WithAutoWrap(opts.AutoWrap),
		vt.WithLogger(opts.Logger),
	}
	if opts.ScrollbackLines > 0 {
		screenOpts = append(screenOpts, vt.WithScrollback(opts.ScrollbackLines))
	}

	m := &Mux{
		Logger:     opts.Logger,
		opts:       opts,
		compositor: render.New(Styles()),
		spawn:      opts.Spawn,
		ctx:        ctx,
		cancel:     cancel,
		exitChan:   make(chan int, 16),
	}
	m.Display = display.New(geom.Size{},
		display.WithHeader(opts.Header),
		display.WithStyle(SeparatorStyle(opts.Border, opts.BorderColor)),
		display.WithScreenOptions(screenOpts...),
		display.WithLogger(opts.Logger),
	)
	if m.spawn == nil {
		m.spawn = m.startShell
	}
	return m
}

// startShell is the default SpawnFunc.
func (m *Mux) startShell(p *panel.Panel) (panel.Backend, error) {
	return terminal.Start(terminal.Options{
		Shell:  m.opts.Shell,
		Env:    p.Env(),
		Size:   p.Size(),
		Logger: m.Logger.Logger,
	})
}

// MarkOutput flags that a panel produced output and a redraw is due.
func (m *Mux) MarkOutput() {
	m.hasNewOutput.Store(true)
}

// OpenPanel creates a panel in the next empty slot and starts its process.
func (m *Mux) OpenPanel() error {
	p, err := m.Display.NewPanel(m.Display.NextID())
	if err != nil {
		return err
	}
	return m.start(p)
}

func (m *Mux) start(p *panel.Panel) error {
	b, err := m.spawn(p)
	if err != nil {
		// Undo the insertion so the layout is as it was.
		_ = m.Display.ClosePanel(p.ID)
		return m.Display.Fail(err)
	}
	if err := p.Attach(b); err != nil {
		_ = b.Close()
		_ = m.Display.ClosePanel(p.ID)
		return m.Display.Fail(err)
	}
	m.started = true
	m.Logger.Info("panel opened", "id", p.ID, "size", p.Size())

	go func() {
		if err := p.Pump(m.ctx, m.MarkOutput); err != nil {
			m.Logger.Warn("panel output stopped", "id", p.ID, "err", err)
		}
		m.MarkOutput()
		select {
		case m.exitChan <- p.ID:
		case <-m.ctx.Done():
		}
	}()
	return nil
}

// Split divides the selected panel along axis and opens a new panel in the
// freed half. With nothing selected it splits the empty root instead.
func (m *Mux) Split(axis layout.Axis) error {
	split := m.Display.SplitSelected
	if _, ok := m.Display.Selected(); !ok {
		split = m.Display.SplitRoot
	}
	if err := split(axis); err != nil {
		return err
	}
	return m.OpenPanel()
}

// ClosePanel closes panel id. It returns tea.Quit once no panels remain.
func (m *Mux) ClosePanel(id int) tea.Cmd {
	if err := m.Display.ClosePanel(id); err != nil && !errors.Is(err, display.ErrUnknownPanel) {
		m.Logger.Warn("close panel", "id", id, "err", err)
	}
	m.Logger.Info("panel closed", "id", id)
	if len(m.Display.Panels()) == 0 {
		return m.Quit()
	}
	return nil
}

// CloseSelected closes the selected panel.
func (m *Mux) CloseSelected() tea.Cmd {
	p, ok := m.Display.Selected()
	if !ok {
		_ = m.Display.Fail(display.ErrNoSelection)
		return nil
	}
	return m.ClosePanel(p.ID)
}

// SendToSelected writes data to the selected panel's process.
func (m *Mux) SendToSelected(data []byte) {
	p, ok := m.Display.Selected()
	if !ok || len(data) == 0 {
		return
	}
	if _, err := p.Write(data); err != nil {
		m.Logger.Debug("write to panel", "id", p.ID, "err", err)
	}
}

// Paste sends text to the selected panel, bracketed when the program asked
// for it.
func (m *Mux) Paste(text string) {
	p, ok := m.Display.Selected()
	if !ok {
		return
	}
	if p.BracketedPaste() {
		text = "\x1b[200~" + text + "\x1b[201~"
	}
	m.SendToSelected([]byte(text))
}

// Quit stops every panel and ends the program.
func (m *Mux) Quit() tea.Cmd {
	if !m.quitting {
		m.quitting = true
		m.cancel()
		for _, p := range m.Display.Panels() {
			if err := p.Close(); err != nil {
				m.Logger.Debug("close panel on quit", "id", p.ID, "err", err)
			}
		}
		m.Logger.Info("quitting")
	}
	return tea.Quit
}

// Quitting reports whether Quit has been called.
func (m *Mux) Quitting() bool {
	return m.quitting
}
