package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	shlex "github.com/anmitsu/go-shlex"

	"github.com/Gaurav-Gosain/tuimux/internal/app"
	"github.com/Gaurav-Gosain/tuimux/internal/config"
	"github.com/Gaurav-Gosain/tuimux/internal/layout"
)

// ErrUnknownCommand is returned for a command name with no handler.
var ErrUnknownCommand = errors.New("unknown command")

// ActionHandler is a function that handles a specific action
type ActionHandler func(args []string, m *app.Mux) (tea.Cmd, error)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

// registerHandlers registers all action handlers
func (d *ActionDispatcher) registerHandlers() {
	d.Register("split", handleSplit)
	d.Register("new", handleNew)
	d.Register("close", handleClose)
	d.Register("focus", handleFocus)
	d.Register("select", handleSelect)
	d.Register("scrollback", handleScrollback)
	d.Register("log", handleLog)
	d.Register("keys", handleKeys)
	d.Register("quit", handleQuit)

	// Aliases
	d.Register("help", handleKeys)
	d.Register("q", handleQuit)
}

// Register adds a handler for name.
func (d *ActionDispatcher) Register(name string, handler ActionHandler) {
	d.handlers[name] = handler
}

// Execute runs the named action.
func (d *ActionDispatcher) Execute(name string, args []string, m *app.Mux) (tea.Cmd, error) {
	handler, ok := d.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return handler(args, m)
}

// Run parses a command line and executes it. Errors are shown in the
// status row.
func (d *ActionDispatcher) Run(line string, m *app.Mux) tea.Cmd {
	words, err := shlex.Split(line, true)
	if err != nil {
		_ = m.Display.Fail(fmt.Errorf("parse command: %w", err))
		return nil
	}
	if len(words) == 0 {
		return nil
	}
	m.Logger.Debug("command", "line", line)
	cmd, err := d.Execute(strings.ToLower(words[0]), words[1:], m)
	if err != nil {
		_ = m.Display.Fail(err)
	}
	return cmd
}

// dispatcher is shared by the prefix keys and the command line.
var dispatcher = NewActionDispatcher()

func wantArgs(name string, args []string, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		if lo == hi {
			return fmt.Errorf("%s: want %d argument(s), got %d", name, lo, len(args))
		}
		return fmt.Errorf("%s: want %d to %d arguments, got %d", name, lo, hi, len(args))
	}
	return nil
}

func handleSplit(args []string, m *app.Mux) (tea.Cmd, error) {
	if err := wantArgs("split", args, 1, 1); err != nil {
		return nil, err
	}
	axis, err := layout.ParseAxis(args[0])
	if err != nil {
		return nil, err
	}
	// Display already shows the failure.
	_ = m.Split(axis)
	return nil, nil
}

func handleNew(args []string, m *app.Mux) (tea.Cmd, error) {
	if err := wantArgs("new", args, 0, 0); err != nil {
		return nil, err
	}
	_ = m.OpenPanel()
	return nil, nil
}

func handleClose(args []string, m *app.Mux) (tea.Cmd, error) {
	if err := wantArgs("close", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return m.CloseSelected(), nil
	}
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	if _, ok := m.Display.Panel(id); !ok {
		return nil, fmt.Errorf("close: no panel %d", id)
	}
	return m.ClosePanel(id), nil
}

func handleFocus(args []string, m *app.Mux) (tea.Cmd, error) {
	if err := wantArgs("focus", args, 1, 1); err != nil {
		return nil, err
	}
	dir, err := layout.ParseDirection(args[0])
	if err != nil {
		return nil, err
	}
	m.Display.FocusDirection(dir)
	return nil, nil
}

func handleSelect(args []string, m *app.Mux) (tea.Cmd, error) {
	if err := wantArgs("select", args, 1, 1); err != nil {
		return nil, err
	}
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	return nil, m.Display.SetSelected(id)
}

func handleScrollback(args []string, m *app.Mux) (tea.Cmd, error) {
	if err := wantArgs("scrollback", args, 0, 0); err != nil {
		return nil, err
	}
	m.EnterScrollback()
	return nil, nil
}

func handleLog(args []string, m *app.Mux) (tea.Cmd, error) {
	if err := wantArgs("log", args, 0, 0); err != nil {
		return nil, err
	}
	lines := m.Logger.Recent(1)
	if len(lines) == 0 {
		m.Display.SetStatus("log is empty")
		return nil, nil
	}
	m.Display.SetStatus(lines[0])
	return nil, nil
}

func handleKeys(_ []string, m *app.Mux) (tea.Cmd, error) {
	m.Display.SetStatus(config.PrefixSummary())
	return nil, nil
}

func handleQuit(_ []string, m *app.Mux) (tea.Cmd, error) {
	return m.Quit(), nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid panel id %q", s)
	}
	return id, nil
}
