// Package terminal runs child programs on pseudo-terminals.
package terminal

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/log"
	xpty "github.com/charmbracelet/x/xpty"

	"github.com/Gaurav-Gosain/tuimux/internal/geom"
)

// ErrClosed is returned by operations on a closed process.
var ErrClosed = errors.New("terminal: process closed")

// Options describe the child to start.
type Options struct {
	// Shell overrides shell detection.
	Shell string
	// Args are passed to the shell.
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env is appended to the inherited environment.
	Env  []string
	Size geom.Size

	Logger *log.Logger
}

// Process is a child program attached to a pseudo-terminal. It satisfies
// panel.Backend.
type Process struct {
	pty  xpty.Pty
	cmd  *exec.Cmd
	pgid int

	logger *log.Logger

	mu     sync.Mutex
	closed bool

	waitOnce sync.Once
	waitErr  error
	done     chan struct{}
}

var (
	localEnvOnce   sync.Once
	localTermType  string
	localColorTerm string
)

// Start spawns the child with its controlling terminal sized to opts.Size.
func Start(opts Options) (*Process, error) {
	if opts.Size.Empty() {
		return nil, fmt.Errorf("terminal: invalid size %v", opts.Size)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	shell := opts.Shell
	if shell == "" {
		shell = DetectShell("")
	}

	// #nosec G204 - the shell is chosen by the user
	cmd := exec.Command(shell, opts.Args...)
	cmd.Dir = opts.Dir

	termType, colorTerm := getTerminalEnv()
	env := append(os.Environ(),
		"TERM="+termType,
		"TERM_PROGRAM=tuimux",
	)
	if colorTerm != "" {
		env = append(env, "COLORTERM="+colorTerm)
	}
	cmd.Env = append(env, opts.Env...)

	pty, err := xpty.NewPty(opts.Size.Cols, opts.Size.Rows)
	if err != nil {
		return nil, fmt.Errorf("terminal: open pty: %w", err)
	}
	if err := pty.Start(cmd); err != nil {
		_ = pty.Close()
		return nil, fmt.Errorf("terminal: start %s: %w", shell, err)
	}

	// Some pty implementations only honour the size once the child runs.
	if err := pty.Resize(opts.Size.Cols, opts.Size.Rows); err != nil {
		logger.Debug("initial pty resize failed", "err", err)
	}

	p := &Process{
		pty:    pty,
		cmd:    cmd,
		logger: logger,
		done:   make(chan struct{}),
	}
	if cmd.Process != nil {
		if pgid, err := getPgid(cmd.Process.Pid); err == nil {
			p.pgid = pgid
		}
	}
	logger.Debug("started child", "shell", shell, "pid", p.Pid(), "size", opts.Size, "term", termType)

	go func() {
		p.wait()
		close(p.done)
	}()
	return p, nil
}

// wait reaps the child exactly once.
func (p *Process) wait() error {
	p.waitOnce.Do(func() {
		p.waitErr = p.cmd.Wait()
	})
	return p.waitErr
}

// Read reads child output. It fails with an I/O error once the child and
// every process holding the terminal have exited.
func (p *Process) Read(b []byte) (int, error) {
	return p.pty.Read(b)
}

// Write sends input to the child.
func (p *Process) Write(b []byte) (int, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return 0, ErrClosed
	}
	return p.pty.Write(b)
}

// Resize changes the terminal size and signals the child.
func (p *Process) Resize(size geom.Size) error {
	if size.Empty() {
		return fmt.Errorf("terminal: invalid size %v", size)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	return p.pty.Resize(size.Cols, size.Rows)
}

// Pid returns the child's process id.
func (p *Process) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Done is closed once the child has exited.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the child exits and returns its exit error.
func (p *Process) Wait() error {
	<-p.done
	return p.waitErr
}

// ForegroundName returns the name of the job in the terminal's foreground,
// or "" when it cannot be determined.
func (p *Process) ForegroundName() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ""
	}
	return foregroundName(p.pty, p.pgid)
}

// Close hangs up the terminal and kills the child if it is still running.
func (p *Process) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	err := p.pty.Close()
	p.mu.Unlock()

	select {
	case <-p.done:
	default:
		if p.cmd.Process != nil {
			_ = p.cmd.Process.Kill()
		}
		<-p.done
	}
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("terminal: close pty: %w", err)
	}
	return nil
}

// DetectShell returns preferred when it exists, else $SHELL, else the first
// well-known shell found on the system.
func DetectShell(preferred string) string {
	if preferred != "" {
		if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(preferred), ".exe") {
			preferred += ".exe"
		}
		if shellExists(preferred) {
			return preferred
		}
		log.Warn("configured shell not found, falling back", "shell", preferred)
	}

	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}

	if runtime.GOOS == "windows" {
		for _, shell := range []string{"powershell.exe", "pwsh.exe", "cmd.exe"} {
			if _, err := exec.LookPath(shell); err == nil {
				return shell
			}
		}
		return "cmd.exe"
	}

	for _, shell := range []string{"/bin/bash", "/bin/zsh", "/bin/fish", "/bin/sh"} {
		if _, err := os.Stat(shell); err == nil {
			return shell
		}
	}
	return "/bin/sh"
}

func shellExists(shell string) bool {
	if runtime.GOOS == "windows" || !strings.ContainsRune(shell, os.PathSeparator) {
		_, err := exec.LookPath(shell)
		return err == nil
	}
	_, err := os.Stat(shell)
	return err == nil
}

// getTerminalEnv returns TERM and COLORTERM for children, detected once per
// process.
func getTerminalEnv() (termType, colorTerm string) {
	localEnvOnce.Do(func() {
		envTerm := os.Getenv("TERM")
		envColorTerm := os.Getenv("COLORTERM")
		if envColorTerm == "truecolor" && envTerm != "" && envTerm != "dumb" {
			localTermType, localColorTerm = envTerm, envColorTerm
			return
		}
		profile := colorprofile.Detect(os.Stdout, os.Environ())
		localTermType, localColorTerm = profileToEnv(profile, envTerm)
	})
	return localTermType, localColorTerm
}

// profileToEnv maps a colour profile to TERM and COLORTERM, keeping the
// parent's TERM where it is compatible.
func profileToEnv(profile colorprofile.Profile, parentTerm string) (termType, colorTerm string) {
	switch profile {
	case colorprofile.TrueColor:
		termType = "xterm-256color"
		if parentTerm != "" {
			termType = parentTerm
		}
		colorTerm = "truecolor"
	case colorprofile.ANSI256:
		switch {
		case strings.Contains(parentTerm, "256color"):
			termType = parentTerm
		case strings.HasPrefix(parentTerm, "screen"):
			termType = "screen-256color"
		case strings.HasPrefix(parentTerm, "tmux"):
			termType = "tmux-256color"
		default:
			termType = "xterm-256color"
		}
	case colorprofile.ANSI:
		termType = "xterm"
		if parentTerm != "" && parentTerm != "dumb" {
			termType = parentTerm
		}
	case colorprofile.Ascii, colorprofile.NoTTY:
		termType = "dumb"
	default:
		termType = "xterm-256color"
	}
	return termType, colorTerm
}
