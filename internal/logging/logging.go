// Package logging sets up the structured log file and keeps the most recent
// lines in memory for the in-app log view.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// RingSize is the number of recent lines kept in memory.
const RingSize = 200

const logRelPath = "tuimux/tuimux.log"

// Logger is a charm logger that also remembers its recent output.
type Logger struct {
	*log.Logger
	ring *Ring
	file io.Closer
}

// New logs to w at level. An empty w logs only to the ring.
func New(w io.Writer, level string) (*Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	ring := NewRing(RingSize)
	out := io.Writer(ring)
	if w != nil {
		out = io.MultiWriter(w, ring)
	}
	l := log.NewWithOptions(out, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Prefix:          "tuimux",
	})
	l.SetFormatter(log.LogfmtFormatter)
	return &Logger{Logger: l, ring: ring}, nil
}

// Open appends to the log file in the XDG state directory.
func Open(level string) (*Logger, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	// #nosec G304 - the path comes from xdg
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	l, err := New(f, level)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	l.file = f
	return l, nil
}

// Path returns the log file location, creating its directory.
func Path() (string, error) {
	path, err := xdg.StateFile(logRelPath)
	if err != nil {
		return "", fmt.Errorf("logging: state path: %w", err)
	}
	return path, nil
}

// Recent returns up to n of the latest lines, oldest first.
func (l *Logger) Recent(n int) []string {
	return l.ring.Lines(n)
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Ring is a fixed-size line buffer usable as an io.Writer.
type Ring struct {
	mu      sync.Mutex
	lines   []string
	next    int
	full    bool
	partial []byte
}

// NewRing returns a ring holding size lines.
func NewRing(size int) *Ring {
	return &Ring{lines: make([]string, max(size, 1))}
}

// Write splits p into lines. An unterminated tail is kept until its newline
// arrives.
func (r *Ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data := append(r.partial, p...)
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		r.push(strings.TrimRight(string(data[:i]), "\r"))
		data = data[i+1:]
	}
	r.partial = append([]byte(nil), data...)
	return len(p), nil
}

func (r *Ring) push(line string) {
	r.lines[r.next] = line
	r.next = (r.next + 1) % len(r.lines)
	if r.next == 0 {
		r.full = true
	}
}

// Len returns the number of complete lines held.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.full {
		return len(r.lines)
	}
	return r.next
}

// Lines returns up to n of the latest lines, oldest first. n <= 0 returns
// all of them.
func (r *Ring) Lines(n int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := r.next
	if r.full {
		count = len(r.lines)
	}
	if n <= 0 || n > count {
		n = count
	}
	out := make([]string, 0, n)
	start := r.next - n
	for i := range n {
		idx := (start + i + len(r.lines)) % len(r.lines)
		out = append(out, r.lines[idx])
	}
	return out
}
