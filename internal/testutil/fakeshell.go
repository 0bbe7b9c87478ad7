package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Gaurav-Gosain/tuimux/internal/geom"
)

// ErrShellClosed is returned by writes to a closed FakeShell.
var ErrShellClosed = errors.New("fake shell closed")

// FakeShell stands in for a PTY-backed child process. Output queued with
// SendOutput is returned by Read; bytes written by the multiplexer are
// recorded as input.
type FakeShell struct {
	mu      sync.Mutex
	cond    *sync.Cond
	output  bytes.Buffer
	input   []string
	resizes []geom.Size
	closed  bool
}

// NewFakeShell returns an open shell with no pending output.
func NewFakeShell() *FakeShell {
	s := &FakeShell{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// SendOutput queues output for Read. It is ignored after Close.
func (s *FakeShell) SendOutput(out string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.output.WriteString(out)
	s.cond.Broadcast()
}

// SendOutputf is SendOutput with formatting.
func (s *FakeShell) SendOutputf(format string, args ...any) {
	s.SendOutput(fmt.Sprintf(format, args...))
}

// Read blocks until output is queued or the shell is closed.
func (s *FakeShell) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.output.Len() == 0 && !s.closed {
		s.cond.Wait()
	}
	if s.output.Len() == 0 {
		return 0, io.EOF
	}
	return s.output.Read(p)
}

// ReadWithTimeout is Read that gives up after d.
func (s *FakeShell) ReadWithTimeout(p []byte, d time.Duration) (int, error) {
	deadline := time.Now().Add(d)
	for {
		s.mu.Lock()
		if s.output.Len() > 0 || s.closed {
			s.mu.Unlock()
			return s.Read(p)
		}
		s.mu.Unlock()
		if time.Now().After(deadline) {
			return 0, fmt.Errorf("read timed out after %v", d)
		}
		time.Sleep(time.Millisecond)
	}
}

// Write records p as input.
func (s *FakeShell) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrShellClosed
	}
	s.input = append(s.input, string(p))
	return len(p), nil
}

// Resize records the requested size.
func (s *FakeShell) Resize(size geom.Size) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrShellClosed
	}
	s.resizes = append(s.resizes, size)
	return nil
}

// Close wakes any reader. Closing twice is fine.
func (s *FakeShell) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cond.Broadcast()
	return nil
}

// IsClosed reports whether Close was called.
func (s *FakeShell) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// GetInput returns all input written so far.
func (s *FakeShell) GetInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b bytes.Buffer
	for _, in := range s.input {
		b.WriteString(in)
	}
	return b.String()
}

// GetInputHistory returns each write separately.
func (s *FakeShell) GetInputHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.input...)
}

// ClearInput forgets recorded input.
func (s *FakeShell) ClearInput() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = nil
}

// Resizes returns every size passed to Resize.
func (s *FakeShell) Resizes() []geom.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]geom.Size(nil), s.resizes...)
}
