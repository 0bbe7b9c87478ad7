package vt

import (
	"fmt"
	"strings"
)

// Event is one decoded unit of terminal output. The set of events is closed:
// every implementation lives in this file and [Screen.Apply] switches over
// all of them.
type Event interface {
	event()
}

// Print is a displayable character.
type Print struct {
	Rune rune
}

// Execute is a single-byte C0 (or C1) control.
type Execute struct {
	Code byte
}

// CsiDispatch is a complete control sequence. Params holds one group per
// semicolon-separated position; colon-separated sub-parameters extend the
// group. Absent values are [MissingParam].
type CsiDispatch struct {
	Params        [][]int
	Prefix        byte
	Intermediates []byte
	Final         byte
}

// EscDispatch is an escape sequence that is neither CSI, OSC nor a string.
type EscDispatch struct {
	Intermediates []byte
	Final         byte
}

// OscDispatch is an operating system command split on ';'.
type OscDispatch struct {
	Params           [][]byte
	TerminatedByBell bool
}

// Hook starts a device control string.
type Hook struct {
	Params        [][]int
	Prefix        byte
	Intermediates []byte
	Final         byte
}

// Put is one byte of device control string payload.
type Put struct {
	Data byte
}

// Unhook ends a device control string.
type Unhook struct{}

// UnhandledSequence is a sequence the decoder consumed but does not model.
type UnhandledSequence struct {
	Kind string
	Raw  string
}

func (Print) event()             {}
func (Execute) event()           {}
func (CsiDispatch) event()       {}
func (EscDispatch) event()       {}
func (OscDispatch) event()       {}
func (Hook) event()              {}
func (Put) event()               {}
func (Unhook) event()            {}
func (UnhandledSequence) event() {}

// Param returns the first value of the i-th parameter group, or def when it
// is absent.
func (c CsiDispatch) Param(i, def int) int {
	return param(c.Params, i, def)
}

// Count is like Param but also maps an explicit zero to def, which is how
// VT100 treats repeat counts.
func (c CsiDispatch) Count(i, def int) int {
	if v := param(c.Params, i, def); v > 0 {
		return v
	}
	return def
}

func param(params [][]int, i, def int) int {
	if i >= len(params) || len(params[i]) == 0 || params[i][0] == MissingParam {
		return def
	}
	return params[i][0]
}

// String renders the sequence the way it appears on the wire, for
// diagnostics.
func (c CsiDispatch) String() string {
	var b strings.Builder
	b.WriteString("CSI ")
	if c.Prefix != 0 {
		b.WriteByte(c.Prefix)
	}
	b.WriteString(joinParams(c.Params))
	b.Write(c.Intermediates)
	b.WriteByte(c.Final)
	return b.String()
}

func (e EscDispatch) String() string {
	return fmt.Sprintf("ESC %s%c", e.Intermediates, e.Final)
}

func (o OscDispatch) String() string {
	parts := make([]string, len(o.Params))
	for i, p := range o.Params {
		parts[i] = string(p)
	}
	return fmt.Sprintf("OSC %q", strings.Join(parts, ";"))
}

func joinParams(params [][]int) string {
	groups := make([]string, len(params))
	for i, g := range params {
		subs := make([]string, len(g))
		for j, v := range g {
			if v != MissingParam {
				subs[j] = fmt.Sprint(v)
			}
		}
		groups[i] = strings.Join(subs, ":")
	}
	return strings.Join(groups, ";")
}
