package vt

import (
	"bytes"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/ansi/parser"
)

const (
	// MaxParam is the largest numeric parameter handed to a screen.
	MaxParam = 9999

	// MissingParam marks a parameter position that was left empty.
	MissingParam = -1

	// maxStringData bounds OSC, DCS and APC payloads kept by the parser.
	maxStringData = 1 << 20

	// maxParamDigits is the number of significant digits passed to the
	// parser per parameter. Five digits already exceed MaxParam.
	maxParamDigits = 5
)

// Decoder turns a raw byte stream into events. It keeps all of its state
// between calls to Feed, so the events produced do not depend on how the
// stream was split into chunks.
type Decoder struct {
	parser *ansi.Parser
	events []Event

	// cur is the byte being advanced, used to tell BEL from ST.
	cur byte

	// digits counts the significant digits of the parameter being read.
	digits int
}

// NewDecoder returns a decoder in the ground state.
func NewDecoder() *Decoder {
	d := new(Decoder)
	d.parser = ansi.NewParser()
	d.parser.SetParamsSize(parser.MaxParamsSize)
	d.parser.SetDataSize(maxStringData)
	d.parser.SetHandler(ansi.Handler{
		Print:     d.handlePrint,
		Execute:   d.handleExecute,
		HandleCsi: d.handleCsi,
		HandleEsc: d.handleEsc,
		HandleDcs: d.handleDcs,
		HandleOsc: d.handleOsc,
		HandleApc: d.stringHandler("APC"),
		HandlePm:  d.stringHandler("PM"),
		HandleSos: d.stringHandler("SOS"),
	})
	return d
}

// Feed decodes p and returns the events it completed. A sequence cut at the
// end of p is finished by a later call.
func (d *Decoder) Feed(p []byte) []Event {
	for _, b := range p {
		if d.dropDigit(b) {
			continue
		}
		d.cur = b
		d.parser.Advance(b)
	}
	evs := d.events
	d.events = nil
	return evs
}

// dropDigit saturates long numeric parameters before the parser sees them.
// The parser accumulates into an int whose high bits carry the sub-parameter
// and missing flags, so an oversized value would corrupt the grouping.
func (d *Decoder) dropDigit(b byte) bool {
	switch d.parser.State() {
	case parser.CsiEntryState, parser.CsiParamState, parser.DcsEntryState, parser.DcsParamState:
	default:
		d.digits = 0
		return false
	}
	if b < '0' || b > '9' {
		d.digits = 0
		return false
	}
	if b == '0' && d.digits == 0 {
		return false
	}
	d.digits++
	return d.digits > maxParamDigits
}

func (d *Decoder) emit(ev Event) {
	d.events = append(d.events, ev)
}

func (d *Decoder) handlePrint(r rune) {
	d.emit(Print{Rune: r})
}

func (d *Decoder) handleExecute(b byte) {
	d.emit(Execute{Code: b})
}

func (d *Decoder) handleCsi(cmd ansi.Cmd, params ansi.Params) {
	d.emit(CsiDispatch{
		Params:        groupParams(params),
		Prefix:        cmd.Prefix(),
		Intermediates: intermediates(cmd),
		Final:         cmd.Final(),
	})
}

func (d *Decoder) handleEsc(cmd ansi.Cmd) {
	d.emit(EscDispatch{
		Intermediates: intermediates(cmd),
		Final:         cmd.Final(),
	})
}

func (d *Decoder) handleOsc(_ int, data []byte) {
	fields := bytes.Split(data, []byte{';'})
	params := make([][]byte, len(fields))
	for i, f := range fields {
		params[i] = bytes.Clone(f)
	}
	d.emit(OscDispatch{
		Params:           params,
		TerminatedByBell: d.cur == ansi.BEL,
	})
}

func (d *Decoder) handleDcs(cmd ansi.Cmd, params ansi.Params, data []byte) {
	d.emit(Hook{
		Params:        groupParams(params),
		Prefix:        cmd.Prefix(),
		Intermediates: intermediates(cmd),
		Final:         cmd.Final(),
	})
	for _, b := range data {
		d.emit(Put{Data: b})
	}
	d.emit(Unhook{})
}

func (d *Decoder) stringHandler(kind string) func([]byte) {
	return func(data []byte) {
		d.emit(UnhandledSequence{Kind: kind, Raw: string(data)})
	}
}

func intermediates(cmd ansi.Cmd) []byte {
	if i := cmd.Intermediate(); i != 0 {
		return []byte{i}
	}
	return nil
}

// groupParams rebuilds semicolon groups from the parser's flat list, where a
// colon separator is flagged by HasMore on the preceding value. Values are
// clamped to MaxParam.
func groupParams(params ansi.Params) [][]int {
	if len(params) == 0 {
		return nil
	}
	groups := make([][]int, 0, len(params))
	var cur []int
	for _, p := range params {
		cur = append(cur, clampParam(p.Param(MissingParam)))
		if !p.HasMore() {
			groups = append(groups, cur)
			cur = nil
		}
	}
	if cur != nil {
		groups = append(groups, cur)
	}
	return groups
}

func clampParam(v int) int {
	switch {
	case v < 0:
		return MissingParam
	case v > MaxParam:
		return MaxParam
	}
	return v
}
