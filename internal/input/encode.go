package input

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
)

// tildeKeys are the special keys sent as CSI n ~.
var tildeKeys = map[rune]int{
	tea.KeyInsert: 2,
	tea.KeyDelete: 3,
	tea.KeyPgUp:   5,
	tea.KeyPgDown: 6,
	tea.KeyF5:     15,
	tea.KeyF6:     17,
	tea.KeyF7:     18,
	tea.KeyF8:     19,
	tea.KeyF9:     20,
	tea.KeyF10:    21,
	tea.KeyF11:    23,
	tea.KeyF12:    24,
}

// cursorKeys are sent as CSI x, or SS3 x in application cursor mode.
var cursorKeys = map[rune]byte{
	tea.KeyUp:    'A',
	tea.KeyDown:  'B',
	tea.KeyRight: 'C',
	tea.KeyLeft:  'D',
	tea.KeyHome:  'H',
	tea.KeyEnd:   'F',
}

// functionKeys F1-F4 are always SS3 sequences.
var functionKeys = map[rune]byte{
	tea.KeyF1: 'P',
	tea.KeyF2: 'Q',
	tea.KeyF3: 'R',
	tea.KeyF4: 'S',
}

// KeyToBytes converts a key press to the bytes an xterm-compatible terminal
// would send. appCursor selects application cursor key sequences.
func KeyToBytes(msg tea.KeyPressMsg, appCursor bool) []byte {
	mod := modifierParam(msg.Mod)

	if final, ok := cursorKeys[msg.Code]; ok {
		switch {
		case mod > 1:
			return []byte("\x1b[1;" + strconv.Itoa(mod) + string(final))
		case appCursor:
			return []byte{0x1b, 'O', final}
		default:
			return []byte{0x1b, '[', final}
		}
	}
	if final, ok := functionKeys[msg.Code]; ok {
		if mod > 1 {
			return []byte("\x1b[1;" + strconv.Itoa(mod) + string(final))
		}
		return []byte{0x1b, 'O', final}
	}
	if n, ok := tildeKeys[msg.Code]; ok {
		if mod > 1 {
			return []byte("\x1b[" + strconv.Itoa(n) + ";" + strconv.Itoa(mod) + "~")
		}
		return []byte("\x1b[" + strconv.Itoa(n) + "~")
	}

	var out []byte
	switch msg.Code {
	case tea.KeyEnter:
		out = []byte{'\r'}
	case tea.KeyBackspace:
		out = []byte{0x7f}
	case tea.KeyTab:
		if msg.Mod&tea.ModShift != 0 {
			return []byte("\x1b[Z")
		}
		out = []byte{'\t'}
	case tea.KeyEscape:
		out = []byte{0x1b}
	default:
		switch {
		case msg.Mod&tea.ModCtrl != 0:
			b, ok := ctrlByte(msg.Code)
			if !ok {
				return nil
			}
			out = []byte{b}
		case msg.Text != "":
			out = []byte(msg.Text)
		case msg.Code == tea.KeySpace:
			out = []byte{' '}
		case msg.Code > 0 && msg.Code < tea.KeyExtended:
			out = []byte(string(msg.Code))
		default:
			return nil
		}
	}

	if msg.Mod&tea.ModAlt != 0 {
		out = append([]byte{0x1b}, out...)
	}
	return out
}

// modifierParam is the xterm modifier parameter: 1 plus shift 1, alt 2,
// ctrl 4. It is 1 for no modifiers.
func modifierParam(mod tea.KeyMod) int {
	n := 1
	if mod&tea.ModShift != 0 {
		n++
	}
	if mod&tea.ModAlt != 0 {
		n += 2
	}
	if mod&tea.ModCtrl != 0 {
		n += 4
	}
	return n
}

// ctrlByte maps ctrl+r to its C0 control byte.
func ctrlByte(r rune) (byte, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return byte(r) & 0x1f, true
	case r >= 'A' && r <= 'Z':
		return byte(r) & 0x1f, true
	case r == '@' || r == ' ' || r == '2':
		return 0x00, true
	case r == '[' || r == '3':
		return 0x1b, true
	case r == '\\' || r == '4':
		return 0x1c, true
	case r == ']' || r == '5':
		return 0x1d, true
	case r == '^' || r == '6':
		return 0x1e, true
	case r == '_' || r == '-' || r == '7':
		return 0x1f, true
	case r == '?' || r == '8':
		return 0x7f, true
	}
	return 0, false
}
