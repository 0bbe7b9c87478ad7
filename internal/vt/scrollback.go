package vt

// DefaultScrollbackSize is the default number of lines to keep in the
// scrollback buffer.
const DefaultScrollbackSize = 10000

// Scrollback stores lines that have scrolled off the top of the primary
// screen. It is a ring buffer, so pushing is O(1) once it is full.
type Scrollback struct {
	// lines stores the scrollback lines in a ring buffer
	lines []Line
	// maxLines is the maximum number of lines to keep in scrollback
	maxLines int
	// head is the index of the oldest line in the ring buffer
	head int
	// tail is the index where the next line will be inserted
	tail int
	// full indicates whether the ring buffer is at capacity
	full bool
}

// NewScrollback creates a new scrollback buffer with the specified maximum
// number of lines. If maxLines is 0, DefaultScrollbackSize is used.
func NewScrollback(maxLines int) *Scrollback {
	if maxLines <= 0 {
		maxLines = DefaultScrollbackSize
	}
	return &Scrollback{
		lines:    make([]Line, maxLines),
		maxLines: maxLines,
	}
}

// PushLine appends a copy of line as the newest entry, overwriting the
// oldest one when the buffer is full.
func (sb *Scrollback) PushLine(line Line) {
	dup := make(Line, len(line))
	copy(dup, line)

	sb.lines[sb.tail] = dup
	sb.tail = (sb.tail + 1) % sb.maxLines
	if sb.full {
		sb.head = (sb.head + 1) % sb.maxLines
	}
	if sb.tail == sb.head {
		sb.full = true
	}
}

// Len returns the number of lines currently in the scrollback buffer.
func (sb *Scrollback) Len() int {
	if sb.full {
		return sb.maxLines
	}
	if sb.tail >= sb.head {
		return sb.tail - sb.head
	}
	return sb.maxLines - sb.head + sb.tail
}

// Line returns the line at the specified index in the scrollback buffer.
// Index 0 is the oldest line, and Len()-1 is the newest (most recently scrolled).
// Returns nil if the index is out of bounds.
func (sb *Scrollback) Line(index int) Line {
	if index < 0 || index >= sb.Len() {
		return nil
	}
	return sb.lines[(sb.head+index)%sb.maxLines]
}

// Lines returns all lines from oldest to newest. The lines themselves are
// shared and must not be modified.
func (sb *Scrollback) Lines() []Line {
	length := sb.Len()
	if length == 0 {
		return nil
	}
	result := make([]Line, length)
	for i := range length {
		result[i] = sb.lines[(sb.head+i)%sb.maxLines]
	}
	return result
}

// Clear removes all lines from the scrollback buffer.
func (sb *Scrollback) Clear() {
	sb.head = 0
	sb.tail = 0
	sb.full = false
	clear(sb.lines)
}

// MaxLines returns the maximum number of lines this scrollback can hold.
func (sb *Scrollback) MaxLines() int {
	return sb.maxLines
}

// SetMaxLines changes the capacity. When shrinking, the newest lines are
// kept.
func (sb *Scrollback) SetMaxLines(maxLines int) {
	if maxLines <= 0 {
		maxLines = DefaultScrollbackSize
	}
	if maxLines == sb.maxLines {
		return
	}

	oldLen := sb.Len()
	newLen := min(oldLen, maxLines)
	newLines := make([]Line, maxLines)
	start := oldLen - newLen
	for i := range newLen {
		newLines[i] = sb.lines[(sb.head+start+i)%sb.maxLines]
	}

	sb.lines = newLines
	sb.maxLines = maxLines
	sb.head = 0
	sb.tail = newLen % maxLines
	sb.full = newLen == maxLines
}
