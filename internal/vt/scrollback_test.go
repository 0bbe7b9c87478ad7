package vt

import (
	"fmt"
	"testing"
)

func textLine(s string) Line {
	l := make(Line, len(s))
	for i, r := range s {
		l[i] = Cell{Rune: r, Width: 1}
	}
	return l
}

func TestScrollbackRing(t *testing.T) {
	sb := NewScrollback(3)
	for i := range 5 {
		sb.PushLine(textLine(fmt.Sprint(i)))
	}

	if sb.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", sb.Len())
	}
	for i, want := range []string{"2", "3", "4"} {
		if got := lineText(sb.Line(i)); got != want {
			t.Errorf("Line(%d) = %q, want %q", i, got, want)
		}
	}
	if sb.Line(3) != nil || sb.Line(-1) != nil {
		t.Error("out of range lines should be nil")
	}
	if got := len(sb.Lines()); got != 3 {
		t.Errorf("len(Lines()) = %d, want 3", got)
	}
}

func TestScrollbackPushCopies(t *testing.T) {
	sb := NewScrollback(2)
	l := textLine("ab")
	sb.PushLine(l)
	l[0].Rune = 'z'
	if got := lineText(sb.Line(0)); got != "ab" {
		t.Errorf("stored line changed to %q", got)
	}
}

func TestScrollbackSetMaxLines(t *testing.T) {
	tests := []struct {
		name    string
		pushed  int
		newMax  int
		wantLen int
		first   string
	}{
		{"shrink keeps newest", 5, 2, 2, "3"},
		{"grow keeps all", 5, 10, 5, "0"},
		{"shrink empty", 0, 2, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := NewScrollback(5)
			for i := range tt.pushed {
				sb.PushLine(textLine(fmt.Sprint(i)))
			}
			sb.SetMaxLines(tt.newMax)
			if sb.Len() != tt.wantLen || sb.MaxLines() != tt.newMax {
				t.Fatalf("Len/MaxLines = %d/%d, want %d/%d", sb.Len(), sb.MaxLines(), tt.wantLen, tt.newMax)
			}
			if tt.wantLen > 0 {
				if got := lineText(sb.Line(0)); got != tt.first {
					t.Errorf("oldest = %q, want %q", got, tt.first)
				}
			}
			sb.PushLine(textLine("new"))
			if got := lineText(sb.Line(sb.Len() - 1)); got != "new" {
				t.Errorf("newest after push = %q", got)
			}
		})
	}
}

func TestScrollbackClearAndDefault(t *testing.T) {
	sb := NewScrollback(0)
	if sb.MaxLines() != DefaultScrollbackSize {
		t.Errorf("MaxLines() = %d, want %d", sb.MaxLines(), DefaultScrollbackSize)
	}
	sb.PushLine(textLine("x"))
	sb.Clear()
	if sb.Len() != 0 || sb.Lines() != nil {
		t.Error("expected empty scrollback after Clear")
	}
}
