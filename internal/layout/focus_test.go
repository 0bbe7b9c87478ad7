package layout

import (
	"testing"

	"github.com/Gaurav-Gosain/tuimux/internal/geom"
)

// threePanels builds
//
//	+---+---+
//	| 1 |   |
//	+---+ 3 |
//	| 2 |   |
//	+---+---+
func threePanels(t *testing.T) *Tree {
	t.Helper()
	tree := New(geom.R(0, 0, 24, 80))
	fillNext(t, tree, 1)
	if _, err := tree.Split(ptr(1), Vertical); err != nil {
		t.Fatal(err)
	}
	fillNext(t, tree, 3)
	if _, err := tree.Split(ptr(1), Horizontal); err != nil {
		t.Fatal(err)
	}
	fillNext(t, tree, 2)
	return tree
}

func TestFocusNextID(t *testing.T) {
	tree := threePanels(t)

	tests := []struct {
		name   string
		from   int
		dir    Direction
		want   int
		wantOK bool
	}{
		{"down from top left", 1, Down, 2, true},
		{"up from bottom left", 2, Up, 1, true},
		{"right from top left", 1, Right, 3, true},
		{"right from bottom left", 2, Right, 3, true},
		{"left from right prefers larger overlap", 3, Left, 2, true},
		{"nothing above", 1, Up, 0, false},
		{"nothing right", 3, Right, 0, false},
		{"unknown panel", 42, Left, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tree.FocusNextID(tt.from, tt.dir)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("FocusNextID(%d, %v) = %d, %v; want %d, %v", tt.from, tt.dir, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFocusPrefersOverlap(t *testing.T) {
	//	+---+---+
	//	| 1 | 2 |
	//	+---+---+
	//	| 3 | 4 |
	//	+---+---+
	tree := New(geom.R(0, 0, 24, 80))
	if _, err := tree.Split(nil, Horizontal); err != nil {
		t.Fatal(err)
	}
	fillNext(t, tree, 1)
	fillNext(t, tree, 3)
	if _, err := tree.Split(ptr(1), Vertical); err != nil {
		t.Fatal(err)
	}
	fillNext(t, tree, 2)
	if _, err := tree.Split(ptr(3), Vertical); err != nil {
		t.Fatal(err)
	}
	fillNext(t, tree, 4)

	if got, ok := tree.FocusNextID(2, Down); !ok || got != 4 {
		t.Errorf("down from 2 = %d, %v; want 4", got, ok)
	}
	if got, ok := tree.FocusNextID(3, Right); !ok || got != 4 {
		t.Errorf("right from 3 = %d, %v; want 4", got, ok)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"up", Up, false},
		{"J", Down, false},
		{"left", Left, false},
		{"l", Right, false},
		{"sideways", Up, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParseDirection(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}

func TestBandOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Rect
		rows int
		cols int
	}{
		{"same", geom.R(0, 0, 5, 5), geom.R(0, 0, 5, 5), 5, 5},
		{"side by side", geom.R(0, 0, 5, 5), geom.R(2, 6, 5, 5), 3, 0},
		{"stacked", geom.R(0, 0, 5, 8), geom.R(6, 4, 2, 8), 0, 4},
		{"apart", geom.R(0, 0, 2, 2), geom.R(9, 9, 2, 2), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rowOverlap(tt.a, tt.b); got != tt.rows {
				t.Errorf("rowOverlap = %d, want %d", got, tt.rows)
			}
			if got := colOverlap(tt.a, tt.b); got != tt.cols {
				t.Errorf("colOverlap = %d, want %d", got, tt.cols)
			}
		})
	}
}
