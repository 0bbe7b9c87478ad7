package geom

import "testing"

func TestPointClamp(t *testing.T) {
	size := Sz(24, 80)
	tests := []struct {
		name string
		in   Point
		want Point
	}{
		{"inside", Pt(3, 4), Pt(3, 4)},
		{"negative", Pt(-5, -1), Pt(0, 0)},
		{"past end", Pt(24, 80), Pt(23, 79)},
		{"far away", Pt(9999, 9999), Pt(23, 79)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(size); got != tt.want {
				t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	a := R(0, 0, 10, 10)
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"same", R(0, 0, 10, 10), true},
		{"touching right edge", R(0, 10, 10, 10), false},
		{"one cell shared", R(9, 9, 5, 5), true},
		{"below", R(10, 0, 1, 10), false},
		{"empty", R(2, 2, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRectIntersectAndContains(t *testing.T) {
	a := R(2, 3, 4, 5)
	got := a.Intersect(R(4, 0, 10, 5))
	if want := R(4, 3, 2, 2); got != want {
		t.Errorf("Intersect = %v, want %v", got, want)
	}
	if !a.Contains(Pt(5, 7)) {
		t.Error("expected (5,7) inside")
	}
	if a.Contains(Pt(6, 7)) {
		t.Error("expected (6,7) outside")
	}
	if a.Bottom() != 6 || a.Right() != 8 {
		t.Errorf("Bottom/Right = %d/%d, want 6/8", a.Bottom(), a.Right())
	}
}

func TestSizeArea(t *testing.T) {
	if Sz(0, 10).Area() != 0 || !Sz(0, 10).Empty() {
		t.Error("zero-row size should be empty")
	}
	if Sz(3, 4).Area() != 12 {
		t.Errorf("Area = %d, want 12", Sz(3, 4).Area())
	}
}
