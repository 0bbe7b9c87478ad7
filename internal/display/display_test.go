package display

import (
	"errors"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/tuimux/internal/geom"
	"github.com/Gaurav-Gosain/tuimux/internal/layout"
	"github.com/Gaurav-Gosain/tuimux/internal/panel"
	"github.com/Gaurav-Gosain/tuimux/internal/testutil"
)

func newPanel(t *testing.T, d *Display) (*panel.Panel, *testutil.FakeShell) {
	t.Helper()
	p, err := d.NewPanel(d.NextID())
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}
	shell := testutil.NewFakeShell()
	if err := p.Attach(shell); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	return p, shell
}

func TestAreaLeavesHeaderAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		header bool
		want   geom.Rect
	}{
		{"with header", true, geom.R(1, 0, 22, 80)},
		{"without header", false, geom.R(0, 0, 23, 80)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(geom.Sz(24, 80), WithHeader(tt.header))
			slot, ok := d.OpenPanel()
			if !ok {
				t.Fatal("no slot on empty display")
			}
			if got := geom.R(slot.Origin.Row, slot.Origin.Col, slot.Size.Rows, slot.Size.Cols); got != tt.want {
				t.Errorf("slot = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpenInsertSplitClose(t *testing.T) {
	d := New(geom.Sz(24, 80), WithHeader(true))

	first, _ := newPanel(t, d)
	if got := first.Rect(); got != geom.R(1, 0, 22, 80) {
		t.Fatalf("first panel rect = %v", got)
	}
	if _, err := d.NewPanel(d.NextID()); !errors.Is(err, ErrNoSlot) {
		t.Errorf("NewPanel on full tree: %v, want ErrNoSlot", err)
	}
	if d.ErrorMessage() == "" {
		t.Error("full tree should set the error message")
	}
	d.ClearError()

	if err := d.SplitSelected(layout.Vertical); err != nil {
		t.Fatalf("SplitSelected: %v", err)
	}
	if got := first.Size(); got != geom.Sz(22, 39) {
		t.Errorf("first panel resized to %v, want 22x39", got)
	}

	slot, ok := d.OpenPanel()
	if !ok || slot.Path.String() != "[B]" {
		t.Fatalf("OpenPanel = %v %v, want [B]", slot.Path, ok)
	}
	second, err := d.InsertPanel(d.NextID(), slot.Path)
	if err != nil {
		t.Fatalf("InsertPanel: %v", err)
	}
	if got := second.Rect(); got != geom.R(1, 40, 22, 40) {
		t.Errorf("second panel rect = %v", got)
	}
	if sel, _ := d.Selected(); sel != second {
		t.Error("new panel should be selected")
	}

	if err := d.ClosePanel(second.ID); err != nil {
		t.Fatalf("ClosePanel: %v", err)
	}
	if sel, _ := d.Selected(); sel != first {
		t.Error("selection should fall back to the remaining panel")
	}
	if got := first.Rect(); got != geom.R(1, 0, 22, 80) {
		t.Errorf("remaining panel should take the whole area, got %v", got)
	}
	if err := d.ClosePanel(second.ID); !errors.Is(err, ErrUnknownPanel) {
		t.Errorf("closing twice: %v, want ErrUnknownPanel", err)
	}
}

func TestCloseClosesBackend(t *testing.T) {
	d := New(geom.Sz(10, 40))
	p, shell := newPanel(t, d)
	if err := d.ClosePanel(p.ID); err != nil {
		t.Fatal(err)
	}
	if !shell.IsClosed() {
		t.Error("backend should be closed")
	}
	if _, ok := d.Selected(); ok {
		t.Error("nothing should be selected on an empty display")
	}
	if slot, ok := d.OpenPanel(); !ok || len(slot.Path) != 0 {
		t.Errorf("expected the root slot back, got %v %v", slot, ok)
	}
}

func TestSplitWithoutSelection(t *testing.T) {
	d := New(geom.Sz(10, 40))
	if err := d.SplitSelected(layout.Horizontal); !errors.Is(err, ErrNoSelection) {
		t.Errorf("err = %v, want ErrNoSelection", err)
	}
	if err := d.SplitRoot(layout.Horizontal); err != nil {
		t.Fatalf("SplitRoot: %v", err)
	}
	if err := d.SplitRoot(layout.Horizontal); !errors.Is(err, layout.ErrRootNotEmpty) {
		t.Errorf("second SplitRoot: %v", err)
	}
}

func TestFocusAndSelect(t *testing.T) {
	d := New(geom.Sz(24, 80))
	left, _ := newPanel(t, d)
	if err := d.SplitSelected(layout.Vertical); err != nil {
		t.Fatal(err)
	}
	right, _ := newPanel(t, d)

	if !d.FocusDirection(layout.Left) {
		t.Fatal("focus left failed")
	}
	if sel, _ := d.Selected(); sel != left {
		t.Error("left panel should be selected")
	}
	if d.FocusDirection(layout.Left) {
		t.Error("nothing further left")
	}
	if err := d.SetSelected(right.ID); err != nil {
		t.Fatal(err)
	}
	if err := d.SetSelected(99); !errors.Is(err, ErrUnknownPanel) {
		t.Errorf("err = %v, want ErrUnknownPanel", err)
	}
	if sel, _ := d.Selected(); sel != right {
		t.Error("failed select should keep the selection")
	}
}

func TestFeedAndGetContent(t *testing.T) {
	d := New(geom.Sz(10, 40))
	p, _ := newPanel(t, d)

	if err := d.Feed(p.ID, []byte("hello\r\nworld")); err != nil {
		t.Fatal(err)
	}
	rows, err := d.GetContent(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if string(rows[0]) != "hello" || string(rows[1]) != "world" {
		t.Errorf("content = %q", rows[:2])
	}
	if err := d.Feed(42, []byte("x")); !errors.Is(err, ErrUnknownPanel) {
		t.Errorf("feed unknown: %v", err)
	}
	if _, err := d.GetContent(42); !errors.Is(err, ErrUnknownPanel) {
		t.Errorf("content unknown: %v", err)
	}
}

func TestResize(t *testing.T) {
	d := New(geom.Sz(24, 80), WithHeader(true))
	a, shellA := newPanel(t, d)
	if err := d.SplitSelected(layout.Horizontal); err != nil {
		t.Fatal(err)
	}
	b, _ := newPanel(t, d)

	d.Resize(geom.Sz(42, 100))
	if got := a.Rect(); got != geom.R(1, 0, 19, 100) {
		t.Errorf("upper panel = %v", got)
	}
	if got := b.Rect(); got != geom.R(21, 0, 20, 100) {
		t.Errorf("lower panel = %v", got)
	}
	resizes := shellA.Resizes()
	if resizes[len(resizes)-1] != geom.Sz(19, 100) {
		t.Errorf("backend not resized: %v", resizes)
	}

	if err := d.ResizePanel(a.ID, geom.Sz(0, 3)); !errors.Is(err, ErrLeafMismatch) {
		t.Errorf("zero resize: err = %v, want ErrLeafMismatch", err)
	}
	if !strings.Contains(d.ErrorMessage(), "leaf") {
		t.Errorf("error message = %q", d.ErrorMessage())
	}
	if err := d.ResizePanel(a.ID, geom.Sz(19, 100)); err != nil {
		t.Errorf("resize to the leaf size: %v", err)
	}
}

func TestPanelsFollowLeaves(t *testing.T) {
	d := New(geom.Sz(8, 21), WithHeader(true))
	a, _ := newPanel(t, d)
	if err := d.SplitSelected(layout.Vertical); err != nil {
		t.Fatal(err)
	}
	newPanel(t, d)

	if err := d.ResizePanel(a.ID, geom.Sz(6, 21)); !errors.Is(err, ErrLeafMismatch) {
		t.Fatalf("oversized resize: err = %v, want ErrLeafMismatch", err)
	}
	if a.Size() != geom.Sz(6, 10) {
		t.Errorf("panel size = %v, want its leaf 6x10", a.Size())
	}

	for _, size := range []geom.Size{geom.Sz(8, 2), geom.Sz(8, 1), geom.Sz(8, 30)} {
		d.Resize(size)
		d.View(func(f Frame) {
			for _, p := range f.Panels {
				leaf, ok := f.Tree.Geometry(p.ID)
				if !ok || p.Rect() != leaf {
					t.Errorf("at %v: panel %d rect %v, leaf %v", size, p.ID, p.Rect(), leaf)
				}
				if !leaf.Empty() && p.Size() != leaf.Size {
					t.Errorf("at %v: panel %d size %v, leaf %v", size, p.ID, p.Size(), leaf.Size)
				}
			}
		})
	}
}

func TestView(t *testing.T) {
	d := New(geom.Sz(12, 40), WithHeader(true))
	p, _ := newPanel(t, d)
	d.SetStatus("ready")
	d.SetPrompt(":split", true)

	d.View(func(f Frame) {
		if f.Size != geom.Sz(12, 40) || !f.Header {
			t.Errorf("frame size/header = %v %v", f.Size, f.Header)
		}
		if len(f.Panels) != 1 || f.Panel(p.ID) != p {
			t.Errorf("frame panels = %v", f.Panels)
		}
		if !f.HasSelection || f.Selected != p.ID {
			t.Error("frame should carry the selection")
		}
		if f.Status != "ready" || f.Prompt != ":split" || !f.PromptActive {
			t.Errorf("status/prompt = %q %q %v", f.Status, f.Prompt, f.PromptActive)
		}
	})
}
