// Package layout implements the binary subdivision tree that tiles panels
// across the display area.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/tuimux/internal/geom"
)

var (
	// ErrBadPath is returned when a path does not end at an empty leaf.
	ErrBadPath = errors.New("path does not lead to an empty leaf")
	// ErrNoSuchPanel is returned when no leaf holds the requested panel.
	ErrNoSuchPanel = errors.New("no such panel")
	// ErrRootNotEmpty is returned when splitting the root of a tree that is
	// already subdivided or occupied.
	ErrRootNotEmpty = errors.New("cannot split a non-empty root")
	// ErrTooSmall is returned when a region cannot hold two children and a
	// separator.
	ErrTooSmall = errors.New("region too small to split")
	// ErrDuplicatePanel is returned when inserting a panel id already in the
	// tree.
	ErrDuplicatePanel = errors.New("panel already in tree")
)

// Axis is the direction of a split.
type Axis uint8

const (
	// Vertical splits a region into left (A) and right (B) halves divided by a
	// vertical rule.
	Vertical Axis = iota
	// Horizontal splits a region into upper (A) and lower (B) halves divided
	// by a horizontal rule.
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseAxis accepts "v", "vertical", "h" or "horizontal".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "v", "vertical", "|":
		return Vertical, nil
	case "h", "horizontal", "-":
		return Horizontal, nil
	}
	return Vertical, fmt.Errorf("unknown split axis %q", s)
}

// Side selects one child of an internal node.
type Side uint8

const (
	A Side = iota
	B
)

// Path addresses a node by the sides taken from the root.
type Path []Side

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		if s == A {
			parts[i] = "A"
		} else {
			parts[i] = "B"
		}
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Node is one subdivision. A leaf has no children and optionally holds a
// panel; an internal node has exactly two children split along axis.
type Node struct {
	rect     geom.Rect
	panel    int
	occupied bool

	axis     Axis
	children [2]*Node
}

func (n *Node) leaf() bool { return n.children[A] == nil }

// Slot describes an empty leaf.
type Slot struct {
	Path   Path
	Size   geom.Size
	Origin geom.Point
}

// Leaf is a snapshot of one leaf in traversal order.
type Leaf struct {
	Path     Path
	Rect     geom.Rect
	PanelID  int
	Occupied bool
}

// Tree is the subdivision tree. The zero value is not usable; use New.
type Tree struct {
	root *Node
}

// New returns a tree with a single empty leaf covering area.
func New(area geom.Rect) *Tree {
	return &Tree{root: &Node{rect: area}}
}

// Area returns the rectangle covered by the root.
func (t *Tree) Area() geom.Rect { return t.root.rect }

// Resize changes the root area and recomputes the geometry of every node.
func (t *Tree) Resize(area geom.Rect) {
	place(t.root, area)
}

// place assigns rect to n and divides it between n's children.
func place(n *Node, rect geom.Rect) {
	n.rect = rect
	if n.leaf() {
		return
	}
	a, b := divide(rect, n.axis)
	place(n.children[A], a)
	place(n.children[B], b)
}

// divide splits rect along axis leaving one line for the separator. The odd
// leftover line goes to B.
func divide(rect geom.Rect, axis Axis) (geom.Rect, geom.Rect) {
	if axis == Vertical {
		extent := max(rect.Size.Cols-1, 0)
		wa := extent / 2
		wb := extent - wa
		a := geom.R(rect.Origin.Row, rect.Origin.Col, rect.Size.Rows, wa)
		b := geom.R(rect.Origin.Row, rect.Origin.Col+wa+1, rect.Size.Rows, wb)
		return a, b
	}
	extent := max(rect.Size.Rows-1, 0)
	ha := extent / 2
	hb := extent - ha
	a := geom.R(rect.Origin.Row, rect.Origin.Col, ha, rect.Size.Cols)
	b := geom.R(rect.Origin.Row+ha+1, rect.Origin.Col, hb, rect.Size.Cols)
	return a, b
}

// separator returns the rule between an internal node's children.
func separator(n *Node) geom.Rect {
	a := n.children[A].rect
	if n.axis == Vertical {
		return geom.R(n.rect.Origin.Row, a.Right(), n.rect.Size.Rows, 1)
	}
	return geom.R(a.Bottom(), n.rect.Origin.Col, 1, n.rect.Size.Cols)
}

// FindNextEmptySlot returns the first empty leaf in depth-first order, A
// before B. It reports false when every leaf is occupied or the tree has no
// area.
func (t *Tree) FindNextEmptySlot() (Slot, bool) {
	if t.root.rect.Empty() {
		return Slot{}, false
	}
	var found Slot
	ok := false
	t.walk(func(n *Node, path Path) bool {
		if n.leaf() && !n.occupied && !n.rect.Empty() {
			found = Slot{Path: clonePath(path), Size: n.rect.Size, Origin: n.rect.Origin}
			ok = true
			return false
		}
		return true
	})
	return found, ok
}

// InsertPanelAtPath places id in the empty leaf at path.
func (t *Tree) InsertPanelAtPath(id int, path Path) error {
	if _, ok := t.find(id); ok {
		return fmt.Errorf("insert panel %d: %w", id, ErrDuplicatePanel)
	}
	n := t.root
	for _, side := range path {
		if n.leaf() || side > B {
			return fmt.Errorf("insert panel %d at %v: %w", id, path, ErrBadPath)
		}
		n = n.children[side]
	}
	if !n.leaf() || n.occupied {
		return fmt.Errorf("insert panel %d at %v: %w", id, path, ErrBadPath)
	}
	n.panel = id
	n.occupied = true
	return nil
}

// Split subdivides the leaf holding *target along axis. A nil target splits
// the root, which must be a single empty leaf. The existing panel moves into
// child A and child B is left empty. The returned size is child A's new size.
func (t *Tree) Split(target *int, axis Axis) (geom.Size, error) {
	var n *Node
	if target == nil {
		if !t.root.leaf() || t.root.occupied {
			return geom.Size{}, ErrRootNotEmpty
		}
		n = t.root
	} else {
		found, ok := t.find(*target)
		if !ok {
			return geom.Size{}, fmt.Errorf("split panel %d: %w", *target, ErrNoSuchPanel)
		}
		n = found
	}

	extent := n.rect.Size.Cols
	if axis == Horizontal {
		extent = n.rect.Size.Rows
	}
	if extent < 3 || n.rect.Empty() {
		return geom.Size{}, fmt.Errorf("split %v: %w", n.rect, ErrTooSmall)
	}

	a := &Node{panel: n.panel, occupied: n.occupied}
	b := &Node{}
	n.panel, n.occupied = 0, false
	n.axis = axis
	n.children = [2]*Node{a, b}
	place(n, n.rect)
	return a.rect.Size, nil
}

// ClosePanelWithID empties the leaf holding id and reports whether it was
// found.
//
// When the emptied leaf's sibling holds panels, the sibling's subtree takes
// the parent's place and its geometry is recomputed. When the sibling is an
// empty leaf the split is kept so the freed slot can be refilled at the same
// path.
func (t *Tree) ClosePanelWithID(id int) bool {
	var parent *Node
	var side Side
	var target *Node
	t.walkParents(func(n, p *Node, s Side) bool {
		if n.leaf() && n.occupied && n.panel == id {
			target, parent, side = n, p, s
			return false
		}
		return true
	})
	if target == nil {
		return false
	}
	target.panel, target.occupied = 0, false
	if parent == nil {
		return true
	}

	sibling := parent.children[1-side]
	if sibling.leaf() && !sibling.occupied {
		return true
	}
	rect := parent.rect
	*parent = *sibling
	place(parent, rect)
	return true
}

// FocusNextID returns the panel adjacent to current in direction dir.
func (t *Tree) FocusNextID(current int, dir Direction) (int, bool) {
	from, ok := t.find(current)
	if !ok {
		return 0, false
	}
	cur := from.rect

	best := -1
	bestDist, bestOverlap := 0, 0
	for _, leaf := range t.Leaves() {
		if !leaf.Occupied || leaf.PanelID == current {
			continue
		}
		dist, overlap, ok := dir.measure(cur, leaf.Rect)
		if !ok {
			continue
		}
		if best < 0 || dist < bestDist || (dist == bestDist && overlap > bestOverlap) {
			best, bestDist, bestOverlap = leaf.PanelID, dist, overlap
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// Geometry returns the rectangle of the leaf holding id.
func (t *Tree) Geometry(id int) (geom.Rect, bool) {
	n, ok := t.find(id)
	if !ok {
		return geom.Rect{}, false
	}
	return n.rect, true
}

// Leaves lists every leaf in depth-first order.
func (t *Tree) Leaves() []Leaf {
	var out []Leaf
	t.walk(func(n *Node, path Path) bool {
		if n.leaf() {
			out = append(out, Leaf{Path: clonePath(path), Rect: n.rect, PanelID: n.panel, Occupied: n.occupied})
		}
		return true
	})
	return out
}

// PanelIDs lists the panels in the tree in traversal order.
func (t *Tree) PanelIDs() []int {
	var ids []int
	for _, l := range t.Leaves() {
		if l.Occupied {
			ids = append(ids, l.PanelID)
		}
	}
	return ids
}

type rule struct {
	rect geom.Rect
	axis Axis
}

func (t *Tree) rules() []rule {
	var out []rule
	t.walk(func(n *Node, _ Path) bool {
		if !n.leaf() {
			out = append(out, rule{rect: separator(n), axis: n.axis})
		}
		return true
	})
	return out
}

// Separators returns every separator rule.
func (t *Tree) Separators() []geom.Rect {
	rules := t.rules()
	out := make([]geom.Rect, len(rules))
	for i, r := range rules {
		out[i] = r.rect
	}
	return out
}

func (t *Tree) find(id int) (*Node, bool) {
	var found *Node
	t.walk(func(n *Node, _ Path) bool {
		if n.leaf() && n.occupied && n.panel == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// walk visits nodes depth first, A before B. Returning false stops the walk.
func (t *Tree) walk(fn func(n *Node, path Path) bool) {
	var path Path
	var visit func(n *Node) bool
	visit = func(n *Node) bool {
		if !fn(n, path) {
			return false
		}
		if n.leaf() {
			return true
		}
		for _, s := range []Side{A, B} {
			path = append(path, s)
			cont := visit(n.children[s])
			path = path[:len(path)-1]
			if !cont {
				return false
			}
		}
		return true
	}
	visit(t.root)
}

func (t *Tree) walkParents(fn func(n, parent *Node, side Side) bool) {
	var visit func(n, parent *Node, side Side) bool
	visit = func(n, parent *Node, side Side) bool {
		if !fn(n, parent, side) {
			return false
		}
		if n.leaf() {
			return true
		}
		return visit(n.children[A], n, A) && visit(n.children[B], n, B)
	}
	visit(t.root, nil, A)
}

func clonePath(p Path) Path {
	if len(p) == 0 {
		return Path{}
	}
	return append(Path(nil), p...)
}
