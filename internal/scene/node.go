// Package scene is a minimal retained scene graph: shapes with identity tags,
// z-ordered painting, hit-testing and pointer event delivery.
package scene

import (
	"sort"
	"sync/atomic"

	"github.com/tomz197/target/internal/physics"
)

// Point is a position in logical scene coordinates.
type Point struct {
	X, Y float64
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Handle is a stable per-process node identifier, usable as a map key.
type Handle uint64

var nextHandle atomic.Uint64

// Kind identifies the shape a node draws.
type Kind int

const (
	KindGroup   Kind = iota // Container; hit-testable only when sized
	KindEllipse             // Filled ellipse centred on (X, Y)
	KindLine                // Segment starting at (X, Y), Width long
)

// lineHitTolerance is the minimum half-thickness used when hit-testing lines.
const lineHitTolerance = 0.5

// Node is a shape or a group of shapes.
//
// Geometry depends on Kind: ellipses are centred on (X, Y) with a Width x
// Height bounding box; lines start at (X, Y) and run Width units right, or
// down when Vertical is set; sized groups cover the rectangle with top-left
// corner (X, Y).
type Node struct {
	ID          string // Identity tag, read back after hit-testing
	Kind        Kind
	X, Y        float64
	Width       float64
	Height      float64
	Vertical    bool
	Fill        string
	Stroke      string
	StrokeWidth float64
	ZIndex      int

	Visible      bool // Hidden nodes are neither painted nor picked
	Interactable bool // Non-interactable subtrees are painted but never picked
	Draggable    bool // Drag events translate the node while set

	handle   Handle
	parent   *Node
	children []*Node
}

func newNode(kind Kind) *Node {
	return &Node{
		Kind:         kind,
		Visible:      true,
		Interactable: true,
		handle:       Handle(nextHandle.Add(1)),
	}
}

// NewGroup creates a group holding children.
func NewGroup(id string, children ...*Node) *Node {
	n := newNode(KindGroup)
	n.ID = id
	n.Add(children...)
	return n
}

// NewEllipse creates an ellipse centred on (x, y).
func NewEllipse(x, y, width, height float64, fill string) *Node {
	n := newNode(KindEllipse)
	n.X, n.Y = x, y
	n.Width, n.Height = width, height
	n.Fill = fill
	return n
}

// NewLine creates a line of the given length starting at (x, y).
func NewLine(x, y, length float64, vertical bool, stroke string) *Node {
	n := newNode(KindLine)
	n.X, n.Y = x, y
	n.Width = length
	n.Vertical = vertical
	n.Stroke = stroke
	n.StrokeWidth = lineHitTolerance
	return n
}

// Handle returns the node's stable identifier.
func (n *Node) Handle() Handle {
	return n.handle
}

// Parent returns the node's parent, or nil for detached nodes.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children in insertion order. The slice must
// not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Add appends children, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.parent != nil {
			c.parent.remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Detach removes the node from its parent.
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.remove(n)
	}
}

func (n *Node) remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			child.parent = nil
			return
		}
	}
}

// Find returns the first descendant (depth-first, insertion order) with the
// given id, or nil.
func (n *Node) Find(id string) *Node {
	for _, c := range n.children {
		if c.ID == id {
			return c
		}
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// SetFill changes the node's fill colour.
func (n *Node) SetFill(fill string) {
	n.Fill = fill
}

// Move translates the node and all its descendants.
func (n *Node) Move(dx, dy float64) {
	n.X += dx
	n.Y += dy
	for _, c := range n.children {
		c.Move(dx, dy)
	}
}

// Contains reports whether p lies inside the node's own shape. Children are
// not considered.
func (n *Node) Contains(p Point) bool {
	switch n.Kind {
	case KindEllipse:
		return physics.PointInEllipse(p.X, p.Y, n.X, n.Y, n.Width/2, n.Height/2)
	case KindLine:
		tol := n.StrokeWidth
		if tol < lineHitTolerance {
			tol = lineHitTolerance
		}
		x2, y2 := n.X+n.Width, n.Y
		if n.Vertical {
			x2, y2 = n.X, n.Y+n.Width
		}
		return physics.PointNearSegment(p.X, p.Y, n.X, n.Y, x2, y2, tol)
	case KindGroup:
		if n.Width <= 0 || n.Height <= 0 {
			return false
		}
		return p.X >= n.X && p.X <= n.X+n.Width && p.Y >= n.Y && p.Y <= n.Y+n.Height
	}
	return false
}

// sortedChildren returns children ordered by ZIndex, keeping insertion order
// for equal values.
func (n *Node) sortedChildren() []*Node {
	if len(n.children) < 2 {
		return n.children
	}
	sorted := make([]*Node, len(n.children))
	copy(sorted, n.children)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ZIndex < sorted[j].ZIndex
	})
	return sorted
}

// PaintOrder returns the visible nodes under root (root included) in the
// order they are painted: parents before children, siblings by ZIndex.
func PaintOrder(root *Node) []*Node {
	return collect(root, nil, false)
}

// collect walks the tree in painter order. With interactiveOnly set,
// non-interactable subtrees are skipped as well as hidden ones.
func collect(n *Node, buf []*Node, interactiveOnly bool) []*Node {
	if n == nil || !n.Visible {
		return buf
	}
	if interactiveOnly && !n.Interactable {
		return buf
	}
	buf = append(buf, n)
	for _, c := range n.sortedChildren() {
		buf = collect(c, buf, interactiveOnly)
	}
	return buf
}
