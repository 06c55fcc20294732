package target

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/target/internal/haptic"
	"github.com/tomz197/target/internal/ledger"
	"github.com/tomz197/target/internal/ring"
	"github.com/tomz197/target/internal/scene"
	"github.com/tomz197/target/pkg/metrics"
)

// Marker visuals.
const (
	DotSize         = 10
	HaloSize        = 18
	OutlineSize     = 24
	OverlayLineSize = 40

	DotFill       = "#808080"
	ActiveDotFill = "#008000"
	HaloFill      = "#80ff80"
	OutlineStroke = "#ffffff"

	dotZ     = 998
	markerZ  = 999
	overlayZ = 1000
)

// MarkerState is the drag state of a marker.
type MarkerState int

const (
	Resting MarkerState = iota
	Dragging
)

func (s MarkerState) String() string {
	switch s {
	case Resting:
		return "resting"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Marker is a placed shot. A long press picks it up, dragging re-scores it
// live against the ring under the pointer, and releasing drops it.
type Marker struct {
	id       int
	surface  *Surface
	update   ledger.EntryHandle
	dragging *ledger.Index

	group   *scene.Node
	dot     *scene.Node
	overlay *scene.Node

	state           MarkerState
	highlighted     *scene.Node
	highlightedSpec ring.Spec

	vibrator  haptic.Vibrator
	vibration time.Duration
	recorder  metrics.Recorder
	log       *log.Logger
}

func newMarker(s *Surface, id int, p scene.Point) *Marker {
	m := &Marker{
		id:        id,
		surface:   s,
		update:    s.ledger.Handle(id),
		dragging:  s.dragging,
		vibrator:  s.vibrator,
		vibration: s.cfg.Vibration,
		recorder:  s.recorder,
		log:       s.log.With("marker", id),
	}

	m.dot = scene.NewEllipse(p.X, p.Y, DotSize, DotSize, DotFill)
	m.dot.ID = IDDot
	m.dot.Stroke = OutlineStroke
	m.dot.StrokeWidth = 1
	m.dot.ZIndex = dotZ

	m.overlay = newOverlay(p)

	m.group = scene.NewGroup("", m.dot, m.overlay)
	m.group.X, m.group.Y = p.X, p.Y
	m.group.ZIndex = markerZ

	// Registered once for the marker's lifetime; they are dropped with the
	// marker's subtree when the target is destroyed.
	sc := s.scene
	sc.On(m.group, scene.EventLongPress, func(*scene.Event) { m.PickUp() })
	sc.On(m.group, scene.EventDrag, func(ev *scene.Event) { m.DragTo(ev.Point) })
	sc.On(m.group, scene.EventUp, func(*scene.Event) { m.Release() })
	return m
}

// newOverlay builds the hidden "active" decoration shown while dragging: a
// green dot, a translucent halo, a white outline and a crosshair.
func newOverlay(p scene.Point) *scene.Node {
	active := scene.NewEllipse(p.X, p.Y, DotSize, DotSize, ActiveDotFill)
	active.ZIndex = dotZ

	halo := scene.NewEllipse(p.X, p.Y, HaloSize, HaloSize, HaloFill)
	halo.ZIndex = dotZ - 1

	outline := scene.NewEllipse(p.X, p.Y, OutlineSize, OutlineSize, "transparent")
	outline.Stroke = OutlineStroke
	outline.StrokeWidth = 1
	outline.ZIndex = dotZ - 2

	half := float64(OverlayLineSize) / 2
	horizontal := scene.NewLine(p.X-half, p.Y, OverlayLineSize, false, OutlineStroke)
	horizontal.ZIndex = dotZ - 3
	vertical := scene.NewLine(p.X, p.Y-half, OverlayLineSize, true, OutlineStroke)
	vertical.ZIndex = dotZ - 3

	g := scene.NewGroup(IDActiveOverlay, active, halo, outline, horizontal, vertical)
	g.X, g.Y = p.X, p.Y
	g.ZIndex = overlayZ
	g.Visible = false
	return g
}

// PickUp starts a drag session. It is ignored unless the marker is resting.
func (m *Marker) PickUp() {
	if m.state != Resting {
		return
	}
	m.state = Dragging
	m.group.Draggable = true
	m.overlay.Visible = true
	m.dragging.Set(m.id - 1)

	haptic.Trigger(m.vibrator, m.vibration)
	m.recorder.DragStarted()
	m.log.Debug("drag started")
}

// DragTo re-scores the marker against the ring under the pointer p, not
// under the dot: a grab off the dot's centre keeps its offset. Outside
// every ring the previous score and highlight are kept.
func (m *Marker) DragTo(p scene.Point) {
	if m.state != Dragging {
		return
	}
	n, spec, ok := m.surface.resolve(p, m.excluded)
	if !ok {
		return
	}

	n.SetFill(spec.Highlight)
	m.update(spec.Score)
	m.recorder.ScoreAdjusted(spec.Score)

	if n == m.highlighted {
		return
	}
	if m.highlighted != nil {
		m.highlighted.SetFill(m.highlightedSpec.Fill)
	}
	m.highlighted, m.highlightedSpec = n, spec

	haptic.Trigger(m.vibrator, m.vibration)
	m.recorder.RingEntered()
	m.log.Debug("entered ring", "score", spec.Score)
}

// Release ends the drag session, restoring the highlighted ring and the
// resting look. Releasing a resting marker does nothing.
func (m *Marker) Release() {
	if m.state != Dragging {
		return
	}
	m.state = Resting
	m.group.Draggable = false
	m.overlay.Visible = false
	m.dragging.Reset()

	if m.highlighted != nil {
		m.highlighted.SetFill(m.highlightedSpec.Fill)
		m.highlighted = nil
		m.highlightedSpec = ring.Spec{}
	}
	m.log.Debug("drag ended")
}

// excluded filters decorations and the marker's own shapes out of the
// drag-time hit test.
func (m *Marker) excluded(n *scene.Node) bool {
	if NonScoring(n) {
		return true
	}
	for x := n; x != nil; x = x.Parent() {
		if x == m.group {
			return true
		}
	}
	return false
}

// ID returns the marker's ledger id.
func (m *Marker) ID() int {
	return m.id
}

// State returns the current drag state.
func (m *Marker) State() MarkerState {
	return m.state
}

// Position returns the centre of the marker dot.
func (m *Marker) Position() scene.Point {
	return scene.Point{X: m.dot.X, Y: m.dot.Y}
}

// Group returns the marker's root node.
func (m *Marker) Group() *scene.Node {
	return m.group
}

// Dot returns the resting dot shape.
func (m *Marker) Dot() *scene.Node {
	return m.dot
}

// Overlay returns the decoration shown while dragging.
func (m *Marker) Overlay() *scene.Node {
	return m.overlay
}
