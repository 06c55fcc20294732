// Package target implements the scoring surface and the shot markers placed
// on it.
package target

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/target/internal/haptic"
	"github.com/tomz197/target/internal/ledger"
	"github.com/tomz197/target/internal/ring"
	"github.com/tomz197/target/internal/scene"
	"github.com/tomz197/target/pkg/metrics"
)

// Config describes the target's geometry.
type Config struct {
	Width           float64 // Frame width in logical units
	Height          float64 // Frame height in logical units
	BaseRingSize    float64 // Size increment per ring
	RingBaseZ       int     // Rings paint at RingBaseZ-1 (innermost) down to RingBaseZ-n
	CenterSize      float64
	CrosshairLength float64
	CenterZ         int
	Rings           []ring.Config
	Vibration       time.Duration
}

// DefaultConfig returns the standard 500x500 ten-ring target.
func DefaultConfig() Config {
	return Config{
		Width:           500,
		Height:          500,
		BaseRingSize:    40,
		RingBaseZ:       100,
		CenterSize:      20,
		CrosshairLength: 5,
		CenterZ:         101,
		Rings:           ring.Defaults(),
		Vibration:       haptic.DefaultDuration,
	}
}

// Option configures a Surface.
type Option func(*Surface)

// WithConfig replaces the default geometry.
func WithConfig(cfg Config) Option {
	return func(s *Surface) {
		s.cfg = cfg
	}
}

// WithVibrator sets the tactile feedback device.
func WithVibrator(v haptic.Vibrator) Option {
	return func(s *Surface) {
		if v != nil {
			s.vibrator = v
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Surface) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Surface) {
		if l != nil {
			s.log = l
		}
	}
}

// Surface is the scoring target: ring shapes, the centre decoration and the
// markers placed on them. It turns taps into ledger entries.
type Surface struct {
	cfg      Config
	scene    *scene.Scene
	ledger   *ledger.Ledger
	dragging *ledger.Index
	vibrator haptic.Vibrator
	recorder metrics.Recorder
	log      *log.Logger

	group      *scene.Node
	center     scene.Point
	rings      []*scene.Node
	specs      map[scene.Handle]ring.Spec // Typed identity lookup for ring shapes
	decoration *scene.Node
	markers    []*Marker
	nextID     atomic.Int64
	destroyed  bool
}

// NewSurface builds the rings and centre decoration, adds them to sc and
// starts listening for taps. l and dragging are shared with the caller.
func NewSurface(sc *scene.Scene, l *ledger.Ledger, dragging *ledger.Index, opts ...Option) *Surface {
	s := &Surface{
		cfg:      DefaultConfig(),
		scene:    sc,
		ledger:   l,
		dragging: dragging,
		vibrator: haptic.Nop{},
		recorder: metrics.Nop{},
		log:      log.New(io.Discard),
		specs:    make(map[scene.Handle]ring.Spec),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.center = scene.Point{X: s.cfg.Width / 2, Y: s.cfg.Height / 2}

	// The sized, untagged group doubles as the background: taps anywhere on
	// the frame reach it, and the resolver ignores it.
	s.group = scene.NewGroup("")
	s.group.Width = s.cfg.Width
	s.group.Height = s.cfg.Height

	s.rings = s.createRings()
	s.decoration = s.createCenter()
	s.group.Add(s.rings...)
	s.group.Add(s.decoration)
	sc.Add(s.group)

	sc.On(s.group, scene.EventTap, func(ev *scene.Event) {
		s.Tap(ev.Point)
	})

	s.log.Debug("target initialized", "rings", len(s.rings), "width", s.cfg.Width, "height", s.cfg.Height)
	return s
}

// createRings builds one ellipse per ring spec, innermost first.
func (s *Surface) createRings() []*scene.Node {
	specs := ring.Build(s.cfg.Rings)
	nodes := make([]*scene.Node, len(specs))
	for i, spec := range specs {
		size := ring.Size(i, s.cfg.BaseRingSize)
		n := scene.NewEllipse(s.center.X, s.center.Y, size.Width, size.Height, spec.Fill)
		n.ID = spec.Identity()
		n.Stroke = ring.StrokeFor(spec.Score)
		n.StrokeWidth = ring.StrokeWidth
		n.ZIndex = ring.ZIndex(s.cfg.RingBaseZ, i+1)
		s.specs[n.Handle()] = spec
		nodes[i] = n
	}
	return nodes
}

// createCenter builds the bullseye outline and crosshair. It is painted
// above the rings but never picked, so scoring always comes from the rings.
func (s *Surface) createCenter() *scene.Node {
	half := s.cfg.CrosshairLength / 2

	outline := scene.NewEllipse(s.center.X, s.center.Y, s.cfg.CenterSize, s.cfg.CenterSize, "transparent")
	outline.ID = IDCenter
	outline.Stroke = ring.StrokeDefault
	outline.StrokeWidth = ring.StrokeWidth

	horizontal := scene.NewLine(s.center.X-half, s.center.Y, s.cfg.CrosshairLength, false, ring.StrokeDefault)
	horizontal.ID = IDCenter
	vertical := scene.NewLine(s.center.X, s.center.Y-half, s.cfg.CrosshairLength, true, ring.StrokeDefault)
	vertical.ID = IDCenter

	g := scene.NewGroup(IDCenter, outline, horizontal, vertical)
	g.ZIndex = s.cfg.CenterZ
	g.Interactable = false
	return g
}

// ResolveScoreAt returns the score of the ring under p, or 0 when p is
// outside every ring.
func (s *Surface) ResolveScoreAt(p scene.Point) int {
	_, spec, ok := s.resolve(p, NonScoring)
	if !ok {
		return 0
	}
	return spec.Score
}

// resolve finds the ring under p: every shape under the point in paint
// order, minus the excluded ones, last one wins.
func (s *Surface) resolve(p scene.Point, exclude func(*scene.Node) bool) (*scene.Node, ring.Spec, bool) {
	s.mustBeLive()
	res := s.scene.Pick(p, scene.PickOptions{Through: true, Root: s.group})
	n := LastCandidate(res.Path, exclude)
	if n == nil {
		return nil, ring.Spec{}, false
	}
	if spec, ok := s.specs[n.Handle()]; ok {
		return n, spec, true
	}
	id := ring.DecodeIdentity(n.ID)
	return n, ring.Spec{Score: id.Score, Fill: id.Fill, Highlight: id.Highlight}, true
}

// Tap places a new marker at p, scores it and appends it to the ledger.
func (s *Surface) Tap(p scene.Point) *Marker {
	s.mustBeLive()

	id := int(s.nextID.Add(1))
	m := newMarker(s, id, p)
	s.group.Add(m.group)
	s.markers = append(s.markers, m)

	score := s.ResolveScoreAt(p)
	s.ledger.Append(ledger.Entry{ID: id, Score: score})
	s.recorder.ShotPlaced(score)

	s.log.Debug("shot placed", "id", id, "score", score, "x", p.X, "y", p.Y)
	return m
}

// Destroy removes the target and all of its markers from the scene. The
// surface cannot be used afterwards.
func (s *Surface) Destroy() {
	if s.destroyed {
		return
	}
	for _, m := range s.markers {
		if m.state == Dragging {
			s.dragging.Reset()
			break
		}
	}
	s.scene.Remove(s.group)
	s.markers = nil
	s.destroyed = true
	s.log.Debug("target destroyed")
}

func (s *Surface) mustBeLive() {
	if s.destroyed {
		panic("target: surface used after Destroy")
	}
}

// Group returns the root node of the target.
func (s *Surface) Group() *scene.Node {
	return s.group
}

// Center returns the target centre.
func (s *Surface) Center() scene.Point {
	return s.center
}

// Rings returns the ring shapes, innermost first.
func (s *Surface) Rings() []*scene.Node {
	return s.rings
}

// Decoration returns the centre decoration group.
func (s *Surface) Decoration() *scene.Node {
	return s.decoration
}

// SpecOf returns the ring spec attached to a ring shape.
func (s *Surface) SpecOf(n *scene.Node) (ring.Spec, bool) {
	spec, ok := s.specs[n.Handle()]
	return spec, ok
}

// Markers returns the markers in creation order.
func (s *Surface) Markers() []*Marker {
	return s.markers
}

// Config returns the geometry the surface was built with.
func (s *Surface) Config() Config {
	return s.cfg
}
