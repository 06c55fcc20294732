// Package app wires a scene, a score ledger and a target surface into one
// shooting session.
package app

import (
	"io"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/log"
	"github.com/tomz197/target/internal/ledger"
	"github.com/tomz197/target/internal/scene"
	"github.com/tomz197/target/internal/target"
	"github.com/tomz197/target/pkg/metrics"
)

// DefaultSettle is how long the ledger must stay quiet before a summary is
// logged.
const DefaultSettle = 500 * time.Millisecond

// Option configures an App.
type Option func(*App)

// WithTargetOptions passes options through to every surface the app builds.
func WithTargetOptions(opts ...target.Option) Option {
	return func(a *App) {
		a.targetOpts = append(a.targetOpts, opts...)
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithRecorder sets the metrics recorder shared with the surface.
func WithRecorder(r metrics.Recorder) Option {
	return func(a *App) {
		if r != nil {
			a.recorder = r
		}
	}
}

// WithSettle sets the ledger debounce interval. Zero disables the
// settled-summary observer.
func WithSettle(d time.Duration) Option {
	return func(a *App) {
		a.settle = d
	}
}

// App is a single shooting session.
type App struct {
	scene    *scene.Scene
	ledger   *ledger.Ledger
	dragging *ledger.Index
	surface  *target.Surface

	targetOpts []target.Option
	recorder   metrics.Recorder
	log        *log.Logger
	settle     time.Duration
}

// New creates an app drawing into sc. Call Initialize before use.
func New(sc *scene.Scene, opts ...Option) *App {
	a := &App{
		scene:    sc,
		ledger:   ledger.New(),
		dragging: ledger.NewIndex(),
		recorder: metrics.Nop{},
		log:      log.New(io.Discard),
		settle:   DefaultSettle,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.settle > 0 {
		debounced := debounce.New(a.settle)
		a.ledger.Subscribe(func([]ledger.Entry) {
			debounced(a.settled)
		})
	}
	return a
}

// settled runs on a timer goroutine once the ledger stops changing.
func (a *App) settled() {
	stats := a.ledger.Stats()
	a.log.Info("scores settled",
		"count", stats.Count,
		"total", stats.Total,
		"average", stats.Average,
		"max", stats.Max,
		"min", stats.Min,
	)
	if stats.Count > 0 {
		a.recorder.AverageSettled(stats.Average)
	}
}

// Initialize builds the target. Calling it on an initialized app does
// nothing.
func (a *App) Initialize() {
	if a.surface != nil {
		return
	}
	opts := append([]target.Option{
		target.WithRecorder(a.recorder),
		target.WithLogger(a.log),
	}, a.targetOpts...)
	a.surface = target.NewSurface(a.scene, a.ledger, a.dragging, opts...)
}

// Reset clears every score and rebuilds the target, so shot ids start
// again from 1.
func (a *App) Reset() {
	a.ledger.Clear()
	a.dragging.Reset()
	if a.surface != nil {
		a.surface.Destroy()
		a.surface = nil
	}
	a.Initialize()
	a.recorder.TargetReset()
	a.log.Debug("target reset")
}

// Tap places a shot at p. It panics if the app was never initialized.
func (a *App) Tap(p scene.Point) *target.Marker {
	if a.surface == nil {
		panic("app: Tap called before Initialize")
	}
	return a.surface.Tap(p)
}

// Group returns the target's root node, or nil before Initialize.
func (a *App) Group() *scene.Node {
	if a.surface == nil {
		return nil
	}
	return a.surface.Group()
}

// Surface returns the current target surface, or nil before Initialize.
func (a *App) Surface() *target.Surface {
	return a.surface
}

// Scene returns the scene the app draws into.
func (a *App) Scene() *scene.Scene {
	return a.scene
}

// Ledger returns the score ledger.
func (a *App) Ledger() *ledger.Ledger {
	return a.ledger
}

// DraggingIndex returns the index of the marker being dragged, or
// ledger.None.
func (a *App) DraggingIndex() *ledger.Index {
	return a.dragging
}

// Stats summarises the current scores.
func (a *App) Stats() ledger.Stats {
	return a.ledger.Stats()
}
