package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives domain events worth counting. Implementations must be
// safe for concurrent use because every session records into the same one.
type Recorder interface {
	ShotPlaced(score int)
	ScoreAdjusted(score int)
	DragStarted()
	RingEntered()
	TargetReset()
	AverageSettled(average float64)
}

// Nop discards everything.
type Nop struct{}

func (Nop) ShotPlaced(int)    {}
func (Nop) ScoreAdjusted(int) {}
func (Nop) DragStarted()      {}
func (Nop) RingEntered()      {}
func (Nop) TargetReset()      {}

func (Nop) AverageSettled(float64) {}

// scoreBuckets has one bucket per ring score.
var scoreBuckets = []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

// Manager owns the Prometheus collectors.
type Manager struct {
	namespace string
	subsystem string
	registry  *prometheus.Registry

	shotsPlaced    prometheus.Counter
	shotScores     prometheus.Histogram
	scoreAdjusts   prometheus.Counter
	dragSessions   prometheus.Counter
	ringsEntered   prometheus.Counter
	targetResets   prometheus.Counter
	averages       prometheus.Histogram
	activeSessions prometheus.Gauge
	sessionsTotal  prometheus.Counter
}

// Compile-time check that Manager implements Recorder.
var _ Recorder = (*Manager)(nil)

// NewManager creates a metrics manager. Without WithRegistry a fresh
// registry is used so Go runtime metrics stay out of the way.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "target",
		subsystem: "range",
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.shotsPlaced = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "shots_placed_total",
		Help:      "Total number of shots placed by tapping the target",
	})

	m.shotScores = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "shot_score",
		Help:      "Score of each shot at the moment it was placed",
		Buckets:   scoreBuckets,
	})

	m.scoreAdjusts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_adjustments_total",
		Help:      "Total number of live score updates while dragging",
	})

	m.dragSessions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "drag_sessions_total",
		Help:      "Total number of long-press drag sessions started",
	})

	m.ringsEntered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rings_entered_total",
		Help:      "Total number of distinct rings entered while dragging",
	})

	m.targetResets = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "target_resets_total",
		Help:      "Total number of full target resets",
	})

	m.averages = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "settled_average_score",
		Help:      "Session average score once the ledger has been quiet for a while",
		Buckets:   scoreBuckets,
	})

	m.activeSessions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_sessions",
		Help:      "Number of terminal sessions currently connected",
	})

	m.sessionsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_total",
		Help:      "Total number of terminal sessions opened",
	})
}

// ShotPlaced records a new shot and its initial score.
func (m *Manager) ShotPlaced(score int) {
	m.shotsPlaced.Inc()
	m.shotScores.Observe(float64(score))
}

// ScoreAdjusted records a live score update during a drag.
func (m *Manager) ScoreAdjusted(int) {
	m.scoreAdjusts.Inc()
}

// DragStarted records the start of a drag session.
func (m *Manager) DragStarted() {
	m.dragSessions.Inc()
}

// RingEntered records the pointer entering a new ring while dragging.
func (m *Manager) RingEntered() {
	m.ringsEntered.Inc()
}

// TargetReset records a full reset.
func (m *Manager) TargetReset() {
	m.targetResets.Inc()
}

// AverageSettled records a session's average score after a burst of ledger
// changes has settled.
func (m *Manager) AverageSettled(average float64) {
	m.averages.Observe(average)
}

// SessionOpened records a terminal session connecting.
func (m *Manager) SessionOpened() {
	m.sessionsTotal.Inc()
	m.activeSessions.Inc()
}

// SessionClosed records a terminal session disconnecting.
func (m *Manager) SessionClosed() {
	m.activeSessions.Dec()
}

// Registry returns the registry the collectors live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collected metrics in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
