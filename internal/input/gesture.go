package input

import (
	"time"

	"github.com/tomz197/target/internal/physics"
	"github.com/tomz197/target/internal/scene"
)

// Gesture defaults.
const (
	DefaultLongPress = 300 * time.Millisecond
	DefaultDeadZone  = 6.0
)

// Recognizer turns raw press/move/release reports into tap, long-press,
// drag and up events.
//
// A press released before the long-press threshold yields UP then TAP. A
// press held past it yields LONG_PRESS (from Tick, Move or Release,
// whichever sees the time first); afterwards every move is a DRAG and the
// release is an UP. Moving beyond the dead zone before the threshold turns
// the press into a plain swipe: no long press and no tap.
type Recognizer struct {
	longPress time.Duration
	deadZone  float64

	pressed   bool
	long      bool
	cancelled bool
	start     scene.Point
	last      scene.Point
	pressedAt time.Time
}

// NewRecognizer creates a recognizer. Non-positive values take the defaults.
func NewRecognizer(longPress time.Duration, deadZone float64) *Recognizer {
	if longPress <= 0 {
		longPress = DefaultLongPress
	}
	if deadZone < 0 {
		deadZone = DefaultDeadZone
	}
	return &Recognizer{longPress: longPress, deadZone: deadZone}
}

// Pressed reports whether a press is in progress.
func (r *Recognizer) Pressed() bool {
	return r.pressed
}

// Press starts a new gesture at p. A press without a release in between
// restarts the gesture.
func (r *Recognizer) Press(p scene.Point, now time.Time) []scene.Event {
	var out []scene.Event
	if r.pressed && r.long {
		out = append(out, scene.Event{Type: scene.EventUp, Point: r.last})
	}
	*r = Recognizer{longPress: r.longPress, deadZone: r.deadZone}
	r.pressed = true
	r.start, r.last = p, p
	r.pressedAt = now
	return out
}

// Tick fires the long press once the threshold has passed.
func (r *Recognizer) Tick(now time.Time) []scene.Event {
	if !r.due(now) {
		return nil
	}
	r.long = true
	// Drags are measured from where the long press landed
	r.last = r.start
	return []scene.Event{{Type: scene.EventLongPress, Point: r.start}}
}

// Move reports pointer motion with the button held.
func (r *Recognizer) Move(p scene.Point, now time.Time) []scene.Event {
	if !r.pressed {
		return nil
	}
	out := r.Tick(now)
	if !r.long {
		if physics.Distance(r.start.X, r.start.Y, p.X, p.Y) > r.deadZone {
			r.cancelled = true
		}
		r.last = p
		return out
	}
	return append(out, r.drag(p)...)
}

// Release ends the gesture at p.
func (r *Recognizer) Release(p scene.Point, now time.Time) []scene.Event {
	if !r.pressed {
		return nil
	}
	out := r.Tick(now)
	if r.long {
		out = append(out, r.drag(p)...)
		out = append(out, scene.Event{Type: scene.EventUp, Point: p})
	} else {
		out = append(out, scene.Event{Type: scene.EventUp, Point: p})
		if !r.cancelled && physics.Distance(r.start.X, r.start.Y, p.X, p.Y) <= r.deadZone {
			out = append(out, scene.Event{Type: scene.EventTap, Point: r.start})
		}
	}
	*r = Recognizer{longPress: r.longPress, deadZone: r.deadZone}
	return out
}

func (r *Recognizer) due(now time.Time) bool {
	return r.pressed && !r.long && !r.cancelled && now.Sub(r.pressedAt) >= r.longPress
}

func (r *Recognizer) drag(p scene.Point) []scene.Event {
	delta := p.Sub(r.last)
	if delta.X == 0 && delta.Y == 0 {
		return nil
	}
	r.last = p
	return []scene.Event{{Type: scene.EventDrag, Point: p, Delta: delta}}
}
