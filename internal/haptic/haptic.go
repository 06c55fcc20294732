// Package haptic provides best-effort tactile feedback. Feedback is never
// required: unsupported devices are skipped silently.
package haptic

import (
	"io"
	"sync"
	"time"
)

// DefaultDuration is the pulse length used when none is configured.
const DefaultDuration = 100 * time.Millisecond

// Vibrator produces tactile feedback.
type Vibrator interface {
	// Supported reports whether the device can give feedback at all.
	Supported() bool
	// Vibrate pulses for roughly d.
	Vibrate(d time.Duration)
}

// Trigger vibrates v for d when v exists and supports it.
func Trigger(v Vibrator, d time.Duration) {
	if v == nil || !v.Supported() {
		return
	}
	if d <= 0 {
		d = DefaultDuration
	}
	v.Vibrate(d)
}

// Nop never vibrates.
type Nop struct{}

// Supported always returns false.
func (Nop) Supported() bool { return false }

// Vibrate does nothing.
func (Nop) Vibrate(time.Duration) {}

// Bell rings the terminal bell, the closest a terminal gets to a vibration
// motor. Pulses closer together than the minimum gap are dropped so a fast
// drag across rings does not turn into a buzz.
type Bell struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
	minGap  time.Duration
	last    time.Time
	now     func() time.Time
}

// NewBell creates a bell writing to w. A nil writer or enabled=false makes
// the bell unsupported.
func NewBell(w io.Writer, enabled bool) *Bell {
	return &Bell{
		w:       w,
		enabled: enabled,
		minGap:  50 * time.Millisecond,
		now:     time.Now,
	}
}

// Supported reports whether the bell can ring.
func (b *Bell) Supported() bool {
	return b != nil && b.enabled && b.w != nil
}

// Vibrate rings the bell. Write errors are ignored.
func (b *Bell) Vibrate(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	if !b.last.IsZero() && now.Sub(b.last) < b.minGap {
		return
	}
	b.last = now
	_, _ = io.WriteString(b.w, "\a")
}

// Ensure implementations satisfy Vibrator.
var (
	_ Vibrator = Nop{}
	_ Vibrator = (*Bell)(nil)
)
