// Package clock provides the monotonic millisecond time source used by the pool.
package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/intern/internal/core/ports"
)

var _ ports.Clock = (*Monotonic)(nil)

// Monotonic counts milliseconds since it was created.
// time.Time carries a monotonic reading, so Since never goes backwards.
type Monotonic struct {
	clock clockwork.Clock
	epoch time.Time
}

// New creates a Monotonic on the real clock.
func New() *Monotonic {
	return NewWithClock(clockwork.NewRealClock())
}

// NewWithClock creates a Monotonic on the given clock. Tests pass a fake clock.
func NewWithClock(c clockwork.Clock) *Monotonic {
	return &Monotonic{
		clock: c,
		epoch: c.Now(),
	}
}

// NowMillis returns the milliseconds elapsed since the clock was created.
func (m *Monotonic) NowMillis() uint64 {
	d := m.clock.Since(m.epoch)
	if d < 0 {
		return 0
	}
	return uint64(d.Milliseconds())
}
