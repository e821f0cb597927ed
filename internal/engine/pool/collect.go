package pool

import (
	"fmt"
	"slices"
)

// Collect runs a collection pass now, ignoring the size threshold and the
// cooldown. It returns the number of entries reclaimed.
func (p *Pool) Collect() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.collectLocked(p.clock.NowMillis())
}

// collectIfDueLocked runs a pass when the pool is larger than the threshold
// and either no pass has run yet or the cooldown since the previous pass has
// elapsed.
func (p *Pool) collectIfDueLocked() {
	if len(p.entries) <= p.cfg.MinSizeForGC {
		return
	}

	now := p.clock.NowMillis()
	if p.collected && (now < p.lastCollection || now-p.lastCollection <= uint64(p.cfg.GCInterval.Milliseconds())) {
		return
	}

	p.collectLocked(now)
}

// collectLocked removes every entry the pool alone still holds. The scan runs
// from the last index down so positional removal never skips an entry.
// The cooldown restarts even when nothing was removed.
func (p *Pool) collectLocked(now uint64) int {
	removed := 0
	for i := len(p.entries) - 1; i >= 0; i-- {
		if p.entries[i].RefCount() == 1 {
			p.entries = slices.Delete(p.entries, i, i+1)
			removed++
		}
	}

	p.lastCollection = now
	p.collected = true
	p.collections++
	p.reclaimed += uint64(removed)

	if removed > 0 && p.logger != nil {
		p.logger.Info(fmt.Sprintf("string pool reclaimed %d entries, %d remain", removed, len(p.entries)))
	}

	return removed
}
