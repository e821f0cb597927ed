package pool

import "go.trai.ch/intern/internal/core/domain"

// SearchIndex exposes the binary search for testing purposes only.
func (p *Pool) SearchIndex(s string) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.searchLocked(domain.StringKey(s))
}
