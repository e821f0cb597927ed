package pool

import (
	"slices"

	"go.trai.ch/intern/internal/core/domain"
)

// addLocked returns the pool's own slot for k, inserting a canonical copy at
// its sorted position when no equal entry exists.
func (p *Pool) addLocked(k domain.Key) (*domain.InternedString, bool) {
	i, found := p.searchLocked(k)
	if found {
		p.hits++
		return p.entries[i], false
	}

	p.misses++
	slot := domain.NewInternedString(k.Materialize())
	p.entries = slices.Insert(p.entries, i, slot)
	return slot, true
}

// searchLocked binary-searches the sorted entries for k. It returns the index
// of the equal entry, or the insertion index i such that
// entries[i-1] < k < entries[i].
//
// The entry at start is checked before the midpoint: values often arrive in
// sorted runs, and a key below entries[start] ends the search at once.
func (p *Pool) searchLocked(k domain.Key) (int, bool) {
	start, end := 0, len(p.entries)

	for start < end {
		startComp := k.CompareTo(p.entries[start].String())
		if startComp == 0 {
			return start, true
		}
		if startComp < 0 {
			return start, false
		}

		half := (start + end) / 2
		if half == start {
			return start + 1, false
		}

		halfComp := k.CompareTo(p.entries[half].String())
		if halfComp == 0 {
			return half, true
		}
		if halfComp > 0 {
			start = half + 1
		} else {
			end = half
		}
	}

	return start, false
}
