package domain

// PoolStats is a point-in-time snapshot of a pool.
type PoolStats struct {
	Entries          int    `json:"entries"`
	Hits             uint64 `json:"hits"`
	Misses           uint64 `json:"misses"`
	Collections      uint64 `json:"collections"`
	Reclaimed        uint64 `json:"reclaimed"`
	LastCollectionMs uint64 `json:"last_collection_ms"`
	Digest           string `json:"digest"`
}

// HitRate returns the share of lookups that found an existing entry.
func (s PoolStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// LoadReport summarizes one ingestion run.
type LoadReport struct {
	Files    int `json:"files"`
	Lines    int `json:"lines"`
	Inserted int `json:"inserted"`
}
