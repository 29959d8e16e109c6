package types

import (
	"sync"
	"time"
)

// UsageStats tracks rolling usage statistics for a pattern. All updates
// go through the methods so concurrent matches against the same Pattern
// stay consistent.
type UsageStats struct {
	mu sync.Mutex

	// MatchCount is the total number of match calls recorded
	MatchCount int64

	// AvgExecutionMS is the running average match latency in milliseconds
	AvgExecutionMS float64

	// CacheHitRate is the fraction of match calls served from cache, 0..1
	CacheHitRate float64

	// ErrorRate is the fraction of match calls that failed, 0..1
	ErrorRate float64

	// LastUsed is when the pattern was last matched
	LastUsed time.Time

	cacheHits int64
	errors    int64
}

// RecordMatch folds one completed match call into the rolling averages
func (s *UsageStats) RecordMatch(executionMS float64, cacheHit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.MatchCount++
	if cacheHit {
		s.cacheHits++
	}
	// running average over all recorded matches
	s.AvgExecutionMS += (executionMS - s.AvgExecutionMS) / float64(s.MatchCount)
	s.CacheHitRate = float64(s.cacheHits) / float64(s.MatchCount)
	s.recalcErrorRate()
	s.LastUsed = time.Now()
}

// RecordError counts a failed match call
func (s *UsageStats) RecordError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errors++
	s.recalcErrorRate()
}

func (s *UsageStats) recalcErrorRate() {
	total := s.MatchCount + s.errors
	if total > 0 {
		s.ErrorRate = float64(s.errors) / float64(total)
	}
}

// Snapshot returns a copy of the current values without the lock
func (s *UsageStats) Snapshot() UsageStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return UsageStats{
		MatchCount:     s.MatchCount,
		AvgExecutionMS: s.AvgExecutionMS,
		CacheHitRate:   s.CacheHitRate,
		ErrorRate:      s.ErrorRate,
		LastUsed:       s.LastUsed,
	}
}
