package types

// CacheStats is a point-in-time snapshot of cache effectiveness counters
type CacheStats struct {
	// Hits counts Get calls served from a live entry
	Hits int64

	// Misses counts Get calls that found nothing usable
	Misses int64

	// Evictions counts entries removed to make room for new ones
	Evictions int64

	// Expired counts entries removed because their TTL elapsed
	Expired int64

	// Entries is the current number of live entries
	Entries int

	// MemoryBytes is the estimated memory held by live entries
	MemoryBytes int64

	// MaxEntries and MaxMemoryBytes echo the configured caps
	MaxEntries     int
	MaxMemoryBytes int64

	// HitRatePercent is Hits/(Hits+Misses) as a percentage
	HitRatePercent float64
}
