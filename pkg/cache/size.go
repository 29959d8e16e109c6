package cache

import "github.com/DinosaursAreCute/taskmover/pkg/types"

// entryOverhead is the assumed fixed cost of one entry's bookkeeping
const entryOverhead = 128

// estimateSize approximates the memory footprint of a cached value.
// Match results and string-shaped values are sized from their content;
// anything else gets a flat estimate.
func estimateSize(value interface{}) int64 {
	size := int64(entryOverhead)

	switch v := value.(type) {
	case string:
		size += int64(len(v))
	case []byte:
		size += int64(len(v))
	case []string:
		for _, s := range v {
			size += int64(len(s)) + 16
		}
	case *types.MatchResult:
		for _, f := range v.MatchedFiles {
			size += int64(len(f)) + 16
		}
		for _, e := range v.Errors {
			size += int64(len(e)) + 16
		}
		size += int64(len(v.PerformanceMetrics)) * 32
	case types.MatchResult:
		size += estimateSize(&v) - entryOverhead
	default:
		size += 256
	}

	return size
}
