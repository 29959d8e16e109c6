package matcher

import (
	"hash/fnv"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/DinosaursAreCute/taskmover/pkg/types"
)

// hashMatchInputs produces a stable hash over the compiled query, the
// pattern type, and the sorted file list, so identical inputs always
// land in the same cache slot
func hashMatchInputs(compiledQuery string, patternType types.PatternType, files []string) string {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	h := fnv.New64a()
	_, _ = h.Write([]byte(compiledQuery))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(patternType))
	for _, f := range sorted {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(f))
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// matchGlob wraps filepath.Match so all branches share one primitive
func matchGlob(pattern, name string) (bool, error) {
	return filepath.Match(pattern, name)
}
