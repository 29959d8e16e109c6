package matcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/DinosaursAreCute/taskmover/pkg/cache"
	"github.com/DinosaursAreCute/taskmover/pkg/errors"
	"github.com/DinosaursAreCute/taskmover/pkg/logging"
	"github.com/DinosaursAreCute/taskmover/pkg/types"
	"github.com/spf13/afero"
)

// matchFunc evaluates one pattern against a file list and returns the
// matching subset plus per-file skip messages for files whose metadata
// could not be read
type matchFunc func(p *types.Pattern, files []string) (matched, skipped []string, err error)

// Matcher executes patterns. A single Matcher is safe for concurrent
// use; per-pattern usage stats serialize their own updates.
type Matcher struct {
	cache     *cache.Manager
	conflicts types.ConflictManager
	fs        afero.Fs

	caseSensitive bool
	resultTTL     time.Duration

	strategies map[types.PatternType]matchFunc
}

// Option configures a Matcher
type Option func(*Matcher)

// WithFs overrides the filesystem used for stat-based match branches
func WithFs(fs afero.Fs) Option {
	return func(m *Matcher) { m.fs = fs }
}

// WithCaseSensitivity toggles glob case sensitivity (default sensitive)
func WithCaseSensitivity(sensitive bool) Option {
	return func(m *Matcher) { m.caseSensitive = sensitive }
}

// WithResultTTL sets how long match results stay cached
func WithResultTTL(ttl time.Duration) Option {
	return func(m *Matcher) { m.resultTTL = ttl }
}

// New creates a Matcher. The conflict manager may be nil; conflict
// scans then detect overlaps but cannot resolve them.
func New(cacheManager *cache.Manager, conflicts types.ConflictManager, opts ...Option) *Matcher {
	m := &Matcher{
		cache:         cacheManager,
		conflicts:     conflicts,
		fs:            afero.NewOsFs(),
		caseSensitive: true,
		resultTTL:     5 * time.Minute,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.strategies = map[types.PatternType]matchFunc{
		types.PatternTypeSimple:    m.matchSimpleGlob,
		types.PatternTypeEnhanced:  m.matchEnhancedGlob,
		types.PatternTypeAdvanced:  m.matchAdvancedQuery,
		types.PatternTypeShorthand: m.matchShorthand,
		types.PatternTypeGroup:     m.matchGroupReference,
	}

	return m
}

// Match evaluates a pattern against a file list, consulting and
// populating the result cache and updating the pattern's usage stats.
func (m *Matcher) Match(p *types.Pattern, files []string) (*types.MatchResult, error) {
	logger := logging.GetLogger("matcher")
	start := time.Now()

	key := resultKey(p.CompiledQuery, p.Type, files)

	if cached, ok := m.cacheGet(key); ok {
		elapsed := msSince(start)
		result := copyResult(cached)
		result.CacheHit = true
		result.ExecutionTimeMS = elapsed
		if p.Stats != nil {
			p.Stats.RecordMatch(elapsed, true)
		}
		logger.Debug().
			Str("pattern_id", p.ID).
			Str("key", key).
			Msg("match served from cache")
		return result, nil
	}

	matched, skipped, err := m.dispatch(p, files)
	if err != nil {
		if p.Stats != nil {
			p.Stats.RecordError()
		}
		return nil, errors.Wrapf(err, errors.ErrMatchFailed, "matching pattern %q failed", p.UserExpression).
			WithDetail("pattern_id", p.ID)
	}

	elapsed := msSince(start)
	result := &types.MatchResult{
		MatchedFiles:      matched,
		TotalFilesChecked: len(files),
		ExecutionTimeMS:   elapsed,
		Errors:            skipped,
		PerformanceMetrics: map[string]float64{
			"match_ratio": ratio(len(matched), len(files)),
		},
	}

	// cache a clone so callers mutating the returned result cannot
	// corrupt later cache hits
	m.cacheSet(key, copyResult(result))
	if p.Stats != nil {
		p.Stats.RecordMatch(elapsed, false)
	}

	logger.Debug().
		Str("pattern_id", p.ID).
		Str("type", p.Type.String()).
		Int("matched", len(matched)).
		Int("total", len(files)).
		Float64("ms", elapsed).
		Msg("pattern matched")

	return result, nil
}

// MatchSingle reports whether one file matches the pattern
func (m *Matcher) MatchSingle(p *types.Pattern, file string) (bool, error) {
	result, err := m.Match(p, []string{file})
	if err != nil {
		return false, err
	}
	return len(result.MatchedFiles) > 0, nil
}

// dispatch runs the strategy for the pattern's type, converting panics
// into errors so a bad branch cannot take the caller down
func (m *Matcher) dispatch(p *types.Pattern, files []string) (matched, skipped []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			matched = nil
			skipped = nil
			err = errors.Newf(errors.ErrInternal, "match dispatch panicked: %v", rec)
		}
	}()

	fn, ok := m.strategies[p.Type]
	if !ok {
		return nil, nil, errors.Newf(errors.ErrInvalidInput, "no match strategy for pattern type %q", p.Type)
	}
	return fn(p, files)
}

// cacheGet is tolerant: a cache failure only costs latency, never
// correctness
func (m *Matcher) cacheGet(key string) (*types.MatchResult, bool) {
	if m.cache == nil {
		return nil, false
	}
	value, ok := m.cache.Get(key)
	if !ok {
		return nil, false
	}
	result, ok := value.(*types.MatchResult)
	if !ok {
		logger := logging.GetLogger("matcher")
		logger.Warn().
			Str("key", key).
			Msg("cache entry has unexpected type, ignoring")
		return nil, false
	}
	return result, true
}

func (m *Matcher) cacheSet(key string, result *types.MatchResult) {
	if m.cache == nil {
		return
	}
	m.cache.Set(key, result, m.resultTTL)
}

// copyResult clones a cached result so callers cannot mutate the
// cached copy
func copyResult(r *types.MatchResult) *types.MatchResult {
	out := &types.MatchResult{
		MatchedFiles:      append([]string(nil), r.MatchedFiles...),
		TotalFilesChecked: r.TotalFilesChecked,
		ExecutionTimeMS:   r.ExecutionTimeMS,
		Errors:            append([]string(nil), r.Errors...),
	}
	if r.PerformanceMetrics != nil {
		out.PerformanceMetrics = make(map[string]float64, len(r.PerformanceMetrics))
		for k, v := range r.PerformanceMetrics {
			out.PerformanceMetrics[k] = v
		}
	}
	return out
}

// globMatch applies the configured case sensitivity around
// filepath.Match
func (m *Matcher) globMatch(pattern, name string) bool {
	if !m.caseSensitive {
		pattern = strings.ToLower(pattern)
		name = strings.ToLower(name)
	}
	ok, err := matchGlob(pattern, name)
	if err != nil {
		logger := logging.GetLogger("matcher")
		logger.Error().
			Err(err).
			Str("pattern", pattern).
			Str("name", name).
			Msg("error matching glob pattern")
		return false
	}
	return ok
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}

func ratio(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}

// resultKey builds the deterministic cache key for a match call
func resultKey(compiledQuery string, patternType types.PatternType, files []string) string {
	return fmt.Sprintf("match:%s", hashMatchInputs(compiledQuery, patternType, files))
}
