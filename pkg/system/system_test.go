package system

import (
	"context"
	"testing"
	"time"

	"github.com/DinosaursAreCute/taskmover/pkg/config"
	"github.com/DinosaursAreCute/taskmover/pkg/errors"
	"github.com/DinosaursAreCute/taskmover/pkg/tokens"
	"github.com/DinosaursAreCute/taskmover/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSystem(t *testing.T, opts ...Option) *System {
	t.Helper()
	cfg := config.Default()
	cfg.Cache.CleanupInterval = 0 // no janitor in tests
	s := New(cfg, opts...)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})
	return s
}

func TestNewWithNilSettings(t *testing.T) {
	s := New(nil)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	}()

	parsed, err := s.Parse("*.txt")
	require.NoError(t, err)
	assert.Equal(t, types.PatternTypeSimple, parsed.Type)
}

func TestParsePipeline(t *testing.T) {
	s := newTestSystem(t)

	tests := []struct {
		expression string
		wantType   types.PatternType
	}{
		{"*.txt", types.PatternTypeSimple},
		{"report_$DATE.txt", types.PatternTypeEnhanced},
		{"@media", types.PatternTypeGroup},
		{"size > 1000", types.PatternTypeAdvanced},
		{"recent", types.PatternTypeShorthand},
	}
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			parsed, err := s.Parse(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, parsed.Type)
		})
	}
}

func TestCreatePattern(t *testing.T) {
	s := newTestSystem(t)

	p, err := s.CreatePattern("*.txt")
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.True(t, p.IsValid)
	assert.Empty(t, p.ValidationErrors)
	assert.Equal(t, "*.txt", p.UserExpression)
}

func TestCreatePatternInvalidExpression(t *testing.T) {
	s := newTestSystem(t)

	// unclosed bracket parses but fails validation
	p, err := s.CreatePattern("file[abc.txt")
	require.NoError(t, err)
	assert.False(t, p.IsValid)
	assert.NotEmpty(t, p.ValidationErrors)
}

func TestCreatePatternEmpty(t *testing.T) {
	s := newTestSystem(t)

	_, err := s.CreatePattern("   ")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatternEmpty))
}

func TestValidateExpression(t *testing.T) {
	s := newTestSystem(t)

	result := s.ValidateExpression("*.txt")
	assert.True(t, result.IsValid)

	result = s.ValidateExpression("$BOGUS_TOKEN")
	assert.False(t, result.IsValid)
}

func TestMatchEndToEnd(t *testing.T) {
	s := newTestSystem(t)

	p, err := s.CreatePattern("*.txt")
	require.NoError(t, err)

	result, err := s.Match(p, []string{"a.txt", "b.log", "c.doc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, result.MatchedFiles)

	ok, err := s.MatchSingle(p, "a.txt")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMatchAgainstInjectedFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/d/big.bin", make([]byte, 2000), 0644))
	require.NoError(t, afero.WriteFile(fs, "/d/small.bin", make([]byte, 10), 0644))

	s := newTestSystem(t, WithFs(fs))

	p, err := s.CreatePattern("size > 1000")
	require.NoError(t, err)

	result, err := s.Match(p, []string{"/d/big.bin", "/d/small.bin"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/d/big.bin"}, result.MatchedFiles)
}

func TestCaseSensitivityFromSettings(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.CleanupInterval = 0
	cfg.Match.CaseSensitive = false
	s := New(cfg)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})

	p, err := s.CreatePattern("*.TXT")
	require.NoError(t, err)

	result, err := s.Match(p, []string{"a.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, result.MatchedFiles)
}

func TestResolveTokensWithPinnedClock(t *testing.T) {
	s := newTestSystem(t, WithResolverOptions(tokens.WithClock(func() time.Time {
		return time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	})))

	resolved, err := s.ResolveTokens("backup_$DATE")
	require.NoError(t, err)
	assert.Equal(t, "backup_2024-03-15", resolved)
}

func TestRegisterCustomToken(t *testing.T) {
	s := newTestSystem(t)

	require.NoError(t, s.RegisterCustomToken("PROJECT_CODE", "TM"))

	resolved, err := s.ResolveTokens("$PROJECT_CODE-report")
	require.NoError(t, err)
	assert.Equal(t, "TM-report", resolved)
}

func TestAvailableTokens(t *testing.T) {
	s := newTestSystem(t)

	available := s.AvailableTokens()
	assert.Contains(t, available, "DATE")
	assert.Contains(t, available, "TIME")
	assert.Contains(t, available, "UUID")
}

func TestCacheStatsAndInvalidate(t *testing.T) {
	s := newTestSystem(t)

	p, err := s.CreatePattern("*.txt")
	require.NoError(t, err)
	files := []string{"a.txt", "b.log"}

	_, err = s.Match(p, files)
	require.NoError(t, err)

	result, err := s.Match(p, files)
	require.NoError(t, err)
	assert.True(t, result.CacheHit)
	assert.Positive(t, s.CacheStats().Hits)

	s.InvalidateCache()
	assert.Zero(t, s.CacheStats().Entries)

	result, err = s.Match(p, files)
	require.NoError(t, err)
	assert.False(t, result.CacheHit)
}

func TestShutdownIdempotent(t *testing.T) {
	s := New(config.Default())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	require.NoError(t, s.Shutdown(ctx))
}

func TestHandleConflictsThroughFacade(t *testing.T) {
	s := newTestSystem(t)

	a, err := s.CreatePattern("*.jpg")
	require.NoError(t, err)
	b, err := s.CreatePattern("photo_*")
	require.NoError(t, err)

	report := s.HandleConflicts([]*types.Pattern{a, b}, []string{"photo_01.jpg", "note.txt"})
	// no conflict manager injected: overlap detected, not resolved
	assert.Equal(t, 1, report.ConflictsDetected)
	assert.Zero(t, report.ConflictsResolved)
}
