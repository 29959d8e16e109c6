package system

import (
	"context"

	"github.com/DinosaursAreCute/taskmover/pkg/cache"
	"github.com/DinosaursAreCute/taskmover/pkg/config"
	"github.com/DinosaursAreCute/taskmover/pkg/logging"
	"github.com/DinosaursAreCute/taskmover/pkg/matcher"
	"github.com/DinosaursAreCute/taskmover/pkg/parser"
	"github.com/DinosaursAreCute/taskmover/pkg/tokens"
	"github.com/DinosaursAreCute/taskmover/pkg/types"
	"github.com/DinosaursAreCute/taskmover/pkg/validation"
	"github.com/spf13/afero"
)

// System bundles the pattern pipeline behind one entry point.
type System struct {
	resolver  *tokens.Resolver
	parser    *parser.Parser
	validator *validation.Validator
	cache     *cache.Manager
	matcher   *matcher.Matcher
}

// Option adjusts System construction.
type Option func(*options)

type options struct {
	fs        afero.Fs
	conflicts types.ConflictManager
	resolver  []tokens.Option
}

// WithFs overrides the filesystem used for metadata-based matching.
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithConflictManager injects the external conflict-policy engine.
func WithConflictManager(cm types.ConflictManager) Option {
	return func(o *options) { o.conflicts = cm }
}

// WithResolverOptions forwards options to the token resolver, used by
// tests to pin the clock and random source.
func WithResolverOptions(opts ...tokens.Option) Option {
	return func(o *options) { o.resolver = append(o.resolver, opts...) }
}

// New builds a System from resolved settings. A nil cfg uses the
// embedded defaults.
func New(cfg *config.Settings, opts ...Option) *System {
	if cfg == nil {
		cfg = config.Default()
	}
	o := &options{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(o)
	}

	resolver := tokens.New(o.resolver...)
	cacheManager := cache.New(cache.Config{
		MaxEntries:      cfg.Cache.MaxEntries,
		MaxMemoryBytes:  int64(cfg.Cache.MaxMemoryMB) << 20,
		DefaultTTL:      cfg.Cache.DefaultTTL,
		CleanupInterval: cfg.Cache.CleanupInterval,
	})

	s := &System{
		resolver:  resolver,
		parser:    parser.New(resolver),
		validator: validation.New(resolver),
		cache:     cacheManager,
		matcher: matcher.New(cacheManager, o.conflicts,
			matcher.WithFs(o.fs),
			matcher.WithCaseSensitivity(cfg.Match.CaseSensitive),
			matcher.WithResultTTL(cfg.Match.ResultTTL),
		),
	}

	logger := logging.GetLogger("system")
	logger.Debug().
		Bool("case_sensitive", cfg.Match.CaseSensitive).
		Int("cache_max_entries", cfg.Cache.MaxEntries).
		Msg("pattern system ready")
	return s
}

// Parse classifies and compiles an expression.
func (s *System) Parse(expression string) (*types.ParsedPattern, error) {
	return s.parser.Parse(expression)
}

// CreatePattern parses an expression into a stored Pattern and runs
// validation, recording the outcome on the pattern itself.
func (s *System) CreatePattern(expression string) (*types.Pattern, error) {
	parsed, err := s.parser.Parse(expression)
	if err != nil {
		return nil, err
	}
	p := types.NewPattern(parsed)
	result := s.validator.Validate(p)
	p.IsValid = result.IsValid
	p.ValidationErrors = result.Errors
	return p, nil
}

// Validate checks a stored pattern without mutating it.
func (s *System) Validate(p *types.Pattern) *types.ValidationResult {
	return s.validator.Validate(p)
}

// ValidateExpression checks a raw expression before it is parsed.
func (s *System) ValidateExpression(expression string) *types.ValidationResult {
	return s.validator.ValidateExpression(expression)
}

// ValidateSyntax runs the parser's structural pre-checks only.
func (s *System) ValidateSyntax(expression string) *types.ValidationResult {
	return s.parser.ValidateSyntax(expression)
}

// Match evaluates a pattern against a file list.
func (s *System) Match(p *types.Pattern, files []string) (*types.MatchResult, error) {
	return s.matcher.Match(p, files)
}

// MatchSingle reports whether a single file matches the pattern.
func (s *System) MatchSingle(p *types.Pattern, file string) (bool, error) {
	return s.matcher.MatchSingle(p, file)
}

// HandleConflicts scans the given patterns pairwise for overlapping
// match sets over files.
func (s *System) HandleConflicts(patterns []*types.Pattern, files []string) *types.ConflictReport {
	return s.matcher.HandleConflicts(patterns, files)
}

// ResolveTokens expands dynamic tokens in text.
func (s *System) ResolveTokens(text string) (string, error) {
	return s.resolver.ResolveTokens(text)
}

// RegisterCustomToken adds or overrides a token definition.
func (s *System) RegisterCustomToken(name, value string) error {
	return s.resolver.RegisterCustom(name, value)
}

// AvailableTokens lists every known token with its description.
func (s *System) AvailableTokens() map[string]string {
	return s.resolver.AvailableTokens()
}

// Cache exposes the result cache for callers that manage entries
// directly.
func (s *System) Cache() *cache.Manager {
	return s.cache
}

// CacheStats reports current result-cache counters.
func (s *System) CacheStats() types.CacheStats {
	return s.cache.Stats()
}

// InvalidateCache drops every cached match result.
func (s *System) InvalidateCache() {
	s.cache.Clear()
}

// Shutdown stops the cache janitor and releases cached results. The
// context bounds how long to wait for the background goroutine.
func (s *System) Shutdown(ctx context.Context) error {
	return s.cache.Shutdown(ctx)
}
