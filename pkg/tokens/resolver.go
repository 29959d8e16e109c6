package tokens

import (
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/DinosaursAreCute/taskmover/pkg/errors"
	"github.com/DinosaursAreCute/taskmover/pkg/logging"
	"github.com/DinosaursAreCute/taskmover/pkg/registry"
)

// tokenPattern matches $NAME or $NAME{args} occurrences. Names are
// uppercase with underscores; args are everything between the braces.
var tokenPattern = regexp.MustCompile(`\$([A-Z_]+)(\{([^}]*)\})?`)

// namePattern constrains custom token names to the same alphabet
var namePattern = regexp.MustCompile(`^[A-Z_]+$`)

// Provider computes the replacement value for one token occurrence.
// args is the raw text between the braces, empty when absent.
type Provider struct {
	// Description is shown in token listings
	Description string

	// Resolve computes the replacement value
	Resolve func(args string) (string, error)
}

// Resolver expands token placeholders in pattern text. Custom tokens
// are checked before built-in providers and shadow them.
type Resolver struct {
	providers registry.Registry[Provider]
	custom    registry.Registry[string]
	clock     func() time.Time
	counter   atomic.Int64
	randInt   func(n int) int
}

// Option configures a Resolver
type Option func(*Resolver)

// WithClock overrides the time source, used by date-derived providers
func WithClock(clock func() time.Time) Option {
	return func(r *Resolver) { r.clock = clock }
}

// WithRand overrides the random source used by the RANDOM provider
func WithRand(randInt func(n int) int) Option {
	return func(r *Resolver) { r.randInt = randInt }
}

// New creates a Resolver with all built-in providers registered
func New(opts ...Option) *Resolver {
	r := &Resolver{
		providers: registry.New[Provider](),
		custom:    registry.New[string](),
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.registerBuiltins()
	return r
}

// ResolveTokens replaces every resolvable token occurrence in text.
// Unresolvable tokens are left literal and logged; the call itself only
// fails on an unexpected internal error.
func (r *Resolver) ResolveTokens(text string) (result string, err error) {
	logger := logging.GetLogger("tokens")

	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Newf(errors.ErrTokenResolve,
				"token resolution failed for pattern %q: %v", text, rec)
		}
	}()

	if !strings.Contains(text, "$") {
		return text, nil
	}

	result = text
	seen := make(map[string]bool)
	for _, m := range tokenPattern.FindAllStringSubmatch(text, -1) {
		full, name, args := m[0], m[1], m[3]
		if seen[full] {
			continue
		}
		seen[full] = true

		value, rerr := r.resolveOne(name, args)
		if rerr != nil {
			logger.Warn().
				Err(rerr).
				Str("token", full).
				Msg("token left unresolved")
			continue
		}

		// identical token+args always resolves identically within one
		// call, so a textual replace of every occurrence is safe
		result = strings.ReplaceAll(result, full, value)

		logger.Debug().
			Str("token", full).
			Str("value", value).
			Msg("token resolved")
	}

	return result, nil
}

// resolveOne resolves a single token, custom values first
func (r *Resolver) resolveOne(name, args string) (string, error) {
	if value, err := r.custom.Get(name); err == nil {
		return value, nil
	}

	provider, err := r.providers.Get(name)
	if err != nil {
		return "", errors.Newf(errors.ErrTokenUnknown, "unknown token $%s", name)
	}
	return provider.Resolve(args)
}

// RegisterCustom registers a literal replacement for $name, shadowing
// any built-in provider of the same name
func (r *Resolver) RegisterCustom(name, value string) error {
	if !namePattern.MatchString(name) {
		return errors.Newf(errors.ErrInvalidInput,
			"custom token name %q must be uppercase letters and underscores", name)
	}
	r.custom.Replace(name, value)
	return nil
}

// AvailableTokens returns every known token name with its description
func (r *Resolver) AvailableTokens() map[string]string {
	out := make(map[string]string)
	for _, name := range r.providers.List() {
		if provider, err := r.providers.Get(name); err == nil {
			out[name] = provider.Description
		}
	}
	for _, name := range r.custom.List() {
		out[name] = "custom token"
	}
	return out
}

// Known reports whether name is a built-in or custom token
func (r *Resolver) Known(name string) bool {
	return r.custom.Has(name) || r.providers.Has(name)
}

// CounterValue returns the current COUNTER value without advancing it
func (r *Resolver) CounterValue() int64 {
	return r.counter.Load()
}

// ExtractTokens returns the distinct token names referenced in text, in
// order of first appearance
func ExtractTokens(text string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range tokenPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// HasToken reports whether text contains at least one token placeholder
func HasToken(text string) bool {
	return tokenPattern.MatchString(text)
}
