package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/DinosaursAreCute/taskmover/pkg/errors"
	"github.com/DinosaursAreCute/taskmover/pkg/logging"
)

// ConfigFileName is the per-directory override file Load looks for.
const ConfigFileName = "taskmover.toml"

// envPrefix is stripped from environment overrides. A double underscore
// separates sections, so TASKMOVER_CACHE__MAX_ENTRIES maps to
// cache.max_entries.
const envPrefix = "TASKMOVER_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf's provider interface for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Settings is the fully-resolved runtime configuration.
type Settings struct {
	Cache   CacheSettings   `koanf:"cache"`
	Match   MatchSettings   `koanf:"match"`
	Logging LoggingSettings `koanf:"logging"`
}

// CacheSettings sizes the result cache.
type CacheSettings struct {
	MaxEntries      int           `koanf:"max_entries"`
	MaxMemoryMB     int           `koanf:"max_memory_mb"`
	DefaultTTL      time.Duration `koanf:"default_ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// MatchSettings tunes match behavior.
type MatchSettings struct {
	CaseSensitive bool          `koanf:"case_sensitive"`
	ResultTTL     time.Duration `koanf:"result_ttl"`
}

// LoggingSettings carries the default verbosity; the CLI -v flag takes
// precedence when set.
type LoggingSettings struct {
	Verbosity int `koanf:"verbosity"`
}

// Default returns the embedded defaults without touching the
// filesystem or environment.
func Default() *Settings {
	k := koanf.New(".")
	// the embedded file always parses; a failure here is a build defect
	_ = k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser())
	s := &Settings{}
	_ = k.Unmarshal("", s)
	return s
}

// Load resolves settings for the current working directory.
func Load() (*Settings, error) {
	return LoadDir(".")
}

// LoadDir resolves settings with the override file looked up in dir.
func LoadDir(dir string) (*Settings, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. Directory override, if present
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
		logger.Debug().Str("path", path).Msg("loaded config file")
	}

	// 3. Environment overrides
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	s := &Settings{}
	if err := k.Unmarshal("", s); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal settings")
	}

	logger.Debug().
		Int("cache_max_entries", s.Cache.MaxEntries).
		Bool("case_sensitive", s.Match.CaseSensitive).
		Msg("configuration resolved")
	return s, nil
}

// envKey maps TASKMOVER_CACHE__MAX_ENTRIES to cache.max_entries
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
