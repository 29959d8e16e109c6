package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()

	assert.Equal(t, 1000, s.Cache.MaxEntries)
	assert.Equal(t, 64, s.Cache.MaxMemoryMB)
	assert.Equal(t, 5*time.Minute, s.Cache.DefaultTTL)
	assert.Equal(t, time.Minute, s.Cache.CleanupInterval)
	assert.True(t, s.Match.CaseSensitive)
	assert.Equal(t, 5*time.Minute, s.Match.ResultTTL)
	assert.Equal(t, 0, s.Logging.Verbosity)
}

func TestLoadDirDefaultsOnly(t *testing.T) {
	s, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadDirFileOverride(t *testing.T) {
	dir := t.TempDir()
	content := `
[cache]
max_entries = 50

[match]
case_sensitive = false
result_ttl = "30s"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	s, err := LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, 50, s.Cache.MaxEntries)
	assert.False(t, s.Match.CaseSensitive)
	assert.Equal(t, 30*time.Second, s.Match.ResultTTL)
	// untouched keys keep their defaults
	assert.Equal(t, 64, s.Cache.MaxMemoryMB)
	assert.Equal(t, 5*time.Minute, s.Cache.DefaultTTL)
}

func TestLoadDirInvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("not [valid toml"), 0644))

	_, err := LoadDir(dir)
	assert.Error(t, err)
}

func TestLoadDirEnvOverride(t *testing.T) {
	t.Setenv("TASKMOVER_CACHE__MAX_ENTRIES", "7")
	t.Setenv("TASKMOVER_MATCH__CASE_SENSITIVE", "false")
	t.Setenv("TASKMOVER_LOGGING__VERBOSITY", "2")

	s, err := LoadDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 7, s.Cache.MaxEntries)
	assert.False(t, s.Match.CaseSensitive)
	assert.Equal(t, 2, s.Logging.Verbosity)
}

func TestLoadDirEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName),
		[]byte("[cache]\nmax_entries = 50\n"), 0644))
	t.Setenv("TASKMOVER_CACHE__MAX_ENTRIES", "9")

	s, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 9, s.Cache.MaxEntries)
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TASKMOVER_CACHE__MAX_ENTRIES", "cache.max_entries"},
		{"TASKMOVER_MATCH__RESULT_TTL", "match.result_ttl"},
		{"TASKMOVER_LOGGING__VERBOSITY", "logging.verbosity"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, envKey(tt.in))
	}
}

func TestGenerateContent(t *testing.T) {
	content, err := GenerateContent()
	require.NoError(t, err)

	assert.Contains(t, content, "[cache]")
	assert.Contains(t, content, "# max_entries = 1000")
	assert.Contains(t, content, "# default_ttl = '5m0s'")
	assert.Contains(t, content, "[match]")
	assert.Contains(t, content, "[logging]")

	// every assignment must be commented out
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, "=") {
			assert.True(t, strings.HasPrefix(trimmed, "#"), "uncommented value line: %s", line)
		}
	}
}

func TestGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	require.NoError(t, Generate(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[cache]")

	// refuses to overwrite
	assert.Error(t, Generate(path))
}

func TestGeneratedFileRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, Generate(path))

	// a fully-commented file must load as pure defaults
	s, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	// uncommenting a line must take effect
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	edited := strings.Replace(string(data), "# max_entries = 1000", "max_entries = 123", 1)
	require.NoError(t, os.WriteFile(path, []byte(edited), 0644))

	s, err = LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 123, s.Cache.MaxEntries)
}
