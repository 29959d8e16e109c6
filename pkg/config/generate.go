package config

import (
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/DinosaursAreCute/taskmover/pkg/errors"
)

const generatedHeader = `# taskmover configuration.
# Every value below is the built-in default; uncomment a line to override it.
# Environment variables win over this file, e.g. TASKMOVER_CACHE__MAX_ENTRIES.

`

// Generate writes a commented-out default configuration file to path.
// It refuses to overwrite an existing file.
func Generate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.ErrAlreadyExists, "config file already exists at %s", path)
	}
	content, err := GenerateContent()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to write config to %s", path)
	}
	return nil
}

// GenerateContent renders the default settings as TOML with every value
// line commented out.
func GenerateContent() (string, error) {
	s := Default()
	// durations render as strings so the file round-trips through Load
	doc := map[string]interface{}{
		"cache": map[string]interface{}{
			"max_entries":      s.Cache.MaxEntries,
			"max_memory_mb":    s.Cache.MaxMemoryMB,
			"default_ttl":      s.Cache.DefaultTTL.String(),
			"cleanup_interval": s.Cache.CleanupInterval.String(),
		},
		"match": map[string]interface{}{
			"case_sensitive": s.Match.CaseSensitive,
			"result_ttl":     s.Match.ResultTTL.String(),
		},
		"logging": map[string]interface{}{
			"verbosity": s.Logging.Verbosity,
		},
	}
	raw, err := toml.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render default config")
	}
	return generatedHeader + commentOutValues(string(raw)), nil
}

// commentOutValues comments every assignment line, keeping blanks,
// existing comments, and [section] headers as-is
func commentOutValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}
	return strings.Join(result, "\n")
}
