// Package groups provides the built-in, immutable registry of file-type
// groups (@media, @documents, ...). The registry is loaded once from an
// embedded definition at first use and never mutated afterwards.
package groups

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed groups.yaml
var builtinDefinition []byte

var (
	loadOnce sync.Once
	builtin  map[string][]string
)

func load() {
	loadOnce.Do(func() {
		parsed := make(map[string][]string)
		if err := yaml.Unmarshal(builtinDefinition, &parsed); err != nil {
			// the definition is embedded at build time, so a parse
			// failure is a programming error
			panic(fmt.Sprintf("invalid embedded group definition: %v", err))
		}
		builtin = parsed
	})
}

// Lookup returns the ordered glob sub-patterns of a built-in group.
// The name may carry the leading @ or not.
func Lookup(name string) ([]string, bool) {
	load()
	patterns, ok := builtin[Normalize(name)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), patterns...), true
}

// Names returns all built-in group names, sorted, without the @ prefix
func Names() []string {
	load()
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name refers to a built-in group
func Has(name string) bool {
	load()
	_, ok := builtin[Normalize(name)]
	return ok
}

// Normalize strips the @ prefix and lowercases a group reference
func Normalize(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, "@"))
}

// ForExtension returns the names of the built-in groups whose patterns
// cover the given file extension (with or without the leading dot)
func ForExtension(ext string) []string {
	load()
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return nil
	}
	want := "*." + ext

	var names []string
	for name, patterns := range builtin {
		for _, pattern := range patterns {
			if pattern == want {
				names = append(names, name)
				break
			}
		}
	}
	sort.Strings(names)
	return names
}
