package groups

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name      string
		group     string
		wantFound bool
		contains  string
	}{
		{"media with @ prefix", "@media", true, "*.jpg"},
		{"media without prefix", "media", true, "*.mp4"},
		{"documents", "@documents", true, "*.pdf"},
		{"code", "@code", true, "*.go"},
		{"archives", "@archives", true, "*.zip"},
		{"temporary", "@temporary", true, "*.tmp"},
		{"unknown group", "@nonexistent", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patterns, ok := Lookup(tt.group)
			assert.Equal(t, tt.wantFound, ok)
			if tt.wantFound {
				assert.Contains(t, patterns, tt.contains)
			}
		})
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	first, ok := Lookup("@media")
	require.True(t, ok)
	first[0] = "mutated"

	second, ok := Lookup("@media")
	require.True(t, ok)
	assert.NotEqual(t, "mutated", second[0])
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "media")
	assert.Contains(t, names, "documents")
	assert.Contains(t, names, "code")
	assert.True(t, sortedStrings(names))
}

func TestHas(t *testing.T) {
	assert.True(t, Has("@media"))
	assert.True(t, Has("MEDIA"))
	assert.False(t, Has("@bogus"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "media", Normalize("@Media"))
	assert.Equal(t, "media", Normalize("media"))
}

func TestForExtension(t *testing.T) {
	assert.Contains(t, ForExtension("jpg"), "media")
	assert.Contains(t, ForExtension(".jpg"), "images")
	assert.Contains(t, ForExtension("pdf"), "documents")
	assert.Empty(t, ForExtension("zzz"))
	assert.Empty(t, ForExtension(""))
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}
