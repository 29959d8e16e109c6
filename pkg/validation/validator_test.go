package validation

import (
	"strings"
	"testing"

	"github.com/DinosaursAreCute/taskmover/pkg/tokens"
	"github.com/DinosaursAreCute/taskmover/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator() *Validator {
	return New(tokens.New())
}

func TestValidateExpressionEmpty(t *testing.T) {
	v := newTestValidator()

	result := v.ValidateExpression("  ")
	assert.False(t, result.IsValid)
	assert.Equal(t, 1, result.PerformanceScore)
}

func TestValidateStructure(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name       string
		expression string
		wantValid  bool
		wantErrSub string
	}{
		{"clean glob", "*.txt", true, ""},
		{"unclosed bracket", "file[abc.txt", false, "unclosed"},
		{"unmatched close", "file].txt", false, "unmatched"},
		{"triple wildcard", "***.txt", false, "triple wildcard"},
		{"empty parens", "size > 1 AND ()", false, "empty parentheses"},
		{"invalid character", "file|name.txt", false, "invalid character"},
		{"space is invalid outside advanced", "my file.txt", false, "invalid character"},
		{"character sets allowed", "file[0-9].txt", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateExpression(tt.expression)
			assert.Equal(t, tt.wantValid, result.IsValid, "errors: %v", result.Errors)
			if tt.wantErrSub != "" {
				require.NotEmpty(t, result.Errors)
				assert.Contains(t, strings.Join(result.Errors, "; "), tt.wantErrSub)
			}
		})
	}
}

func TestValidateTokens(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name       string
		expression string
		wantValid  bool
	}{
		{"known token", "report_$DATE.txt", true},
		{"token with good format", "backup_$DATE{%Y%m%d}.tar", true},
		{"unknown token", "file_$NOPE.txt", false},
		{"bad date directive", "x_$DATE{%Q}.txt", false},
		{"counter in range", "v$COUNTER{5}.txt", true},
		{"counter out of range", "v$COUNTER{11}.txt", false},
		{"counter not numeric", "v$COUNTER{wide}.txt", false},
		{"random range ok", "f_$RANDOM{1-100}.txt", true},
		{"random range inverted", "f_$RANDOM{100-1}.txt", false},
		{"random length ok", "f_$RANDOM{6}.txt", true},
		{"env with argument", "$ENV{HOME}/f.txt", true},
		{"env without argument", "$ENV/f.txt", false},
		{"git commit length ok", "rel_$GIT_COMMIT{12}.txt", true},
		{"git commit length bad", "rel_$GIT_COMMIT{0}.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateExpression(tt.expression)
			assert.Equal(t, tt.wantValid, result.IsValid, "errors: %v", result.Errors)
		})
	}
}

func TestCustomTokenAccepted(t *testing.T) {
	resolver := tokens.New()
	require.NoError(t, resolver.RegisterCustom("MINE", "value"))
	v := New(resolver)

	result := v.ValidateExpression("file_$MINE.txt")
	assert.True(t, result.IsValid, "errors: %v", result.Errors)
}

func TestUnknownGroupIsSuggestionOnly(t *testing.T) {
	v := newTestValidator()

	result := v.ValidateExpression("@customgroup")
	assert.True(t, result.IsValid)
	assert.NotEmpty(t, result.Suggestions)

	result = v.ValidateExpression("@media")
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Suggestions)
}

func TestAdvancedGrammar(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name       string
		expression string
		wantValid  bool
		wantWarn   bool
	}{
		{"uppercase operators", "size > 1000 AND extension = 'pdf'", true, false},
		{"lowercase and", "size > 1000 and extension = 'pdf'", false, false},
		{"lowercase not", "not size > 1000", false, false},
		{"dangling comparator", "size >", false, false},
		{"unquoted string literal", "extension = pdf", true, true},
		{"quoted literal is fine", "extension = 'pdf'", true, false},
		{"numeric rhs is fine", "size = 1000", true, false},
		{"relative date ok", "modified > today-7", true, false},
		{"absolute date ok", "modified >= 2024-01-01", true, false},
		{"date function ok", "created < date_sub(now(), 30)", true, false},
		{"unrecognized date", "modified > lastTuesday", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateExpression(tt.expression)
			assert.Equal(t, tt.wantValid, result.IsValid, "errors: %v", result.Errors)
			if tt.wantWarn {
				assert.NotEmpty(t, result.Warnings)
			}
		})
	}
}

func TestSuggestions(t *testing.T) {
	v := newTestValidator()

	result := v.ValidateExpression("*.jpg")
	require.NotEmpty(t, result.Suggestions)
	assert.Contains(t, result.Suggestions[0], "@")

	result = v.ValidateExpression("backup_2024-01-15.txt")
	found := false
	for _, s := range result.Suggestions {
		if strings.Contains(s, "$DATE") {
			found = true
		}
	}
	assert.True(t, found, "suggestions: %v", result.Suggestions)
}

func TestPerformanceScore(t *testing.T) {
	v := newTestValidator()

	assert.Equal(t, 10, v.ValidateExpression("report.txt").PerformanceScore)
	assert.Less(t, v.ValidateExpression("*backup*").PerformanceScore, 10)
	assert.Less(t,
		v.ValidateExpression("size > 1 AND name LIKE 'a%' AND extension = 'x' OR size < 5").PerformanceScore,
		v.ValidateExpression("size > 1").PerformanceScore)
}

func TestValidateDoesNotMutatePattern(t *testing.T) {
	v := newTestValidator()

	p := types.NewPattern(&types.ParsedPattern{
		Expression:    "file_$NOPE.txt",
		CompiledQuery: "name LIKE 'file\\_$NOPE.txt'",
		Type:          types.PatternTypeEnhanced,
	})
	p.IsValid = true

	result := v.Validate(p)
	assert.False(t, result.IsValid)
	// the validator reports; callers apply
	assert.True(t, p.IsValid)
	assert.Empty(t, p.ValidationErrors)
}
