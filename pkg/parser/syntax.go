package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/DinosaursAreCute/taskmover/pkg/types"
)

var (
	malformedTokenPattern = regexp.MustCompile(`\$(?:[a-z0-9]|\{)`)
	unclosedTokenPattern  = regexp.MustCompile(`\$[A-Z_]+\{[^}]*$`)
	// a \b guard misses dates after an underscore (word character), so
	// the boundaries are explicit non-digit checks
	dateLiteralPattern = regexp.MustCompile(`(^|[^0-9])\d{4}-\d{2}-\d{2}([^0-9]|$)`)
)

// bracketPairs maps closing brackets to their opening counterpart
var bracketPairs = map[byte]byte{')': '(', ']': '[', '}': '{'}

// ValidateSyntax performs the parser's lighter-weight structural check:
// bracket balance, token well-formedness, over-broad pattern warnings,
// and a coarse performance estimate. Deeper semantic validation lives
// in the validation package.
func (p *Parser) ValidateSyntax(text string) *types.ValidationResult {
	result := types.NewValidationResult()

	expression := strings.TrimSpace(text)
	if expression == "" {
		result.AddError("pattern expression is empty")
		result.PerformanceScore = 1
		return result
	}

	checkBrackets(expression, result)
	checkTokenSyntax(expression, result)
	checkBreadth(expression, result)
	addSuggestions(p, expression, result)
	result.PerformanceScore = estimatePerformance(expression)

	return result
}

// checkBrackets verifies that (), [] and {} are balanced and properly
// nested
func checkBrackets(expression string, result *types.ValidationResult) {
	var stack []byte
	for i := 0; i < len(expression); i++ {
		c := expression[i]
		switch c {
		case '(', '[', '{':
			stack = append(stack, c)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != bracketPairs[c] {
				result.AddError(fmt.Sprintf("unmatched '%c' at position %d", c, i))
				return
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		result.AddError(fmt.Sprintf("unclosed '%c'", stack[len(stack)-1]))
	}
}

func checkTokenSyntax(expression string, result *types.ValidationResult) {
	if malformedTokenPattern.MatchString(expression) {
		result.AddError("malformed token: token names are uppercase, like $DATE or $ENV{VAR}")
	}
	if unclosedTokenPattern.MatchString(expression) {
		result.AddError("malformed token: unclosed argument brace")
	}
}

// checkBreadth warns about patterns that match far too much
func checkBreadth(expression string, result *types.ValidationResult) {
	switch expression {
	case "*", "*.*":
		result.AddWarning("pattern matches every file; consider narrowing it")
		return
	}
	if strings.HasPrefix(expression, "*") && !strings.HasPrefix(expression, "*.") {
		result.AddWarning("leading wildcard makes matching slow and broad")
	}
	if strings.Contains(expression, "**") {
		result.AddWarning("redundant '**'; a single '*' already matches any run of characters")
	}
}

func addSuggestions(p *Parser, expression string, result *types.ValidationResult) {
	kind := p.classify(expression)

	if kind == types.PatternTypeSimple && !strings.Contains(expression, ".") {
		result.AddSuggestion("add a file extension to narrow the match, e.g. '" + expression + ".txt'")
	}
	if kind == types.PatternTypeSimple && dateLiteralPattern.MatchString(expression) {
		result.AddSuggestion("use the $DATE token instead of a hard-coded date")
	}
}

// estimatePerformance scores expected match cost from 1 (worst) to 10
// (best), penalizing broad and leading wildcards and stacked boolean
// conditions
func estimatePerformance(expression string) int {
	score := 10

	switch expression {
	case "*", "*.*":
		score -= 4
	}
	if strings.HasPrefix(expression, "*") && expression != "*" && expression != "*.*" {
		score -= 2
	}
	if strings.Contains(expression, "**") {
		score--
	}

	booleans := len(booleanOpPattern.FindAllString(expression, -1))
	if booleans > 1 {
		score -= booleans - 1
	}

	if score < 1 {
		score = 1
	}
	return score
}
