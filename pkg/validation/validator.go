package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/DinosaursAreCute/taskmover/pkg/groups"
	"github.com/DinosaursAreCute/taskmover/pkg/logging"
	"github.com/DinosaursAreCute/taskmover/pkg/tokens"
	"github.com/DinosaursAreCute/taskmover/pkg/types"
)

var (
	tokenUsePattern = regexp.MustCompile(`\$([A-Z_]+)(\{([^}]*)\})?`)
	groupUsePattern = regexp.MustCompile(`@(\w+)`)

	advancedSignal     = regexp.MustCompile(`(?i)(\b(AND|OR|NOT)\b|\b(size|modified|created|type|name|extension)\s*(=|!=|<=|>=|<|>|LIKE\b))`)
	lowercaseOpPattern = regexp.MustCompile(`\b(and|or|not)\b`)
	danglingComparator = regexp.MustCompile(`(=|!=|<=|>=|<|>)\s*$`)
	tripleWildcard     = regexp.MustCompile(`\*{3,}`)

	// string-field comparisons whose right side should be quoted
	unquotedLiteral = regexp.MustCompile(`\b(name|extension|type)\s*(=|!=|LIKE)\s*([^\s'")][^\s)]*)`)

	// relative-date forms allowed on modified/created comparisons
	dateComparison = regexp.MustCompile(`\b(modified|created)\s*(=|!=|<=|>=|<|>)\s*(.+?)(?:\s+AND\b|\s+OR\b|$)`)
	allowedDateRHS = regexp.MustCompile(`^(today([+-]\d+)?|\d{4}-\d{2}-\d{2}|date_sub\(.+\)|date_add\(.+\)|now\(\)|date\(.+\))$`)

	// explicit non-digit boundaries: \b does not fire between an
	// underscore and a digit
	dateLiteralPattern = regexp.MustCompile(`(^|[^0-9])\d{4}[-_]\d{2}[-_]\d{2}([^0-9]|$)`)
)

// allowedRunes is the character alphabet for non-advanced expressions
const allowedRunes = "._-*?[]{}/$@"

// Validator performs deep validation of pattern expressions against the
// token table and the built-in group registry.
type Validator struct {
	resolver *tokens.Resolver
}

// New creates a Validator backed by the given token resolver
func New(resolver *tokens.Resolver) *Validator {
	return &Validator{resolver: resolver}
}

// Validate checks a pattern entity's expression. The pattern itself is
// never mutated; callers apply the result to IsValid themselves.
func (v *Validator) Validate(p *types.Pattern) *types.ValidationResult {
	result := v.ValidateExpression(p.UserExpression)

	logger := logging.GetLogger("validation")
	logger.Debug().
		Str("pattern_id", p.ID).
		Bool("valid", result.IsValid).
		Int("errors", len(result.Errors)).
		Int("warnings", len(result.Warnings)).
		Msg("pattern validated")

	return result
}

// ValidateExpression runs the full check suite over raw expression text
func (v *Validator) ValidateExpression(text string) *types.ValidationResult {
	result := types.NewValidationResult()

	expression := strings.TrimSpace(text)
	if expression == "" {
		result.AddError("expression is empty")
		result.PerformanceScore = 1
		return result
	}

	advanced := advancedSignal.MatchString(expression)

	v.checkStructure(expression, advanced, result)
	v.checkTokens(expression, result)
	v.checkGroups(expression, result)
	if advanced {
		v.checkAdvancedGrammar(expression, result)
	}
	v.suggest(expression, result)
	result.PerformanceScore = v.scorePerformance(expression)

	return result
}

// checkStructure verifies brackets, the character alphabet, and a few
// outright-rejected constructs
func (v *Validator) checkStructure(expression string, advanced bool, result *types.ValidationResult) {
	var stack []rune
	pairs := map[rune]rune{')': '(', ']': '[', '}': '{'}
	for _, c := range expression {
		switch c {
		case '(', '[', '{':
			stack = append(stack, c)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[c] {
				result.AddError(fmt.Sprintf("unmatched '%c'", c))
				stack = nil
				goto charCheck
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		result.AddError(fmt.Sprintf("unclosed '%c'", stack[len(stack)-1]))
	}

charCheck:
	if tripleWildcard.MatchString(expression) {
		result.AddError("triple wildcard '***' is not a valid pattern")
	}
	if strings.Contains(expression, "()") {
		result.AddError("empty parentheses")
	}

	if !advanced {
		// token arguments may carry characters outside the pattern
		// alphabet (%, :), so they are excluded from this check
		stripped := tokenUsePattern.ReplaceAllString(expression, "")
		for _, c := range stripped {
			if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
				continue
			}
			if strings.ContainsRune(allowedRunes, c) {
				continue
			}
			result.AddError(fmt.Sprintf("invalid character %q in pattern", c))
			break
		}
	}
}

// checkTokens validates every token reference against the resolver's
// table and each token's argument rules
func (v *Validator) checkTokens(expression string, result *types.ValidationResult) {
	for _, m := range tokenUsePattern.FindAllStringSubmatch(expression, -1) {
		name, args, hasArgs := m[1], m[3], m[2] != ""

		if !v.resolver.Known(name) {
			result.AddError(fmt.Sprintf("unknown token $%s", name))
			continue
		}

		switch name {
		case "DATE", "TIME", "DATETIME":
			if hasArgs {
				checkDateFormat(args, result)
			}
		case "RANDOM":
			if hasArgs {
				checkRandomArgs(args, result)
			}
		case "COUNTER":
			if hasArgs {
				if n, err := strconv.Atoi(args); err != nil || n < 1 || n > 10 {
					result.AddError(fmt.Sprintf("COUNTER width %q must be a number from 1 to 10", args))
				}
			}
		case "GIT_COMMIT":
			if hasArgs {
				if n, err := strconv.Atoi(args); err != nil || n < 1 || n > 40 {
					result.AddError(fmt.Sprintf("GIT_COMMIT length %q must be a number from 1 to 40", args))
				}
			}
		case "ENV":
			if !hasArgs || args == "" {
				result.AddError("ENV requires a variable name, like $ENV{HOME}")
			}
		}
	}
}

// checkDateFormat trial-renders an strftime argument; a layout that
// cannot round-trip through time.Parse is reported
func checkDateFormat(format string, result *types.ValidationResult) {
	if !strings.Contains(format, "%") {
		result.AddWarning(fmt.Sprintf("date format %q has no %% directives and will be used literally", format))
		return
	}
	for i := 0; i < len(format)-1; i++ {
		if format[i] == '%' {
			if _, ok := strftimeDirectives[format[i+1]]; !ok {
				result.AddError(fmt.Sprintf("unsupported date directive %%%c", format[i+1]))
				return
			}
			i++
		}
	}
}

// strftimeDirectives mirrors the directive set the token resolver
// understands
var strftimeDirectives = map[byte]bool{
	'Y': true, 'y': true, 'm': true, 'd': true, 'H': true, 'I': true,
	'M': true, 'S': true, 'p': true, 'a': true, 'A': true, 'b': true,
	'B': true, 'j': true, '%': true,
}

func checkRandomArgs(args string, result *types.ValidationResult) {
	if lo, hi, ok := strings.Cut(args, "-"); ok {
		a, errA := strconv.Atoi(strings.TrimSpace(lo))
		b, errB := strconv.Atoi(strings.TrimSpace(hi))
		if errA != nil || errB != nil {
			result.AddError(fmt.Sprintf("RANDOM range %q must be numeric, like RANDOM{1-100}", args))
		} else if a > b {
			result.AddError(fmt.Sprintf("RANDOM range %q has min greater than max", args))
		}
		return
	}
	if n, err := strconv.Atoi(args); err != nil || n < 1 || n > 18 {
		result.AddError(fmt.Sprintf("RANDOM length %q must be a number from 1 to 18", args))
	}
}

// checkGroups reports unknown group references as suggestions only;
// they may be user-defined groups resolved elsewhere
func (v *Validator) checkGroups(expression string, result *types.ValidationResult) {
	for _, m := range groupUsePattern.FindAllStringSubmatch(expression, -1) {
		if !groups.Has(m[1]) {
			result.AddSuggestion(fmt.Sprintf("@%s is not a built-in group; built-ins are: %s",
				m[1], strings.Join(groups.Names(), ", ")))
		}
	}
}

// checkAdvancedGrammar enforces the advanced-query surface rules
func (v *Validator) checkAdvancedGrammar(expression string, result *types.ValidationResult) {
	for _, m := range lowercaseOpPattern.FindAllString(expression, -1) {
		result.AddError(fmt.Sprintf("operator %q must be uppercase", m))
	}

	if danglingComparator.MatchString(expression) {
		result.AddError("comparison operator has no right-hand side")
	}

	for _, m := range unquotedLiteral.FindAllStringSubmatch(expression, -1) {
		if _, err := strconv.ParseFloat(m[3], 64); err != nil {
			result.AddWarning(fmt.Sprintf("string comparison %s %s %s should quote its value", m[1], m[2], m[3]))
		}
	}

	for _, m := range dateComparison.FindAllStringSubmatch(expression, -1) {
		rhs := strings.TrimSpace(m[3])
		if allowedDateRHS.MatchString(rhs) {
			continue
		}
		result.AddError(fmt.Sprintf("date value %q is not recognized; use today, today-N, YYYY-MM-DD, or a date function", rhs))
	}
}

// suggest produces optimization suggestions from the expression shape
func (v *Validator) suggest(expression string, result *types.ValidationResult) {
	// known extension -> built-in group recommendation
	if strings.HasPrefix(expression, "*.") && !strings.ContainsAny(expression[2:], "*?[]{} ") {
		if owners := groups.ForExtension(expression[2:]); len(owners) > 0 {
			result.AddSuggestion(fmt.Sprintf("extension .%s is covered by @%s", expression[2:], owners[0]))
		}
	}

	// hard-coded date -> token recommendation
	if dateLiteralPattern.MatchString(expression) && !strings.Contains(expression, "$DATE") {
		if !advancedSignal.MatchString(expression) {
			result.AddSuggestion("use the $DATE token instead of a hard-coded date")
		}
	}
}

// scorePerformance estimates match cost from 1 (worst) to 10 (best).
// The formula is deliberately distinct from the parser's lighter
// estimate: it weighs wildcard density and condition count.
func (v *Validator) scorePerformance(expression string) int {
	score := 10

	score -= strings.Count(expression, "*")
	if strings.HasPrefix(expression, "*") && expression != "*.*" {
		score--
	}
	score -= len(lowercaseOpPattern.FindAllString(strings.ToLower(expression), -1))
	if strings.Contains(strings.ToUpper(expression), "REGEXP") {
		score -= 2
	}
	if regexp.MustCompile(`(?i)\b(contains|matches)\s*\(`).MatchString(expression) {
		score--
	}

	if score < 1 {
		return 1
	}
	return score
}
