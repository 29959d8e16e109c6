package parser

import (
	"regexp"
	"strings"

	"github.com/DinosaursAreCute/taskmover/pkg/errors"
	"github.com/DinosaursAreCute/taskmover/pkg/logging"
	"github.com/DinosaursAreCute/taskmover/pkg/tokens"
	"github.com/DinosaursAreCute/taskmover/pkg/types"
)

var (
	groupRefPattern = regexp.MustCompile(`^@\w+$`)
	groupUsePattern = regexp.MustCompile(`@(\w+)`)

	// advanced-query signals: boolean operators, comparators on metadata
	// fields, query function calls, relative-date keywords
	booleanOpPattern = regexp.MustCompile(`(?i)\b(AND|OR|NOT)\b`)
	comparatorPattern = regexp.MustCompile(`(?i)\b(size|modified|created|type)\s*(=|!=|<=|>=|<|>|\bLIKE\b|\bREGEXP\b)`)
	funcCallPattern   = regexp.MustCompile(`(?i)\b(contains|matches|startswith|endswith)\s*\(`)
	dateWordPattern   = regexp.MustCompile(`(?i)\b(today|yesterday|(last|this)\s+(week|month|year))\b`)
)

// shorthandKeywords is the fixed shorthand vocabulary
var shorthandKeywords = map[string]bool{
	"recent":     true,
	"large":      true,
	"empty":      true,
	"duplicates": true,
	"hidden":     true,
}

// Parser turns raw pattern text into a ParsedPattern. Token expansion
// for enhanced globs goes through the injected resolver.
type Parser struct {
	resolver *tokens.Resolver
}

// New creates a Parser using the given token resolver
func New(resolver *tokens.Resolver) *Parser {
	return &Parser{resolver: resolver}
}

// Parse classifies and compiles a user expression
func (p *Parser) Parse(text string) (*types.ParsedPattern, error) {
	logger := logging.GetLogger("parser")

	expression := strings.TrimSpace(text)
	if expression == "" {
		return nil, errors.New(errors.ErrPatternEmpty, "pattern expression is empty")
	}

	kind := p.classify(expression)

	parsed := &types.ParsedPattern{
		Expression:         expression,
		ResolvedExpression: expression,
		Type:               kind,
		Tokens:             tokens.ExtractTokens(expression),
		Groups:             extractGroups(expression),
	}

	var err error
	switch kind {
	case types.PatternTypeGroup:
		parsed.CompiledQuery = compileGroupReference(expression)
	case types.PatternTypeAdvanced:
		parsed.CompiledQuery = compileAdvancedQuery(expression)
	case types.PatternTypeEnhanced:
		parsed.ResolvedExpression, err = p.resolver.ResolveTokens(expression)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPatternParse, "token resolution failed for %q", expression)
		}
		parsed.CompiledQuery = compileGlob(parsed.ResolvedExpression)
	case types.PatternTypeShorthand:
		parsed.CompiledQuery = compileShorthand(expression)
	default:
		parsed.CompiledQuery = compileGlob(expression)
	}

	parsed.Complexity = scoreComplexity(kind, parsed.Tokens, parsed.Groups)

	logger.Debug().
		Str("expression", expression).
		Str("type", kind.String()).
		Str("compiled", parsed.CompiledQuery).
		Str("complexity", string(parsed.Complexity)).
		Msg("parsed pattern")

	return parsed, nil
}

// classify picks the pattern dialect. Precedence: group reference,
// advanced query, enhanced glob, shorthand, simple glob.
func (p *Parser) classify(expression string) types.PatternType {
	if groupRefPattern.MatchString(expression) {
		return types.PatternTypeGroup
	}
	if isAdvancedQuery(expression) {
		return types.PatternTypeAdvanced
	}
	if tokens.HasToken(expression) {
		return types.PatternTypeEnhanced
	}
	if shorthandKeywords[strings.ToLower(expression)] {
		return types.PatternTypeShorthand
	}
	return types.PatternTypeSimple
}

func isAdvancedQuery(expression string) bool {
	return booleanOpPattern.MatchString(expression) ||
		comparatorPattern.MatchString(expression) ||
		funcCallPattern.MatchString(expression) ||
		dateWordPattern.MatchString(expression)
}

// extractGroups returns the distinct group names referenced in text,
// without the @ prefix, in order of first appearance
func extractGroups(text string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range groupUsePattern.FindAllStringSubmatch(text, -1) {
		name := strings.ToLower(m[1])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// scoreComplexity computes the complexity bucket from the kind's base
// score plus the distinct token and group references
func scoreComplexity(kind types.PatternType, tokenNames, groupNames []string) types.Complexity {
	score := map[types.PatternType]int{
		types.PatternTypeSimple:    1,
		types.PatternTypeGroup:     2,
		types.PatternTypeEnhanced:  3,
		types.PatternTypeShorthand: 4,
		types.PatternTypeAdvanced:  7,
	}[kind]
	score += 2*len(tokenNames) + 2*len(groupNames)

	switch {
	case score <= 3:
		return types.ComplexitySimple
	case score <= 6:
		return types.ComplexityEnhanced
	case score <= 10:
		return types.ComplexityAdvanced
	default:
		return types.ComplexityComposite
	}
}
