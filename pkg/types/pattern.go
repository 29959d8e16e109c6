package types

import (
	"time"

	"github.com/google/uuid"
)

// PatternType identifies which of the five pattern dialects an expression
// was classified as.
type PatternType string

const (
	// PatternTypeSimple is a plain glob pattern like "*.txt"
	PatternTypeSimple PatternType = "simple_glob"

	// PatternTypeEnhanced is a glob pattern containing $TOKEN placeholders
	PatternTypeEnhanced PatternType = "enhanced_glob"

	// PatternTypeAdvanced is a boolean/comparison query like "size > 10MB AND *.log"
	PatternTypeAdvanced PatternType = "advanced_query"

	// PatternTypeShorthand is one of the fixed keywords: recent, large,
	// empty, duplicates, hidden
	PatternTypeShorthand PatternType = "shorthand"

	// PatternTypeGroup is a reference to a built-in group like "@media"
	PatternTypeGroup PatternType = "group_reference"
)

// String returns the type's wire name
func (t PatternType) String() string {
	return string(t)
}

// Complexity buckets patterns by their computed complexity score
type Complexity string

const (
	ComplexitySimple    Complexity = "simple"
	ComplexityEnhanced  Complexity = "enhanced"
	ComplexityAdvanced  Complexity = "advanced"
	ComplexityComposite Complexity = "composite"
)

// ParsedPattern is the ephemeral output of parsing a user expression.
// It is never persisted standalone; it seeds a Pattern.
type ParsedPattern struct {
	// Expression is the raw user input, untouched
	Expression string

	// ResolvedExpression is the expression after token substitution
	// (identical to Expression for tokenless patterns)
	ResolvedExpression string

	// CompiledQuery is the internal SQL-LIKE-flavored representation
	CompiledQuery string

	// Type is the classified pattern dialect
	Type PatternType

	// Complexity is the bucketed complexity score
	Complexity Complexity

	// Tokens lists the distinct token names referenced, e.g. ["DATE", "USER"]
	Tokens []string

	// Groups lists the distinct group names referenced, e.g. ["media"]
	Groups []string
}

// Pattern is the persisted pattern entity built from a ParsedPattern.
// The external repository owns its lifecycle; the matcher mutates its
// usage stats and callers apply validation outcomes.
type Pattern struct {
	// ID is an opaque unique identifier
	ID string

	// UserExpression is the raw text the user typed
	UserExpression string

	// CompiledQuery is the internal representation produced at parse time
	CompiledQuery string

	// Type is the classified pattern dialect
	Type PatternType

	// Complexity is the bucketed complexity score
	Complexity Complexity

	// TokensUsed lists distinct token names referenced by the expression
	TokensUsed []string

	// ReferencedGroups lists distinct group names referenced by the expression
	ReferencedGroups []string

	// IsValid reflects the most recent validation outcome
	IsValid bool

	// ValidationErrors holds the error strings from the most recent validation
	ValidationErrors []string

	// ConflictStrategy optionally overrides the resolution strategy used
	// when this pattern is involved in a conflict
	ConflictStrategy string

	// CreatedAt is when the pattern was first built
	CreatedAt time.Time

	// ModifiedAt is when the pattern was last changed
	ModifiedAt time.Time

	// Stats tracks rolling usage statistics, updated by the matcher
	Stats *UsageStats
}

// NewPattern builds a Pattern entity from a parse result
func NewPattern(parsed *ParsedPattern) *Pattern {
	now := time.Now()
	return &Pattern{
		ID:               uuid.NewString(),
		UserExpression:   parsed.Expression,
		CompiledQuery:    parsed.CompiledQuery,
		Type:             parsed.Type,
		Complexity:       parsed.Complexity,
		TokensUsed:       append([]string(nil), parsed.Tokens...),
		ReferencedGroups: append([]string(nil), parsed.Groups...),
		IsValid:          true,
		CreatedAt:        now,
		ModifiedAt:       now,
		Stats:            &UsageStats{},
	}
}
