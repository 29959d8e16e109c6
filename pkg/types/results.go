package types

// ValidationResult reports the outcome of validating an expression or
// pattern. It is a pure value: validators never mutate the pattern they
// were given.
type ValidationResult struct {
	// IsValid is false when Errors is non-empty
	IsValid bool

	// Errors are problems that make the expression unusable
	Errors []string

	// Warnings are problems the expression can still run with
	Warnings []string

	// Suggestions are optional improvements for the user
	Suggestions []string

	// PerformanceScore estimates match cost on a 1 (worst) to 10 (best) scale
	PerformanceScore int
}

// NewValidationResult returns a result that starts out valid
func NewValidationResult() *ValidationResult {
	return &ValidationResult{IsValid: true, PerformanceScore: 10}
}

// AddError records an error and marks the result invalid
func (r *ValidationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.IsValid = false
}

// AddWarning records a warning
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// AddSuggestion records a suggestion
func (r *ValidationResult) AddSuggestion(msg string) {
	r.Suggestions = append(r.Suggestions, msg)
}

// Merge folds another result into this one, keeping the lower score
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Suggestions = append(r.Suggestions, other.Suggestions...)
	if len(other.Errors) > 0 {
		r.IsValid = false
	}
	if other.PerformanceScore > 0 && other.PerformanceScore < r.PerformanceScore {
		r.PerformanceScore = other.PerformanceScore
	}
}

// MatchResult is the outcome of matching one pattern against a file list
type MatchResult struct {
	// MatchedFiles is the subset of the input files that matched
	MatchedFiles []string

	// TotalFilesChecked is the size of the input file list
	TotalFilesChecked int

	// ExecutionTimeMS is the wall-clock match duration in milliseconds
	ExecutionTimeMS float64

	// CacheHit is true when the result was served from the cache
	CacheHit bool

	// PerformanceMetrics holds derived metrics such as "match_ratio"
	PerformanceMetrics map[string]float64

	// Errors holds non-fatal per-file problems encountered while matching
	Errors []string
}
