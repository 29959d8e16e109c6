package types

// Conflict describes a non-empty intersection between two patterns' match
// sets over the same file list.
type Conflict struct {
	// ID identifies the conflict within a report
	ID string

	// ConflictType names the kind of conflict, e.g. "pattern_overlap"
	ConflictType string

	// ExistingID and NewID identify the two patterns involved
	ExistingID string
	NewID      string

	// OverlapFiles lists the files matched by both patterns
	OverlapFiles []string

	// Context carries free-form data for the resolution engine
	Context map[string]interface{}
}

// ConflictResolution is the outcome of asking the conflict engine to
// resolve a detected conflict.
type ConflictResolution struct {
	// Success is true when the engine resolved the conflict
	Success bool

	// StrategyUsed names the strategy the engine applied
	StrategyUsed string
}

// ConflictManager is the externally-injected conflict-policy engine.
// This core only calls it; implementations live with the caller.
type ConflictManager interface {
	// DetectConflict inspects a candidate overlap and returns a Conflict
	// when it considers the overlap a real conflict, or nil otherwise
	DetectConflict(conflictType string, existingID, newID string, context map[string]interface{}, scope string) (*Conflict, error)

	// ResolveConflict attempts to resolve a detected conflict, optionally
	// with an explicit strategy override (empty string = engine default)
	ResolveConflict(conflict *Conflict, strategy string) (*ConflictResolution, error)
}

// ConflictDetail records the outcome of analyzing one pattern pair
type ConflictDetail struct {
	// PatternA and PatternB identify the two patterns of the pair
	PatternA string
	PatternB string

	// OverlapFiles lists the files both patterns matched
	OverlapFiles []string

	// Resolved is true when the conflict engine resolved the conflict
	Resolved bool

	// Strategy names the resolution strategy that was applied
	Strategy string

	// Error holds a failure analyzing this pair; other pairs proceed
	Error string
}

// ConflictReport aggregates a full pairwise conflict scan
type ConflictReport struct {
	// ConflictsDetected counts the pairs the engine flagged as conflicts
	ConflictsDetected int

	// ConflictsResolved counts the conflicts the engine resolved
	ConflictsResolved int

	// Details holds one entry per detected conflict or failed pair
	Details []ConflictDetail
}
