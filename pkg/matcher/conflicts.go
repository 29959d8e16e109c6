package matcher

import (
	"fmt"

	"github.com/DinosaursAreCute/taskmover/pkg/logging"
	"github.com/DinosaursAreCute/taskmover/pkg/types"
)

// HandleConflicts computes the match sets of every unordered pattern
// pair over the file list, hands each non-empty intersection to the
// conflict engine, and aggregates the outcome. A failure on one pair
// never aborts the others. Quadratic in pattern count by design;
// conflict scans run on demand, not per match.
func (m *Matcher) HandleConflicts(patterns []*types.Pattern, files []string) *types.ConflictReport {
	logger := logging.GetLogger("matcher.conflicts")
	report := &types.ConflictReport{}

	for i := 0; i < len(patterns); i++ {
		for j := i + 1; j < len(patterns); j++ {
			a, b := patterns[i], patterns[j]
			detail := types.ConflictDetail{PatternA: a.ID, PatternB: b.ID}

			// fresh match sets, bypassing the result cache: the scan
			// must see current filesystem state
			setA, _, errA := m.dispatch(a, files)
			if errA != nil {
				detail.Error = fmt.Sprintf("matching %q failed: %v", a.UserExpression, errA)
				report.Details = append(report.Details, detail)
				continue
			}
			setB, _, errB := m.dispatch(b, files)
			if errB != nil {
				detail.Error = fmt.Sprintf("matching %q failed: %v", b.UserExpression, errB)
				report.Details = append(report.Details, detail)
				continue
			}

			overlap := intersect(setA, setB)
			if len(overlap) == 0 {
				continue
			}
			detail.OverlapFiles = overlap

			if m.conflicts == nil {
				report.ConflictsDetected++
				detail.Error = "no conflict manager configured; overlap detected but not resolved"
				report.Details = append(report.Details, detail)
				continue
			}

			conflict, err := m.conflicts.DetectConflict(
				"pattern_overlap", a.ID, b.ID,
				map[string]interface{}{
					"overlap_files": overlap,
					"expression_a":  a.UserExpression,
					"expression_b":  b.UserExpression,
				},
				"patterns",
			)
			if err != nil {
				detail.Error = fmt.Sprintf("conflict detection failed: %v", err)
				report.Details = append(report.Details, detail)
				continue
			}
			if conflict == nil {
				continue
			}
			conflict.OverlapFiles = overlap
			report.ConflictsDetected++

			// first non-empty per-pattern override wins
			strategy := a.ConflictStrategy
			if strategy == "" {
				strategy = b.ConflictStrategy
			}

			resolution, err := m.conflicts.ResolveConflict(conflict, strategy)
			if err != nil {
				detail.Error = fmt.Sprintf("conflict resolution failed: %v", err)
			} else if resolution != nil && resolution.Success {
				report.ConflictsResolved++
				detail.Resolved = true
				detail.Strategy = resolution.StrategyUsed
			}
			report.Details = append(report.Details, detail)
		}
	}

	logger.Info().
		Int("patterns", len(patterns)).
		Int("detected", report.ConflictsDetected).
		Int("resolved", report.ConflictsResolved).
		Msg("conflict scan complete")

	return report
}

// intersect returns the files present in both sets, preserving the
// order of the first
func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, f := range b {
		inB[f] = true
	}
	var out []string
	for _, f := range a {
		if inB[f] {
			out = append(out, f)
		}
	}
	return out
}
