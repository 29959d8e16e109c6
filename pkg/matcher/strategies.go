package matcher

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/DinosaursAreCute/taskmover/pkg/errors"
	"github.com/DinosaursAreCute/taskmover/pkg/groups"
	"github.com/DinosaursAreCute/taskmover/pkg/logging"
	"github.com/DinosaursAreCute/taskmover/pkg/parser"
	"github.com/DinosaursAreCute/taskmover/pkg/types"
)

const (
	// recentWindow is the shorthand "recent" modification cutoff
	recentWindow = 7 * 24 * time.Hour

	// largeThreshold is the shorthand "large" size cutoff in bytes
	largeThreshold = 100000000
)

var (
	groupCallPattern = regexp.MustCompile(`^group_match\('(\w+)'\)$`)

	// supported advanced-query condition shapes; anything else in the
	// compiled string is treated as always-true
	nameCondPattern = regexp.MustCompile(`name LIKE '((?:[^']|'')*)'`)
	sizeCondPattern = regexp.MustCompile(`size\s*(=|!=|<=|>=|<|>)\s*(\d+)`)
	extCondPattern  = regexp.MustCompile(`extension\s*=\s*'([^']*)'`)
)

// duplicatesWarnOnce keeps the not-implemented warning from repeating
// on every match call
var duplicatesWarnOnce sync.Once

// matchSimpleGlob matches file base names directly against the raw
// user expression
func (m *Matcher) matchSimpleGlob(p *types.Pattern, files []string) ([]string, []string, error) {
	var matched []string
	for _, file := range files {
		if m.globMatch(p.UserExpression, filepath.Base(file)) {
			matched = append(matched, file)
		}
	}
	return matched, nil, nil
}

// matchEnhancedGlob recovers the token-resolved glob from the compiled
// query and matches base names against it. Tokens were resolved at
// parse time; no token work happens here.
func (m *Matcher) matchEnhancedGlob(p *types.Pattern, files []string) ([]string, []string, error) {
	glob, ok := parser.GlobFromCompiled(p.CompiledQuery)
	if !ok {
		return nil, nil, errors.Newf(errors.ErrPatternParse,
			"compiled query %q is not a glob form", p.CompiledQuery)
	}

	var matched []string
	for _, file := range files {
		if m.globMatch(glob, filepath.Base(file)) {
			matched = append(matched, file)
		}
	}
	return matched, nil, nil
}

// matchGroupReference matches against the named built-in group's
// sub-patterns, first match wins per file
func (m *Matcher) matchGroupReference(p *types.Pattern, files []string) ([]string, []string, error) {
	name := groupName(p)
	subPatterns, ok := groups.Lookup(name)
	if !ok {
		return nil, nil, errors.Newf(errors.ErrGroupNotFound, "unknown group @%s", name)
	}

	var matched []string
	for _, file := range files {
		base := filepath.Base(file)
		for _, sub := range subPatterns {
			if m.globMatch(sub, base) {
				matched = append(matched, file)
				break
			}
		}
	}
	return matched, nil, nil
}

// groupName extracts the group name from the compiled sentinel call,
// falling back to the raw expression
func groupName(p *types.Pattern) string {
	if m := groupCallPattern.FindStringSubmatch(p.CompiledQuery); m != nil {
		return m[1]
	}
	return groups.Normalize(p.UserExpression)
}

// matchAdvancedQuery extracts the supported conditions from the
// compiled query and requires every extracted condition to hold
// against each file's metadata. Unrecognized clauses are permissive.
func (m *Matcher) matchAdvancedQuery(p *types.Pattern, files []string) ([]string, []string, error) {
	logger := logging.GetLogger("matcher")
	conditions := extractConditions(p.CompiledQuery)
	if len(conditions) == 0 {
		logger.Debug().
			Str("compiled", p.CompiledQuery).
			Msg("no recognized conditions; advanced query matches everything")
	}

	var matched, skipped []string
	for _, file := range files {
		meta, err := types.FileMetadataFromPath(m.fs, file)
		if err != nil {
			logger.Debug().
				Err(err).
				Str("file", file).
				Msg("stat failed, file skipped")
			skipped = append(skipped, fmt.Sprintf("%s: %v", file, err))
			continue
		}

		ok := true
		for _, cond := range conditions {
			if !cond(m, meta) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, file)
		}
	}
	return matched, skipped, nil
}

// condition checks one extracted clause against file metadata
type condition func(m *Matcher, meta *types.FileMetadata) bool

func extractConditions(compiled string) []condition {
	var conds []condition

	if nm := nameCondPattern.FindStringSubmatch(compiled); nm != nil {
		glob := parser.GlobFromLike(nm[1])
		conds = append(conds, func(m *Matcher, meta *types.FileMetadata) bool {
			return m.globMatch(glob, meta.Name)
		})
	}

	for _, sm := range sizeCondPattern.FindAllStringSubmatch(compiled, -1) {
		op := sm[1]
		limit, err := strconv.ParseInt(sm[2], 10, 64)
		if err != nil {
			continue
		}
		conds = append(conds, func(_ *Matcher, meta *types.FileMetadata) bool {
			return compareSize(meta.SizeBytes, op, limit)
		})
	}

	if em := extCondPattern.FindStringSubmatch(compiled); em != nil {
		want := strings.ToLower(strings.TrimPrefix(em[1], "."))
		conds = append(conds, func(_ *Matcher, meta *types.FileMetadata) bool {
			return meta.Extension == want
		})
	}

	return conds
}

func compareSize(size int64, op string, limit int64) bool {
	switch op {
	case "=":
		return size == limit
	case "!=":
		return size != limit
	case "<":
		return size < limit
	case "<=":
		return size <= limit
	case ">":
		return size > limit
	case ">=":
		return size >= limit
	default:
		return true
	}
}

// matchShorthand evaluates the fixed shorthand keywords with live
// filesystem metadata
func (m *Matcher) matchShorthand(p *types.Pattern, files []string) ([]string, []string, error) {
	keyword := strings.ToLower(strings.TrimSpace(p.UserExpression))

	if keyword == "duplicates" {
		// routed but deliberately unimplemented: duplicate detection
		// needs content hashing that lives outside this core
		duplicatesWarnOnce.Do(func() {
			logger := logging.GetLogger("matcher")
			logger.Warn().
				Str("code", string(errors.ErrNotImplemented)).
				Msg("'duplicates' shorthand is not implemented and matches nothing")
		})
		return nil, nil, nil
	}

	predicate, err := m.shorthandPredicate(keyword)
	if err != nil {
		return nil, nil, err
	}

	var matched, skipped []string
	for _, file := range files {
		meta, metaErr := types.FileMetadataFromPath(m.fs, file)
		if metaErr != nil {
			skipped = append(skipped, fmt.Sprintf("%s: %v", file, metaErr))
			continue
		}
		if predicate(meta) {
			matched = append(matched, file)
		}
	}
	return matched, skipped, nil
}

func (m *Matcher) shorthandPredicate(keyword string) (func(*types.FileMetadata) bool, error) {
	now := time.Now()
	switch keyword {
	case "recent":
		return func(meta *types.FileMetadata) bool {
			return now.Sub(meta.Modified) <= recentWindow
		}, nil
	case "large":
		return func(meta *types.FileMetadata) bool {
			return meta.SizeBytes > largeThreshold
		}, nil
	case "empty":
		return func(meta *types.FileMetadata) bool {
			return meta.SizeBytes == 0 && !meta.IsDir
		}, nil
	case "hidden":
		return func(meta *types.FileMetadata) bool {
			return meta.IsHidden
		}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown shorthand keyword %q", keyword)
	}
}
