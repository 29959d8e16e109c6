package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	relDatePattern = regexp.MustCompile(`\btoday\s*([+-])\s*(\d+)\b`)
	sizeUnitPattern = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(KB|MB|GB|TB)\b`)
)

// shorthandQueries maps each shorthand keyword to its canned compiled
// query string
var shorthandQueries = map[string]string{
	"recent":     "modified >= date_sub(now(), 7)",
	"large":      "size > 100000000",
	"empty":      "size = 0",
	"hidden":     "name LIKE '.%'",
	"duplicates": "duplicate_of IS NOT NULL",
}

// compileGlob rewrites a glob pattern into the internal SQL-LIKE form.
// Literal % and _ are backslash-escaped and quotes doubled so the
// mapping stays reversible.
func compileGlob(glob string) string {
	return fmt.Sprintf("name LIKE '%s'", globToLike(glob))
}

func globToLike(glob string) string {
	var b strings.Builder
	for _, c := range glob {
		switch c {
		case '*':
			b.WriteByte('%')
		case '?':
			b.WriteByte('_')
		case '%':
			b.WriteString(`\%`)
		case '_':
			b.WriteString(`\_`)
		case '\'':
			b.WriteString("''")
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// GlobFromLike reverses globToLike. The matcher uses it to recover the
// glob fragment from a compiled "name LIKE '...'" query.
func GlobFromLike(like string) string {
	var b strings.Builder
	for i := 0; i < len(like); i++ {
		switch {
		case like[i] == '\\' && i+1 < len(like) && (like[i+1] == '%' || like[i+1] == '_'):
			b.WriteByte(like[i+1])
			i++
		case like[i] == '\'' && i+1 < len(like) && like[i+1] == '\'':
			b.WriteByte('\'')
			i++
		case like[i] == '%':
			b.WriteByte('*')
		case like[i] == '_':
			b.WriteByte('?')
		default:
			b.WriteByte(like[i])
		}
	}
	return b.String()
}

// likeArgPattern extracts the quoted fragment of a "name LIKE '...'"
// compiled query
var likeArgPattern = regexp.MustCompile(`^name LIKE '(.*)'$`)

// GlobFromCompiled recovers the original glob from a compiled glob
// query, returning false when the query is not a plain name LIKE form
func GlobFromCompiled(compiled string) (string, bool) {
	m := likeArgPattern.FindStringSubmatch(compiled)
	if m == nil {
		return "", false
	}
	return GlobFromLike(m[1]), true
}

// compileGroupReference compiles "@media" into the sentinel call the
// matcher dispatches on
func compileGroupReference(expression string) string {
	name := strings.ToLower(strings.TrimPrefix(expression, "@"))
	return fmt.Sprintf("group_match('%s')", name)
}

// compileShorthand returns the canned query for a shorthand keyword
func compileShorthand(expression string) string {
	return shorthandQueries[strings.ToLower(strings.TrimSpace(expression))]
}

// compileAdvancedQuery passes the expression through with light
// rewriting: relative dates become explicit date arithmetic calls and
// size-unit literals become byte counts. Tokens and group references
// are left in place; they are surfaced in metadata, not expanded here.
func compileAdvancedQuery(expression string) string {
	compiled := relDatePattern.ReplaceAllStringFunc(expression, func(m string) string {
		parts := relDatePattern.FindStringSubmatch(m)
		if parts[1] == "+" {
			return fmt.Sprintf("date_add(now(), %s)", parts[2])
		}
		return fmt.Sprintf("date_sub(now(), %s)", parts[2])
	})

	compiled = sizeUnitPattern.ReplaceAllStringFunc(compiled, func(m string) string {
		parts := sizeUnitPattern.FindStringSubmatch(m)
		value, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return m
		}
		multiplier := map[string]float64{
			"KB": 1 << 10,
			"MB": 1 << 20,
			"GB": 1 << 30,
			"TB": 1 << 40,
		}[strings.ToUpper(parts[2])]
		return strconv.FormatInt(int64(value*multiplier), 10)
	})

	return compiled
}
