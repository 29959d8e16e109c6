// Package validation implements deep syntax, semantic, and performance
// checks for pattern expressions, independent of actual matching. It
// verifies token names and arguments against the resolver's table,
// checks advanced-query grammar, and produces optimization suggestions.
package validation
