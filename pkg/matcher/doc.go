// Package matcher executes compiled patterns against file lists. It
// dispatches on pattern type through a strategy table, caches match
// results, maintains per-pattern usage statistics, and runs pairwise
// conflict detection between patterns via an injected conflict engine.
package matcher
