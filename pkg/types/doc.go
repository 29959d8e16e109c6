// Package types defines the core types and interfaces used throughout
// taskmover. This includes the Pattern and ParsedPattern records, match
// and validation results, file metadata, and the ConflictManager
// interface implemented by external conflict-policy engines.
package types
