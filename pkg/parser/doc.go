// Package parser classifies raw pattern text into one of the five
// pattern dialects (simple glob, enhanced glob, advanced query,
// shorthand, group reference) and compiles it into the internal
// SQL-LIKE-flavored query representation.
package parser
