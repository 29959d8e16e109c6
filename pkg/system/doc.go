// Package system wires the parser, validator, token resolver, cache,
// and matcher into one facade. Callers that do not need fine-grained
// control construct a System and use it for everything.
package system
