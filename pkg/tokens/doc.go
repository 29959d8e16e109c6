// Package tokens implements the dynamic token micro-language used by
// enhanced glob patterns. Tokens look like $NAME or $NAME{args} and are
// expanded to concrete strings by provider functions: dates, user and
// host names, environment variables, git state, counters, and UUIDs.
// Custom tokens registered at runtime shadow the built-in providers.
package tokens
