// Package config loads runtime settings from layered sources: embedded
// defaults, an optional taskmover.toml in the working directory, and
// TASKMOVER_* environment variables, in that order of precedence.
package config
