// Package cache implements a bounded, thread-safe key/value cache with
// TTL expiry and LRU eviction. Expired entries are dropped lazily on
// access and proactively by a background maintenance loop.
package cache
