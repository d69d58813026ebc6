// Package cache stores validation reports keyed by task content and device
// profile, so repeated submissions of an identical task skip revalidation.
//
// Two backends are available: an in-process LRU with TTL expiry for single
// instance deployments, and redis for sharing results across replicas. Both
// are safe for concurrent use.
package cache
