// Package domain models the travel guide's core types: the resolved location
// identity, per-provider results, and the merged location report.
//
// # Pipeline shape
//
// A request flows through exactly one geocoding call followed by a concurrent
// fan-out to four independent data providers (summary, weather, events,
// cuisine). Geocoding failure is the only fatal outcome; every provider
// failure is folded into the report as an Unavailable section so a degraded
// answer is still an answer.
//
// # Result boundary
//
// Provider adapters never let raw transport or decoding errors cross into the
// aggregator. Each adapter classifies its failure into one of four reasons
// (not-configured, upstream-error, timeout, no-data) and returns a Result
// value. The aggregator merges Results without knowing provider internals.
package domain
