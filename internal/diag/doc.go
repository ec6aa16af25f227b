// Package diag defines the diagnostic model shared by all expansion phases.
//
// Diagnostic is the central record: severity, a stable numeric code, a short
// message, the primary source.Span of the offending tokens, plus optional
// notes and fix suggestions. Producers emit through a Reporter so they stay
// decoupled from storage; BagReporter aggregates into a Bag, which supports
// sorting, deduplication, and merging.
//
// Package diag performs no formatting or IO. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver.
//
// Positions are always the spans of real tokens. Nothing in this package
// fabricates a synthetic position.
package diag
