// Package diag defines the diagnostic model shared by all pipeline phases.
//
// Diagnostic is the central record: severity, a stable numeric code, a short
// message, the primary source.Span, and optional notes pointing at secondary
// spans ("declared here", "previous definition"). Phases emit diagnostics
// through the Reporter interface so that producers stay decoupled from storage
// and formatting; BagReporter aggregates them into a capped Bag which supports
// deterministic sorting and deduplication.
//
// The package performs no IO and no formatting. Rendering lives in
// internal/diagfmt; orchestration in internal/driver.
package diag
