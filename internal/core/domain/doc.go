// Package domain defines the core business entities for fanout.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ContentArtifact: Normalised text of the page under analysis
//   - QueryItem / TierGraph: Queries produced by content decomposition
//   - FanOutQuery: Keyword variants produced by fan-out generation
//   - QueryGraph: The merged graph handed to coverage evaluation
//   - CoverageVerdict: The oracle's judgement for one query
//   - AnalysisReport: The immutable result of one pipeline run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
