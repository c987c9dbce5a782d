// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The analysis pipeline lives here:
//
//   - Extractor: pulls a JSON value out of free-form oracle text
//   - QueryDecomposer: asks the oracle for a three-tier query graph
//   - KeywordFanOut and VariantFilter: generate, dedupe and score keyword variants
//   - Assemble: merges tiers and variants into one QueryGraph
//   - CoverageEvaluator: assesses queries in sequential batches
//   - Score and BuildReport: deterministic scoring and report assembly
//
// Services are pure Go with no CGO or external dependencies.
package services
