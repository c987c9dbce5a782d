// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - LLMService: The generative oracle used for decomposition, fan-out and coverage
//   - ContentFetcher: Retrieves and normalises the page under analysis
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application falls back to embedded defaults:
//
//   - PromptStore: User-editable prompt templates
//   - AIConfigValidator: Connectivity checks used by the settings commands
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
