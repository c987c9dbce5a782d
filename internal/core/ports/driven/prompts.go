package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// Templates use text/template syntax; the data each receives is documented
// on the service that renders it.
const (
	// PromptDecomposition asks for a three-tier query graph.
	PromptDecomposition = "decomposition"

	// PromptAssessment asks for coverage verdicts on a batch of queries.
	PromptAssessment = "assessment"

	// PromptFanOut asks for keyword variants of the requested types.
	PromptFanOut = "fanout"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use embedded default prompts.
	SetPromptStore(store PromptStore)
}
