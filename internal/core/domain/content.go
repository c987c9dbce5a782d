package domain

// ContentArtifact is the cleaned content of a single page.
// It is produced once by a ContentFetcher and is read-only afterwards.
type ContentArtifact struct {
	// URL is the location the content was retrieved from.
	URL string `json:"url"`

	// Title is the page heading or document title.
	Title string `json:"title"`

	// NormalizedText is the page body converted to light markdown.
	NormalizedText string `json:"normalized_text"`

	// Description is the meta description, when the page has one.
	Description string `json:"description,omitempty"`

	// WordCount is the number of whitespace-delimited words in NormalizedText.
	WordCount int `json:"word_count"`
}
