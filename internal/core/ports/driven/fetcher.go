package driven

import (
	"context"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
)

// ContentFetcher retrieves a page and normalises it into a ContentArtifact.
//
// Implementations return errors wrapping domain.ErrContentTooShort when the
// page has too little text, domain.ErrPaywalled for 401/403 responses, and
// domain.ErrFetchFailed for any other retrieval failure.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (*domain.ContentArtifact, error)
}
