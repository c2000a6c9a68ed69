package ports

import (
	"context"

	"newschomp/internal/domain"
)

// Summarizer condenses article content into a short title and summary.
// A nil result means enrichment is unavailable (empty content, missing
// credentials, or an upstream failure); callers proceed without it.
type Summarizer interface {
	Summarize(ctx context.Context, content string) *domain.Summary
}
