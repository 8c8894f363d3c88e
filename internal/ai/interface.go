package ai

import (
	"context"
)

// Drafter writes a customer-facing message describing a quote.
// Implementations never send anything; delivery belongs to the caller.
type Drafter interface {
	DraftQuoteMessage(ctx context.Context, in DraftInput) (string, error)
}
