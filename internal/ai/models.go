package ai

import (
	"hibachi/internal/modules/quote"
	"hibachi/internal/types"
)

// DraftInput is everything a drafter may mention about a quote.
type DraftInput struct {
	CustomerName string
	VenueAddress string
	Request      quote.PartyRequest
	Result       quote.Result
	// Tone is a free-form hint such as "friendly" or "formal"; empty means friendly.
	Tone string
}

// FromQuote builds a DraftInput from a stored quote.
func FromQuote(q *quote.Quote, tone string) DraftInput {
	return DraftInput{
		CustomerName: q.CustomerName,
		VenueAddress: q.VenueAddress,
		Request:      q.Request,
		Result:       q.Result,
		Tone:         tone,
	}
}

func usd(cents int64) string {
	return types.USD(cents).String()
}
