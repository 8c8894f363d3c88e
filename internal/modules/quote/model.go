// README: Party request, quote breakdown and persisted quote definitions.
package quote

import (
	"time"

	"hibachi/internal/types"
)

// PartyRequest is the priced input: who is eating, what they add on, how far the chef drives.
type PartyRequest struct {
	Adults      int            `json:"adults"`
	Children    int            `json:"children"`
	Toddlers    int            `json:"toddlers"`
	Upgrades    map[string]int `json:"upgrades,omitempty"`
	TravelMiles float64        `json:"travel_miles"`
}

// UpgradeLine is one priced add-on of a quote.
type UpgradeLine struct {
	Key       string `json:"key"`
	Quantity  int    `json:"quantity"`
	UnitCents int64  `json:"unit_cents"`
	Total     int64  `json:"total"`
}

// Result is the full breakdown, all amounts in cents.
type Result struct {
	Subtotal       int64         `json:"subtotal"`
	AppliedMinimum bool          `json:"applied_minimum"`
	Upgrades       []UpgradeLine `json:"upgrades"`
	UpgradesTotal  int64         `json:"upgrades_total"`
	TravelFee      int64         `json:"travel_fee"`
	GrandTotal     int64         `json:"grand_total"`
	Deposit        int64         `json:"deposit"`
	BalanceDue     int64         `json:"balance_due"`
	Currency       string        `json:"currency"`
}

type Quote struct {
	ID           types.ID     `json:"id"`
	CustomerName string       `json:"customer_name,omitempty"`
	VenueAddress string       `json:"venue_address,omitempty"`
	Request      PartyRequest `json:"request"`
	Result       Result       `json:"result"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Guests is the number of people served, toddlers included.
func (r PartyRequest) Guests() int {
	return r.Adults + r.Children + r.Toddlers
}
