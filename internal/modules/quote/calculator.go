// README: Quote calculator; pure arithmetic over a pre-fetched price table.
package quote

import (
	"fmt"
	"math"
	"sort"

	"hibachi/internal/modules/pricing"
	"hibachi/internal/types"
)

// Request bounds. Larger parties are quoted by hand.
const (
	MaxGuests      = 10_000
	MaxQuantity    = 10_000
	MaxTravelMiles = 5_000
)

var errAmountRange = fmt.Errorf("%w: amount out of range", ErrInvalidInput)

// Calculate prices a party against table. It performs no I/O and is safe for
// concurrent use as long as table is not mutated.
func Calculate(table pricing.PriceTable, req PartyRequest) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}

	res := Result{Currency: types.CurrencyUSD}

	// Toddlers eat free.
	adults, err := mulCents(req.Adults, table.Get(pricing.KeyAdult))
	if err != nil {
		return Result{}, err
	}
	children, err := mulCents(req.Children, table.Get(pricing.KeyChild))
	if err != nil {
		return Result{}, err
	}
	if res.Subtotal, err = addCents(adults, children); err != nil {
		return Result{}, err
	}
	if floor := table.Get(pricing.KeyPartyMinimum); res.Subtotal < floor {
		res.Subtotal = floor
		res.AppliedMinimum = true
	}

	keys := make([]string, 0, len(req.Upgrades))
	for k := range req.Upgrades {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		qty := req.Upgrades[k]
		if qty == 0 {
			continue
		}
		unit, ok := table.Lookup(k)
		if !ok || !pricing.IsUpgrade(k) {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownUpgrade, k)
		}
		total, err := mulCents(qty, unit)
		if err != nil {
			return Result{}, err
		}
		res.Upgrades = append(res.Upgrades, UpgradeLine{Key: k, Quantity: qty, UnitCents: unit, Total: total})
		if res.UpgradesTotal, err = addCents(res.UpgradesTotal, total); err != nil {
			return Result{}, err
		}
	}

	perMile := table.Get(pricing.KeyPerMileRate)
	if perMile > 0 && req.TravelMiles*float64(perMile) >= math.MaxInt64/2 {
		return Result{}, errAmountRange
	}
	res.TravelFee = TravelFee(req.TravelMiles, table.Get(pricing.KeyFreeMiles), perMile)

	if res.GrandTotal, err = addCents(res.Subtotal, res.UpgradesTotal); err != nil {
		return Result{}, err
	}
	if res.GrandTotal, err = addCents(res.GrandTotal, res.TravelFee); err != nil {
		return Result{}, err
	}

	res.Deposit = table.Get(pricing.KeyDeposit)
	if res.Deposit > res.GrandTotal {
		res.Deposit = res.GrandTotal
	}
	res.BalanceDue = res.GrandTotal - res.Deposit
	return res, nil
}

// TravelFee charges perMileCents for every mile beyond freeMiles, rounded to the cent.
func TravelFee(miles float64, freeMiles, perMileCents int64) int64 {
	excess := miles - float64(freeMiles)
	if excess <= 0 || perMileCents <= 0 {
		return 0
	}
	return int64(math.Round(excess * float64(perMileCents)))
}

// mulCents multiplies a non-negative count by a unit price, failing on overflow.
func mulCents(n int, unit int64) (int64, error) {
	if n == 0 || unit == 0 {
		return 0, nil
	}
	if unit < 0 || int64(n) > math.MaxInt64/unit {
		return 0, errAmountRange
	}
	return int64(n) * unit, nil
}

func addCents(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, errAmountRange
	}
	return a + b, nil
}

func validate(req PartyRequest) error {
	switch {
	case req.Adults < 0:
		return fmt.Errorf("%w: adults must be >= 0", ErrInvalidInput)
	case req.Children < 0:
		return fmt.Errorf("%w: children must be >= 0", ErrInvalidInput)
	case req.Toddlers < 0:
		return fmt.Errorf("%w: toddlers must be >= 0", ErrInvalidInput)
	case req.Guests() > MaxGuests || req.Adults > MaxGuests || req.Children > MaxGuests || req.Toddlers > MaxGuests:
		return fmt.Errorf("%w: at most %d guests", ErrInvalidInput, MaxGuests)
	case math.IsNaN(req.TravelMiles) || math.IsInf(req.TravelMiles, 0) || req.TravelMiles < 0:
		return fmt.Errorf("%w: travel miles must be a non-negative number", ErrInvalidInput)
	case req.TravelMiles > MaxTravelMiles:
		return fmt.Errorf("%w: travel miles must be <= %d", ErrInvalidInput, MaxTravelMiles)
	}
	for k, q := range req.Upgrades {
		if q < 0 {
			return fmt.Errorf("%w: upgrade %s quantity must be >= 0", ErrInvalidInput, k)
		}
		if q > MaxQuantity {
			return fmt.Errorf("%w: upgrade %s quantity must be <= %d", ErrInvalidInput, k, MaxQuantity)
		}
	}
	return nil
}
