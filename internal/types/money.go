// README: Common money value object used across modules.
package types

import "fmt"

const CurrencyUSD = "USD"

// Money is an amount in the currency's smallest unit (cents for USD).
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func USD(cents int64) Money {
	return Money{Amount: cents, Currency: CurrencyUSD}
}

// String renders USD as "$1,234.50"; other currencies fall back to "1234.50 XXX".
func (m Money) String() string {
	neg := m.Amount < 0
	a := m.Amount
	if neg {
		a = -a
	}
	whole, frac := a/100, a%100
	sign := ""
	if neg {
		sign = "-"
	}
	if m.Currency != CurrencyUSD && m.Currency != "" {
		return fmt.Sprintf("%s%d.%02d %s", sign, whole, frac, m.Currency)
	}
	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(whole), frac)
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	pre := len(s) % 3
	if pre > 0 {
		out = append(out, s[:pre]...)
	}
	for i := pre; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
