// README: Price table keys, built-in defaults and source tags.
package pricing

// PriceTable maps a category key to its unit price in cents. Non-currency
// settings (free_miles) share the table so a single config store drives them.
type PriceTable map[string]int64

const (
	KeyAdult        = "adult"
	KeyChild        = "child"
	KeyPartyMinimum = "party_minimum"
	KeyFreeMiles    = "free_miles"
	KeyPerMileRate  = "per_mile_rate"
	KeyDeposit      = "deposit"
)

const (
	UpgradeFiletMignon     = "filet_mignon"
	UpgradeLobsterTail     = "lobster_tail"
	UpgradeSalmon          = "salmon"
	UpgradeScallops        = "scallops"
	UpgradeExtraProtein    = "extra_protein"
	UpgradeYakisobaNoodles = "yakisoba_noodles"
)

// Source tells where a price came from.
type Source string

const (
	SourceConfig  Source = "config"
	SourceDefault Source = "default"
)

// Entry is one row of the admin listing.
type Entry struct {
	Key    string `json:"key"`
	Cents  int64  `json:"cents"`
	Source Source `json:"source"`
}

var baseKeys = map[string]bool{
	KeyAdult:        true,
	KeyChild:        true,
	KeyPartyMinimum: true,
	KeyFreeMiles:    true,
	KeyPerMileRate:  true,
	KeyDeposit:      true,
}

// DefaultTable returns a fresh copy of the built-in prices.
func DefaultTable() PriceTable {
	return PriceTable{
		KeyAdult:        5500,
		KeyChild:        3000,
		KeyPartyMinimum: 55000,
		KeyFreeMiles:    30,
		KeyPerMileRate:  200,
		KeyDeposit:      10000,

		UpgradeFiletMignon:     500,
		UpgradeLobsterTail:     1000,
		UpgradeSalmon:          500,
		UpgradeScallops:        500,
		UpgradeExtraProtein:    1000,
		UpgradeYakisobaNoodles: 500,
	}
}

// IsUpgrade reports whether key names a per-person add-on rather than a base setting.
func IsUpgrade(key string) bool {
	return key != "" && !baseKeys[key]
}

// Get returns the price for key, or the built-in default when the table lacks it.
func (t PriceTable) Get(key string) int64 {
	if v, ok := t[key]; ok {
		return v
	}
	return DefaultTable()[key]
}

// Lookup is Get that also reports whether key is known to t or the defaults.
func (t PriceTable) Lookup(key string) (int64, bool) {
	if v, ok := t[key]; ok {
		return v, true
	}
	v, ok := DefaultTable()[key]
	return v, ok
}

// Merge returns a copy of t with every key of overrides applied on top.
func (t PriceTable) Merge(overrides PriceTable) PriceTable {
	out := make(PriceTable, len(t)+len(overrides))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Upgrades returns only the add-on entries of the table.
func (t PriceTable) Upgrades() PriceTable {
	out := PriceTable{}
	for k, v := range t {
		if IsUpgrade(k) {
			out[k] = v
		}
	}
	return out
}
