// README: YAML price file loader used by the CLI and bulk imports.
package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type priceFile struct {
	Prices map[string]int64 `yaml:"prices"`
}

// LoadFile reads a YAML document of the form
//
//	prices:
//	  adult: 5500
//	  lobster_tail: 1000
//
// and returns only the keys it names.
func LoadFile(path string) (PriceTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read price file: %w", err)
	}
	return ParseFile(data)
}

func ParseFile(data []byte) (PriceTable, error) {
	var f priceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse price file: %w", err)
	}
	table := make(PriceTable, len(f.Prices))
	for k, v := range f.Prices {
		if !keyPattern.MatchString(k) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKey, k)
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: %s=%d", ErrInvalidPrice, k, v)
		}
		table[k] = v
	}
	return table, nil
}
