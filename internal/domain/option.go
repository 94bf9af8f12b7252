package domain

import (
	"fmt"
	"strings"
)

type OptionType string

const (
	OptionTypeCall OptionType = "call"
	OptionTypePut  OptionType = "put"
)

// ParseOptionType accepts "call" or "put" in any case. there is no default,
// an empty string is an error
func ParseOptionType(s string) (OptionType, error) {
	switch OptionType(strings.ToLower(strings.TrimSpace(s))) {
	case OptionTypeCall:
		return OptionTypeCall, nil
	case OptionTypePut:
		return OptionTypePut, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOptionType, s)
}

func (o OptionType) Validate() error {
	if o != OptionTypeCall && o != OptionTypePut {
		return fmt.Errorf("%w: %q", ErrUnknownOptionType, string(o))
	}
	return nil
}

// Payoff is the immediate exercise value of one unit of the option
func (o OptionType) Payoff(price, strike float64) float64 {
	if o == OptionTypePut {
		return max(strike-price, 0)
	}
	return max(price-strike, 0)
}

// OptionContract is a vanilla american contract on a single underlying
type OptionContract struct {
	Type   OptionType
	Strike float64
	// Tenor is the time to maturity in years
	Tenor float64
}
