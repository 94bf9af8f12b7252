package calculator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"lsmc/internal/domain"
)

// BlackScholes prices the european version of the contract. it is the lower
// bound for the american price and gives the early exercise premium
func BlackScholes(optionType domain.OptionType, spot, strike, tenor, rate, volatility float64) (float64, error) {
	if err := optionType.Validate(); err != nil {
		return 0, err
	}
	if !(spot > 0) || !(strike > 0) || !(tenor > 0) || !(volatility > 0) {
		return 0, fmt.Errorf("%w: spot, strike, tenor and volatility must be positive", domain.ErrInvalidInput)
	}

	sqrtT := math.Sqrt(tenor)
	d1 := (math.Log(spot/strike) + (rate+0.5*volatility*volatility)*tenor) / (volatility * sqrtT)
	d2 := d1 - volatility*sqrtT
	discountedStrike := strike * math.Exp(-rate*tenor)

	if optionType == domain.OptionTypeCall {
		return spot*distuv.UnitNormal.CDF(d1) - discountedStrike*distuv.UnitNormal.CDF(d2), nil
	}
	return discountedStrike*distuv.UnitNormal.CDF(-d2) - spot*distuv.UnitNormal.CDF(-d1), nil
}
