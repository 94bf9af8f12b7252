package lsmc

import "lsmc/internal/domain"

// exerciseValues fills the immediate payoff and the in-the-money mask for
// paths [lo, hi) at time t
func exerciseValues(paths domain.Matrix, t int, optionType domain.OptionType, strike float64, exercise []float64, itm []bool, lo, hi int) {
	for p := lo; p < hi; p++ {
		v := optionType.Payoff(paths[p][t], strike)
		exercise[p] = v
		itm[p] = v > 0
	}
}
