// Package oddsmath converts between American odds, decimal odds, and implied
// probabilities.
package oddsmath

import "math"

// Decimal converts American odds to decimal odds:
// +150 -> 2.5, -200 -> 1.5.
func Decimal(american int) float64 {
	if american == 0 {
		return 1.0
	}
	if american > 0 {
		return float64(american)/100.0 + 1.0
	}
	return 100.0/math.Abs(float64(american)) + 1.0
}

// ImpliedProbability returns the vig-inclusive probability an American price
// implies.
func ImpliedProbability(american int) float64 {
	dec := Decimal(american)
	if dec <= 1.0 {
		return 0
	}
	return 1.0 / dec
}

// NoVig removes the bookmaker margin from a two-way market by normalizing the
// implied probabilities to sum to one.
func NoVig(sideA, sideB int) (float64, float64) {
	pa := ImpliedProbability(sideA)
	pb := ImpliedProbability(sideB)
	total := pa + pb
	if total <= 0 {
		return 0.5, 0.5
	}
	return pa / total, pb / total
}

// ProfitOnWin returns the profit for a winning wager of the given stake:
// stake*(decimal-1).
func ProfitOnWin(stake float64, american int) float64 {
	return stake * (Decimal(american) - 1.0)
}
