// Package ensemble combines the base and market-aware model outputs into a
// single calibrated probability.
package ensemble

import "fmt"

// Default convex blend weights. Underdog-focused predictions split evenly
// because the market prior is weakest exactly where upsets live.
const (
	DefaultBaseWeight     = 0.7
	DefaultMarketWeight   = 0.3
	DefaultUnderdogBase   = 0.5
	DefaultUnderdogMarket = 0.5
)

// Blender holds a fixed pair of convex weight sets
type Blender struct {
	baseWeight     float64
	marketWeight   float64
	underdogBase   float64
	underdogMarket float64
}

// NewBlender validates that each weight pair is convex
func NewBlender(baseWeight, marketWeight, underdogBase, underdogMarket float64) (*Blender, error) {
	if err := checkConvex(baseWeight, marketWeight); err != nil {
		return nil, fmt.Errorf("standard weights: %w", err)
	}
	if err := checkConvex(underdogBase, underdogMarket); err != nil {
		return nil, fmt.Errorf("underdog weights: %w", err)
	}
	return &Blender{
		baseWeight:     baseWeight,
		marketWeight:   marketWeight,
		underdogBase:   underdogBase,
		underdogMarket: underdogMarket,
	}, nil
}

// DefaultBlender returns the production 70/30 and 50/50 weight pairs
func DefaultBlender() *Blender {
	b, _ := NewBlender(DefaultBaseWeight, DefaultMarketWeight, DefaultUnderdogBase, DefaultUnderdogMarket)
	return b
}

func checkConvex(a, b float64) error {
	if a < 0 || b < 0 {
		return fmt.Errorf("weights must be non-negative, got %.3f and %.3f", a, b)
	}
	const tolerance = 1e-9
	if sum := a + b; sum < 1-tolerance || sum > 1+tolerance {
		return fmt.Errorf("weights must sum to 1, got %.3f", sum)
	}
	return nil
}

// Blend combines the two member probabilities. When the market member is
// absent the base probability passes through unchanged, so a convex
// combination of valid probabilities is always a valid probability.
func (b *Blender) Blend(base float64, market *float64, underdog bool) float64 {
	if market == nil {
		return base
	}
	if underdog {
		return b.underdogBase*base + b.underdogMarket**market
	}
	return b.baseWeight*base + b.marketWeight**market
}
