// Package calibration maps raw model probabilities onto observed outcome
// frequencies using isotonic regression.
package calibration

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/sharpline/internal/models"
)

const (
	// MethodIsotonic is the only fitting method currently implemented
	MethodIsotonic = "isotonic"

	// DefaultMinSamples is the floor below which fitting is skipped; an
	// isotonic fit on a thin sample memorizes noise instead of correcting it
	DefaultMinSamples = 400

	// Calibrated outputs are clamped away from the hard 0/1 boundaries so
	// downstream log-loss and edge math stay finite
	outputFloor = 0.01
	outputCeil  = 0.99
)

// Point is one (predicted probability, observed outcome) pair
type Point struct {
	Prob  float64
	Label float64
}

// Config controls the fitting gate
type Config struct {
	Method     string
	MinSamples int
}

// DefaultConfig returns the production calibration settings
func DefaultConfig() Config {
	return Config{Method: MethodIsotonic, MinSamples: DefaultMinSamples}
}

// block is one pooled segment during the adjacent-violators pass
type block struct {
	sum    float64
	weight float64
	count  int
	minX   float64
}

func (b block) mean() float64 {
	return b.sum / b.weight
}

// Fit runs pool-adjacent-violators over the points, sorted by predicted
// probability, and returns a piecewise-linear curve. When fewer than
// cfg.MinSamples points are supplied the returned curve is marked skipped and
// Apply becomes the identity.
func Fit(points []Point, cfg Config, logger *logrus.Logger) (*models.CalibrationCurve, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if cfg.MinSamples <= 0 {
		cfg.MinSamples = DefaultMinSamples
	}
	if cfg.Method != "" && cfg.Method != MethodIsotonic {
		return nil, fmt.Errorf("unsupported calibration method %q", cfg.Method)
	}

	if len(points) < cfg.MinSamples {
		logger.WithFields(logrus.Fields{
			"samples": len(points),
			"needed":  cfg.MinSamples,
		}).Warn("Skipping calibration, not enough validation samples")
		return &models.CalibrationCurve{
			SampleCount: len(points),
			Skipped:     true,
			Method:      MethodIsotonic,
		}, nil
	}

	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Prob < sorted[j].Prob })

	// Stack-based PAVA: push each point as a unit block, then merge backwards
	// while the monotonicity constraint is violated. Each point is pushed once
	// and merged at most once, so the pass is linear.
	stack := make([]block, 0, len(sorted))
	for _, p := range sorted {
		cur := block{sum: p.Label, weight: 1, count: 1, minX: p.Prob}
		for len(stack) > 0 && stack[len(stack)-1].mean() >= cur.mean() {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			cur = block{
				sum:    top.sum + cur.sum,
				weight: top.weight + cur.weight,
				count:  top.count + cur.count,
				minX:   top.minX,
			}
		}
		stack = append(stack, cur)
	}

	xs := make([]float64, 0, len(stack)+2)
	ys := make([]float64, 0, len(stack)+2)
	for _, b := range stack {
		xs = append(xs, b.minX)
		ys = append(ys, b.mean())
	}

	// Extend the curve to cover the full probability domain so lookups never
	// extrapolate
	if len(xs) == 0 || xs[0] > 0 {
		y0 := 0.0
		if len(ys) > 0 {
			y0 = ys[0]
		}
		xs = append([]float64{0}, xs...)
		ys = append([]float64{y0}, ys...)
	}
	if xs[len(xs)-1] < 1 {
		xs = append(xs, 1)
		ys = append(ys, ys[len(ys)-1])
	}

	logger.WithFields(logrus.Fields{
		"samples":     len(points),
		"breakpoints": len(xs),
	}).Info("Fitted isotonic calibration curve")

	return &models.CalibrationCurve{
		X:           xs,
		Y:           ys,
		SampleCount: len(points),
		Method:      MethodIsotonic,
	}, nil
}

// Apply maps a raw probability through the curve with linear interpolation
// between breakpoints. A nil or skipped curve is the identity. Inputs are
// clamped into [0,1] and outputs into [0.01, 0.99].
func Apply(curve *models.CalibrationCurve, prob float64) float64 {
	if curve == nil || !curve.IsUsable() {
		return prob
	}

	if prob < 0 {
		prob = 0
	} else if prob > 1 {
		prob = 1
	}

	xs, ys := curve.X, curve.Y
	idx := sort.SearchFloat64s(xs, prob)

	var out float64
	switch {
	case idx == 0:
		out = ys[0]
	case idx >= len(xs):
		out = ys[len(ys)-1]
	case xs[idx] == prob:
		out = ys[idx]
	default:
		x0, x1 := xs[idx-1], xs[idx]
		y0, y1 := ys[idx-1], ys[idx]
		if x1 == x0 {
			out = y1
		} else {
			out = y0 + (y1-y0)*(prob-x0)/(x1-x0)
		}
	}

	if out < outputFloor {
		out = outputFloor
	} else if out > outputCeil {
		out = outputCeil
	}
	return out
}
