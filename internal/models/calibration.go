package models

// CalibrationCurve is an ordered set of (raw, calibrated) probability
// breakpoints, monotonic non-decreasing in both coordinates, with breakpoints
// at 0 and 1 guaranteed. Built once from validation data, applied many times.
type CalibrationCurve struct {
	X           []float64 `json:"x"`
	Y           []float64 `json:"y"`
	SampleCount int       `json:"sample_count"`
	Skipped     bool      `json:"skipped"`
	Method      string    `json:"method"`
}

// IsUsable reports whether the curve can be applied
func (c *CalibrationCurve) IsUsable() bool {
	return c != nil && !c.Skipped && len(c.X) >= 2 && len(c.X) == len(c.Y)
}
