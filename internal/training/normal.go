package training

import "math"

// Abramowitz & Stegun 26.2.17 rational approximation of the standard normal
// CDF, accurate to about 1.5e-7. Avoids a dependency on math.Erf's platform
// variance for reproducible artifacts.
const (
	asB0 = 0.2316419
	asB1 = 0.319381530
	asB2 = -0.356563782
	asB3 = 1.781477937
	asB4 = -1.821255978
	asB5 = 1.330274429
)

// NormalCDF returns P(Z <= z) for a standard normal variable
func NormalCDF(z float64) float64 {
	if z < 0 {
		return 1.0 - NormalCDF(-z)
	}
	t := 1.0 / (1.0 + asB0*z)
	poly := t * (asB1 + t*(asB2+t*(asB3+t*(asB4+t*asB5))))
	pdf := math.Exp(-z*z/2) / math.Sqrt(2*math.Pi)
	return 1.0 - pdf*poly
}
