package probability

import "math"

// Abramowitz-Stegun 7.1.26 coefficients
const (
	asP  = 0.3275911
	asA1 = 0.254829592
	asA2 = -0.284496736
	asA3 = 1.421413741
	asA4 = -1.453152027
	asA5 = 1.061405429
)

// NormalCDF approximates the standard normal CDF with the Abramowitz-Stegun
// erf approximation. Absolute error is below 1.5e-7.
func NormalCDF(z float64) float64 {
	x := math.Abs(z) / math.Sqrt2
	t := 1.0 / (1.0 + asP*x)
	erf := 1.0 - (((((asA5*t+asA4)*t+asA3)*t+asA2)*t+asA1)*t)*math.Exp(-x*x)
	return 0.5 * (1.0 + sign(z)*erf)
}

// sign is 0 at 0 so that NormalCDF(0) is exactly one half.
func sign(z float64) float64 {
	switch {
	case z > 0:
		return 1
	case z < 0:
		return -1
	}
	return 0
}
