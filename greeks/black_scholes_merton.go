package greeks

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/optimize"
)

const (
	maxIterations = 200
	epsilon       = 1e-10
	maxVol        = 5.0
)

var ErrNoImpliedVol = errors.New("implied volatility not found")

// Price is the closed-form Black-Scholes price of a European option. It is
// the reference a Monte Carlo estimate converges to. With zero volatility
// the option is worth its discounted forward intrinsic value.
func Price(S, K, T, r, sigma float64, isCall bool) float64 {
	df := math.Exp(-r * T)
	if T <= 0 {
		if isCall {
			return math.Max(S-K, 0)
		}
		return math.Max(K-S, 0)
	}
	if sigma <= 0 {
		if isCall {
			return math.Max(S-K*df, 0)
		}
		return math.Max(K*df-S, 0)
	}

	d1 := D1(S, K, T, r, sigma)
	d2 := d1 - sigma*math.Sqrt(T)
	if isCall {
		return S*normCDF(d1) - K*df*normCDF(d2)
	}
	return K*df*normCDF(-d2) - S*normCDF(-d1)
}

// ImpliedVolatility finds the volatility whose closed-form price matches
// target, minimising the squared pricing error with Nelder-Mead.
func ImpliedVolatility(target, S, K, T, r float64, isCall bool) (float64, error) {
	if math.IsNaN(target) || T <= 0 {
		return math.NaN(), ErrNoImpliedVol
	}
	lower := Price(S, K, T, r, 0, isCall)
	upper := Price(S, K, T, r, maxVol, isCall)
	tol := 1e-9 * math.Max(1, math.Abs(lower))
	if target < lower-tol || target > upper {
		return math.NaN(), errors.Wrapf(ErrNoImpliedVol, "price %.6f outside no-arbitrage range [%.6f, %.6f]", target, lower, upper)
	}
	if target <= lower+tol {
		return 0, nil
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			sigma := clampVol(x[0])
			diff := Price(S, K, T, r, sigma, isCall) - target
			return diff * diff
		},
	}

	settings := &optimize.Settings{
		MajorIterations: maxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   epsilon * epsilon,
			Iterations: 20,
		},
	}

	result, err := optimize.Minimize(problem, []float64{0.2}, settings, &optimize.NelderMead{})
	if err != nil && result == nil {
		return math.NaN(), errors.Wrap(err, "implied volatility search")
	}

	sigma := clampVol(result.X[0])
	if math.Abs(Price(S, K, T, r, sigma, isCall)-target) > 1e-4*math.Max(1, target) {
		return math.NaN(), ErrNoImpliedVol
	}
	return sigma, nil
}

func clampVol(sigma float64) float64 {
	sigma = math.Abs(sigma)
	if sigma > maxVol {
		return maxVol
	}
	return sigma
}

// normCDF is exact; Delta uses the rational approximation.
func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}
