package greeks

import (
	"math"

	"github.com/bcdannyboy/mcprice/probability"
)

// Delta is the Black-Scholes call delta at elapsed time t for an option
// maturing at T. At or past expiry it is the exercise indicator S > K.
func Delta(S, t, K, T, sigma, r float64) float64 {
	tau := T - t
	if tau <= 0 {
		if S > K {
			return 1.0
		}
		return 0.0
	}

	volTime := sigma * math.Sqrt(tau)
	if volTime == 0 {
		// deterministic path: exercise iff the forward ends above the strike
		if S*math.Exp(r*tau) > K {
			return 1.0
		}
		return 0.0
	}

	return probability.NormalCDF(D1(S, K, tau, r, sigma))
}

// PutDelta is Delta - 1.
func PutDelta(S, t, K, T, sigma, r float64) float64 {
	return Delta(S, t, K, T, sigma, r) - 1
}

// D1 for time to expiry tau. Callers guard sigma*sqrt(tau) > 0.
func D1(S, K, tau, r, sigma float64) float64 {
	return (math.Log(S/K) + (r+0.5*sigma*sigma)*tau) / (sigma * math.Sqrt(tau))
}
