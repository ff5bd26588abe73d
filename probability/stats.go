package probability

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary is the reduction of one payoff vector.
type Summary struct {
	N        int
	Mean     float64
	StdDev   float64 // Bessel corrected, NaN when N < 2
	StdError float64 // StdDev / sqrt(N), NaN when N < 2
	Finite   bool    // false when any sample was NaN or infinite
}

// Defined reports whether the dispersion figures are usable.
func (s Summary) Defined() bool {
	return s.N >= 2 && !math.IsNaN(s.StdDev)
}

// Summarize computes mean, sample standard deviation and standard error.
func Summarize(samples []float64) Summary {
	s := Summary{N: len(samples), Finite: true, Mean: math.NaN(), StdDev: math.NaN(), StdError: math.NaN()}
	if s.N == 0 {
		return s
	}
	for _, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			s.Finite = false
			break
		}
	}
	if s.N == 1 {
		s.Mean = samples[0]
		return s
	}
	mean, variance := stat.MeanVariance(samples, nil)
	// rounding can push the variance of a constant vector just below zero
	s.Mean, s.StdDev = mean, math.Sqrt(math.Max(variance, 0))
	s.StdError = s.StdDev / math.Sqrt(float64(s.N))
	return s
}

// Regress returns Cov(y, x) / Var(x) over paired samples. ok is false when
// the slope is undefined, either because there are fewer than two samples
// or because x has no variance.
func Regress(y, x []float64) (beta float64, ok bool) {
	if len(x) < 2 || len(x) != len(y) {
		return 0, false
	}
	variance := stat.Variance(x, nil)
	if !(variance > 0) || math.IsInf(variance, 0) {
		return 0, false
	}
	return stat.Covariance(y, x, nil) / variance, true
}
