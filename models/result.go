package models

import "time"

// Warning flags a numerical degeneracy that affected a headline number.
type Warning string

const (
	WarnStdErrorUndefined Warning = "standard error undefined for fewer than two simulations"
	WarnControlDegenerate Warning = "control variate has zero variance, regression adjustment skipped"
	WarnControlUndefined  Warning = "regression beta undefined for fewer than two simulations, adjustment skipped"
	WarnNonFiniteSample   Warning = "non-finite payoff samples detected"
)

// PayoffSample is the outcome of one simulation, before discounting.
type PayoffSample struct {
	Call     float64
	Put      float64
	Terminal float64 // terminal price used by the regression control
}

type Band struct {
	Lower float64
	Upper float64
}

// SideResult is the estimate for one option side.
type SideResult struct {
	Side       OptionSide
	Price      float64 // exp(-rT) * Mean
	Mean       float64 // undiscounted mean payoff
	StdDev     float64 // sample std dev of payoffs, Bessel corrected
	StdError   float64 // standard error of Price
	Confidence Band    // 95% band around Price
	Analytic   float64 // closed-form Black-Scholes reference
	ImpliedVol float64 // volatility that reproduces Price in closed form
}

// PricingResult is everything one run produces.
type PricingResult struct {
	Params   SimulationParameters
	Call     *SideResult
	Put      *SideResult
	Beta     float64 // regression coefficient, NaN when not computed
	Seed     uint64
	Workers  int
	Elapsed  time.Duration
	Warnings []Warning
}

func (r *PricingResult) Warn(w Warning) {
	for _, have := range r.Warnings {
		if have == w {
			return
		}
	}
	r.Warnings = append(r.Warnings, w)
}

// Sides returns the populated side results, call first.
func (r *PricingResult) Sides() []*SideResult {
	var out []*SideResult
	if r.Call != nil {
		out = append(out, r.Call)
	}
	if r.Put != nil {
		out = append(out, r.Put)
	}
	return out
}
