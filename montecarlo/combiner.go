package montecarlo

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/bcdannyboy/mcprice/greeks"
	"github.com/bcdannyboy/mcprice/models"
	"github.com/bcdannyboy/mcprice/probability"
)

// combiner turns terminal path states into payoffs (phase 1) and applies any
// adjustment that needs every sample at once (phase 2).
type combiner interface {
	payoff(st models.PathState) models.PayoffSample
	adjust(samples []models.PayoffSample) (beta float64, warnings []models.Warning)
}

func newCombiner(p models.SimulationParameters) combiner {
	if p.Combiner == models.CombinerRegression {
		return &regressionCombiner{params: p}
	}
	return &pathwiseCombiner{
		strike:     p.Strike,
		antithetic: p.Antithetic,
		control:    p.ControlVariate,
	}
}

// pathwiseCombiner subtracts the hedge integral accumulated along each path
// from that path's call payoff. The integral is left undiscounted, on the
// same terminal scale as the payoff.
type pathwiseCombiner struct {
	strike     float64
	antithetic bool
	control    bool
}

func (c *pathwiseCombiner) payoff(st models.PathState) models.PayoffSample {
	ct := math.Max(st.S-c.strike, 0)
	if c.control {
		ct -= st.CV
	}

	terminal := st.S
	if c.antithetic {
		anti := math.Max(st.SAnti-c.strike, 0)
		if c.control {
			anti -= st.CVAnti
		}
		ct = 0.5 * (ct + anti)
		terminal = 0.5 * (st.S + st.SAnti)
	}

	return models.PayoffSample{Call: ct, Terminal: terminal}
}

func (c *pathwiseCombiner) adjust([]models.PayoffSample) (float64, []models.Warning) {
	return math.NaN(), nil
}

// regressionCombiner prices both sides from raw payoffs and, with control
// variates on, regresses the call payoff on delta*(S_T - E[S_T]).
type regressionCombiner struct {
	params models.SimulationParameters
}

func (c *regressionCombiner) payoff(st models.PathState) models.PayoffSample {
	k := c.params.Strike
	s := models.PayoffSample{
		Call:     math.Max(st.S-k, 0),
		Put:      math.Max(k-st.S, 0),
		Terminal: st.S,
	}
	if c.params.Antithetic {
		s.Call = 0.5 * (s.Call + math.Max(st.SAnti-k, 0))
		s.Put = 0.5 * (s.Put + math.Max(k-st.SAnti, 0))
		s.Terminal = 0.5 * (st.S + st.SAnti)
	}
	return s
}

func (c *regressionCombiner) adjust(samples []models.PayoffSample) (float64, []models.Warning) {
	p := c.params
	if !p.ControlVariate {
		return math.NaN(), nil
	}
	if len(samples) < 2 {
		return math.NaN(), []models.Warning{models.WarnControlUndefined}
	}

	expected := p.Spot * math.Exp(p.Rate*p.Maturity)
	delta := greeks.Delta(p.Spot, 0, p.Strike, p.Maturity, p.Volatility, p.Rate)

	calls := make([]float64, len(samples))
	controls := make([]float64, len(samples))
	for i, s := range samples {
		calls[i] = s.Call
		controls[i] = delta * (s.Terminal - expected)
	}

	if floats.Max(controls) == floats.Min(controls) {
		return math.NaN(), []models.Warning{models.WarnControlDegenerate}
	}
	beta, ok := probability.Regress(calls, controls)
	if !ok {
		return math.NaN(), []models.Warning{models.WarnControlDegenerate}
	}

	for i := range samples {
		samples[i].Call -= beta * controls[i]
	}
	return beta, nil
}
