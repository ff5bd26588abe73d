package models

import (
	"math"

	"github.com/bcdannyboy/mcprice/greeks"
)

// Gaussian yields standard normal variates, one per call.
type Gaussian interface {
	Next() float64
}

// PathState is the state of one simulation between steps.
type PathState struct {
	S      float64 // primary path price
	SAnti  float64 // antithetic twin, equals S0 when antithetic sampling is off
	CV     float64 // delta-hedge integral along the primary path
	CVAnti float64 // delta-hedge integral along the twin
}

// PathSimulator advances GBM paths over the option's life.
type PathSimulator struct {
	params     SimulationParameters
	disc       Discretization
	trackCV    bool
	antithetic bool
}

// NewPathSimulator builds a simulator. The hedge integral is only tracked
// when the path-wise combiner needs it.
func NewPathSimulator(p SimulationParameters) *PathSimulator {
	return &PathSimulator{
		params:     p,
		disc:       NewDiscretization(p),
		trackCV:    p.ControlVariate && p.Combiner == CombinerPathwise,
		antithetic: p.Antithetic,
	}
}

func (ps *PathSimulator) Discretization() Discretization { return ps.disc }

// Simulate runs all N steps of one simulation and returns the terminal state.
// One draw is taken per step and shared by the primary path and its twin.
func (ps *PathSimulator) Simulate(g Gaussian) PathState {
	p := ps.params
	st := PathState{S: p.Spot, SAnti: p.Spot}

	for i := 1; i <= p.Steps; i++ {
		tau := float64(i-1) * ps.disc.Dt

		// deltas come from the pre-step prices
		var delta, deltaAnti float64
		if ps.trackCV {
			delta = greeks.Delta(st.S, tau, p.Strike, p.Maturity, p.Volatility, p.Rate)
			if ps.antithetic {
				deltaAnti = greeks.Delta(st.SAnti, tau, p.Strike, p.Maturity, p.Volatility, p.Rate)
			}
		}

		z := g.Next()

		next := st.S * math.Exp(ps.disc.Drift+ps.disc.Diff*z)
		if ps.trackCV {
			st.CV += delta * (next - st.S*ps.disc.Growth)
		}
		st.S = next

		if ps.antithetic {
			back := st.SAnti * math.Exp(ps.disc.Drift-ps.disc.Diff*z)
			if ps.trackCV {
				st.CVAnti += deltaAnti * (back - st.SAnti*ps.disc.Growth)
			}
			st.SAnti = back
		}
	}

	return st
}
