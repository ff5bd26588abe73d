package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() SimulationParameters {
	return SimulationParameters{
		Spot:        100,
		Strike:      100,
		Rate:        0.05,
		Volatility:  0.2,
		Maturity:    1,
		Steps:       50,
		Simulations: 1000,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SimulationParameters)
		want   error
	}{
		{"zero spot", func(p *SimulationParameters) { p.Spot = 0 }, ErrNonPositiveSpot},
		{"nan spot", func(p *SimulationParameters) { p.Spot = math.NaN() }, ErrNonPositiveSpot},
		{"negative strike", func(p *SimulationParameters) { p.Strike = -1 }, ErrNonPositiveStrike},
		{"zero maturity", func(p *SimulationParameters) { p.Maturity = 0 }, ErrNonPositiveMaturity},
		{"negative volatility", func(p *SimulationParameters) { p.Volatility = -0.1 }, ErrNegativeVolatility},
		{"no steps", func(p *SimulationParameters) { p.Steps = 0 }, ErrNoSteps},
		{"no simulations", func(p *SimulationParameters) { p.Simulations = 0 }, ErrNoSimulations},
		{"unknown combiner", func(p *SimulationParameters) { p.Combiner = Combiner(9) }, ErrUnknownCombiner},
		{"put with pathwise", func(p *SimulationParameters) { p.Sides = SidePut }, ErrPutNeedsRegression},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.modify(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	p := validParams()
	require.NoError(t, p.Validate())

	p.Volatility = 0
	require.NoError(t, p.Validate())

	p.Rate = -0.01
	require.NoError(t, p.Validate())

	p.Combiner = CombinerRegression
	p.Sides = SideCall | SidePut
	require.NoError(t, p.Validate())
}

func TestValidateRejectsNonFiniteRate(t *testing.T) {
	p := validParams()
	p.Rate = math.Inf(1)
	assert.Error(t, p.Validate())
}

func TestParseCombiner(t *testing.T) {
	for in, want := range map[string]Combiner{
		"":           CombinerPathwise,
		"pathwise":   CombinerPathwise,
		"Path-Wise":  CombinerPathwise,
		"regression": CombinerRegression,
		" beta ":     CombinerRegression,
	} {
		got, err := ParseCombiner(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCombiner("ols")
	assert.True(t, errors.Is(err, ErrUnknownCombiner))
}

func TestCombinerText(t *testing.T) {
	b, err := CombinerRegression.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "regression", string(b))

	var c Combiner
	require.NoError(t, c.UnmarshalText([]byte("regression")))
	assert.Equal(t, CombinerRegression, c)
	assert.Error(t, c.UnmarshalText([]byte("nope")))
}

func TestParseSides(t *testing.T) {
	tests := []struct {
		in   string
		want OptionSides
	}{
		{"call", SideCall},
		{"P", SidePut},
		{"call,put", SideCall | SidePut},
		{"both", SideCall | SidePut},
		{"", 0},
	}
	for _, tt := range tests {
		got, err := ParseSides(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseSides("call,straddle")
	assert.True(t, errors.Is(err, ErrUnknownSide))

	assert.Equal(t, "call,put", (SideCall | SidePut).String())
	assert.Equal(t, "none", OptionSides(0).String())
}

func TestRequestedDefaultsToCall(t *testing.T) {
	assert.Equal(t, SideCall, validParams().Requested())
}

func TestDiscretization(t *testing.T) {
	p := validParams()
	d := NewDiscretization(p)

	assert.InDelta(t, 0.02, d.Dt, 1e-15)
	assert.InDelta(t, (0.05-0.02)*0.02, d.Drift, 1e-15)
	assert.InDelta(t, 0.2*math.Sqrt(0.02), d.Diff, 1e-15)
	assert.InDelta(t, math.Exp(0.05*0.02), d.Growth, 1e-15)
	assert.InDelta(t, math.Exp(-0.05), p.DiscountFactor(), 1e-15)
}
