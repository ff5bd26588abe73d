package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNonPositiveSpot     = errors.New("initial price must be positive")
	ErrNonPositiveStrike   = errors.New("strike must be positive")
	ErrNonPositiveMaturity = errors.New("time to maturity must be positive")
	ErrNegativeVolatility  = errors.New("volatility must not be negative")
	ErrNoSteps             = errors.New("step count must be at least 1")
	ErrNoSimulations       = errors.New("simulation count must be at least 1")
	ErrNoSides             = errors.New("at least one option side must be requested")
	ErrPutNeedsRegression  = errors.New("put pricing requires the regression combiner")
	ErrUnknownCombiner     = errors.New("unknown combiner")
	ErrUnknownSide         = errors.New("unknown option side")
)

// Combiner selects how terminal prices become per-simulation payoffs.
type Combiner int

const (
	// CombinerPathwise subtracts the per-path delta-hedge integral from the call payoff.
	CombinerPathwise Combiner = iota
	// CombinerRegression prices call and put and applies a post-hoc beta adjustment to the call.
	CombinerRegression
)

func (c Combiner) String() string {
	switch c {
	case CombinerPathwise:
		return "pathwise"
	case CombinerRegression:
		return "regression"
	}
	return fmt.Sprintf("combiner(%d)", int(c))
}

func ParseCombiner(s string) (Combiner, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pathwise", "path-wise", "path":
		return CombinerPathwise, nil
	case "regression", "regress", "beta":
		return CombinerRegression, nil
	}
	return 0, errors.Wrapf(ErrUnknownCombiner, "%q", s)
}

func (c Combiner) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Combiner) UnmarshalText(b []byte) error {
	v, err := ParseCombiner(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// OptionSide is a single side, OptionSides a set of them.
type OptionSide uint8

const (
	SideCall OptionSide = 1 << iota
	SidePut
)

type OptionSides = OptionSide

func (s OptionSide) Has(side OptionSide) bool { return s&side != 0 }

func (s OptionSide) String() string {
	var parts []string
	if s.Has(SideCall) {
		parts = append(parts, "call")
	}
	if s.Has(SidePut) {
		parts = append(parts, "put")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// ParseSides accepts a comma separated list such as "call,put".
func ParseSides(s string) (OptionSides, error) {
	var sides OptionSides
	for _, f := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "":
		case "call", "c":
			sides |= SideCall
		case "put", "p":
			sides |= SidePut
		case "both", "all":
			sides |= SideCall | SidePut
		default:
			return 0, errors.Wrapf(ErrUnknownSide, "%q", f)
		}
	}
	return sides, nil
}

// SimulationParameters is the full input of one pricing run.
type SimulationParameters struct {
	Spot           float64     `json:"spot" yaml:"spot"`                     // S0
	Strike         float64     `json:"strike" yaml:"strike"`                 // K
	Rate           float64     `json:"rate" yaml:"rate"`                     // r, continuously compounded
	Volatility     float64     `json:"volatility" yaml:"volatility"`         // sigma
	Maturity       float64     `json:"maturity" yaml:"maturity"`             // T in years
	Steps          int         `json:"steps" yaml:"steps"`                   // N
	Simulations    int         `json:"simulations" yaml:"simulations"`       // M
	Antithetic     bool        `json:"antithetic" yaml:"antithetic"`         // mirror every draw
	ControlVariate bool        `json:"control_variate" yaml:"control_variate"`
	Combiner       Combiner    `json:"combiner" yaml:"combiner"`
	Sides          OptionSides `json:"-" yaml:"-"` // zero means call only
}

// Requested returns the sides to price, defaulting to the call.
func (p SimulationParameters) Requested() OptionSides {
	if p.Sides == 0 {
		return SideCall
	}
	return p.Sides
}

// Validate rejects parameter sets the engine cannot price. NaN inputs fail
// every comparison and are rejected along with out-of-range values.
func (p SimulationParameters) Validate() error {
	switch {
	case !(p.Spot > 0):
		return errors.Wrapf(ErrNonPositiveSpot, "S0=%v", p.Spot)
	case !(p.Strike > 0):
		return errors.Wrapf(ErrNonPositiveStrike, "K=%v", p.Strike)
	case !(p.Maturity > 0):
		return errors.Wrapf(ErrNonPositiveMaturity, "T=%v", p.Maturity)
	case !(p.Volatility >= 0):
		return errors.Wrapf(ErrNegativeVolatility, "sigma=%v", p.Volatility)
	case p.Steps < 1:
		return errors.Wrapf(ErrNoSteps, "N=%d", p.Steps)
	case p.Simulations < 1:
		return errors.Wrapf(ErrNoSimulations, "M=%d", p.Simulations)
	case math.IsNaN(p.Rate) || math.IsInf(p.Rate, 0):
		return errors.Errorf("risk-free rate must be finite, got %v", p.Rate)
	}
	if p.Combiner != CombinerPathwise && p.Combiner != CombinerRegression {
		return errors.Wrapf(ErrUnknownCombiner, "%d", int(p.Combiner))
	}
	sides := p.Requested()
	if !sides.Has(SideCall) && !sides.Has(SidePut) {
		return ErrNoSides
	}
	if sides.Has(SidePut) && p.Combiner != CombinerRegression {
		return ErrPutNeedsRegression
	}
	return nil
}

// Discretization holds the per-step constants derived once per run.
type Discretization struct {
	Dt     float64 // T/N
	Drift  float64 // a1 = (r - sigma^2/2) dt
	Diff   float64 // a2 = sigma sqrt(dt)
	Growth float64 // stt = exp(r dt)
}

func NewDiscretization(p SimulationParameters) Discretization {
	dt := p.Maturity / float64(p.Steps)
	return Discretization{
		Dt:     dt,
		Drift:  (p.Rate - 0.5*p.Volatility*p.Volatility) * dt,
		Diff:   p.Volatility * math.Sqrt(dt),
		Growth: math.Exp(p.Rate * dt),
	}
}

// DiscountFactor is exp(-rT).
func (p SimulationParameters) DiscountFactor() float64 {
	return math.Exp(-p.Rate * p.Maturity)
}
