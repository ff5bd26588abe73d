package probability

import "math"

// Uniform is a source of uniform draws in [0,1). *rand.Rand from
// golang.org/x/exp/rand satisfies it.
type Uniform interface {
	Float64() float64
}

// BoxMuller turns two uniforms into one standard normal variate per call.
type BoxMuller struct {
	src Uniform
}

func NewBoxMuller(src Uniform) *BoxMuller {
	return &BoxMuller{src: src}
}

// Next maps each draw u to 1-u so the logarithm never sees zero.
func (b *BoxMuller) Next() float64 {
	u1 := 1.0 - b.src.Float64()
	u2 := 1.0 - b.src.Float64()
	return math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
}

// PairedBoxMuller keeps the sine branch of each transform and returns it on
// the following call, so two uniforms yield two variates.
type PairedBoxMuller struct {
	src      Uniform
	spare    float64
	hasSpare bool
}

func NewPairedBoxMuller(src Uniform) *PairedBoxMuller {
	return &PairedBoxMuller{src: src}
}

func (b *PairedBoxMuller) Next() float64 {
	if b.hasSpare {
		b.hasSpare = false
		return b.spare
	}
	u1 := 1.0 - b.src.Float64()
	u2 := 1.0 - b.src.Float64()
	radius := math.Sqrt(-2.0 * math.Log(u1))
	sin, cos := math.Sincos(2.0 * math.Pi * u2)
	b.spare = radius * sin
	b.hasSpare = true
	return radius * cos
}
