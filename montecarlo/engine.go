package montecarlo

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/bcdannyboy/mcprice/greeks"
	"github.com/bcdannyboy/mcprice/models"
	"github.com/bcdannyboy/mcprice/probability"
)

const (
	defaultProgressEvery = 1024
	confidenceLevel      = 0.95
)

// Options tunes how a run is executed. None of them change what is priced.
type Options struct {
	Workers       int    // 0 means DefaultWorkers()
	Seed          uint64 // 0 means derive from the clock
	PairedSampler bool   // two variates per Box-Muller transform
	ProgressEvery int    // simulations between Progress calls
	Progress      func(done int)
	Logger        logrus.FieldLogger
}

type Engine struct {
	opts Options
	log  logrus.FieldLogger
}

func NewEngine(opts Options) *Engine {
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = defaultProgressEvery
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Engine{opts: opts, log: log}
}

// Price prices with default options.
func Price(p models.SimulationParameters) (*models.PricingResult, error) {
	return NewEngine(Options{}).Price(context.Background(), p)
}

// Price runs M simulations split across workers, waits for all of them, then
// applies the combiner's adjustment and reduces the payoffs per side.
func (e *Engine) Price(ctx context.Context, p models.SimulationParameters) (*models.PricingResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	seed := e.opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	workers := e.opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	spans := partition(p.Simulations, workers, seed)

	log := e.log.WithFields(logrus.Fields{
		"simulations": p.Simulations,
		"steps":       p.Steps,
		"combiner":    p.Combiner,
		"antithetic":  p.Antithetic,
		"control":     p.ControlVariate,
		"workers":     len(spans),
		"seed":        seed,
	})
	log.Debug("pricing started")

	comb := newCombiner(p)
	sim := models.NewPathSimulator(p)
	samples := make([]models.PayoffSample, p.Simulations)

	g, gctx := errgroup.WithContext(ctx)
	for _, sp := range spans {
		sp := sp
		g.Go(func() error {
			return e.runSpan(gctx, sp, sim, comb, samples, log)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "simulation aborted")
	}

	res := &models.PricingResult{
		Params:  p,
		Seed:    seed,
		Workers: len(spans),
	}

	beta, warnings := comb.adjust(samples)
	res.Beta = beta
	for _, w := range warnings {
		log.Warn(string(w))
		res.Warn(w)
	}

	sides := p.Requested()
	if sides.Has(models.SideCall) {
		calls := make([]float64, len(samples))
		for i, s := range samples {
			calls[i] = s.Call
		}
		res.Call = e.summarize(p, models.SideCall, calls, res, log)
	}
	if sides.Has(models.SidePut) {
		puts := make([]float64, len(samples))
		for i, s := range samples {
			puts[i] = s.Put
		}
		res.Put = e.summarize(p, models.SidePut, puts, res, log)
	}

	res.Elapsed = time.Since(start)
	log.WithField("elapsed", res.Elapsed).Debug("pricing finished")
	return res, nil
}

// runSpan owns its generator; samples[sp.lo:sp.hi] is written by this worker only.
func (e *Engine) runSpan(ctx context.Context, sp span, sim *models.PathSimulator, comb combiner, samples []models.PayoffSample, log logrus.FieldLogger) error {
	rng := rand.New(rand.NewSource(sp.seed))
	var gauss models.Gaussian = probability.NewBoxMuller(rng)
	if e.opts.PairedSampler {
		gauss = probability.NewPairedBoxMuller(rng)
	}

	pending := 0
	for j := sp.lo; j < sp.hi; j++ {
		samples[j] = comb.payoff(sim.Simulate(gauss))
		pending++
		if pending == e.opts.ProgressEvery {
			e.progress(pending)
			pending = 0
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
	e.progress(pending)

	log.WithFields(logrus.Fields{"worker": sp.worker, "from": sp.lo, "to": sp.hi}).Trace("worker done")
	return nil
}

func (e *Engine) progress(n int) {
	if e.opts.Progress != nil && n > 0 {
		e.opts.Progress(n)
	}
}

func (e *Engine) summarize(p models.SimulationParameters, side models.OptionSide, payoffs []float64, res *models.PricingResult, log logrus.FieldLogger) *models.SideResult {
	sum := probability.Summarize(payoffs)
	if !sum.Finite {
		log.WithField("side", side).Warn(string(models.WarnNonFiniteSample))
		res.Warn(models.WarnNonFiniteSample)
	}
	if !sum.Defined() {
		res.Warn(models.WarnStdErrorUndefined)
	}

	df := p.DiscountFactor()
	isCall := side == models.SideCall
	sr := &models.SideResult{
		Side:     side,
		Price:    df * sum.Mean,
		Mean:     sum.Mean,
		StdDev:   sum.StdDev,
		StdError: df * sum.StdError,
		Analytic: greeks.Price(p.Spot, p.Strike, p.Maturity, p.Rate, p.Volatility, isCall),
	}
	sr.Confidence.Lower, sr.Confidence.Upper = probability.ConfidenceBand(sr.Price, sr.StdError, confidenceLevel)

	iv, err := greeks.ImpliedVolatility(sr.Price, p.Spot, p.Strike, p.Maturity, p.Rate, isCall)
	if err != nil {
		log.WithError(err).WithField("side", side).Debug("no implied volatility for estimate")
		iv = math.NaN()
	}
	sr.ImpliedVol = iv
	return sr
}
