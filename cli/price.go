package cli

import (
	"github.com/spf13/cobra"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"

	"github.com/bcdannyboy/mcprice/config"
	"github.com/bcdannyboy/mcprice/models"
	"github.com/bcdannyboy/mcprice/report"
)

type priceFlags struct {
	spot, strike, rate, vol, maturity float64
	steps, sims, workers              int
	seed                              uint64
	antithetic, control, paired       bool
	combiner, sides                   string

	json     bool
	progress bool
}

func newPriceCommand(a *app) *cobra.Command {
	f := &priceFlags{}
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price an option from config, environment and flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.apply(cmd, a.cfg)
			p, err := a.cfg.Parameters()
			if err != nil {
				return err
			}

			var res *models.PricingResult
			if f.progress {
				res, err = a.priceWithProgress(cmd, p)
			} else {
				res, err = a.engine(nil).Price(cmd.Context(), p)
			}
			if err != nil {
				return err
			}

			if f.json {
				return report.WriteJSON(a.out, res)
			}
			return report.WriteText(a.out, res)
		},
	}

	fl := cmd.Flags()
	fl.Float64Var(&f.spot, "spot", 0, "initial price S0")
	fl.Float64Var(&f.strike, "strike", 0, "strike K")
	fl.Float64Var(&f.rate, "rate", 0, "risk-free rate r")
	fl.Float64Var(&f.vol, "vol", 0, "volatility sigma")
	fl.Float64Var(&f.maturity, "maturity", 0, "time to maturity T in years")
	fl.IntVar(&f.steps, "steps", 0, "time steps N")
	fl.IntVar(&f.sims, "sims", 0, "simulations M")
	fl.BoolVar(&f.antithetic, "antithetic", false, "antithetic sampling")
	fl.BoolVar(&f.control, "control", false, "control variate")
	fl.StringVar(&f.combiner, "combiner", "", "pathwise or regression")
	fl.StringVar(&f.sides, "sides", "", "call, put or call,put (put needs regression)")
	fl.IntVar(&f.workers, "workers", 0, "worker goroutines, 0 for one per CPU")
	fl.Uint64Var(&f.seed, "seed", 0, "random seed, 0 for clock based")
	fl.BoolVar(&f.paired, "paired", false, "paired Box-Muller sampler")
	fl.BoolVar(&f.json, "json", false, "print JSON")
	fl.BoolVar(&f.progress, "progress", false, "show a progress bar on stderr")
	return cmd
}

// apply copies only the flags the user set, so config and environment
// values survive otherwise.
func (f *priceFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("spot") {
		cfg.Spot = f.spot
	}
	if changed("strike") {
		cfg.Strike = f.strike
	}
	if changed("rate") {
		cfg.Rate = f.rate
	}
	if changed("vol") {
		cfg.Volatility = f.vol
	}
	if changed("maturity") {
		cfg.Maturity = f.maturity
	}
	if changed("steps") {
		cfg.Steps = f.steps
	}
	if changed("sims") {
		cfg.Simulations = f.sims
	}
	if changed("antithetic") {
		cfg.Antithetic = f.antithetic
	}
	if changed("control") {
		cfg.ControlVariate = f.control
	}
	if changed("combiner") {
		cfg.Combiner = f.combiner
	}
	if changed("sides") {
		cfg.Sides = f.sides
	}
	if changed("workers") {
		cfg.Engine.Workers = f.workers
	}
	if changed("seed") {
		cfg.Engine.Seed = f.seed
	}
	if changed("paired") {
		cfg.Engine.PairedSampler = f.paired
	}
}

func (a *app) priceWithProgress(cmd *cobra.Command, p models.SimulationParameters) (*models.PricingResult, error) {
	pb := mpb.New(mpb.WithWidth(64), mpb.WithOutput(cmd.ErrOrStderr()))
	bar := pb.AddBar(int64(p.Simulations),
		mpb.PrependDecorators(
			decor.Name("Simulating"),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
		),
	)

	res, err := a.engine(bar.IncrBy).Price(cmd.Context(), p)
	if err != nil {
		bar.Abort(true)
	}
	pb.Wait()
	return res, err
}
