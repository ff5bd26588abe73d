package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/bcdannyboy/mcprice/config"
	"github.com/bcdannyboy/mcprice/models"
	"github.com/bcdannyboy/mcprice/report"
)

func newPromptCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Ask for each parameter interactively and print the call price",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.ask()
			if err != nil {
				return err
			}
			res, err := a.engine(nil).Price(cmd.Context(), p)
			if err != nil {
				return err
			}
			return report.WritePrice(a.out, res)
		},
	}
}

type prompter struct {
	sc  *bufio.Scanner
	app *app
}

func (pr *prompter) line(question string) (string, error) {
	fmt.Fprint(pr.app.out, question)
	if !pr.sc.Scan() {
		if err := pr.sc.Err(); err != nil {
			return "", errors.Wrap(err, "reading answer")
		}
		return "", errors.Errorf("no answer to %q", strings.TrimSpace(question))
	}
	return strings.TrimSpace(pr.sc.Text()), nil
}

func (pr *prompter) float(question string) (float64, error) {
	s, err := pr.line(question)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, errors.Wrapf(err, "parsing %q", s)
}

func (pr *prompter) int(question string) (int, error) {
	s, err := pr.line(question)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	return v, errors.Wrapf(err, "parsing %q", s)
}

func (pr *prompter) yesNo(question string) (bool, error) {
	s, err := pr.line(question)
	if err != nil {
		return false, err
	}
	return config.ParseYesNo(s)
}

// ask collects a full parameter set one question per line. The interactive
// flow always prices the call with the path-wise combiner.
func (a *app) ask() (models.SimulationParameters, error) {
	pr := &prompter{sc: bufio.NewScanner(a.in), app: a}
	fmt.Fprintln(a.out, "Monte Carlo Option Pricing Simulator")

	var (
		p   = models.SimulationParameters{Combiner: models.CombinerPathwise, Sides: models.SideCall}
		err error
	)
	steps := []func() error{
		func() error { p.Spot, err = pr.float("Initial stock price: "); return err },
		func() error { p.Strike, err = pr.float("Strike price: "); return err },
		func() error { p.Rate, err = pr.float("Risk-free rate: "); return err },
		func() error { p.Volatility, err = pr.float("Volatility: "); return err },
		func() error { p.Maturity, err = pr.float("Time to maturity: "); return err },
		func() error { p.Steps, err = pr.int("Number of steps: "); return err },
		func() error { p.Simulations, err = pr.int("Number of simulations: "); return err },
		func() error {
			p.Antithetic, err = pr.yesNo("Do you want to use Antithetic Variance Reduction? ")
			return err
		},
		func() error {
			p.ControlVariate, err = pr.yesNo("Do you want to use Control Variate? ")
			return err
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return models.SimulationParameters{}, err
		}
	}

	if err := p.Validate(); err != nil {
		return models.SimulationParameters{}, err
	}
	a.log.WithField("params", fmt.Sprintf("%+v", p)).Debug("parameters collected")
	return p, nil
}
