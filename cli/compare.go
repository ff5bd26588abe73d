package cli

import (
	"github.com/spf13/cobra"

	"github.com/bcdannyboy/mcprice/report"
)

var variants = []struct {
	label      string
	antithetic bool
	control    bool
}{
	{"plain", false, false},
	{"antithetic", true, false},
	{"control variate", false, true},
	{"antithetic + control", true, true},
}

func newCompareCommand(a *app) *cobra.Command {
	var combiner string
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Price the call under every variance-reduction setting with one seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("combiner") {
				a.cfg.Combiner = combiner
			}
			a.cfg.Sides = "call"
			base, err := a.cfg.Parameters()
			if err != nil {
				return err
			}
			// one seed for every row so the rows share random streams
			if a.cfg.Engine.Seed == 0 {
				a.cfg.Engine.Seed = 1
			}
			eng := a.engine(nil)

			rows := make([]report.Comparison, 0, len(variants))
			for _, v := range variants {
				p := base
				p.Antithetic = v.antithetic
				p.ControlVariate = v.control
				res, err := eng.Price(cmd.Context(), p)
				if err != nil {
					return err
				}
				rows = append(rows, report.Comparison{Label: v.label, Result: res})
			}
			return report.WriteComparison(a.out, rows)
		},
	}
	cmd.Flags().StringVar(&combiner, "combiner", "", "pathwise or regression")
	return cmd
}
