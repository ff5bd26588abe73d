package cli

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bcdannyboy/mcprice/config"
	"github.com/bcdannyboy/mcprice/logger"
	"github.com/bcdannyboy/mcprice/montecarlo"
)

// app is the state shared by every subcommand after flags are parsed.
type app struct {
	in  io.Reader
	out io.Writer

	configPath string
	logLevel   string
	logFile    string

	cfg *config.Config
	log *logrus.Logger
}

// NewRootCommand wires the mcprice command tree to the given streams.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:           "mcprice",
		Short:         "Monte Carlo pricing of European options under Black-Scholes-Merton",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.StringVar(&a.logLevel, "log-level", "", "trace, debug, info, warn or error")
	pf.StringVar(&a.logFile, "log-file", "", "also write logs to this rotating file")

	root.AddCommand(newPriceCommand(a), newPromptCommand(a), newCompareCommand(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = a.logFile
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) engine(progress func(int)) *montecarlo.Engine {
	return montecarlo.NewEngine(montecarlo.Options{
		Workers:       a.cfg.Engine.Workers,
		Seed:          a.cfg.Engine.Seed,
		PairedSampler: a.cfg.Engine.PairedSampler,
		Progress:      progress,
		Logger:        a.log,
	})
}

// Execute runs the command tree against the process streams.
func Execute() error {
	return NewRootCommand(os.Stdin, os.Stdout).Execute()
}
