package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/bcdannyboy/mcprice/logger"
	"github.com/bcdannyboy/mcprice/models"
)

const envPrefix = "MCPRICE_"

var ErrNotYesNo = errors.New("expected yes or no")

// Config is the on-disk and environment view of a pricing run.
type Config struct {
	Spot           float64 `yaml:"spot"`
	Strike         float64 `yaml:"strike"`
	Rate           float64 `yaml:"rate"`
	Volatility     float64 `yaml:"volatility"`
	Maturity       float64 `yaml:"maturity"`
	Steps          int     `yaml:"steps"`
	Simulations    int     `yaml:"simulations"`
	Antithetic     bool    `yaml:"antithetic"`
	ControlVariate bool    `yaml:"control_variate"`
	Combiner       string  `yaml:"combiner"` // pathwise or regression
	Sides          string  `yaml:"sides"`    // call, put or call,put

	Engine Engine        `yaml:"engine"`
	Log    logger.Config `yaml:"log"`
}

type Engine struct {
	Workers       int    `yaml:"workers"`
	Seed          uint64 `yaml:"seed"`
	PairedSampler bool   `yaml:"paired_sampler"`
}

// Default is the textbook at-the-money case.
func Default() *Config {
	return &Config{
		Spot:        100,
		Strike:      100,
		Rate:        0.05,
		Volatility:  0.2,
		Maturity:    1,
		Steps:       50,
		Simulations: 100000,
		Combiner:    models.CombinerPathwise.String(),
		Sides:       "call",
		Log:         logger.Config{Level: "info", MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 28},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from MCPRICE_* variables, e.g. MCPRICE_SPOT.
func (c *Config) ApplyEnv() error {
	floats := map[string]*float64{
		"SPOT":       &c.Spot,
		"STRIKE":     &c.Strike,
		"RATE":       &c.Rate,
		"VOLATILITY": &c.Volatility,
		"MATURITY":   &c.Maturity,
	}
	for name, dst := range floats {
		if v, ok := lookup(name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return errors.Wrapf(err, "%s%s", envPrefix, name)
			}
			*dst = f
		}
	}

	ints := map[string]*int{
		"STEPS":       &c.Steps,
		"SIMULATIONS": &c.Simulations,
		"WORKERS":     &c.Engine.Workers,
	}
	for name, dst := range ints {
		if v, ok := lookup(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.Wrapf(err, "%s%s", envPrefix, name)
			}
			*dst = n
		}
	}

	bools := map[string]*bool{
		"ANTITHETIC":      &c.Antithetic,
		"CONTROL_VARIATE": &c.ControlVariate,
		"PAIRED_SAMPLER":  &c.Engine.PairedSampler,
	}
	for name, dst := range bools {
		if v, ok := lookup(name); ok {
			b, err := ParseYesNo(v)
			if err != nil {
				return errors.Wrapf(err, "%s%s", envPrefix, name)
			}
			*dst = b
		}
	}

	if v, ok := lookup("SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "%sSEED", envPrefix)
		}
		c.Engine.Seed = seed
	}
	if v, ok := lookup("COMBINER"); ok {
		c.Combiner = v
	}
	if v, ok := lookup("SIDES"); ok {
		c.Sides = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("LOG_FILE"); ok {
		c.Log.File = v
	}
	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Parameters converts the config into validated engine input.
func (c *Config) Parameters() (models.SimulationParameters, error) {
	combiner, err := models.ParseCombiner(c.Combiner)
	if err != nil {
		return models.SimulationParameters{}, err
	}
	sides, err := models.ParseSides(c.Sides)
	if err != nil {
		return models.SimulationParameters{}, err
	}

	p := models.SimulationParameters{
		Spot:           c.Spot,
		Strike:         c.Strike,
		Rate:           c.Rate,
		Volatility:     c.Volatility,
		Maturity:       c.Maturity,
		Steps:          c.Steps,
		Simulations:    c.Simulations,
		Antithetic:     c.Antithetic,
		ControlVariate: c.ControlVariate,
		Combiner:       combiner,
		Sides:          sides,
	}
	if err := p.Validate(); err != nil {
		return models.SimulationParameters{}, err
	}
	return p, nil
}

// ParseYesNo accepts yes/no answers in any case, plus y/n and true/false.
func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "on":
		return true, nil
	case "no", "n", "false", "0", "off":
		return false, nil
	}
	return false, errors.Wrapf(ErrNotYesNo, "%q", s)
}
