package config

import (
	"math/big"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.dedis.ch/secretrecover/interpolation"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// Order tells which points are picked when more than k shares are supplied
type Order string

const (
	// Supplied keeps the order of the records
	Supplied Order = "supplied"
	// Ascending sorts shares by x first
	Ascending Order = "ascending"
)

const DefaultTolerance = 1e-6

// Config is the configuration of a recovery
type Config struct {
	Strategy  string  `yaml:"strategy"`
	Order     Order   `yaml:"order"`
	Prime     string  `yaml:"prime"`
	Tolerance float64 `yaml:"tolerance"`
	LogLevel  string  `yaml:"loglevel"`
}

// Default returns the float strategy on supplied order
func Default() *Config {
	return &Config{
		Strategy:  string(interpolation.Float),
		Order:     Supplied,
		Tolerance: DefaultTolerance,
		LogLevel:  zerolog.InfoLevel.String(),
	}
}

// FromYAML reads a config file. Fields left out keep their default.
func FromYAML(path string) (*Config, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to read config: %v", err)
	}

	c := Default()
	err = yaml.Unmarshal(yamlFile, c)
	if err != nil {
		return nil, xerrors.Errorf("failed to parse config %s: %v", path, err)
	}

	err = c.Validate()
	if err != nil {
		return nil, xerrors.Errorf("invalid config %s: %w", path, err)
	}

	return c, nil
}

// Validate checks every field can be used
func (c *Config) Validate() error {
	strategy, err := interpolation.ParseStrategy(c.Strategy)
	if err != nil {
		return err
	}

	switch c.Order {
	case "", Supplied, Ascending:
	default:
		return xerrors.Errorf("unknown order %q", c.Order)
	}

	if c.Tolerance < 0 {
		return xerrors.Errorf("negative tolerance %v", c.Tolerance)
	}

	_, err = c.Level()
	if err != nil {
		return err
	}

	if strategy == interpolation.Modular {
		_, err = c.Modulus()
		if err != nil {
			return err
		}
	}

	return nil
}

// StrategyValue returns the parsed strategy
func (c *Config) StrategyValue() interpolation.Strategy {
	s, err := interpolation.ParseStrategy(c.Strategy)
	if err != nil {
		return interpolation.Float
	}
	return s
}

// Modulus returns the configured prime, or the default one if none is set.
// Decimal and 0x prefixed hexadecimal are accepted.
func (c *Config) Modulus() (*big.Int, error) {
	if c.Prime == "" {
		return interpolation.DefaultPrime, nil
	}

	p, ok := new(big.Int).SetString(strings.TrimSpace(c.Prime), 0)
	if !ok {
		return nil, xerrors.Errorf("invalid prime %q", c.Prime)
	}
	if !p.ProbablyPrime(20) {
		return nil, xerrors.Errorf("%s is not a prime", p)
	}
	return p, nil
}

// Level returns the log level, info when unset
func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, xerrors.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}
