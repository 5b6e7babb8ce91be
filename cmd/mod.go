package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.dedis.ch/secretrecover/config"
	"go.dedis.ch/secretrecover/decoder"
	"go.dedis.ch/secretrecover/loader"
	"go.dedis.ch/secretrecover/recovery"
)

// -----------------------------------------------------------------------------
// Setup

// Options are the command line overrides of the config file
type Options struct {
	ConfigPath string
	Strategy   string
	Order      string
	LogLevel   string
}

// LoadConfig reads the config file if any and applies the overrides
func LoadConfig(opts Options) (*config.Config, error) {
	conf := config.Default()
	if opts.ConfigPath != "" {
		var err error
		conf, err = config.FromYAML(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
	}

	if opts.Strategy != "" {
		conf.Strategy = opts.Strategy
	}
	if opts.Order != "" {
		conf.Order = config.Order(opts.Order)
	}
	if opts.LogLevel != "" {
		conf.LogLevel = opts.LogLevel
	}

	err := conf.Validate()
	if err != nil {
		return nil, err
	}

	return conf, nil
}

// SetupLogger sends logs to stderr in console format
func SetupLogger(conf *config.Config) {
	level, err := conf.Level()
	if err != nil {
		level = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	log.Logger = log.Output(output)
	zerolog.SetGlobalLevel(level)
}

// -----------------------------------------------------------------------------
// Commands

// Solve recovers the secret of the share file at path and prints it to out
func Solve(path string, conf *config.Config, out io.Writer) error {
	set, err := loader.LoadFile(path)
	if err != nil {
		return err
	}

	service, err := recovery.New(conf)
	if err != nil {
		return err
	}

	res, err := service.Recover(set)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "The secret (constant term) is: %s\n", res.String())
	if res.Exact == nil {
		rounded, err := res.Rounded()
		if err == nil {
			fmt.Fprintf(out, "Rounded secret: %s\n", rounded.String())
		}
	}

	return nil
}

// Verify checks the shares of the file at path beyond the first k and prints
// the inconsistent ones
func Verify(path string, conf *config.Config, out io.Writer) error {
	set, err := loader.LoadFile(path)
	if err != nil {
		return err
	}

	service, err := recovery.New(conf)
	if err != nil {
		return err
	}

	report, err := service.Verify(set)
	if err != nil {
		return err
	}

	if report.Consistent() {
		fmt.Fprintf(out, "All %d extra shares are consistent\n", report.Checked)
		return nil
	}

	fmt.Fprintf(out, "%d of %d extra shares are inconsistent:", len(report.Inconsistent), report.Checked)
	for _, x := range report.Inconsistent {
		fmt.Fprintf(out, " %d", x)
	}
	fmt.Fprintln(out)

	return nil
}

// Decode prints value read in base
func Decode(base int, value string, out io.Writer) error {
	res, err := decoder.Decode(base, value)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, res.String())
	return nil
}
