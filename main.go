package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	cli "go.dedis.ch/secretrecover/cmd"
)

func main() {
	var opts cli.Options

	command := &cobra.Command{
		Use:           "secretrecover",
		Short:         "Recover a threshold shared secret",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	command.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file")
	command.PersistentFlags().StringVarP(&opts.Strategy, "strategy", "s", "",
		"float, pivoted, rational or modular")
	command.PersistentFlags().StringVar(&opts.Order, "order", "", "supplied or ascending")
	command.PersistentFlags().StringVar(&opts.LogLevel, "loglevel", "", "log level")

	addSolveCmd(command, &opts)
	addVerifyCmd(command, &opts)
	addDecodeCmd(command)
	addInteractiveCmd(command, &opts)

	err := command.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// addSolveCmd recovers the secret of a share file
func addSolveCmd(command *cobra.Command, opts *cli.Options) {
	var path string

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Recover the secret of a share file",
		Long:  "Decode the shares of a file and recover the constant term from the first k of them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := cli.LoadConfig(*opts)
			if err != nil {
				return err
			}
			cli.SetupLogger(conf)
			return cli.Solve(path, conf, os.Stdout)
		},
	}

	solveCmd.Flags().StringVarP(&path, "file", "f", "", "share file")
	solveCmd.MarkFlagRequired("file")

	command.AddCommand(solveCmd)
}

// addVerifyCmd checks the extra shares of a file
func addVerifyCmd(command *cobra.Command, opts *cli.Options) {
	var path string

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the shares beyond the first k",
		Long:  "Solve the polynomial from the first k shares and report the shares that are not on it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := cli.LoadConfig(*opts)
			if err != nil {
				return err
			}
			cli.SetupLogger(conf)
			return cli.Verify(path, conf, os.Stdout)
		},
	}

	verifyCmd.Flags().StringVarP(&path, "file", "f", "", "share file")
	verifyCmd.MarkFlagRequired("file")

	command.AddCommand(verifyCmd)
}

// addDecodeCmd decodes a single value
func addDecodeCmd(command *cobra.Command) {
	decodeCmd := &cobra.Command{
		Use:   "decode BASE VALUE",
		Short: "Decode a value written in base 2 to 36",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := strconv.Atoi(args[0])
			if err != nil {
				return xerrors.Errorf("invalid base %q", args[0])
			}
			return cli.Decode(base, args[1], os.Stdout)
		},
	}

	command.AddCommand(decodeCmd)
}

// addInteractiveCmd starts the interactive prompt
func addInteractiveCmd(command *cobra.Command, opts *cli.Options) {
	interactiveCmd := &cobra.Command{
		Use:   "interactive",
		Short: "Recover secrets with an interactive prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := cli.LoadConfig(*opts)
			if err != nil {
				return err
			}
			cli.SetupLogger(conf)
			return cli.StartInteractive(conf)
		},
	}

	command.AddCommand(interactiveCmd)
}
