package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ifro-labs/ferro/pkg/calibration"
	"github.com/ifro-labs/ferro/pkg/client"
	"github.com/ifro-labs/ferro/pkg/experiment"
)

var (
	logLevel   = "info"
	configPath = "ferro.json"
	serverAddr = ""
)

var (
	gBasic        = "Basic:"
	gAdvanced     = "Advanced:"
	commandGroups = []string{
		gBasic,
		gAdvanced,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	switch {
	case errors.Is(err, client.ErrServerNotRunning):
		fmt.Fprintln(os.Stderr, "\nError: ferro server is not running")
		fmt.Fprintf(os.Stderr, "Is 'ferro serve' running on %s? Omit --server to compute locally.\n", serverAddr)
	case errors.Is(err, experiment.ErrUnknownExperiment), errors.Is(err, client.ErrNotFound):
		fmt.Fprintln(os.Stderr, "\nError: no such experiment")
		fmt.Fprintln(os.Stderr, "Run 'ferro experiments' to list the configured experiments.")
	case errors.Is(err, calibration.ErrDivisionByZero), errors.Is(err, calibration.ErrInvalidDataset):
		fmt.Fprintln(os.Stderr, "\nError: the reference standards of this experiment cannot be fitted")
		fmt.Fprintf(os.Stderr, "Check the experiments in %s.\n", configPath)
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ferro",
		Short: "ferro determines iron content in water from absorbance readings",
		Long: `ferro determines iron content in water from absorbance readings.

It fits a calibration curve through the origin to reference standards and
converts the absorbance of water samples into iron concentration (mg/L).
Samples up to 0.3 mg/L are reported as fit for consumption.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&serverAddr, "server", serverAddr, "address of a ferro server to query instead of computing locally, e.g. 127.0.0.1:8501")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewServeCommand(),
		NewVersionCommand(),
		NewExperimentsCommand(),
		NewFitCommand(),
		NewEstimateCommand(),
		NewChartCommand(),
		NewConfigCommand(),
		NewWatchCommand(),
	)

	return cmd
}
