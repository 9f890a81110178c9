package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ifro-labs/ferro/pkg/calibration"
	"github.com/ifro-labs/ferro/pkg/client"
	"github.com/ifro-labs/ferro/pkg/samples"
	"github.com/ifro-labs/ferro/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
			if serverAddr == "" {
				return nil
			}

			serverVersion, err := client.NewClient(serverAddr).GetVersion()
			if err != nil {
				return err
			}
			cmd.Printf("server: %s\n", serverVersion)
			if serverVersion != version.Version {
				logrus.WithFields(logrus.Fields{
					"clientVersion": version.Version,
					"serverVersion": serverVersion,
				}).Warn("Version mismatch between client and server.")
			}
			return nil
		},
	}
}

func NewExperimentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "experiments",
		Aliases: []string{"ls"},
		Short:   "List experiments and their calibration curves",
		GroupID: gBasic,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := newBackend()
			if err != nil {
				return err
			}
			exps, err := b.ListExperiments()
			if err != nil {
				return fmt.Errorf("failed to list experiments: %w", err)
			}

			for _, e := range exps {
				cmd.Printf("%s  %s\n", bold("%-6s", e.Name), e.Title)
				cmd.Printf("        %s (R² = %.4f)\n", e.Equation, e.RSquared)
			}
			return nil
		},
	}
}

func NewFitCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "fit [experiment]",
		Short:   "Show the calibration curve of an experiment",
		GroupID: gBasic,
		Long: `Show the calibration curve of an experiment.

The curve is fitted by least squares through the origin (Absorbance = beta * Concentration). R² is computed against the raw sum of squares of the absorbance, as usual for a regression without intercept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBackend()
			if err != nil {
				return err
			}
			d, err := b.GetExperiment(args[0])
			if err != nil {
				return fmt.Errorf("failed to fit experiment: %w", err)
			}

			if asJSON {
				return printJSON(cmd, d)
			}

			cmd.Println(bold("%s", d.Title))
			cmd.Printf("  Calibration equation: %s\n", bold("%s", d.Equation))
			cmd.Printf("  Coefficient of determination (R²): %s\n", bold("%.4f", d.RSquared))
			cmd.Println()
			cmd.Printf("  %-22s %-12s %s\n", "Concentration (mg/L)", "Absorbance", "Fitted")
			for i, c := range d.Dataset.Concentration {
				cmd.Printf("  %-22g %-12.4f %.4f\n", c, d.Dataset.Absorbance[i], d.Predicted[i])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func NewEstimateCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "estimate [experiment] [absorbance|label=absorbance]...",
		Short:   "Convert sample absorbances into iron concentration",
		GroupID: gBasic,
		Long: `Convert sample absorbances into iron concentration using the calibration curve of an experiment.

Readings are given as arguments, or read from stdin when none are given. A reading can carry a label, e.g. 'ferro estimate A 0.052 "well 3=0.12"'. Use a dot as decimal separator.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := readSamples(args[1:], cmd.InOrStdin())
			if err != nil {
				return err
			}

			b, err := newBackend()
			if err != nil {
				return err
			}
			resp, err := b.Estimate(args[0], batch)
			if err != nil {
				return fmt.Errorf("failed to estimate concentrations: %w", err)
			}

			if asJSON {
				return printJSON(cmd, resp)
			}

			cmd.Printf("Experiment %s (beta = %.4f)\n", resp.Experiment, resp.Beta)
			for _, e := range resp.Estimates {
				cmd.Printf("  %s: %s", e.Label, bold("%.3f mg/L", e.Concentration))
				if e.Verdict != nil {
					cmd.Printf("  %s", verdict2Text(*e.Verdict))
				}
				cmd.Println()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

// readSamples parses readings from args, or from r when args is empty.
func readSamples(args []string, r io.Reader) ([]calibration.Sample, error) {
	if len(args) > 0 {
		return samples.ParseArgs(args)
	}

	if f, ok := r.(*os.File); ok && f == os.Stdin {
		logrus.Info("reading absorbances from stdin, one or more per line (Ctrl-D to finish)")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read samples: %w", err)
	}
	return samples.Parse(string(b))
}
