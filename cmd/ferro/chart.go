package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ifro-labs/ferro/pkg/charts"
	"github.com/ifro-labs/ferro/pkg/config"
)

func NewChartCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:     "chart [experiment] [absorbance|label=absorbance]...",
		Short:   "Draw the calibration curve, or the concentrations of samples",
		GroupID: gBasic,
		Long: `Draw the calibration curve of an experiment to a PNG or SVG file.

When readings are given, draw one bar per sample instead, with the potability threshold as a dashed line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			format, err := charts.ParseFormat(out)
			if err != nil {
				return err
			}

			b, err := newBackend()
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			size := chartSize()
			if len(args) == 1 {
				d, err := b.GetExperiment(args[0])
				if err != nil {
					return fmt.Errorf("failed to fit experiment: %w", err)
				}
				err = charts.RenderCalibration(&buf, d.Chart, format, size)
				if err != nil {
					return fmt.Errorf("failed to draw calibration curve: %w", err)
				}
			} else {
				batch, err := readSamples(args[1:], nil)
				if err != nil {
					return err
				}
				resp, err := b.Estimate(args[0], batch)
				if err != nil {
					return fmt.Errorf("failed to estimate concentrations: %w", err)
				}
				err = charts.RenderConcentrations(&buf, resp.Chart, format, size)
				if err != nil {
					return fmt.Errorf("failed to draw concentrations: %w", err)
				}
			}

			if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			logrus.Infof("chart written to %s", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "chart.png", "output file, .png or .svg")

	return cmd
}

// chartSize reads the chart size from the config file, falling back to the
// defaults when it cannot be read.
func chartSize() charts.Size {
	conf, err := config.NewFile(configPath)
	if err != nil {
		logrus.Debugf("using default chart size: %v", err)
		return charts.DefaultSize
	}
	return charts.Size{Width: conf.ChartWidth(), Height: conf.ChartHeight()}
}
