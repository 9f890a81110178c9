package main

import (
	"encoding/json"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ifro-labs/ferro/pkg/calibration"
)

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

func verdict2Text(v calibration.Verdict) string {
	if v == calibration.VerdictSafe {
		return color.New(color.Bold, color.FgGreen).Sprint("✔ fit for consumption")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘ unfit for consumption")
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(b))
	return nil
}

func unsafeCount(n int) string {
	if n == 0 {
		return color.New(color.Bold, color.FgGreen).Sprint(n)
	}
	return color.New(color.Bold, color.FgRed).Sprint(n)
}
