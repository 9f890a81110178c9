package charts

import (
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ifro-labs/ferro/pkg/calibration"
)

const (
	axisConcentration = "Concentration (mg/L)"
	axisAbsorbance    = "Absorbance"
	axisSample        = "Sample"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Line struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// CalibrationChart is a scatter of the reference standards plus the fitted line.
type CalibrationChart struct {
	Title    string `json:"title"`
	XAxis    string `json:"xAxis"`
	YAxis    string `json:"yAxis"`
	Measured Line   `json:"measured"`
	Fitted   Line   `json:"fitted"`
}

// NewCalibrationChart builds the series of a calibration curve.
func NewCalibrationChart(ds calibration.Dataset, fit calibration.Fit) CalibrationChart {
	measured := make([]Point, ds.Len())
	fitted := make([]Point, ds.Len())
	for i, c := range ds.Concentration {
		measured[i] = Point{X: c, Y: ds.Absorbance[i]}
		fitted[i] = Point{X: c, Y: fit.Predict(c)}
	}
	sort.SliceStable(fitted, func(i, j int) bool { return fitted[i].X < fitted[j].X })

	return CalibrationChart{
		Title:    fmt.Sprintf("Calibration curve (R² = %.4f)", fit.RSquared),
		XAxis:    axisConcentration,
		YAxis:    axisAbsorbance,
		Measured: Line{Name: "Experimental data", Points: measured},
		Fitted:   Line{Name: "Linear regression (no intercept)", Points: fitted},
	}
}

type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	// Color is a hex colour, e.g. #a1b2c3.
	Color   string               `json:"color"`
	Verdict *calibration.Verdict `json:"verdict,omitempty"`
}

// ConcentrationChart has one bar per sample. Threshold is drawn as a
// horizontal line when set.
type ConcentrationChart struct {
	Title     string   `json:"title"`
	XAxis     string   `json:"xAxis"`
	YAxis     string   `json:"yAxis"`
	Bars      []Bar    `json:"bars"`
	Threshold *float64 `json:"threshold,omitempty"`
}

// NewConcentrationChart builds the bar series of an estimation.
func NewConcentrationChart(estimates []calibration.Estimate, threshold *float64) ConcentrationChart {
	palette := Palette(len(estimates))
	bars := make([]Bar, len(estimates))
	for i, e := range estimates {
		bars[i] = Bar{
			Label:   e.Label,
			Value:   e.Concentration,
			Color:   palette[i].Hex(),
			Verdict: e.Verdict,
		}
	}

	return ConcentrationChart{
		Title:     "Calculated concentrations",
		XAxis:     axisSample,
		YAxis:     axisConcentration,
		Bars:      bars,
		Threshold: threshold,
	}
}

// Palette returns n distinguishable colours with evenly spaced hues. The
// result only depends on n.
func Palette(n int) []colorful.Color {
	out := make([]colorful.Color, n)
	for i := range out {
		out[i] = colorful.Hcl(30+360*float64(i)/float64(n), 0.55, 0.62).Clamped()
	}
	return out
}
