package calibration

import (
	"fmt"
	"math"

	pkgerrors "github.com/pkg/errors"
)

// SafetyThreshold is the maximum iron concentration (mg/L) for water that is
// fit for consumption. The boundary is inclusive.
const SafetyThreshold = 0.3

// Dataset holds the reference standards of an experiment. Concentration[i] is
// the known concentration (mg/L) and Absorbance[i] the measured absorbance of
// the i-th standard.
type Dataset struct {
	Concentration []float64 `json:"concentration"`
	Absorbance    []float64 `json:"absorbance"`
}

// Validate checks that both sequences are non-empty, have the same length and
// only hold finite, non-negative numbers.
func (d Dataset) Validate() error {
	if len(d.Concentration) == 0 || len(d.Absorbance) == 0 {
		return pkgerrors.Wrap(ErrInvalidDataset, "no reference standards")
	}
	if len(d.Concentration) != len(d.Absorbance) {
		return pkgerrors.Wrapf(ErrInvalidDataset, "got %d concentrations but %d absorbances",
			len(d.Concentration), len(d.Absorbance))
	}
	if err := checkValues("concentration", d.Concentration); err != nil {
		return err
	}
	return checkValues("absorbance", d.Absorbance)
}

func checkValues(name string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return pkgerrors.Wrapf(ErrInvalidDataset, "%s[%d] is not a finite number", name, i)
		}
		if v < 0 {
			return pkgerrors.Wrapf(ErrInvalidDataset, "%s[%d] is negative (%g)", name, i, v)
		}
	}
	return nil
}

// Len returns the number of reference standards.
func (d Dataset) Len() int {
	return len(d.Concentration)
}

// Fit is the result of a no-intercept linear fit.
type Fit struct {
	// Beta is the proportionality constant (absorbance per mg/L).
	Beta float64 `json:"beta"`
	// RSquared is computed against the raw sum of squares of the absorbance,
	// not the mean-centred one.
	RSquared float64 `json:"rSquared"`
	// Predicted holds Beta*Concentration[i] for every reference standard.
	Predicted []float64 `json:"predicted"`
}

// Predict returns the absorbance the fitted curve expects for a concentration.
func (f Fit) Predict(concentration float64) float64 {
	return f.Beta * concentration
}

// Equation renders the calibration equation the way it is shown to users.
func (f Fit) Equation() string {
	return fmt.Sprintf("Absorbance = %.4f * Concentration", f.Beta)
}

// Verdict classifies a sample against SafetyThreshold.
type Verdict string

const (
	VerdictSafe   Verdict = "safe"
	VerdictUnsafe Verdict = "unsafe"
)

// Sample is a single absorbance reading of an unknown sample. Label is
// optional.
type Sample struct {
	Label      string  `json:"label,omitempty"`
	Absorbance float64 `json:"absorbance"`
}

// Estimate is the concentration estimated for one sample. Verdict is only set
// when the calibration classifies its samples.
type Estimate struct {
	Index         int      `json:"index"`
	Label         string   `json:"label"`
	Absorbance    float64  `json:"absorbance"`
	Concentration float64  `json:"concentration"`
	Verdict       *Verdict `json:"verdict,omitempty"`
}
