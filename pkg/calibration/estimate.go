package calibration

import (
	"fmt"
	"math"

	pkgerrors "github.com/pkg/errors"
)

// EstimateConcentrations converts absorbance readings into concentrations
// using concentration_i = sample_i / beta. Zero and negative readings are
// accepted as entered.
func EstimateConcentrations(samples []float64, beta float64) ([]float64, error) {
	if err := checkSlope(beta); err != nil {
		return nil, err
	}

	out := make([]float64, len(samples))
	for i, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, pkgerrors.Wrapf(ErrInvalidSample, "sample %d is not a finite number", i+1)
		}
		out[i] = s / beta
		if math.IsInf(out[i], 0) {
			return nil, pkgerrors.Wrapf(ErrInvalidSample, "sample %d is too large for slope %g", i+1, beta)
		}
	}
	return out, nil
}

// Concentration returns the concentration for a single absorbance reading.
func (f Fit) Concentration(absorbance float64) (float64, error) {
	c, err := EstimateConcentrations([]float64{absorbance}, f.Beta)
	if err != nil {
		return 0, err
	}
	return c[0], nil
}

// Classify returns VerdictSafe when the concentration does not exceed
// SafetyThreshold.
func Classify(concentration float64) Verdict {
	if concentration <= SafetyThreshold {
		return VerdictSafe
	}
	return VerdictUnsafe
}

// DefaultLabel is the label given to the i-th (zero-based) unlabeled sample.
func DefaultLabel(i int) string {
	return fmt.Sprintf("Sample %d", i+1)
}

func checkSlope(beta float64) error {
	if beta == 0 {
		return pkgerrors.Wrap(ErrDivisionByZero, "calibration slope is zero")
	}
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		return pkgerrors.Wrapf(ErrDivisionByZero, "calibration slope is not a finite number (%g)", beta)
	}
	return nil
}
