package calibration

import (
	"math"

	pkgerrors "github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FitDataset fits Absorbance = Beta * Concentration by ordinary least squares
// through the origin:
//
//	beta      = sum(c_i * a_i) / sum(c_i^2)
//	predicted = beta * c_i
//	r^2       = 1 - sum((a_i - predicted_i)^2) / sum(a_i^2)
//
// The coefficient of determination uses the raw sum of squares of the
// absorbance, which is what a regression without intercept reports.
//
// It never returns NaN or Inf. An all-zero concentration or absorbance vector,
// or data that yields a zero slope, fails with ErrDivisionByZero. Standards so
// large that the sums overflow fail with ErrInvalidDataset.
func FitDataset(concentration, absorbance []float64) (Fit, error) {
	ds := Dataset{Concentration: concentration, Absorbance: absorbance}
	if err := ds.Validate(); err != nil {
		return Fit{}, err
	}

	ssConcentration := floats.Dot(concentration, concentration)
	if ssConcentration == 0 {
		return Fit{}, pkgerrors.Wrap(ErrDivisionByZero, "all reference concentrations are zero")
	}
	ssTotal := floats.Dot(absorbance, absorbance)
	if ssTotal == 0 {
		return Fit{}, pkgerrors.Wrap(ErrDivisionByZero, "all reference absorbances are zero")
	}
	if !finite(ssConcentration, ssTotal) {
		return Fit{}, pkgerrors.Wrap(ErrInvalidDataset, "reference standards are too large to fit")
	}

	_, beta := stat.LinearRegression(concentration, absorbance, nil, true)
	if beta == 0 {
		return Fit{}, pkgerrors.Wrap(ErrDivisionByZero, "fitted slope is zero")
	}

	predicted := floats.ScaleTo(make([]float64, len(concentration)), beta, concentration)
	residuals := floats.SubTo(make([]float64, len(absorbance)), absorbance, predicted)
	ssResidual := floats.Dot(residuals, residuals)
	rSquared := 1 - ssResidual/ssTotal

	if !finite(beta, ssResidual, rSquared) || !finite(predicted...) {
		return Fit{}, pkgerrors.Wrapf(ErrInvalidDataset, "fit overflowed (beta %g)", beta)
	}

	return Fit{
		Beta:      beta,
		RSquared:  rSquared,
		Predicted: predicted,
	}, nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Fit fits the dataset. See FitDataset.
func (d Dataset) Fit() (Fit, error) {
	return FitDataset(d.Concentration, d.Absorbance)
}
