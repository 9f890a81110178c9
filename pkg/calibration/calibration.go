package calibration

import (
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Calibration is a fitted experiment. It is the only way to estimate sample
// concentrations with a label and a verdict, and it can only be built by New,
// so the slope always belongs to the dataset it carries. Selecting another
// experiment means building another Calibration.
//
// A Calibration is immutable after New and safe for concurrent use.
type Calibration struct {
	experiment string
	dataset    Dataset
	fit        Fit
	classify   bool
}

// New fits the dataset of an experiment. classify enables the potability
// verdict on estimates.
func New(experiment string, ds Dataset, classify bool) (*Calibration, error) {
	ds = Dataset{
		Concentration: append([]float64(nil), ds.Concentration...),
		Absorbance:    append([]float64(nil), ds.Absorbance...),
	}

	fit, err := ds.Fit()
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to fit experiment %s", experiment)
	}

	logrus.WithFields(logrus.Fields{
		"experiment": experiment,
		"standards":  ds.Len(),
		"beta":       fit.Beta,
		"rSquared":   fit.RSquared,
	}).Debug("calibration fitted")

	return &Calibration{
		experiment: experiment,
		dataset:    ds,
		fit:        fit,
		classify:   classify,
	}, nil
}

func (c *Calibration) Experiment() string { return c.experiment }
func (c *Calibration) Classifies() bool   { return c.classify }

// Dataset returns a copy of the reference standards.
func (c *Calibration) Dataset() Dataset {
	return Dataset{
		Concentration: append([]float64(nil), c.dataset.Concentration...),
		Absorbance:    append([]float64(nil), c.dataset.Absorbance...),
	}
}

// Fit returns a copy of the fit result.
func (c *Calibration) Fit() Fit {
	f := c.fit
	f.Predicted = append([]float64(nil), c.fit.Predicted...)
	return f
}

// Threshold returns the threshold estimates are classified against, or nil
// when the calibration does not classify.
func (c *Calibration) Threshold() *float64 {
	if !c.classify {
		return nil
	}
	t := SafetyThreshold
	return &t
}

// Estimate converts a batch of samples into concentrations. Unlabeled samples
// get DefaultLabel.
func (c *Calibration) Estimate(samples []Sample) ([]Estimate, error) {
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Absorbance
	}

	concentrations, err := EstimateConcentrations(values, c.fit.Beta)
	if err != nil {
		return nil, err
	}

	estimates := make([]Estimate, len(samples))
	for i, s := range samples {
		label := s.Label
		if label == "" {
			label = DefaultLabel(i)
		}
		estimates[i] = Estimate{
			Index:         i,
			Label:         label,
			Absorbance:    s.Absorbance,
			Concentration: concentrations[i],
		}
		if c.classify {
			v := Classify(concentrations[i])
			estimates[i].Verdict = &v
		}
	}
	return estimates, nil
}
