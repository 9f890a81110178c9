package calibration

import (
	"errors"
	"testing"
)

func TestCalibrationEstimate(t *testing.T) {
	c, err := New("A", Dataset{Concentration: standards, Absorbance: absorbanceA}, true)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	beta := c.Fit().Beta
	estimates, err := c.Estimate([]Sample{
		{Absorbance: 0.3 * beta},
		{Label: "well 2", Absorbance: 0.1},
	})
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if len(estimates) != 2 {
		t.Fatalf("got %d estimates, want 2", len(estimates))
	}

	if estimates[0].Label != "Sample 1" || estimates[1].Label != "well 2" {
		t.Fatalf("unexpected labels %q and %q", estimates[0].Label, estimates[1].Label)
	}
	if estimates[1].Index != 1 {
		t.Fatalf("index = %d, want 1", estimates[1].Index)
	}
	if estimates[1].Concentration != 0.1/beta {
		t.Fatalf("concentration = %v, want %v", estimates[1].Concentration, 0.1/beta)
	}
	if estimates[1].Verdict == nil || *estimates[1].Verdict != VerdictUnsafe {
		t.Fatalf("expected well 2 to be unsafe, got %v", estimates[1].Verdict)
	}
	if estimates[0].Verdict == nil || *estimates[0].Verdict != Classify(estimates[0].Concentration) {
		t.Fatalf("verdict of sample 1 does not match Classify")
	}
}

func TestCalibrationWithoutClassification(t *testing.T) {
	c, err := New("B", Dataset{Concentration: standards, Absorbance: absorbanceB}, false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Threshold() != nil {
		t.Fatalf("Threshold() = %v, want nil", *c.Threshold())
	}

	estimates, err := c.Estimate([]Sample{{Absorbance: 0.5}})
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if estimates[0].Verdict != nil {
		t.Fatalf("verdict = %s, want none", *estimates[0].Verdict)
	}
}

func TestCalibrationKeepsItsOwnDataset(t *testing.T) {
	conc := append([]float64(nil), standards...)
	abs := append([]float64(nil), absorbanceA...)

	c, err := New("A", Dataset{Concentration: conc, Absorbance: abs}, true)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	beta := c.Fit().Beta

	// Mutating the caller's slices must not leak into the calibration.
	abs[6] = 10
	if c.Dataset().Absorbance[6] != 0.222 {
		t.Fatalf("dataset was aliased")
	}
	if c.Fit().Beta != beta {
		t.Fatalf("beta changed")
	}
}

func TestNewRejectsInvalidDataset(t *testing.T) {
	_, err := New("zero", Dataset{Concentration: []float64{0, 0}, Absorbance: []float64{0.1, 0.2}}, true)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("New() error = %v, want %v", err, ErrDivisionByZero)
	}
}

func TestNewRejectsOverflowingStandards(t *testing.T) {
	c, err := New("big", Dataset{Concentration: []float64{1e200}, Absorbance: []float64{1e200}}, true)
	if !errors.Is(err, ErrInvalidDataset) {
		t.Fatalf("New() error = %v, want %v", err, ErrInvalidDataset)
	}
	if c != nil {
		t.Fatalf("New() returned a calibration on error")
	}
}
