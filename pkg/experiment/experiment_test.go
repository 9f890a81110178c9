package experiment

import (
	"errors"
	"testing"

	"github.com/ifro-labs/ferro/pkg/calibration"
)

func TestDefaultCatalogCalibrates(t *testing.T) {
	cals, err := DefaultCatalog().Calibrate(true)
	if err != nil {
		t.Fatalf("Calibrate() error = %v", err)
	}
	if len(cals) != 2 {
		t.Fatalf("got %d calibrations, want 2", len(cals))
	}
	for name, c := range cals {
		if c.Fit().Beta <= 0 {
			t.Fatalf("experiment %s: beta = %v", name, c.Fit().Beta)
		}
		if !c.Classifies() {
			t.Fatalf("experiment %s should classify", name)
		}
	}
}

func TestCalibrateGlobalClassifySwitch(t *testing.T) {
	cals, err := DefaultCatalog().Calibrate(false)
	if err != nil {
		t.Fatalf("Calibrate() error = %v", err)
	}
	for name, c := range cals {
		if c.Classifies() {
			t.Fatalf("experiment %s classifies although disabled globally", name)
		}
	}
}

func TestCatalogLookup(t *testing.T) {
	c := DefaultCatalog()

	e, err := c.Lookup(" a ")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if e.Name != "A" || e.DisplayTitle() != "Experiment A" {
		t.Fatalf("Lookup() = %+v", e)
	}

	if _, err := c.Lookup("C"); !errors.Is(err, ErrUnknownExperiment) {
		t.Fatalf("Lookup(C) error = %v, want %v", err, ErrUnknownExperiment)
	}
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog(Experiment{Name: "A"}, Experiment{Name: "a"})
	if !errors.Is(err, ErrDuplicateExperiment) {
		t.Fatalf("NewCatalog() error = %v, want %v", err, ErrDuplicateExperiment)
	}
	if _, err := NewCatalog(Experiment{Name: "  "}); err == nil {
		t.Fatalf("NewCatalog() accepted an empty name")
	}
}

func TestCalibrateReportsBrokenExperiment(t *testing.T) {
	c, err := NewCatalog(Experiment{
		Name:          "blank",
		Concentration: []float64{0, 0},
		Absorbance:    []float64{0.01, 0.02},
	})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	if _, err := c.Calibrate(true); !errors.Is(err, calibration.ErrDivisionByZero) {
		t.Fatalf("Calibrate() error = %v, want %v", err, calibration.ErrDivisionByZero)
	}
}

func TestSwappedVariantsOnlyDifferInData(t *testing.T) {
	d := Defaults()
	d[0].Absorbance, d[1].Absorbance = d[1].Absorbance, d[0].Absorbance

	swapped, err := NewCatalog(d...)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	orig, err := DefaultCatalog().Calibrate(true)
	if err != nil {
		t.Fatalf("Calibrate() error = %v", err)
	}
	got, err := swapped.Calibrate(true)
	if err != nil {
		t.Fatalf("Calibrate() error = %v", err)
	}
	if got["a"].Fit().Beta != orig["b"].Fit().Beta || got["b"].Fit().Beta != orig["a"].Fit().Beta {
		t.Fatalf("swapping the absorbance series should swap the fitted slopes")
	}
}
