// Package experiment holds the table of experiment variants. A variant is
// pure data: a name, the reference standards measured for it and whether its
// samples are classified against the potability threshold.
package experiment

import (
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/ifro-labs/ferro/pkg/calibration"
)

var (
	// ErrUnknownExperiment is returned when no experiment has the requested name.
	ErrUnknownExperiment = errors.New("unknown experiment")

	// ErrDuplicateExperiment is returned when two experiments share a name.
	ErrDuplicateExperiment = errors.New("duplicate experiment")
)

// Experiment is one calibration variant.
type Experiment struct {
	Name          string    `json:"name"`
	Title         string    `json:"title,omitempty"`
	Description   string    `json:"description,omitempty"`
	Concentration []float64 `json:"concentration"`
	Absorbance    []float64 `json:"absorbance"`
	Classify      bool      `json:"classify"`
}

// DisplayTitle returns Title, falling back to "Experiment <name>".
func (e Experiment) DisplayTitle() string {
	if e.Title != "" {
		return e.Title
	}
	return "Experiment " + e.Name
}

// Dataset returns the reference standards of the experiment.
func (e Experiment) Dataset() calibration.Dataset {
	return calibration.Dataset{
		Concentration: e.Concentration,
		Absorbance:    e.Absorbance,
	}
}

// Catalog is an ordered table of experiments, looked up by name regardless
// of case.
type Catalog struct {
	experiments []Experiment
	index       map[string]int
}

// NewCatalog builds a catalog. Names must be non-empty and unique.
func NewCatalog(experiments ...Experiment) (*Catalog, error) {
	c := &Catalog{
		experiments: make([]Experiment, 0, len(experiments)),
		index:       make(map[string]int, len(experiments)),
	}
	for _, e := range experiments {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			return nil, pkgerrors.New("experiment name must not be empty")
		}
		key := strings.ToLower(e.Name)
		if _, ok := c.index[key]; ok {
			return nil, pkgerrors.Wrapf(ErrDuplicateExperiment, "%s", e.Name)
		}
		c.index[key] = len(c.experiments)
		c.experiments = append(c.experiments, e)
	}
	return c, nil
}

// Lookup finds an experiment by name.
func (c *Catalog) Lookup(name string) (Experiment, error) {
	i, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Experiment{}, pkgerrors.Wrapf(ErrUnknownExperiment, "%q", name)
	}
	return c.experiments[i], nil
}

// List returns the experiments in their configured order.
func (c *Catalog) List() []Experiment {
	return append([]Experiment(nil), c.experiments...)
}

func (c *Catalog) Len() int {
	return len(c.experiments)
}

// Calibrate fits every experiment. It fails on the first experiment whose
// reference standards cannot be fitted, so a broken table is caught before
// any estimate is made. classify is ANDed with the per-experiment switch.
func (c *Catalog) Calibrate(classify bool) (map[string]*calibration.Calibration, error) {
	out := make(map[string]*calibration.Calibration, len(c.experiments))
	for _, e := range c.experiments {
		cal, err := calibration.New(e.Name, e.Dataset(), classify && e.Classify)
		if err != nil {
			return nil, err
		}
		out[strings.ToLower(e.Name)] = cal
	}
	return out, nil
}
