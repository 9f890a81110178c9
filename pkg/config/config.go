package config

import (
	"github.com/sirupsen/logrus"

	"github.com/ifro-labs/ferro/pkg/experiment"
)

type Config interface {
	// Listen is the TCP address the web server listens on.
	Listen() string
	// Classify enables the potability verdict for experiments that ask for it.
	Classify() bool
	ChartWidth() int
	ChartHeight() int
	// Experiments returns the configured experiment table, or the built-in
	// defaults when none is configured.
	Experiments() []experiment.Experiment

	SetListen(string)
	SetClassify(bool)
	SetExperiments([]experiment.Experiment)

	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}

// Catalog builds the experiment catalog described by c.
func Catalog(c Config) (*experiment.Catalog, error) {
	return experiment.NewCatalog(c.Experiments()...)
}
