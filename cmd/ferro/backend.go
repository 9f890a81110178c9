package main

import (
	"strings"

	"github.com/ifro-labs/ferro/pkg/api"
	"github.com/ifro-labs/ferro/pkg/calibration"
	"github.com/ifro-labs/ferro/pkg/client"
	"github.com/ifro-labs/ferro/pkg/config"
	"github.com/ifro-labs/ferro/pkg/experiment"
)

// backend answers the commands, either from a running server or by fitting
// the configured experiments in-process.
type backend interface {
	ListExperiments() ([]api.ExperimentSummary, error)
	GetExperiment(name string) (*api.ExperimentDetail, error)
	Estimate(name string, samples []calibration.Sample) (*api.EstimateResponse, error)
}

var _ backend = &client.Client{}

type localBackend struct {
	catalog *experiment.Catalog
	cals    map[string]*calibration.Calibration
}

func newBackend() (backend, error) {
	if serverAddr != "" {
		return client.NewClient(serverAddr), nil
	}

	conf, err := config.NewFile(configPath)
	if err != nil {
		return nil, err
	}
	catalog, err := config.Catalog(conf)
	if err != nil {
		return nil, err
	}
	cals, err := catalog.Calibrate(conf.Classify())
	if err != nil {
		return nil, err
	}

	return &localBackend{catalog: catalog, cals: cals}, nil
}

func (b *localBackend) lookup(name string) (experiment.Experiment, *calibration.Calibration, error) {
	e, err := b.catalog.Lookup(name)
	if err != nil {
		return experiment.Experiment{}, nil, err
	}
	return e, b.cals[strings.ToLower(e.Name)], nil
}

func (b *localBackend) ListExperiments() ([]api.ExperimentSummary, error) {
	out := make([]api.ExperimentSummary, 0, b.catalog.Len())
	for _, e := range b.catalog.List() {
		out = append(out, api.NewExperimentSummary(e.DisplayTitle(), e.Description, b.cals[strings.ToLower(e.Name)]))
	}
	return out, nil
}

func (b *localBackend) GetExperiment(name string) (*api.ExperimentDetail, error) {
	e, cal, err := b.lookup(name)
	if err != nil {
		return nil, err
	}
	d := api.NewExperimentDetail(e.DisplayTitle(), e.Description, cal)
	return &d, nil
}

func (b *localBackend) Estimate(name string, samples []calibration.Sample) (*api.EstimateResponse, error) {
	_, cal, err := b.lookup(name)
	if err != nil {
		return nil, err
	}
	return api.NewEstimateResponse(cal, samples)
}
