// Package api defines the JSON contracts of the HTTP API. The types are shared
// by the server and the client so both sides agree on field names.
package api

import (
	"github.com/ifro-labs/ferro/pkg/calibration"
	"github.com/ifro-labs/ferro/pkg/charts"
)

// ExperimentSummary describes an experiment and its fitted calibration curve.
type ExperimentSummary struct {
	Name        string  `json:"name"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Classify    bool    `json:"classify"`
	Beta        float64 `json:"beta"`
	RSquared    float64 `json:"rSquared"`
	Equation    string  `json:"equation"`
}

// ExperimentDetail adds the reference standards and the chart series.
type ExperimentDetail struct {
	ExperimentSummary
	Dataset   calibration.Dataset     `json:"dataset"`
	Predicted []float64               `json:"predicted"`
	Chart     charts.CalibrationChart `json:"chart"`
}

type EstimateRequest struct {
	Samples []calibration.Sample `json:"samples"`
}

type EstimateResponse struct {
	Experiment string                    `json:"experiment"`
	Beta       float64                   `json:"beta"`
	Threshold  *float64                  `json:"threshold,omitempty"`
	Estimates  []calibration.Estimate    `json:"estimates"`
	Chart      charts.ConcentrationChart `json:"chart"`
}

// NewExperimentSummary builds the summary of a fitted experiment.
func NewExperimentSummary(title, description string, c *calibration.Calibration) ExperimentSummary {
	fit := c.Fit()
	return ExperimentSummary{
		Name:        c.Experiment(),
		Title:       title,
		Description: description,
		Classify:    c.Classifies(),
		Beta:        fit.Beta,
		RSquared:    fit.RSquared,
		Equation:    fit.Equation(),
	}
}

// NewExperimentDetail builds the detail view of a fitted experiment.
func NewExperimentDetail(title, description string, c *calibration.Calibration) ExperimentDetail {
	return ExperimentDetail{
		ExperimentSummary: NewExperimentSummary(title, description, c),
		Dataset:           c.Dataset(),
		Predicted:         c.Fit().Predicted,
		Chart:             charts.NewCalibrationChart(c.Dataset(), c.Fit()),
	}
}

// NewEstimateResponse runs an estimation and builds its response.
func NewEstimateResponse(c *calibration.Calibration, samples []calibration.Sample) (*EstimateResponse, error) {
	estimates, err := c.Estimate(samples)
	if err != nil {
		return nil, err
	}
	return &EstimateResponse{
		Experiment: c.Experiment(),
		Beta:       c.Fit().Beta,
		Threshold:  c.Threshold(),
		Estimates:  estimates,
		Chart:      charts.NewConcentrationChart(estimates, c.Threshold()),
	}, nil
}
