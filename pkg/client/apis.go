package client

import (
	"encoding/json"
	"net/url"

	pkgerrors "github.com/pkg/errors"

	"github.com/ifro-labs/ferro/pkg/api"
	"github.com/ifro-labs/ferro/pkg/calibration"
)

func (c *Client) ListExperiments() ([]api.ExperimentSummary, error) {
	ret, err := c.Get("/api/experiments")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to list experiments")
	}

	var out []api.ExperimentSummary
	if err := json.Unmarshal([]byte(ret), &out); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal experiments")
	}
	return out, nil
}

func (c *Client) GetExperiment(name string) (*api.ExperimentDetail, error) {
	ret, err := c.Get("/api/experiments/" + url.PathEscape(name))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get experiment %s", name)
	}

	var out api.ExperimentDetail
	if err := json.Unmarshal([]byte(ret), &out); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal experiment %s", name)
	}
	return &out, nil
}

func (c *Client) Estimate(name string, samples []calibration.Sample) (*api.EstimateResponse, error) {
	payload, err := json.Marshal(api.EstimateRequest{Samples: samples})
	if err != nil {
		return nil, err
	}

	ret, err := c.Post("/api/experiments/"+url.PathEscape(name)+"/estimate", string(payload))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to estimate concentrations")
	}

	var out api.EstimateResponse
	if err := json.Unmarshal([]byte(ret), &out); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal estimates")
	}
	return &out, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/api/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}

	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}
	return v, nil
}
