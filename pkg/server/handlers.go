package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ifro-labs/ferro/pkg/api"
	"github.com/ifro-labs/ferro/pkg/samples"
	"github.com/ifro-labs/ferro/pkg/version"
)

func listExperiments(c *gin.Context) {
	entries := reg.list()
	out := make([]api.ExperimentSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, api.NewExperimentSummary(e.experiment.DisplayTitle(), e.experiment.Description, e.calibration))
	}
	c.IndentedJSON(http.StatusOK, out)
}

func getExperiment(c *gin.Context) {
	e, err := reg.get(c.Param("name"))
	if err != nil {
		abortJSON(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, api.NewExperimentDetail(e.experiment.DisplayTitle(), e.experiment.Description, e.calibration))
}

func estimate(c *gin.Context) {
	e, err := reg.get(c.Param("name"))
	if err != nil {
		abortJSON(c, err)
		return
	}

	var req api.EstimateRequest
	if err := c.BindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	if err := samples.CheckCount(len(req.Samples)); err != nil {
		abortJSON(c, err)
		return
	}

	resp, err := api.NewEstimateResponse(e.calibration, req.Samples)
	if err != nil {
		logrus.Errorf("estimate failed: %v", err)
		abortJSON(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"experiment": resp.Experiment,
		"samples":    len(resp.Estimates),
	}).Debug("concentrations estimated")
	publishEstimates(resp)

	c.IndentedJSON(http.StatusOK, resp)
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
