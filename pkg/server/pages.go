package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ifro-labs/ferro/pkg/api"
	"github.com/ifro-labs/ferro/pkg/calibration"
	"github.com/ifro-labs/ferro/pkg/samples"
)

const appTitle = "Iron in Water Analyzer"

type standardRow struct {
	Concentration float64
	Absorbance    float64
	Predicted     float64
}

type resultRow struct {
	Label         string
	Absorbance    float64
	Concentration float64
	Verdict       string
	Safe          bool
}

func renderError(c *gin.Context, err error) {
	status := statusFor(err)
	c.HTML(status, "error.tmpl", gin.H{
		"AppTitle":    appTitle,
		"Experiments": menu(),
		"Status":      status,
		"StatusText":  http.StatusText(status),
		"Message":     err.Error(),
	})
	_ = c.AbortWithError(status, err)
}

func menu() []api.ExperimentSummary {
	entries := reg.list()
	out := make([]api.ExperimentSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, api.NewExperimentSummary(e.experiment.DisplayTitle(), e.experiment.Description, e.calibration))
	}
	return out
}

func getHome(c *gin.Context) {
	c.HTML(http.StatusOK, "home.tmpl", gin.H{
		"AppTitle":    appTitle,
		"Experiments": menu(),
	})
}

func getBanner(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/svg+xml", bannerSVG)
}

func getAbout(c *gin.Context) {
	c.HTML(http.StatusOK, "about.tmpl", gin.H{
		"AppTitle":    appTitle,
		"Experiments": menu(),
		"Threshold":   calibration.SafetyThreshold,
	})
}

func getExperimentPage(c *gin.Context) {
	e, err := reg.get(c.Param("name"))
	if err != nil {
		renderError(c, err)
		return
	}

	count := 1
	if s := c.Query("count"); s != "" {
		count, err = strconv.Atoi(s)
		if err != nil {
			count = 0
		}
	}
	if err := samples.CheckCount(count); err != nil {
		renderError(c, err)
		return
	}

	ds := e.calibration.Dataset()
	fit := e.calibration.Fit()
	rows := make([]standardRow, ds.Len())
	for i := range rows {
		rows[i] = standardRow{
			Concentration: ds.Concentration[i],
			Absorbance:    ds.Absorbance[i],
			Predicted:     fit.Predicted[i],
		}
	}

	c.HTML(http.StatusOK, "experiment.tmpl", gin.H{
		"AppTitle":    appTitle,
		"Experiments": menu(),
		"Experiment":  api.NewExperimentSummary(e.experiment.DisplayTitle(), e.experiment.Description, e.calibration),
		"Standards":   rows,
		"Count":       count,
		"MaxCount":    samples.MaxCount,
	})
}

// formSamples reads the samples of the estimate form. The free-form field
// wins over the per-sample inputs when it is filled in.
func formSamples(c *gin.Context) ([]calibration.Sample, error) {
	if bulk := strings.TrimSpace(c.PostForm("bulk")); bulk != "" {
		return samples.Parse(bulk)
	}
	return samples.FromStrings(c.PostFormArray("a"), c.PostFormArray("label"))
}

func postEstimatePage(c *gin.Context) {
	e, err := reg.get(c.Param("name"))
	if err != nil {
		renderError(c, err)
		return
	}

	batch, err := formSamples(c)
	if err != nil {
		renderError(c, err)
		return
	}

	resp, err := api.NewEstimateResponse(e.calibration, batch)
	if err != nil {
		renderError(c, err)
		return
	}
	publishEstimates(resp)

	query := url.Values{}
	rows := make([]resultRow, len(resp.Estimates))
	for i, est := range resp.Estimates {
		rows[i] = resultRow{
			Label:         est.Label,
			Absorbance:    est.Absorbance,
			Concentration: est.Concentration,
		}
		if est.Verdict != nil {
			rows[i].Verdict = string(*est.Verdict)
			rows[i].Safe = *est.Verdict == calibration.VerdictSafe
		}
		query.Add("a", strconv.FormatFloat(est.Absorbance, 'g', -1, 64))
		query.Add("label", est.Label)
	}

	c.HTML(http.StatusOK, "results.tmpl", gin.H{
		"AppTitle":    appTitle,
		"Experiments": menu(),
		"Experiment":  api.NewExperimentSummary(e.experiment.DisplayTitle(), e.experiment.Description, e.calibration),
		"Results":     rows,
		"Threshold":   resp.Threshold,
		"ChartURL":    "/experiments/" + url.PathEscape(e.experiment.Name) + "/concentrations.png?" + query.Encode(),
	})
}
