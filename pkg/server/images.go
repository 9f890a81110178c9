package server

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ifro-labs/ferro/pkg/charts"
	"github.com/ifro-labs/ferro/pkg/samples"
)

func abortText(c *gin.Context, err error) {
	status := statusFor(err)
	c.String(status, err.Error())
	_ = c.AbortWithError(status, err)
}

func getCalibrationChart(format charts.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := reg.get(c.Param("name"))
		if err != nil {
			abortText(c, err)
			return
		}

		var buf bytes.Buffer
		ch := charts.NewCalibrationChart(e.calibration.Dataset(), e.calibration.Fit())
		if err := charts.RenderCalibration(&buf, ch, format, chartSize()); err != nil {
			abortText(c, err)
			return
		}

		c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
	}
}

// getConcentrationChart draws the bars of the absorbances given as repeated
// "a" query parameters, labeled by the matching "label" parameters.
func getConcentrationChart(format charts.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := reg.get(c.Param("name"))
		if err != nil {
			abortText(c, err)
			return
		}

		batch, err := samples.FromStrings(c.QueryArray("a"), c.QueryArray("label"))
		if err != nil {
			abortText(c, err)
			return
		}
		estimates, err := e.calibration.Estimate(batch)
		if err != nil {
			abortText(c, err)
			return
		}

		var buf bytes.Buffer
		ch := charts.NewConcentrationChart(estimates, e.calibration.Threshold())
		if err := charts.RenderConcentrations(&buf, ch, format, chartSize()); err != nil {
			abortText(c, err)
			return
		}

		c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
	}
}
