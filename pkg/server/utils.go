package server

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ifro-labs/ferro/pkg/calibration"
	"github.com/ifro-labs/ferro/pkg/charts"
	"github.com/ifro-labs/ferro/pkg/experiment"
	"github.com/ifro-labs/ferro/pkg/samples"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// requestID tags every request with an ID, reusing the one sent by the
// client if any.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Logger is the logrus logger handler
func ginLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// other handler can change c.Path so:
		path := c.Request.URL.Path
		start := time.Now()
		c.Next()
		stop := time.Since(start)
		latency := int(math.Ceil(float64(stop.Nanoseconds()) / 1000000.0))
		statusCode := c.Writer.Status()
		dataLength := c.Writer.Size()
		if dataLength < 0 {
			dataLength = 0
		}

		entry := logger.WithFields(logrus.Fields{
			"statusCode": statusCode,
			"latency":    latency, // time to process
			"method":     c.Request.Method,
			"path":       path,
			"dataLength": dataLength,
			"requestID":  c.GetString(requestIDKey),
		})

		if len(c.Errors) > 0 {
			entry.Error(c.Errors.ByType(gin.ErrorTypePrivate).String())
		} else {
			msg := fmt.Sprintf("%s %s %d (%dms)", c.Request.Method, path, statusCode, latency)
			//nolint:gocritic
			if statusCode >= http.StatusInternalServerError {
				entry.Error(msg)
			} else if statusCode >= http.StatusBadRequest {
				entry.Warn(msg)
			} else {
				entry.Debug(msg)
			}
		}
	}
}

// statusFor maps an error to the HTTP status reported to the caller.
func statusFor(err error) int {
	switch {
	case errors.Is(err, experiment.ErrUnknownExperiment):
		return http.StatusNotFound
	case errors.Is(err, samples.ErrInvalidCount),
		errors.Is(err, samples.ErrInvalidValue),
		errors.Is(err, calibration.ErrInvalidSample),
		errors.Is(err, charts.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, calibration.ErrDivisionByZero),
		errors.Is(err, calibration.ErrInvalidDataset):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// abortJSON reports err as a JSON string with the matching status.
func abortJSON(c *gin.Context, err error) {
	status := statusFor(err)
	c.IndentedJSON(status, err.Error())
	_ = c.AbortWithError(status, err)
}
