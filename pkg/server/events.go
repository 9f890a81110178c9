package server

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ifro-labs/ferro/pkg/api"
	"github.com/ifro-labs/ferro/pkg/calibration"
	"github.com/ifro-labs/ferro/pkg/events"
)

// streamEvents relays hub events to the client as server-sent events until
// the client goes away.
func streamEvents(c *gin.Context) {
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	logrus.WithField("subscribers", hub.Subscribers()).Debug("event subscriber connected")

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func publishEstimates(resp *api.EstimateResponse) {
	unsafe := 0
	for _, e := range resp.Estimates {
		if e.Verdict != nil && *e.Verdict == calibration.VerdictUnsafe {
			unsafe++
		}
	}
	hub.Publish(events.EstimatesCompleted, events.EstimatesCompletedEvent{
		Experiment: resp.Experiment,
		Samples:    len(resp.Estimates),
		Unsafe:     unsafe,
		Beta:       resp.Beta,
		Ts:         time.Now().Unix(),
	})
}
