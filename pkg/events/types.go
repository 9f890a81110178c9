package events

import "encoding/json"

// Event names
const (
	CatalogReloaded    = "catalog.reloaded"
	EstimatesCompleted = "estimates.completed"
)

// Event is a server-sent event.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// CatalogReloadedEvent is the payload of catalog.reloaded.
type CatalogReloadedEvent struct {
	Experiments []string `json:"experiments"`
	Ts          int64    `json:"ts"`
}

// EstimatesCompletedEvent is the payload of estimates.completed.
type EstimatesCompletedEvent struct {
	Experiment string  `json:"experiment"`
	Samples    int     `json:"samples"`
	Unsafe     int     `json:"unsafe"`
	Beta       float64 `json:"beta"`
	Ts         int64   `json:"ts"`
}

// DecodeAs decodes the payload of e into T. An empty payload yields the
// zero value of T.
//
//	payload, err := events.DecodeAs[events.CatalogReloadedEvent](ev)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
