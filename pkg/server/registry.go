package server

import (
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"github.com/ifro-labs/ferro/pkg/calibration"
	"github.com/ifro-labs/ferro/pkg/config"
	"github.com/ifro-labs/ferro/pkg/experiment"
)

// entry is a configured experiment together with its fitted calibration.
type entry struct {
	experiment  experiment.Experiment
	calibration *calibration.Calibration
}

// registry holds the fitted experiments served to clients and the config
// they were fitted from. It is replaced as a whole when the configuration
// changes, so a request sees either the old or the new set of slopes, never
// a mix.
type registry struct {
	mu      sync.RWMutex
	conf    config.Config
	order   []string
	entries map[string]entry
}

// buildEntries fits every experiment in c.
func buildEntries(c config.Config) ([]string, map[string]entry, error) {
	catalog, err := config.Catalog(c)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(err, "invalid experiment table")
	}

	cals, err := catalog.Calibrate(c.Classify())
	if err != nil {
		return nil, nil, err
	}

	order := make([]string, 0, catalog.Len())
	entries := make(map[string]entry, catalog.Len())
	for _, e := range catalog.List() {
		key := strings.ToLower(e.Name)
		order = append(order, key)
		entries[key] = entry{experiment: e, calibration: cals[key]}
	}
	return order, entries, nil
}

// load re-fits every experiment in c. On error the registry keeps serving
// the previous calibrations and config.
func (r *registry) load(c config.Config) error {
	order, entries, err := buildEntries(c)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.conf = c
	r.order = order
	r.entries = entries
	return nil
}

func (r *registry) config() config.Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conf
}

func (r *registry) get(name string) (entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return entry{}, pkgerrors.Wrapf(experiment.ErrUnknownExperiment, "%q", name)
	}
	return e, nil
}

func (r *registry) list() []entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.entries[k])
	}
	return out
}
