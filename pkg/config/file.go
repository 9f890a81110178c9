package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ifro-labs/ferro/pkg/experiment"
	"github.com/ifro-labs/ferro/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		Listen:      ptr.To("127.0.0.1:8501"),
		Classify:    ptr.To(true),
		ChartWidth:  ptr.To(800),
		ChartHeight: ptr.To(450),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// NewFileFromConfig wraps an in-memory config. A nil c yields the defaults,
// with the built-in experiments written out.
func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{
			Listen:      ptr.To(*defaultFileConfig.Listen),
			Classify:    ptr.To(*defaultFileConfig.Classify),
			ChartWidth:  ptr.To(*defaultFileConfig.ChartWidth),
			ChartHeight: ptr.To(*defaultFileConfig.ChartHeight),
			Experiments: experiment.Defaults(),
		}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	Listen      *string                 `json:"listen,omitempty"`
	Classify    *bool                   `json:"classify,omitempty"`
	ChartWidth  *int                    `json:"chartWidth,omitempty"`
	ChartHeight *int                    `json:"chartHeight,omitempty"`
	Experiments []experiment.Experiment `json:"experiments,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		Listen:      ptr.To(c.Listen()),
		Classify:    ptr.To(c.Classify()),
		ChartWidth:  ptr.To(c.ChartWidth()),
		ChartHeight: ptr.To(c.ChartHeight()),
		Experiments: c.Experiments(),
	}

	return rawConfig, nil
}

func (f *File) Listen() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.Listen, *defaultFileConfig.Listen)
}

func (f *File) Classify() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.Classify, *defaultFileConfig.Classify)
}

func (f *File) ChartWidth() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.ChartWidth, *defaultFileConfig.ChartWidth)
}

func (f *File) ChartHeight() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.ChartHeight, *defaultFileConfig.ChartHeight)
}

func (f *File) Experiments() []experiment.Experiment {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	// No experiments configured means the built-in table, not an empty one.
	if len(f.c.Experiments) == 0 {
		return experiment.Defaults()
	}

	return append([]experiment.Experiment(nil), f.c.Experiments...)
}

func (f *File) SetListen(s string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Listen = &s
}

func (f *File) SetClassify(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Classify = &b
}

func (f *File) SetExperiments(e []experiment.Experiment) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Experiments = append([]experiment.Experiment(nil), e...)
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	names := make([]string, 0)
	for _, e := range f.Experiments() {
		names = append(names, e.Name)
	}

	return logrus.Fields{
		"listen":      f.Listen(),
		"classify":    f.Classify(),
		"chartWidth":  f.ChartWidth(),
		"chartHeight": f.ChartHeight(),
		"experiments": strings.Join(names, ","),
	}
}
