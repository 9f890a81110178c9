package experiment

// Standards shared by the built-in experiments, in mg/L.
var defaultConcentration = []float64{0, 0.1, 0.2, 0.4, 0.6, 0.8, 1}

// Defaults returns the built-in experiments. The mapping of absorbance series
// to names is plain data; deployments that label them the other way round
// override it in the config file.
func Defaults() []Experiment {
	return []Experiment{
		{
			Name:          "A",
			Title:         "Experiment A",
			Description:   "Iron in water, first series of reference standards.",
			Concentration: append([]float64(nil), defaultConcentration...),
			Absorbance:    []float64{0, 0.027, 0.045, 0.083, 0.132, 0.191, 0.222},
			Classify:      true,
		},
		{
			Name:          "B",
			Title:         "Experiment B",
			Description:   "Iron in water, second series of reference standards.",
			Concentration: append([]float64(nil), defaultConcentration...),
			Absorbance:    []float64{0, 0.073, 0.074, 0.108, 0.163, 0.160, 0.226},
			Classify:      true,
		},
	}
}

// DefaultCatalog returns a catalog of Defaults.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(Defaults()...)
	if err != nil {
		panic(err)
	}
	return c
}
