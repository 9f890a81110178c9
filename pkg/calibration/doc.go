// Package calibration implements the photometric calibration used to determine
// iron content in water. It contains:
//
//   - FitDataset: a least-squares fit through the origin of absorbance against
//     the concentration of reference standards (Absorbance = Beta * Concentration)
//   - EstimateConcentrations: the inverse relation applied to absorbance
//     readings of unknown samples
//   - Classify: the potability verdict against SafetyThreshold
//   - Calibration: a fitted experiment, owned by the caller and passed to every
//     estimation, so estimates always use the slope of the dataset they were
//     made with
//
// The package holds no global state.
package calibration
