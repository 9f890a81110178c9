// Package samples turns user input into batches of absorbance readings.
package samples

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/ifro-labs/ferro/pkg/calibration"
)

// MaxCount is the largest batch accepted in one request.
const MaxCount = 100

var (
	// ErrInvalidCount is returned when a batch size is out of range.
	ErrInvalidCount = errors.New("invalid sample count")

	// ErrInvalidValue is returned when a reading cannot be parsed.
	ErrInvalidValue = errors.New("invalid absorbance value")
)

// CheckCount verifies that a batch of n samples may be entered.
func CheckCount(n int) error {
	if n < 1 || n > MaxCount {
		return fmt.Errorf("%w: must be between 1 and %d, got %d", ErrInvalidCount, MaxCount, n)
	}
	return nil
}

// ParseValue parses a single absorbance reading. Only a dot is accepted as
// decimal separator.
func ParseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		return 0, fmt.Errorf("%w %q: use a dot as decimal separator", ErrInvalidValue, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w %q", ErrInvalidValue, s)
	}
	return v, nil
}

// Parse reads a free-form list of readings. Readings are separated by
// whitespace, and a trailing comma or semicolon after a reading is ignored.
// A reading is either a bare value or label=value; labels with spaces are
// quoted:
//
//	0.052 0.118
//	tap=0.031, "well 3"=0.12
func Parse(text string) ([]calibration.Sample, error) {
	tokens, err := shlex.Split(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}

	return ParseArgs(tokens)
}

// ParseArgs reads one reading per argument, as given on a command line
// already split by the shell.
func ParseArgs(args []string) ([]calibration.Sample, error) {
	var out []calibration.Sample
	for _, tok := range args {
		tok = strings.TrimRight(strings.TrimSpace(tok), ",;")
		if tok == "" {
			continue
		}

		var label, value string
		if i := strings.LastIndex(tok, "="); i >= 0 {
			label, value = strings.TrimSpace(tok[:i]), tok[i+1:]
		} else {
			value = tok
		}

		v, err := ParseValue(value)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", len(out)+1, err)
		}
		out = append(out, calibration.Sample{Label: label, Absorbance: v})
	}

	if err := CheckCount(len(out)); err != nil {
		return nil, err
	}
	return out, nil
}

// FromValues builds unlabeled samples.
func FromValues(values []float64) []calibration.Sample {
	out := make([]calibration.Sample, len(values))
	for i, v := range values {
		out[i] = calibration.Sample{Absorbance: v}
	}
	return out
}

// FromStrings parses one reading per string, as submitted by a form with one
// input per sample. Labels are given by labels[i] when present.
func FromStrings(values, labels []string) ([]calibration.Sample, error) {
	if err := CheckCount(len(values)); err != nil {
		return nil, err
	}
	out := make([]calibration.Sample, len(values))
	for i, s := range values {
		v, err := ParseValue(s)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i+1, err)
		}
		out[i].Absorbance = v
		if i < len(labels) {
			out[i].Label = strings.TrimSpace(labels[i])
		}
	}
	return out, nil
}
