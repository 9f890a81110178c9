package calibration

import "errors"

var (
	// ErrInvalidDataset is returned when reference standards are empty, have
	// mismatched lengths or contain negative or non-finite values.
	ErrInvalidDataset = errors.New("invalid reference dataset")

	// ErrDivisionByZero is returned when a computation would divide by zero,
	// e.g. fitting an all-zero concentration vector or estimating with a zero slope.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidSample is returned when a sample absorbance is not a finite number.
	ErrInvalidSample = errors.New("invalid sample")
)
