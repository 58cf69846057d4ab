package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvariant marks internal-invariant violations. These signal programming
// defects and are not recoverable by correcting input.
var ErrInvariant = errors.New("internal invariant violated")

// InvalidParameterError reports a numeric parameter outside its documented
// range. It is always raised before any buffer mutation and is recoverable
// by correcting the offending value.
type InvalidParameterError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s: %g", e.Param, e.Reason, e.Value)
}

// CheckRange validates v against the closed interval [lo, hi]. NaN and
// infinities always fail.
func CheckRange(param string, v, lo, hi float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidParameterError{Param: param, Value: v, Reason: "must be finite"}
	}

	if v < lo || v > hi {
		return &InvalidParameterError{
			Param:  param,
			Value:  v,
			Reason: fmt.Sprintf("must be in [%g, %g]", lo, hi),
		}
	}

	return nil
}

// CheckMin validates v >= lo. NaN and infinities always fail.
func CheckMin(param string, v, lo float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidParameterError{Param: param, Value: v, Reason: "must be finite"}
	}

	if v < lo {
		return &InvalidParameterError{
			Param:  param,
			Value:  v,
			Reason: fmt.Sprintf("must be >= %g", lo),
		}
	}

	return nil
}

// CheckPositive validates v > 0 and finite.
func CheckPositive(param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &InvalidParameterError{Param: param, Value: v, Reason: "must be > 0 and finite"}
	}

	return nil
}
