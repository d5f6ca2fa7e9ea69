package model

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError marks a malformed or incomplete feature payload. Serving
// maps it to a 400; anything else scoring returns is an internal fault.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// NewValidationError wraps a message as a ValidationError.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Schema is the ordered list of feature column names the trained model was
// fit with. It is the single source of truth for input ordering.
type Schema []string

// OrderNamed validates a named feature mapping and returns its values in
// schema order. Every schema column must be present; the error names exactly
// the missing columns. A nil schema orders nothing and returns the values in
// map-key-sorted order as a best effort.
func (s Schema) OrderNamed(payload map[string]float64) ([]float64, error) {
	if len(s) == 0 {
		keys := make([]string, 0, len(payload))
		for k := range payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]float64, 0, len(keys))
		for _, k := range keys {
			out = append(out, payload[k])
		}
		return out, nil
	}

	var missing []string
	for _, col := range s {
		if _, ok := payload[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, validationErrorf("missing feature values for: %s", strings.Join(missing, ", "))
	}

	out := make([]float64, len(s))
	for i, col := range s {
		out[i] = payload[col]
	}
	return out, nil
}

// OrderValues validates a raw ordered sequence against the schema length. A
// nil schema passes the sequence through unchanged.
func (s Schema) OrderValues(values []float64) ([]float64, error) {
	if len(s) == 0 {
		return values, nil
	}
	if len(values) != len(s) {
		return nil, validationErrorf("expected %d feature values but received %d", len(s), len(values))
	}
	return values, nil
}
