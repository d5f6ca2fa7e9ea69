package model

import "fmt"

// Scaler standardizes feature vectors with the per-column mean and scale it
// was fit with. Loaded read-only by the serving path.
type Scaler struct {
	Columns []string  `json:"columns"`
	Mean    []float64 `json:"mean"`
	Scale   []float64 `json:"scale"`
}

// Transform standardizes one ordered feature vector.
func (s *Scaler) Transform(values []float64) ([]float64, error) {
	if len(values) != len(s.Mean) {
		return nil, fmt.Errorf("scaler fit on %d columns, got %d values", len(s.Mean), len(values))
	}
	out := make([]float64, len(values))
	for i, v := range values {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}
