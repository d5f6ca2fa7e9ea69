package model

import (
	"fmt"
	"math"
)

// Model is a fitted logistic-regression win classifier. The positive class is
// 1 (win); prediction is 1 exactly when P(win) >= 0.5. The serving path only
// uses Predict/PredictProba and never mutates a loaded model.
type Model struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
	Classes   []int     `json:"classes"`
}

// PredictProba returns P(win) for one scaled feature vector.
func (m *Model) PredictProba(values []float64) (float64, error) {
	if len(values) != len(m.Weights) {
		return 0, fmt.Errorf("model fit on %d features, got %d values", len(m.Weights), len(values))
	}
	z := m.Intercept
	for i, v := range values {
		z += m.Weights[i] * v
	}
	return sigmoid(z), nil
}

// Predict returns the binary win prediction for one scaled feature vector.
func (m *Model) Predict(values []float64) (int, error) {
	p, err := m.PredictProba(values)
	if err != nil {
		return 0, err
	}
	if p >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
