package model

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
)

// TrainOptions configures the logistic-regression fit.
type TrainOptions struct {
	Epochs       int
	LearningRate float64
	L2           float64
}

// DefaultTrainOptions are sensible defaults for the matchup dataset size.
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		Epochs:       500,
		LearningRate: 0.1,
		L2:           0.001,
	}
}

// FitScaler computes per-column mean and standard deviation over rows.
func FitScaler(rows [][]float64, columns []string) *Scaler {
	n := len(rows)
	dims := len(columns)
	mean := make([]float64, dims)
	scale := make([]float64, dims)
	if n == 0 {
		for i := range scale {
			scale[i] = 1
		}
		return &Scaler{Columns: columns, Mean: mean, Scale: scale}
	}

	for _, row := range rows {
		for i := 0; i < dims; i++ {
			mean[i] += row[i]
		}
	}
	for i := range mean {
		mean[i] /= float64(n)
	}

	for _, row := range rows {
		for i := 0; i < dims; i++ {
			d := row[i] - mean[i]
			scale[i] += d * d
		}
	}
	for i := range scale {
		scale[i] = math.Sqrt(scale[i] / float64(n))
		if scale[i] == 0 {
			scale[i] = 1
		}
	}

	return &Scaler{Columns: columns, Mean: mean, Scale: scale}
}

// Train fits a logistic regression with full-batch gradient descent. rows
// should already be scaled; labels are 0/1. Deterministic for fixed inputs.
func Train(rows [][]float64, labels []int, opts TrainOptions) (*Model, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no training rows")
	}
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("rows/labels length mismatch: %d vs %d", len(rows), len(labels))
	}

	dims := len(rows[0])
	weights := make([]float64, dims)
	intercept := 0.0
	n := float64(len(rows))

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		grad := make([]float64, dims)
		gradB := 0.0

		for i, row := range rows {
			z := intercept
			for j, v := range row {
				z += weights[j] * v
			}
			err := sigmoid(z) - float64(labels[i])
			for j, v := range row {
				grad[j] += err * v
			}
			gradB += err
		}

		for j := range weights {
			weights[j] -= opts.LearningRate * (grad[j]/n + opts.L2*weights[j])
		}
		intercept -= opts.LearningRate * gradB / n
	}

	return &Model{Weights: weights, Intercept: intercept, Classes: []int{0, 1}}, nil
}

// TrainTestSplit shuffles indices with the given seed and splits rows/labels
// into train and test portions.
func TrainTestSplit(rows [][]float64, labels []int, testFrac float64, seed int64) (trainX [][]float64, trainY []int, testX [][]float64, testY []int) {
	idx := rand.New(rand.NewSource(seed)).Perm(len(rows))
	testN := int(float64(len(rows)) * testFrac)

	for i, j := range idx {
		if i < testN {
			testX = append(testX, rows[j])
			testY = append(testY, labels[j])
		} else {
			trainX = append(trainX, rows[j])
			trainY = append(trainY, labels[j])
		}
	}
	return trainX, trainY, testX, testY
}

// Accuracy scores a fitted model against labeled rows.
func Accuracy(m *Model, rows [][]float64, labels []int) float64 {
	if len(rows) == 0 {
		return 0
	}
	correct := 0
	for i, row := range rows {
		pred, err := m.Predict(row)
		if err == nil && pred == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(rows))
}

// LoadDataset reads a matchup dataset CSV into feature rows and labels. All
// columns except GAME_DATE, SEASON and WL are features, in header order;
// that order becomes the persisted schema.
func LoadDataset(path string) (rows [][]float64, labels []int, columns []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading dataset: %w", err)
	}
	if len(records) < 2 {
		return nil, nil, nil, fmt.Errorf("dataset %s has no rows", path)
	}

	header := records[0]
	labelIdx := -1
	var featureIdx []int
	for i, name := range header {
		switch name {
		case "WL":
			labelIdx = i
		case "GAME_DATE", "SEASON":
		default:
			featureIdx = append(featureIdx, i)
			columns = append(columns, name)
		}
	}
	if labelIdx == -1 {
		return nil, nil, nil, fmt.Errorf("dataset %s missing WL column", path)
	}

	for _, record := range records[1:] {
		row := make([]float64, 0, len(featureIdx))
		for _, i := range featureIdx {
			v, _ := strconv.ParseFloat(record[i], 64)
			row = append(row, v)
		}
		label := 0
		if record[labelIdx] == "1" || record[labelIdx] == "W" {
			label = 1
		}
		rows = append(rows, row)
		labels = append(labels, label)
	}

	return rows, labels, columns, nil
}
