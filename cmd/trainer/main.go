package main

import (
	"log"
	"os"
	"strconv"

	"github.com/Chaospandah/lakers-win-predictor/internal/model"
)

// Config holds trainer configuration
type Config struct {
	DatasetCSV   string
	ArtifactsDir string
	TestFraction float64
	Seed         int64
	Epochs       int
	LearningRate float64
}

func main() {
	cfg := loadConfig()

	log.Printf("Loading matchup dataset from %s...", cfg.DatasetCSV)
	rows, labels, columns, err := model.LoadDataset(cfg.DatasetCSV)
	if err != nil {
		log.Fatalf("Loading dataset: %v", err)
	}
	log.Printf("Dataset: %d rows, %d features", len(rows), len(columns))

	trainX, trainY, testX, testY := model.TrainTestSplit(rows, labels, cfg.TestFraction, cfg.Seed)

	scaler := model.FitScaler(trainX, columns)
	scaledTrain := transformAll(scaler, trainX)
	scaledTest := transformAll(scaler, testX)

	opts := model.DefaultTrainOptions()
	opts.Epochs = cfg.Epochs
	opts.LearningRate = cfg.LearningRate

	log.Printf("Training logistic regression (%d epochs, lr=%.3f)...", opts.Epochs, opts.LearningRate)
	m, err := model.Train(scaledTrain, trainY, opts)
	if err != nil {
		log.Fatalf("Training: %v", err)
	}

	log.Printf("Train accuracy: %.4f", model.Accuracy(m, scaledTrain, trainY))
	if len(testY) > 0 {
		log.Printf("Holdout accuracy: %.4f (%d rows)", model.Accuracy(m, scaledTest, testY), len(testY))
	}

	artifacts := &model.Artifacts{
		Model:  m,
		Scaler: scaler,
		Schema: model.Schema(columns),
	}
	if err := artifacts.Save(cfg.ArtifactsDir); err != nil {
		log.Fatalf("Saving artifacts: %v", err)
	}

	log.Printf("Artifacts saved to %s", cfg.ArtifactsDir)
}

func transformAll(scaler *model.Scaler, rows [][]float64) [][]float64 {
	out := make([][]float64, 0, len(rows))
	for _, row := range rows {
		scaled, err := scaler.Transform(row)
		if err != nil {
			log.Fatalf("Scaling row: %v", err)
		}
		out = append(out, scaled)
	}
	return out
}

// loadConfig loads configuration from environment
func loadConfig() Config {
	return Config{
		DatasetCSV:   getEnv("DATASET_CSV", "data/lakers_matchup_dataset.csv"),
		ArtifactsDir: getEnv("ARTIFACTS_DIR", "data"),
		TestFraction: getEnvFloat("TEST_FRACTION", 0.2),
		Seed:         int64(getEnvInt("SEED", 42)),
		Epochs:       getEnvInt("EPOCHS", 500),
		LearningRate: getEnvFloat("LEARNING_RATE", 0.1),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
