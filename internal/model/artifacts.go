package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Artifact file names, kept together under one directory and replaced
// wholesale on retrain. Schema order must match what the model and scaler
// were fit on; the trainer writes all three in one pass to guarantee that.
const (
	ModelFile  = "lakers_win_model.json"
	ScalerFile = "lakers_scaler.json"
	SchemaFile = "lakers_feature_cols.json"
)

// ErrModelNotLoaded is returned when scoring is attempted without a model.
var ErrModelNotLoaded = errors.New("model not loaded")

// Artifacts bundles the trained classifier, its scaler and its feature
// schema. Any of the three may be nil when its file was absent; serving
// degrades per the error taxonomy instead of crashing at startup.
type Artifacts struct {
	Model  *Model
	Scaler *Scaler
	Schema Schema
}

// Load reads the artifact set from dir. Missing or unreadable files produce a
// warning and a nil artifact, not an error.
func Load(dir string) *Artifacts {
	a := &Artifacts{}

	var m Model
	if loadJSON(filepath.Join(dir, ModelFile), &m) {
		a.Model = &m
	}
	var s Scaler
	if loadJSON(filepath.Join(dir, ScalerFile), &s) {
		a.Scaler = &s
	}
	var cols Schema
	if loadJSON(filepath.Join(dir, SchemaFile), &cols) {
		a.Schema = cols
	}

	return a
}

func loadJSON(path string, v interface{}) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: artifact not loaded from %s: %v", path, err)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("Warning: artifact at %s is unreadable: %v", path, err)
		return false
	}
	return true
}

// Save writes the artifact set to dir, creating it if needed.
func (a *Artifacts) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating artifacts dir: %w", err)
	}
	if err := saveJSON(filepath.Join(dir, ModelFile), a.Model); err != nil {
		return err
	}
	if err := saveJSON(filepath.Join(dir, ScalerFile), a.Scaler); err != nil {
		return err
	}
	return saveJSON(filepath.Join(dir, SchemaFile), a.Schema)
}

func saveJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Score orders, scales and classifies one feature payload. values must
// already be in schema order (see Schema.OrderNamed / OrderValues).
func (a *Artifacts) Score(values []float64) (int, float64, error) {
	if a.Model == nil {
		return 0, 0, ErrModelNotLoaded
	}

	scored := values
	if a.Scaler != nil && len(a.Schema) > 0 {
		var err error
		scored, err = a.Scaler.Transform(values)
		if err != nil {
			return 0, 0, err
		}
	}

	probability, err := a.Model.PredictProba(scored)
	if err != nil {
		return 0, 0, err
	}
	prediction := 0
	if probability >= 0.5 {
		prediction = 1
	}
	return prediction, probability, nil
}
