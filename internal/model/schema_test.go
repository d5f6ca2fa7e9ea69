package model_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Chaospandah/lakers-win-predictor/internal/model"
)

var testSchema = model.Schema{"HOME", "L_DAYS_REST", "O_DAYS_REST"}

func TestOrderNamed(t *testing.T) {
	got, err := testSchema.OrderNamed(map[string]float64{
		"O_DAYS_REST": 3,
		"HOME":        1,
		"L_DAYS_REST": 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ordered = %v, want %v", got, want)
	}
}

func TestOrderNamedMissingColumns(t *testing.T) {
	_, err := testSchema.OrderNamed(map[string]float64{"HOME": 1})
	if err == nil {
		t.Fatal("expected error for missing columns")
	}

	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	for _, missing := range []string{"L_DAYS_REST", "O_DAYS_REST"} {
		if !strings.Contains(err.Error(), missing) {
			t.Errorf("error %q does not name missing column %s", err.Error(), missing)
		}
	}
	if strings.Contains(err.Error(), "HOME") {
		t.Errorf("error %q names a column that was supplied", err.Error())
	}
}

func TestOrderValues(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantErr bool
	}{
		{"exact length", []float64{1, 2, 3}, false},
		{"too short", []float64{1}, true},
		{"too long", []float64{1, 2, 3, 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testSchema.OrderValues(tt.values)
			if tt.wantErr {
				var verr *model.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if !strings.Contains(err.Error(), "3") {
					t.Errorf("error %q does not report expected length", err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.values) {
				t.Errorf("ordered = %v, want %v", got, tt.values)
			}
		})
	}
}

func TestOrderNamedAndValuesAgree(t *testing.T) {
	named, err := testSchema.OrderNamed(map[string]float64{"HOME": 1, "L_DAYS_REST": 2, "O_DAYS_REST": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	values, err := testSchema.OrderValues([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(named, values) {
		t.Errorf("named %v and sequence %v payloads disagree", named, values)
	}
}

func TestNilSchemaPassesThrough(t *testing.T) {
	var empty model.Schema

	values, err := empty.OrderValues([]float64{5, 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(values, []float64{5, 6}) {
		t.Errorf("values = %v, want passthrough", values)
	}

	named, err := empty.OrderNamed(map[string]float64{"b": 2, "a": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(named, []float64{1, 2}) {
		t.Errorf("named = %v, want best-effort key-sorted values", named)
	}
}
