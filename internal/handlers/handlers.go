package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Chaospandah/lakers-win-predictor/internal/features"
	"github.com/Chaospandah/lakers-win-predictor/internal/metrics"
	"github.com/Chaospandah/lakers-win-predictor/internal/model"
	"github.com/Chaospandah/lakers-win-predictor/internal/nba"
	"github.com/Chaospandah/lakers-win-predictor/pkg/models"
)

// ScheduleFinder looks up a team's next scheduled game. Implemented by the
// NBA stats client.
type ScheduleFinder interface {
	FindNextGame(ctx context.Context, teamID int, maxDaysAhead int) (*nba.NextGame, error)
}

// Handler contains dependencies for HTTP handlers. Everything here is loaded
// once at process start and treated as immutable; a restart picks up
// retrained artifacts.
type Handler struct {
	artifacts *model.Artifacts
	history   []models.GameRecord
	schedule  ScheduleFinder
	teamID    int
	horizon   int
}

// NewHandler creates a new handler
func NewHandler(artifacts *model.Artifacts, history []models.GameRecord, schedule ScheduleFinder, teamID, horizonDays int) *Handler {
	return &Handler{
		artifacts: artifacts,
		history:   history,
		schedule:  schedule,
		teamID:    teamID,
		horizon:   horizonDays,
	}
}

// Index returns service status
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "win predictor backend running",
	})
}

// HealthCheck reports whether the serving dependencies are loaded
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.artifacts.Model == nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "error",
			"error":  "model not loaded",
		})
		return
	}
	if len(h.history) == 0 {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "error",
			"error":  "historical log not loaded",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type predictRequest struct {
	Features json.RawMessage `json:"features"`
}

// Predict scores an arbitrary feature payload: either a raw ordered sequence
// or a mapping keyed by schema column names.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.PredictionsTotal.WithLabelValues("predict", "error").Inc()
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if len(req.Features) == 0 {
		metrics.PredictionsTotal.WithLabelValues("predict", "error").Inc()
		respondError(w, http.StatusBadRequest, "missing 'features' in request")
		return
	}

	ordered, err := h.orderPayload(req.Features)
	if err != nil {
		h.respondScoringError(w, "predict", err)
		return
	}

	prediction, probability, err := h.artifacts.Score(ordered)
	if err != nil {
		h.respondScoringError(w, "predict", err)
		return
	}

	metrics.PredictionsTotal.WithLabelValues("predict", "ok").Inc()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"prediction":  prediction,
		"probability": probability,
	})
}

// NextGamePrediction finds the team's next scheduled game, builds its feature
// vector from the historical log, and scores it.
func (h *Handler) NextGamePrediction(w http.ResponseWriter, r *http.Request) {
	if len(h.history) == 0 {
		metrics.PredictionsTotal.WithLabelValues("next_game", "error").Inc()
		respondError(w, http.StatusServiceUnavailable, "historical log not loaded")
		return
	}

	next, err := h.schedule.FindNextGame(r.Context(), h.teamID, h.horizon)
	if err != nil {
		metrics.PredictionsTotal.WithLabelValues("next_game", "error").Inc()
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	vector := features.BuildMatchupFeatures(h.history, next.Date, h.teamID, next.OpponentID, next.Home)

	ordered := vector
	if len(h.artifacts.Schema) > 0 {
		named := make(map[string]float64, len(vector))
		for i, col := range features.FeatureColumns {
			named[col] = vector[i]
		}
		if ordered, err = h.artifacts.Schema.OrderNamed(named); err != nil {
			h.respondScoringError(w, "next_game", fmt.Errorf("failed to score next game: %w", err))
			return
		}
	}

	prediction, probability, err := h.artifacts.Score(ordered)
	if err != nil {
		h.respondScoringError(w, "next_game", err)
		return
	}

	metrics.PredictionsTotal.WithLabelValues("next_game", "ok").Inc()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"opponent":        nba.AbbreviationByTeamID(next.OpponentID),
		"opponent_id":     next.OpponentID,
		"game_date":       next.Date.Format("2006-01-02"),
		"home":            next.Home,
		"prediction":      prediction,
		"win_probability": probability,
	})
}

// orderPayload decodes the features payload as either a named mapping or a
// raw sequence and validates it against the persisted schema.
func (h *Handler) orderPayload(raw json.RawMessage) ([]float64, error) {
	var named map[string]float64
	if err := json.Unmarshal(raw, &named); err == nil {
		return h.artifacts.Schema.OrderNamed(named)
	}

	var values []float64
	if err := json.Unmarshal(raw, &values); err == nil {
		return h.artifacts.Schema.OrderValues(values)
	}

	return nil, model.NewValidationError("'features' must be an array of numbers or an object keyed by feature name")
}

// respondScoringError maps the error taxonomy to HTTP statuses: validation
// errors are the caller's fault, a missing model is an unavailable
// dependency, anything else is a generic scoring failure.
func (h *Handler) respondScoringError(w http.ResponseWriter, endpoint string, err error) {
	metrics.PredictionsTotal.WithLabelValues(endpoint, "error").Inc()

	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, model.ErrModelNotLoaded):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("prediction failed: %v", err))
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
