package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Chaospandah/lakers-win-predictor/internal/config"
	"github.com/Chaospandah/lakers-win-predictor/internal/gamelog"
	"github.com/Chaospandah/lakers-win-predictor/internal/handlers"
	"github.com/Chaospandah/lakers-win-predictor/internal/model"
	"github.com/Chaospandah/lakers-win-predictor/internal/nba"
	"github.com/Chaospandah/lakers-win-predictor/pkg/models"
)

func main() {
	log.Println("Starting win predictor server...")

	cfg := config.Load()

	// Artifacts and the historical log are loaded once here and passed to
	// handlers; a restart is the way to pick up retrained artifacts.
	artifacts := model.Load(cfg.Data.ArtifactsDir)
	if artifacts.Model == nil {
		log.Println("Warning: model artifact missing; prediction endpoints will return 503")
	}

	var history []models.GameRecord
	if games, err := gamelog.LoadCSV(cfg.Data.HistoryCSV); err != nil {
		log.Printf("Warning: historical log not loaded from %s: %v", cfg.Data.HistoryCSV, err)
	} else {
		history = games
		log.Printf("Loaded %d historical game records", len(history))
	}

	nbaClient := nba.New()
	handler := handlers.NewHandler(artifacts, history, nbaClient, cfg.TeamID, cfg.ScheduleHorizonDays)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", handler.Index)
	r.Get("/health", handler.HealthCheck)
	r.Post("/predict", handler.Predict)
	r.Get("/next-game-prediction", handler.NextGamePrediction)
	r.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("Win predictor listening on %s (team %d)", cfg.Server.Addr, cfg.TeamID)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}

	log.Println("Win predictor stopped")
}
