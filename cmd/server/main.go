package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jengzang/run-tracker-go/internal/api"
	"github.com/jengzang/run-tracker-go/internal/config"
	"github.com/jengzang/run-tracker-go/internal/database"
	"github.com/jengzang/run-tracker-go/internal/handler"
	"github.com/jengzang/run-tracker-go/internal/repository"
	"github.com/jengzang/run-tracker-go/internal/service"
	"github.com/jengzang/run-tracker-go/internal/source"
	"github.com/jengzang/run-tracker-go/internal/tracker"
)

func main() {
	cfg := config.Load()

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		log.Fatal("Failed to create data directory:", err)
	}

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	runRepo := repository.NewRunRepository(db, cfg.MaxStoredRuns)

	// Pick the position source: HTTP fix feed by default, fixture replay in
	// dev mode.
	var feed *source.Feed
	var src tracker.Source
	if cfg.ReplayPath != "" {
		replay, err := source.NewReplay(cfg.ReplayPath, time.Duration(cfg.ReplayIntervalMs)*time.Millisecond)
		if err != nil {
			log.Fatal("Failed to load replay fixtures:", err)
		}
		src = replay
		log.Printf("Replaying fixes from %s every %dms", cfg.ReplayPath, cfg.ReplayIntervalMs)
	} else {
		feed = source.NewFeed()
		src = feed
	}

	filter := tracker.NewFixFilter(cfg.MaxAccuracyMeters, cfg.MinMovementMeters)
	session := tracker.NewSession(src, tracker.NewMemoryRoute(), runRepo, filter)
	session.OnStateChange(func(state tracker.State) {
		log.Printf("Tracking state: %s", state)
	})

	runService := service.NewRunService(runRepo)

	trackerHandler := handler.NewTrackerHandler(session, feed)
	runHandler := handler.NewRunHandler(runService)
	authHandler := handler.NewAuthHandler(cfg)

	router := api.SetupRouter(cfg, trackerHandler, runHandler, authHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
