package main

import (
	"context"
	"log"

	"expert-booking/cmd"
	"expert-booking/internal/data/repository"
	"expert-booking/internal/hub"
	"expert-booking/internal/wire"
	"expert-booking/pkg/database"
	"expert-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Apply schema; the slot uniqueness index is built from booking config.
	if err := database.Migrate(context.Background(), db, config.Booking); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database schema ready")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Slot-change fan-out for calendar viewers
	events := hub.New(config.Hub.BufferSize, logger)
	defer events.Close()

	// Wire all dependencies
	app := wire.Wiring(repos, config, events, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
