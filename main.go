package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"suviet_server/config"
	"suviet_server/internal/db"
	"suviet_server/internal/http"
	"suviet_server/internal/services"
	"suviet_server/pkg/colors"
)

func main() {
	colors.PrintBanner()

	// Load environment variables from .env file
	if err := config.Load(); err != nil {
		colors.PrintWarning("No .env file found, using system environment variables")
	} else {
		colors.PrintSuccess("Environment configuration loaded from .env file")
	}

	if err := config.InitializeTimezone(); err != nil {
		colors.PrintWarning("Timezone setup failed, using system time: %v", err)
	}

	colors.PrintInfo("Initializing database connection...")
	if err := db.Initialize(); err != nil {
		colors.PrintError("Failed to initialize database: %v", err)
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer db.Close()

	if config.Conf().GetBool("SEED_SAMPLE_DATA") {
		if err := db.SeedPeriods(db.GetDB()); err != nil {
			colors.PrintWarning("Could not seed sample periods: %v", err)
		}
	}

	serverConfig := config.GetServerConfig()
	popupConfig := config.GetPopupConfig()
	timelineConfig := config.GetTimelineConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := http.NewWebSocketHub()
	go hub.Run(ctx)

	server := http.NewServer(serverConfig, http.Dependencies{
		Settings:             services.NewSettingService(db.GetDB()),
		Timeline:             services.NewTimelineService(db.GetDB()),
		Hub:                  hub,
		DefaultCooldownHours: popupConfig.DefaultCooldownHours,
		HeaderOffset:         timelineConfig.HeaderOffset,
	})

	colors.PrintHeader("SU VIET SERVER")
	colors.PrintStats("Timezone", config.GetTimezoneString())
	colors.PrintSubHeader("Available REST API Endpoints")
	for _, e := range http.Endpoints() {
		colors.PrintEndpoint(e.Method, e.Path, e.Description)
	}

	errorChan := make(chan error, 1)
	go func() {
		errorChan <- server.Start()
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errorChan:
		if err != nil {
			colors.PrintError("Server startup failed: %v", err)
		}
	case <-quit:
		colors.PrintShutdown()
		shutdownCtx, stop := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
		defer stop()
		if err := server.Shutdown(shutdownCtx); err != nil {
			colors.PrintError("Graceful shutdown failed: %v", err)
		}
	}
}
