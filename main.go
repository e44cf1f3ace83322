package main

import (
	"context"
	"errors"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rxsaudi/formulary-api/catalog"
	"github.com/rxsaudi/formulary-api/config"
	"github.com/rxsaudi/formulary-api/data"
	"github.com/rxsaudi/formulary-api/handlers"
	"github.com/rxsaudi/formulary-api/health"
	"github.com/rxsaudi/formulary-api/logging"
	"github.com/rxsaudi/formulary-api/scheduler"
	"github.com/rxsaudi/formulary-api/server"
	"github.com/rxsaudi/formulary-api/validation"
)

func main() {
	// .env is optional; environment variables win either way
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger("logs")

	dataContainer := data.NewDataContainer()
	dataContainer.SetServerStartTime(time.Now())

	loader := catalog.NewParser(cfg.DataDir, cfg.SnapshotBaseURL)
	sched := scheduler.NewScheduler(dataContainer, loader)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	validator := validation.NewDataValidator()
	healthChecker := health.NewHealthChecker(dataContainer)
	handler := handlers.NewHandler(dataContainer, validator, healthChecker)

	srv := server.NewServer(cfg, handler)

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}
}
