package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calldeskrest/internal/config"
	"calldeskrest/internal/middleware"
	"calldeskrest/internal/routes"

	"github.com/joho/godotenv"
)

// @title        CallDesk API
// @version      1.0
// @description  Ticket dashboard backend: session feeds, ticket table selection and directory lookups.
// @BasePath     /
func main() {

	envPath := "/app/.env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = ".env"
	}
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}
	settings, err := config.LoadSettings(configPath)
	if err != nil {
		log.Fatalf("Error loading settings: %v", err)
	}

	cfg, err := config.NewConfig(settings)
	if err != nil {
		cfg.CloseAll()
		log.Fatalf("Error creating config: %v", err)
	}
	defer cfg.CloseAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, cfg)

	engine := middleware.SetupServer(cfg)
	routes.InitiateRoutes(engine, cfg)

	server := &http.Server{
		Addr:              ":" + settings.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go startServer(server, cfg)

	<-ctx.Done()
	cfg.Logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		cfg.Logger.Error("Graceful shutdown failed", err)
	}
}

func startServer(server *http.Server, cfg *config.App) {
	var err error
	certFile, keyFile := cfg.Settings.Server.CertFile, cfg.Settings.Server.KeyFile
	if certFile != "" && keyFile != "" {
		cfg.Logger.Info(fmt.Sprintf("Starting server with TLS on %s", server.Addr))
		err = server.ListenAndServeTLS(certFile, keyFile)
	} else {
		cfg.Logger.Info(fmt.Sprintf("Starting server on %s", server.Addr))
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		cfg.CloseAll()
		log.Fatalf("Error starting server: %v", err)
	}
}

// sweepSessions disposes idle sessions until ctx is cancelled
func sweepSessions(ctx context.Context, cfg *config.App) {
	maxIdle := config.Duration(cfg.Settings.Sessions.MaxIdle, 30*time.Minute)
	ticker := time.NewTicker(config.Duration(cfg.Settings.Sessions.SweepInterval, time.Minute))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cfg.Sessions.Sweep(maxIdle)
		}
	}
}
