package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"whoofsy-server/internal/adapters/notify/alerter"
	"whoofsy-server/internal/adapters/storage/postgres"
	"whoofsy-server/internal/config"
	"whoofsy-server/internal/platform/logger"
	"whoofsy-server/internal/router"

	_ "whoofsy-server/docs" // registro del spec swagger
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	// Sin DB_DSN corremos con repos in-memory (modo dev / demo).
	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres connect failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		if err := postgres.CreateSchema(opened); err != nil {
			log.Error("schema bootstrap failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		db = opened
		defer db.Close()
	}

	alerts, err := alerter.NewClient(alerter.Config{
		BaseURL: cfg.AlerterBaseURL,
		APIKey:  cfg.AlerterAPIKey,
		Timeout: cfg.AlerterTimeout,
	}, log)
	if err != nil {
		log.Error("alerter config invalid", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	r := router.NewRouter(router.Options{
		DB:      db,
		Alerter: alerts,
		Log:     log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	storage := "memory"
	if db != nil {
		storage = "postgres"
	}
	log.Info("starting server", map[string]any{"addr": srv.Addr, "storage": storage})

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
