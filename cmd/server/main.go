package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pulseboard/pulseboard/internal/adapter/anthropic"
	httpadapter "github.com/pulseboard/pulseboard/internal/adapter/http"
	"github.com/pulseboard/pulseboard/internal/adapter/jira"
	"github.com/pulseboard/pulseboard/internal/adapter/slack"
	"github.com/pulseboard/pulseboard/internal/config"
	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/logger"
	"github.com/pulseboard/pulseboard/internal/usecase"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "pulseboard",
	})
	ctx := context.Background()

	// External-service adapters
	tracker := jira.NewClient(cfg.TrackerBaseURL, cfg.TrackerEmail, cfg.TrackerAPIToken, cfg.TrackerTimeout, log)
	messenger := slack.NewClient(cfg.MessengerToken, cfg.MessengerTimeout, log)
	completion := anthropic.NewClient(cfg.CompletionAPIKey, cfg.CompletionModel, cfg.CompletionTimeout, log)

	// Use cases
	analyticsUC := usecase.NewAnalyticsUseCase(tracker, log, domain.MetricsOptions{
		ResolvedOnlyAverage: cfg.ResolvedOnlyAverage,
	})
	boardUC := usecase.NewBoardUseCase(tracker, log, cfg.StaleThresholdDays)
	reminderUC := usecase.NewReminderUseCase(messenger, log, cfg.MessengerUserMap)
	transcriptUC := usecase.NewTranscriptUseCase(completion, log)
	wbrUC := usecase.NewWBRUseCase(completion, log, cfg.WBRProjects)

	server := httpadapter.NewServer(
		httpadapter.ServerConfig{
			Host:               cfg.ServerHost,
			Port:               cfg.ServerPort,
			ReadTimeout:        cfg.ReadTimeout,
			WriteTimeout:       cfg.WriteTimeout,
			IdleTimeout:        cfg.IdleTimeout,
			CORSEnabled:        cfg.CORSEnabled,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		httpadapter.Handlers{
			Analytics: httpadapter.NewAnalyticsHandler(analyticsUC, cfg.DefaultProject),
			Board:     httpadapter.NewBoardHandler(boardUC, reminderUC, cfg.DefaultProject),
			Messenger: httpadapter.NewMessengerHandler(messenger),
			Reports:   httpadapter.NewReportsHandler(transcriptUC, wbrUC),
			Diagnostics: httpadapter.NewDiagnosticsHandler(
				tracker,
				cfg.TrackerBaseURL,
				cfg.TrackerBaseURL != "" && cfg.TrackerEmail != "" && cfg.TrackerAPIToken != "",
				cfg.MessengerToken != "",
				cfg.CompletionAPIKey != "",
			),
		},
		log,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error(ctx, "server stopped unexpectedly", err, nil)
		os.Exit(1)
	case sig := <-quit:
		log.Info(ctx, "shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "graceful shutdown failed", err, nil)
		os.Exit(1)
	}
	log.Info(ctx, "server stopped", nil)
}
