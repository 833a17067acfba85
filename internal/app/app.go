package app

import (
	"log/slog"

	"bottin/internal/config"
	"bottin/internal/infrastructure/sitecheck"
	"bottin/internal/infrastructure/storage"
	"bottin/internal/infrastructure/telegram"
	"bottin/internal/infrastructure/workbook"
	"bottin/internal/logging"
	"bottin/internal/ports"
	"bottin/internal/reader"
	"bottin/internal/redact"
	"bottin/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	Pipeline *usecase.Pipeline
	Checker  *sitecheck.Checker
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := reader.NewRegistry()
	registry.Register(workbook.NewXLSXReader())

	source := workbook.NewRegistrySource(registry, baseLogger.With("component", "source"))
	store := storage.NewCSVStore()
	redactor := redact.New(cfg.Schema, cfg.Redaction, baseLogger.With("component", "redactor"))

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:   source,
		Store:    store,
		Redactor: redactor,
		Notifier: notifier,
		Logger:   baseLogger.With("component", "pipeline"),
	})

	checker := sitecheck.NewChecker(nil, cfg.SiteCheck.CSVFilename, baseLogger.With("component", "sitecheck"))

	return &Application{cfg: cfg, Pipeline: pipeline, Checker: checker}
}
