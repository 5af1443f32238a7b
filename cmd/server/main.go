package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kofiadjei/ussd-remit/internal/config"
	"github.com/kofiadjei/ussd-remit/internal/events/kafka"
	"github.com/kofiadjei/ussd-remit/internal/httpapi"
	"github.com/kofiadjei/ussd-remit/internal/interfaces"
	"github.com/kofiadjei/ussd-remit/internal/ledger"
	"github.com/kofiadjei/ussd-remit/internal/notify"
	"github.com/kofiadjei/ussd-remit/internal/rates"
	"github.com/kofiadjei/ussd-remit/internal/storage/memory"
	"github.com/kofiadjei/ussd-remit/internal/storage/postgres"
	"github.com/kofiadjei/ussd-remit/internal/ussd"
)

// nopPublisher drops transfer events when no broker is configured.
type nopPublisher struct{}

func (nopPublisher) Publish(string, any) error { return nil }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	store := memory.NewStore(memory.DemoDirectory())

	var txLog interfaces.TransactionLog = store
	if cfg.DatabaseURL != "" {
		pg, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		txLog = pg
		logger.Info("transaction log backed by postgres")
	}

	ledgerService := ledger.NewLedger(txLog)
	table := rates.Default()

	smsClient := notify.NewClient(cfg.SMSBaseURL, cfg.SMSUsername, cfg.SMSAPIKey, cfg.SMSSenderID)
	dispatcher := notify.NewDispatcher(smsClient, logger, 64, 4)

	var publisher interfaces.EventPublisher = nopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kp.Close()
		publisher = kp
		logger.Info("publishing transfer events", "brokers", cfg.KafkaBrokers)
	}

	engine := ussd.NewEngine(store, table, ledgerService, dispatcher, publisher, logger)
	handler := httpapi.New(engine, ledgerService, store, table, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	// Let queued notifications drain before exiting.
	dispatcher.Close()
	logger.Info("server exited")
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
