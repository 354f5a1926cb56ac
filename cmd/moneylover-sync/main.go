package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"moneylover/internal/amqp"
	"moneylover/internal/api"
	"moneylover/internal/cli"
	"moneylover/internal/log"
	"moneylover/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting moneylover-sync")

	cfg := cli.LoadAndValidateConfig(logger)

	if !cfg.HasSession() {
		logger.Error("No session credentials configured; run the CLI login first and export MONEYLOVER_REFRESH_TOKEN / MONEYLOVER_CLIENT_ID")
		os.Exit(1)
	}

	mirror := cli.InitMirror(logger, cfg.SQLiteDBPath)
	defer mirror.Close()

	client := api.NewClient(api.Options{
		APIBaseURL:   cfg.APIBaseURL,
		OAuthBaseURL: cfg.OAuthBaseURL,
		Timeout:      cfg.HTTPTimeout,
	})

	var expiresAt time.Time
	if cfg.TokenExpire > 0 {
		expiresAt = time.Unix(cfg.TokenExpire, 0)
	}
	session := api.RestoreSession(cfg.AccessToken, cfg.RefreshToken, cfg.ClientID, expiresAt)

	// Optional event publishing; the worker runs fine without a broker.
	var events worker.Publisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		events = amqpClient
		logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	ctx, cancel := cli.SignalContext()
	defer cancel()

	syncWorker := worker.NewMirrorSyncWorker(
		client, mirror, events, session, cfg.SyncConcurrency,
		log.New(log.Config{Level: slog.LevelInfo, Component: log.ComponentWorker}),
	)

	logger.Info("Performing startup sync...")
	if err := runOnce(ctx, logger, syncWorker); err != nil {
		os.Exit(1)
	}

	ticker := time.NewTicker(cfg.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutdown signal received")
			return
		case <-ticker.C:
			if err := runOnce(ctx, logger, syncWorker); err != nil {
				os.Exit(1)
			}
		}
	}
}

// runOnce executes one sync pass. Auth failures are fatal since only a
// fresh interactive login can mint new credentials; everything else is
// logged and retried on the next tick.
func runOnce(ctx context.Context, logger *slog.Logger, w *worker.MirrorSyncWorker) error {
	err := w.RunOnce(ctx)
	if err == nil {
		return nil
	}

	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		logger.Error("Re-authentication required, exiting", "error", err)
		return err
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}

	logger.Error("Mirror sync failed", "error", err)
	return nil
}
