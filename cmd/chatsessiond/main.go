package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/teamstools/chatsessiond/server/api"
	"github.com/teamstools/chatsessiond/server/config"
	"github.com/teamstools/chatsessiond/server/metrics"
	"github.com/teamstools/chatsessiond/server/msgraph"
	"github.com/teamstools/chatsessiond/server/session"
)

func main() {
	logger := &logrus.Logger{
		Out: os.Stdout,
		Formatter: &logrus.TextFormatter{
			FullTimestamp: true,
		},
		Level: logrus.InfoLevel,
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	metricsService := metrics.NewMetrics()

	logError := func(msg string, keyValuePairs ...any) {
		fields := logrus.Fields{}
		for i := 0; i+1 < len(keyValuePairs); i += 2 {
			if key, ok := keyValuePairs[i].(string); ok {
				fields[key] = keyValuePairs[i+1]
			}
		}
		logger.WithFields(fields).Error(msg)
	}

	client := msgraph.New(cfg.TenantID, cfg.ClientID, cfg.ClientSecret, logError, metricsService)
	if err := client.Connect(); err != nil {
		logger.WithError(err).Fatal("Unable to connect to Microsoft Graph")
	}

	manager := session.NewManager(client, logger, metricsService)

	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           metricsService.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Metrics server stopped")
		}
	}()

	apiServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.New(manager, logger, metricsService),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.WithField("addr", cfg.ListenAddr).Info("Starting the chat session service")
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("API server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Unable to shut down the API server cleanly")
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Unable to shut down the metrics server cleanly")
	}

	logger.Info("Shutdown complete")
}
