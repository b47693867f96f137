package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"gastos/internal/amqp"
	"gastos/internal/backend"
	"gastos/internal/budget"
	"gastos/internal/cli"
	apphttp "gastos/internal/http"
	applog "gastos/internal/log"
	"gastos/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)

	logger.Info("starting gastos server")

	cfg := cli.LoadAndValidateConfig(logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("invalid backend configuration", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("failed to create backend", "error", err, "backend", backendCfg.Type)
		os.Exit(1)
	}

	// AMQP publishing is optional; without a broker the mirror just lags.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			publisher = client
			logger.Info("initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	expenseService := services.NewExpenseService(result.Store, publisher)
	budgetManager := budget.NewManager(cfg.BudgetSettingsPath, logger.Logger)

	srv := apphttp.NewServer(":"+cfg.Port, expenseService, budgetManager, result.Store, apphttp.Options{
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
		AnalyticsCacheTTL: cfg.AnalyticsCacheTTL,
	})

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
		if err := expenseService.Close(); err != nil {
			logger.Error("service close error", "error", err)
		}
	})

	logger.Info("listening", "port", cfg.Port, "backend", backendCfg.Type)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	<-done
	logger.Info("server stopped gracefully")
}
