package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheusdigital/exchange-addon-cybersource/internal/application"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/config"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/infrastructure/cybersource"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/infrastructure/nvp"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/interfaces/rest/handlers"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting payment gateway service",
		"port", cfg.Server.Port,
		"protocol", cfg.Gateway.Protocol,
		"sandbox", cfg.Gateway.SandboxMode,
		"sale_method", cfg.Gateway.SaleMethod,
	)

	var gatewayClient application.GatewayClient
	switch cfg.Gateway.Protocol {
	case "nvp":
		gatewayClient = nvp.NewClient(cfg.Gateway)
	default:
		gatewayClient = cybersource.NewClient(cfg.Gateway)
	}

	paymentService := application.NewPaymentService(gatewayClient, cfg.Gateway, logger)

	h := handlers.New(paymentService, logger)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
