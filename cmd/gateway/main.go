package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/abilic/ordergate/internal/bootstrap"
	"github.com/abilic/ordergate/internal/gateway/client"
	"github.com/abilic/ordergate/internal/gateway/controller"
	"github.com/abilic/ordergate/internal/gateway/coordinator"
	infraRedis "github.com/abilic/ordergate/internal/redis"
	"github.com/abilic/ordergate/pkg/retry"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, "ordergate-gateway", "ordergate")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	cfg := app.Config

	// --- Participant clients ---
	orders := client.NewOrderClient(cfg.Participants.OrderURL, cfg.Gateway.ClientTimeout, app.Logger)
	payments := client.NewPaymentClient(cfg.Participants.PaymentURL, cfg.Gateway.ClientTimeout, app.Logger)
	shipments := client.NewShipmentClient(cfg.Participants.ShipmentURL, cfg.Gateway.ClientTimeout, app.Logger)

	// --- Coordinators ---
	commitRetry := retry.Config{
		MaxAttempts:  cfg.Gateway.CommitMaxRetries,
		InitialDelay: cfg.Gateway.CommitRetryDelay,
		MaxDelay:     cfg.Gateway.ClientTimeout,
	}
	sagaCoord := coordinator.NewSagaCoordinator(orders, payments, shipments, app.Metrics, app.Logger)
	twopcCoord := coordinator.NewTwoPhaseCoordinator(orders, payments, shipments, app.Metrics, app.Logger, commitRetry)

	idempotencyStore := infraRedis.NewIdempotencyStore(app.Redis, cfg.Gateway.IdempotencyTTL)

	// --- Build router ---
	router := controller.NewRouter(controller.RouterDeps{
		Pool:             app.Pool,
		RedisClient:      app.Redis,
		SagaCoordinator:  sagaCoord,
		TwoPhase:         twopcCoord,
		Payments:         payments,
		Shipments:        shipments,
		IdempotencyStore: idempotencyStore,
		Metrics:          app.Metrics,
		CORSConfig:       cfg.Server.CORS,
		RateLimit:        cfg.Gateway.RateLimitPerMinute,
	})

	// --- HTTP server ---
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	app.Logger.Info().Msg("Server exited")
}
