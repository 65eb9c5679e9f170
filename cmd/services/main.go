package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/abilic/ordergate/internal/bootstrap"
	"github.com/abilic/ordergate/internal/participant/api"
	orderSvc "github.com/abilic/ordergate/internal/participant/order"
	paymentSvc "github.com/abilic/ordergate/internal/participant/payment"
	productSvc "github.com/abilic/ordergate/internal/participant/product"
	shipmentSvc "github.com/abilic/ordergate/internal/participant/shipment"
	"github.com/abilic/ordergate/internal/repository/postgres"
	"golang.org/x/sync/errgroup"
)

// Runs all four participant services in one process, each on its own port.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, "ordergate-participants", "participants")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	cfg := app.Config

	// --- Repositories ---
	orderRepo := postgres.NewOrderRepository(app.Pool)
	paymentRepo := postgres.NewPaymentRepository(app.Pool)
	shipmentRepo := postgres.NewShipmentRepository(app.Pool)
	productRepo := postgres.NewProductRepository(app.Pool)

	// --- Services ---
	products := productSvc.NewService(productRepo, app.Logger)
	orders := orderSvc.NewService(orderRepo, products, app.Logger)
	fina := paymentSvc.NewFinancialAgency(app.Logger)
	payments := paymentSvc.NewService(paymentRepo, orderRepo, fina, app.Logger)
	carrier := shipmentSvc.NewCarrierGateway(app.Logger)
	shipments := shipmentSvc.NewService(shipmentRepo, orderRepo, carrier, app.Logger)

	// --- Routers ---
	servers := []struct {
		name    string
		port    int
		handler http.Handler
	}{
		{"order", cfg.Participants.OrderPort, api.NewOrderRouter(api.NewOrderController(orders))},
		{"payment", cfg.Participants.PaymentPort, api.NewPaymentRouter(api.NewPaymentController(payments, fina))},
		{"shipment", cfg.Participants.ShipmentPort, api.NewShipmentRouter(api.NewShipmentController(shipments, carrier))},
		{"product", cfg.Participants.ProductPort, api.NewProductRouter(api.NewProductController(products))},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		addr := fmt.Sprintf(":%d", s.port)
		srv := &http.Server{
			Addr:         addr,
			Handler:      s.handler,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}

		name := s.name
		g.Go(func() error {
			app.Logger.Info().Str("service", name).Str("addr", addr).Msg("Starting HTTP server")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("%s server: %w", name, err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		app.Logger.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
	app.Logger.Info().Msg("Servers exited")
}
