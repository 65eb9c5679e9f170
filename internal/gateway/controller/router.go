package controller

import (
	"time"

	"github.com/abilic/ordergate/internal/config"
	"github.com/abilic/ordergate/internal/gateway/client"
	"github.com/abilic/ordergate/internal/gateway/coordinator"
	customMW "github.com/abilic/ordergate/internal/middleware"
	"github.com/abilic/ordergate/internal/observability"
	infraRedis "github.com/abilic/ordergate/internal/redis"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	Pool             *pgxpool.Pool
	RedisClient      *redis.Client
	SagaCoordinator  *coordinator.SagaCoordinator
	TwoPhase         *coordinator.TwoPhaseCoordinator
	Payments         client.PaymentClient
	Shipments        client.ShipmentClient
	IdempotencyStore *infraRedis.IdempotencyStore
	Metrics          *observability.Metrics
	CORSConfig       config.CORSConfig
	RateLimit        int
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.Metrics(deps.Metrics))
	if deps.RateLimit > 0 {
		r.Use(customMW.RateLimit(deps.RateLimit))
	}

	healthH := NewHealthController(deps.Pool, deps.RedisClient)
	placeH := NewPlaceController(deps.SagaCoordinator, deps.TwoPhase)
	configH := NewConfigController(deps.Payments, deps.Shipments)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Idempotency middleware for the place endpoints.
		idempotencyMW := customMW.Idempotency(deps.IdempotencyStore)

		r.Route("/orders", func(r chi.Router) {
			r.With(idempotencyMW).Post("/place", placeH.PlaceSaga)
			r.With(idempotencyMW).Post("/place-2pc", placeH.PlaceTwoPhase)
		})

		r.Route("/config", func(r chi.Router) {
			r.Put("/fina/availability", configH.SetFinaAvailability)
			r.Put("/fina/pre-authorization", configH.SetPreAuthorization)
			r.Get("/fina/status", configH.FinaStatus)
			r.Put("/carrier/availability", configH.SetCarrierAvailability)
			r.Put("/carrier/capacity", configH.SetCarrierCapacity)
			r.Get("/carrier/status", configH.CarrierStatus)
		})
	})

	return r
}
