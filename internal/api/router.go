package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bank-ledger/internal/api/handler"
	mw "bank-ledger/internal/api/middleware"
	"bank-ledger/internal/config"
	"bank-ledger/internal/domain/bank"
)

func SetupRouter(bankService bank.Service, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupBankRoutes(router, bankService, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupBankRoutes(router *chi.Mux, svc bank.Service, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewBankHandler(svc, cfg.Snapshot.Dir, logger)

	router.Route("/customers", func(r chi.Router) {
		r.Post("/", h.RegisterCustomer)
		r.Get("/", h.ListCustomers)
		r.Route("/{personalNumber}", func(r chi.Router) {
			r.Get("/", h.GetCustomer)
			r.Put("/name", h.RenameCustomer)
			r.Delete("/", h.DeleteCustomer)
			r.Route("/accounts", func(r chi.Router) {
				r.Post("/", h.OpenAccount)
				r.Get("/", h.ListAccounts)
				r.Route("/{accountNumber}", func(r chi.Router) {
					r.Get("/", h.GetAccount)
					r.Delete("/", h.CloseAccount)
					r.Post("/deposit", h.Deposit)
					r.Post("/withdraw", h.Withdraw)
					r.Get("/transactions", h.GetTransactions)
					r.Post("/transactions/export", h.ExportTransactions)
				})
			})
		})
	})

	router.Route("/snapshot", func(r chi.Router) {
		r.Post("/", h.SaveSnapshot)
		r.Put("/", h.LoadSnapshot)
	})
}
