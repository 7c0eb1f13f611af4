package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/de-tools/ops-atlas/pkg/handlers/analysis"
	"github.com/de-tools/ops-atlas/pkg/services/engine"
	"github.com/de-tools/ops-atlas/pkg/services/refresh"

	opsatlasmiddleware "github.com/de-tools/ops-atlas/pkg/server/middleware"
)

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Engine engine.Engine
	// Refresher is optional; without it the refresh routes answer 503.
	Refresher refresh.Controller
	// Metrics serves /metrics when set.
	Metrics http.Handler
	Logger  zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) http.Handler {
	deps := config.Dependencies
	h := handlers.NewHandler(deps.Engine, deps.Refresher)

	router := chi.NewRouter()

	router.Use(opsatlasmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/envelopes", h.AcceptEnvelope)
		r.Post("/envelopes/failure", h.AcceptFailure)

		r.Get("/analysis", h.GetAnalysis)
		r.Post("/analysis/reprocess", h.Reprocess)
		r.Get("/analysis/alerts", h.GetAlerts)
		r.Get("/analysis/exports/{kind}", h.GetExport)

		r.Get("/config", h.GetConfig)
		r.Put("/config", h.PutConfig)

		r.Post("/stores/{store}/dates/{date}/refresh", h.RefreshStore)
		r.Put("/stores/{store}/polling", h.StartPolling)
		r.Delete("/stores/{store}/polling", h.StopPolling)
	})

	if deps.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
