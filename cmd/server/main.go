package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/manikumarntv-crypto/aicconect/shared-libs/logging"
	sharedserver "github.com/manikumarntv-crypto/aicconect/shared-libs/server"

	"github.com/manikumarntv-crypto/aicconect/internal/config"
	"github.com/manikumarntv-crypto/aicconect/internal/httpapi"
	"github.com/manikumarntv-crypto/aicconect/internal/janitor"
	"github.com/manikumarntv-crypto/aicconect/internal/liaison"
)

const serviceName = "liaison-service"

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config error: %w", err))
	}

	logger := logging.NewLogger(serviceName, cfg.LogLevel)

	generator, err := liaison.NewTextGenerator(ctx, cfg.LLM.ProviderConfig())
	if err != nil {
		logger.Warn("text generator unavailable, replies will use the fallback message",
			slog.String("provider", cfg.LLM.Provider),
			slog.String("reason", err.Error()),
		)
		generator = liaison.NewUnavailableGenerator()
	}
	replies := liaison.NewReplyGenerator(generator, logger,
		liaison.WithModel(cfg.LLM.Model),
		liaison.WithTemperature(float32(cfg.LLM.Temperature)),
	)

	clock := liaison.NewSystemClock()
	sessions := liaison.NewSessionStore(clock, cfg.Sessions.IdleTTL)
	if err := liaison.RegisterSessionGauge(prometheus.DefaultRegisterer, sessions); err != nil {
		panic(fmt.Errorf("metrics registration error: %w", err))
	}

	svc, err := liaison.NewService(sessions, replies, clock, liaison.NewUUIDGenerator(), logger)
	if err != nil {
		panic(fmt.Errorf("liaison service init error: %w", err))
	}

	sweeper, err := janitor.New(cfg.Sessions.SweepSchedule, sessions, logger)
	if err != nil {
		panic(fmt.Errorf("session sweeper init error: %w", err))
	}
	sweeper.Start()

	router := sharedserver.NewRouter(serviceName, func(r chi.Router) {
		httpapi.RegisterRoutes(r, svc, logger, httpapi.Options{AllowedOrigins: cfg.Stream.AllowedOrigins})
	})

	// No write timeout: a submission waits on the model for as long as it takes.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if err := sharedserver.Run(ctx, srv, logger, sweeper.Stop); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}
