package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownGrace = 10 * time.Second

// Run starts the HTTP server and performs a graceful shutdown when the process receives an interrupt
// or ctx is cancelled. onShutdown hooks run after the listener has drained.
func Run(ctx context.Context, srv *http.Server, logger *slog.Logger, onShutdown ...func()) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	case sig := <-sigCh:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		runHooks(onShutdown)
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	runHooks(onShutdown)
	return err
}

func runHooks(hooks []func()) {
	for _, hook := range hooks {
		if hook != nil {
			hook()
		}
	}
}
