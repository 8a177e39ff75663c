package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Start serves HTTP (and metrics when configured) until ctx is cancelled,
// then shuts both servers down.
func (app *App) Start(ctx context.Context) error {
	cfg := app.Config.HTTP

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      app.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	servers := []*http.Server{srv}

	if addr := app.Config.Observability.MetricsAddress; addr != "" {
		mux := chi.NewRouter()
		mux.Handle("/metrics", app.Observability.MetricsHandler())
		servers = append(servers, &http.Server{Addr: addr, Handler: mux})
	}

	errCh := make(chan error, len(servers))
	for _, s := range servers {
		go func(s *http.Server) {
			app.logger.InfoContext(ctx, "Starting server", slog.String("addr", s.Addr))
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("server on %s: %w", s.Addr, err)
			}
		}(s)
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		app.logger.ErrorContext(ctx, "Server failed", slog.Any("error", runErr))
	}

	if err := app.WaitForShutdown(servers...); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
