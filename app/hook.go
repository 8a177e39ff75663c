package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// ShutdownTimeout bounds how long in-flight requests get to finish.
const ShutdownTimeout = 10 * time.Second

// WaitForShutdown gracefully stops the given servers.
func (app *App) WaitForShutdown(servers ...*http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	app.logger.Info("Shutting down application...")

	var errs []error
	for _, s := range servers {
		if err := s.Shutdown(ctx); err != nil {
			app.logger.Error("Error stopping server", slog.String("addr", s.Addr), slog.Any("error", err))
			errs = append(errs, err)
		}
	}

	app.logger.Info("Application shut down gracefully.")
	return errors.Join(errs...)
}
