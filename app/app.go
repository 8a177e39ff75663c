package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/dugout/app/modules/lineup"
	"github.com/Black-And-White-Club/dugout/config"
	"github.com/Black-And-White-Club/dugout/internal/observability"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// App wires configuration, observability and modules behind one HTTP router.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	Router        chi.Router
	LineupModule  *lineup.Module
	logger        *slog.Logger
}

// NewApp initializes the application. Logs go to logOut.
func NewApp(ctx context.Context, cfg *config.Config, logOut io.Writer) (*App, error) {
	obs, err := observability.New(config.ToObsConfig(cfg), logOut)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	router := newRouter(cfg)

	lineupModule, err := lineup.NewModule(ctx, cfg, obs, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lineup module: %w", err)
	}

	return &App{
		Config:        cfg,
		Observability: obs,
		Router:        router,
		LineupModule:  lineupModule,
		logger:        obs.Logger,
	}, nil
}

func newRouter(cfg *config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	if cfg.HTTP.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.Recoverer)

	if len(cfg.HTTP.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.HTTP.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			ExposedHeaders:   []string{"Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
	return r
}

// Handler returns the root HTTP handler.
func (app *App) Handler() http.Handler {
	return app.Router
}
