package lineup

import (
	"context"
	"log/slog"

	lineupservice "github.com/Black-And-White-Club/dugout/app/modules/lineup/application"
	"github.com/Black-And-White-Club/dugout/app/modules/lineup/application/parsers"
	lineuphandlers "github.com/Black-And-White-Club/dugout/app/modules/lineup/infrastructure/handlers"
	"github.com/Black-And-White-Club/dugout/config"
	"github.com/Black-And-White-Club/dugout/internal/observability"
	"github.com/go-chi/chi/v5"
)

// multipartOverhead leaves room for form boundaries and headers around an upload.
const multipartOverhead = 1 << 20

// Module represents the lineup module.
type Module struct {
	config   *config.Config
	service  *lineupservice.LineupService
	handlers lineuphandlers.Handlers
	limiter  *lineuphandlers.ClientRateLimiter
	logger   *slog.Logger
}

// NewModule creates the lineup module and, when httpRouter is non-nil,
// mounts its routes.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing lineup module")

	service := lineupservice.NewLineupService(
		lineupservice.Config{
			Delimiter:   cfg.Ingest.Delimiter,
			HitterRows:  cfg.Ingest.HitterRows,
			PitcherRows: cfg.Ingest.PitcherRows,
		},
		parsers.NewFactory(),
		logger,
		obs.Metrics,
		tracer,
	)

	handlers := lineuphandlers.NewLineupHandlers(
		service,
		service.FieldLayouts(),
		cfg.HTTP.MaxUploadBytes,
		logger,
		tracer,
	)

	module := &Module{
		config:   cfg,
		service:  service,
		handlers: handlers,
		limiter:  lineuphandlers.NewClientRateLimiter(cfg.HTTP.RateLimit, cfg.HTTP.RateBurst),
		logger:   logger,
	}

	if httpRouter != nil {
		module.RegisterRoutes(httpRouter)
	}

	logger.InfoContext(ctx, "Lineup module initialized",
		slog.Int("hitter_rows", cfg.Ingest.HitterRows),
		slog.Int("pitcher_rows", cfg.Ingest.PitcherRows),
		slog.Int64("max_upload_bytes", cfg.HTTP.MaxUploadBytes),
	)
	return module, nil
}

// RegisterRoutes mounts the form pages and the JSON API on r.
func (m *Module) RegisterRoutes(r chi.Router) {
	h := m.handlers

	r.Get("/health", h.HandleHealth)

	r.Group(func(r chi.Router) {
		r.Use(lineuphandlers.BodyLimitMiddleware(m.config.HTTP.MaxUploadBytes + multipartOverhead))
		r.Use(lineuphandlers.RateLimitMiddleware(m.limiter, m.logger))

		r.Get("/", h.HandleIndex)
		r.Post("/", h.HandlePasteForm)
		r.Post("/fields", h.HandleFieldsForm)
		r.Post("/upload", h.HandleUploadForm)

		r.Route("/api/v1/lineup", func(r chi.Router) {
			r.Post("/", h.HandleAPILineup)
			r.Post("/chart", h.HandleAPIChart)
			r.Post("/export", h.HandleAPIExport)
		})
	})
}

// GetService returns the lineup service for use outside HTTP, such as the CLI.
func (m *Module) GetService() *lineupservice.LineupService {
	return m.service
}
