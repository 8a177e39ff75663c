package observability

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Config is the subset of application config observability needs.
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
}

// Observability bundles the logger, tracer and metrics handed to modules.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Metrics  LineupMetrics
	Registry *prometheus.Registry
}

// New builds logging, tracing and a private prometheus registry. Tracing uses
// the global otel provider, which is a no-op unless an SDK is installed.
func New(cfg Config, out io.Writer) (Observability, error) {
	logger := NewLogger(cfg.Environment, cfg.LogLevel, out).With("service", cfg.ServiceName)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := NewLineupMetrics(reg, strings.ReplaceAll(cfg.ServiceName, "-", "_"))
	if err != nil {
		return Observability{}, fmt.Errorf("failed to register lineup metrics: %w", err)
	}

	return Observability{
		Logger:   logger,
		Tracer:   otel.Tracer(cfg.ServiceName + "/lineup"),
		Metrics:  metrics,
		Registry: reg,
	}, nil
}

// MetricsHandler serves the registry in the prometheus text format.
func (o Observability) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{Registry: o.Registry})
}

// NewLogger returns a JSON logger outside development and a text logger in it.
func NewLogger(environment, level string, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if environment == "development" {
		return slog.New(slog.NewTextHandler(out, opts))
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
