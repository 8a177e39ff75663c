package lineupservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/dugout/app/modules/lineup/application/parsers"
	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
	"github.com/Black-And-White-Club/dugout/internal/observability"
	"github.com/Black-And-White-Club/dugout/internal/results"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Config controls how pasted text and flat form fields are read.
type Config struct {
	Delimiter   string
	HitterRows  int
	PitcherRows int
}

// LineupService implements the Service interface.
type LineupService struct {
	factory parsers.ParserFactory
	text    *parsers.TextParser
	fields  *parsers.FieldParser
	logger  *slog.Logger
	metrics observability.LineupMetrics
	tracer  trace.Tracer
}

// NewLineupService creates a new LineupService.
func NewLineupService(
	cfg Config,
	factory parsers.ParserFactory,
	logger *slog.Logger,
	metrics observability.LineupMetrics,
	tracer trace.Tracer,
) *LineupService {
	if metrics == nil {
		metrics = observability.NoOpLineupMetrics{}
	}
	return &LineupService{
		factory: factory,
		text:    parsers.NewTextParser(cfg.Delimiter),
		fields:  parsers.NewFieldParser(cfg.HitterRows, cfg.PitcherRows),
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

// FieldLayouts exposes the flat-field form layout for rendering.
func (s *LineupService) FieldLayouts() []parsers.FieldLayout {
	return s.fields.Layouts()
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *LineupService,
	ctx context.Context,
	operationName string,
	selectionID uuid.UUID,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("selection_id", selectionID.String()),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		slog.String("operation", operationName),
		slog.String("selection_id", selectionID.String()),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("selection_id", selectionID.String()),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			slog.String("selection_id", selectionID.String()),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		span.SetStatus(codes.Error, wrappedErr.Error())
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			slog.String("operation", operationName),
			slog.String("selection_id", selectionID.String()),
			slog.Any("failure_payload", *result.Failure),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			slog.String("operation", operationName),
			slog.String("selection_id", selectionID.String()),
		)
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}

	return result, nil
}

// artifact adapts byte-producing operations to withTelemetry.
type artifact struct{ data []byte }

func runArtifact(s *LineupService, ctx context.Context, operationName string, sel lineuptypes.Selection, build func() ([]byte, error)) ([]byte, error) {
	result, err := withTelemetry(s, ctx, operationName, sel.ID, func(ctx context.Context) (results.OperationResult[artifact, struct{}], error) {
		data, err := build()
		if err != nil {
			return results.OperationResult[artifact, struct{}]{}, err
		}
		return results.SuccessResult[artifact, struct{}](artifact{data: data}), nil
	})
	if err != nil {
		return nil, err
	}
	return result.Success.data, nil
}
