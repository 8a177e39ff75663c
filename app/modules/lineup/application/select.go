package lineupservice

import (
	"context"
	"fmt"
	"log/slog"

	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
	"github.com/Black-And-White-Club/dugout/internal/results"
	"github.com/google/uuid"
)

// Select validates the roster and builds the lineup and rotation.
func (s *LineupService) Select(ctx context.Context, roster *lineuptypes.Roster) (SelectionResult, error) {
	id := uuid.New()
	return withTelemetry(s, ctx, "Select", id, func(ctx context.Context) (SelectionResult, error) {
		return s.selectRoster(ctx, id, roster), nil
	})
}

// SelectFromText parses one pasted block per role and selects from it.
func (s *LineupService) SelectFromText(ctx context.Context, texts map[lineuptypes.Role]string) (SelectionResult, error) {
	id := uuid.New()
	return withTelemetry(s, ctx, "SelectFromText", id, func(ctx context.Context) (SelectionResult, error) {
		roster := s.text.Parse(texts)
		s.recordRows(ctx, "text", roster)
		return s.selectRoster(ctx, id, roster), nil
	})
}

// SelectFromFields parses flat form fields and selects from them.
func (s *LineupService) SelectFromFields(ctx context.Context, fields map[string]string) (SelectionResult, error) {
	id := uuid.New()
	return withTelemetry(s, ctx, "SelectFromFields", id, func(ctx context.Context) (SelectionResult, error) {
		roster := s.fields.Parse(fields)
		s.recordRows(ctx, "fields", roster)
		return s.selectRoster(ctx, id, roster), nil
	})
}

// SelectFromFile parses an uploaded CSV/TSV or workbook and selects from it.
// Unusable files come back as a failure result prefixed with FileErrorPrefix.
func (s *LineupService) SelectFromFile(ctx context.Context, filename string, data []byte) (SelectionResult, error) {
	id := uuid.New()
	return withTelemetry(s, ctx, "SelectFromFile", id, func(ctx context.Context) (SelectionResult, error) {
		parser, err := s.factory.GetParser(filename)
		if err != nil {
			return fileFailure(id, err), nil
		}
		roster, err := parser.Parse(data)
		if err != nil {
			s.logger.WarnContext(ctx, "Uploaded file could not be parsed",
				slog.String("selection_id", id.String()),
				slog.String("file_name", filename),
				slog.Int("size", len(data)),
				slog.Any("error", err),
			)
			return fileFailure(id, err), nil
		}
		s.recordRows(ctx, "file", roster)
		return s.selectRoster(ctx, id, roster), nil
	})
}

func (s *LineupService) selectRoster(ctx context.Context, id uuid.UUID, roster *lineuptypes.Roster) SelectionResult {
	if err := Validate(roster); err != nil {
		return results.FailureResult[lineuptypes.Selection](lineuptypes.Failure{
			ID:      id,
			Message: err.Error(),
			Err:     err,
		})
	}

	lineup := BuildLineup(roster.MyHitters, roster.OppPitchers)
	rotation := BuildRotation(roster.MyPitchers)

	s.logger.DebugContext(ctx, "Lineup selected",
		slog.String("selection_id", id.String()),
		slog.Int("hitters", len(roster.MyHitters)),
		slog.Int("positions", len(lineup)),
		slog.Int("pitchers", len(roster.MyPitchers)),
		slog.Int("rotation", len(rotation)),
		slog.Int("opp_hitters_ignored", len(roster.OppHitters)),
	)

	return results.SuccessResult[lineuptypes.Selection, lineuptypes.Failure](lineuptypes.Selection{
		ID:       id,
		Lineup:   lineup,
		Rotation: rotation,
	})
}

func (s *LineupService) recordRows(ctx context.Context, source string, roster *lineuptypes.Roster) {
	for _, role := range lineuptypes.Roles {
		s.metrics.RecordRowsIngested(ctx, source, role.String(), len(roster.Rows(role)))
	}
}

func fileFailure(id uuid.UUID, err error) SelectionResult {
	return results.FailureResult[lineuptypes.Selection](lineuptypes.Failure{
		ID:      id,
		Message: fmt.Sprintf("%s%v", FileErrorPrefix, err),
		Err:     err,
	})
}
