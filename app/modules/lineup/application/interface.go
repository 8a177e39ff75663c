package lineupservice

import (
	"context"

	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
	"github.com/Black-And-White-Club/dugout/internal/results"
)

// SelectionResult is either a Selection or a user-facing Failure.
type SelectionResult = results.OperationResult[lineuptypes.Selection, lineuptypes.Failure]

// Service defines the lineup operations exposed to handlers and the CLI.
type Service interface {
	Select(ctx context.Context, roster *lineuptypes.Roster) (SelectionResult, error)
	SelectFromText(ctx context.Context, texts map[lineuptypes.Role]string) (SelectionResult, error)
	SelectFromFields(ctx context.Context, fields map[string]string) (SelectionResult, error)
	SelectFromFile(ctx context.Context, filename string, data []byte) (SelectionResult, error)
	RenderChart(ctx context.Context, sel lineuptypes.Selection) ([]byte, error)
	ExportWorkbook(ctx context.Context, sel lineuptypes.Selection) ([]byte, error)
}
