package lineuphandlers

import (
	"context"

	lineupservice "github.com/Black-And-White-Club/dugout/app/modules/lineup/application"
	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
	"github.com/Black-And-White-Club/dugout/internal/results"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	trace []string

	SelectFunc           func(ctx context.Context, roster *lineuptypes.Roster) (lineupservice.SelectionResult, error)
	SelectFromTextFunc   func(ctx context.Context, texts map[lineuptypes.Role]string) (lineupservice.SelectionResult, error)
	SelectFromFieldsFunc func(ctx context.Context, fields map[string]string) (lineupservice.SelectionResult, error)
	SelectFromFileFunc   func(ctx context.Context, filename string, data []byte) (lineupservice.SelectionResult, error)
	RenderChartFunc      func(ctx context.Context, sel lineuptypes.Selection) ([]byte, error)
	ExportWorkbookFunc   func(ctx context.Context, sel lineuptypes.Selection) ([]byte, error)
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func defaultSelection() lineupservice.SelectionResult {
	return results.SuccessResult[lineuptypes.Selection, lineuptypes.Failure](lineuptypes.Selection{
		Lineup:   []lineuptypes.Row{{"Name": "Alvarez", "POS": "1B", "Score": "160.0"}},
		Rotation: []lineuptypes.Row{{"Name": "Ford", "ERA": "2.10"}},
	})
}

func (f *FakeService) Select(ctx context.Context, roster *lineuptypes.Roster) (lineupservice.SelectionResult, error) {
	f.record("Select")
	if f.SelectFunc != nil {
		return f.SelectFunc(ctx, roster)
	}
	return defaultSelection(), nil
}

func (f *FakeService) SelectFromText(ctx context.Context, texts map[lineuptypes.Role]string) (lineupservice.SelectionResult, error) {
	f.record("SelectFromText")
	if f.SelectFromTextFunc != nil {
		return f.SelectFromTextFunc(ctx, texts)
	}
	return defaultSelection(), nil
}

func (f *FakeService) SelectFromFields(ctx context.Context, fields map[string]string) (lineupservice.SelectionResult, error) {
	f.record("SelectFromFields")
	if f.SelectFromFieldsFunc != nil {
		return f.SelectFromFieldsFunc(ctx, fields)
	}
	return defaultSelection(), nil
}

func (f *FakeService) SelectFromFile(ctx context.Context, filename string, data []byte) (lineupservice.SelectionResult, error) {
	f.record("SelectFromFile")
	if f.SelectFromFileFunc != nil {
		return f.SelectFromFileFunc(ctx, filename, data)
	}
	return defaultSelection(), nil
}

func (f *FakeService) RenderChart(ctx context.Context, sel lineuptypes.Selection) ([]byte, error) {
	f.record("RenderChart")
	if f.RenderChartFunc != nil {
		return f.RenderChartFunc(ctx, sel)
	}
	return []byte("\x89PNG fake"), nil
}

func (f *FakeService) ExportWorkbook(ctx context.Context, sel lineuptypes.Selection) ([]byte, error) {
	f.record("ExportWorkbook")
	if f.ExportWorkbookFunc != nil {
		return f.ExportWorkbookFunc(ctx, sel)
	}
	return []byte("PK fake"), nil
}

// Ensure the fake actually satisfies the interface
var _ lineupservice.Service = (*FakeService)(nil)
