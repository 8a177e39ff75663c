package lineupservice

import (
	"bytes"
	"context"
	"fmt"

	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// chartLimit bounds plotted scores so the axis range stays finite.
const chartLimit = 1e9

var (
	chartBackground = drawing.ColorFromHex("0f2a1d")
	chartBar        = drawing.ColorFromHex("d4a72c")
	chartText       = drawing.ColorFromHex("f4f1e8")
)

// RenderChart draws the lineup scores as a PNG bar chart.
func (s *LineupService) RenderChart(ctx context.Context, sel lineuptypes.Selection) ([]byte, error) {
	return runArtifact(s, ctx, "RenderChart", sel, func() ([]byte, error) {
		return renderLineupChart(sel.Lineup)
	})
}

func renderLineupChart(lineup []lineuptypes.Row) ([]byte, error) {
	if len(lineup) == 0 {
		return renderNoDataPlaceholder()
	}

	bars := make([]chart.Value, 0, len(lineup))
	lo, hi := 0.0, 0.0
	for _, r := range lineup {
		pos, _ := r.Position()
		label := pos
		if name := r.Name(); name != "" {
			label = fmt.Sprintf("%s %s", pos, name)
		}
		score := min(max(r.Score(), -chartLimit), chartLimit)
		lo, hi = min(lo, score), max(hi, score)
		bars = append(bars, chart.Value{
			Label: label,
			Value: score,
			Style: chart.Style{FillColor: chartBar, StrokeColor: chartBar},
		})
	}
	if hi == lo {
		hi = lo + 1
	}

	graph := chart.BarChart{
		Title:      "Lineup scores",
		TitleStyle: chart.Style{FontColor: chartText},
		Width:      max(400, 120*len(bars)),
		Height:     400,
		BarWidth:   60,
		BarSpacing: 30,
		Background: chart.Style{FillColor: chartBackground},
		Canvas:     chart.Style{FillColor: chartBackground},
		XAxis:      chart.Style{FontColor: chartText, FontSize: 9},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: chartText},
			Range: &chart.ContinuousRange{Min: lo, Max: hi * 1.1},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render lineup chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// renderNoDataPlaceholder draws a single empty bar; go-chart refuses to
// render a chart with nothing in it.
func renderNoDataPlaceholder() ([]byte, error) {
	graph := chart.BarChart{
		Title:      "No lineup to chart",
		TitleStyle: chart.Style{FontColor: chartText},
		Width:      400,
		Height:     200,
		BarWidth:   40,
		Background: chart.Style{FillColor: chartBackground},
		Canvas:     chart.Style{FillColor: chartBackground},
		XAxis:      chart.Style{FontColor: chartText},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: chartText},
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Bars: []chart.Value{{Label: "-", Value: 0}},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render placeholder chart: %w", err)
	}
	return buffer.Bytes(), nil
}
