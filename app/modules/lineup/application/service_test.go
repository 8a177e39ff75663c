package lineupservice

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/Black-And-White-Club/dugout/app/modules/lineup/application/parsers"
	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
	"github.com/Black-And-White-Club/dugout/internal/observability"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	hittersTSV = "Name\tPOS\tAvg\tHR\tRBI\tOBP\n" +
		"Alvarez\t1B\t0.300\t10\t20\t0.400\n" +
		"Baker\t1B\t0.250\t5\t10\t0.300\n" +
		"Cruz\tSS\t0.280\t8\t30\t0.350\n"
	pitchersTSV = "Name\tERA\n" +
		"Diaz\t4.50\n" +
		"Evans\tbad\n" +
		"Ford\t2.10\n" +
		"Gray\t3.00\n" +
		"Hill\t5.00\n"
	oppPitchersTSV = "Name\tERA\nIto\t3.25\n"
)

func newTestService(t *testing.T, factory parsers.ParserFactory) (*LineupService, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewLineupMetrics(reg, "dugout")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewLineupService(Config{}, factory, logger, metrics, tracer), reg
}

func fullTexts() map[lineuptypes.Role]string {
	return map[lineuptypes.Role]string{
		lineuptypes.RoleMyHitters:   hittersTSV,
		lineuptypes.RoleMyPitchers:  pitchersTSV,
		lineuptypes.RoleOppPitchers: oppPitchersTSV,
	}
}

func lineupSummary(rows []lineuptypes.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		pos, _ := r.Position()
		out = append(out, pos+":"+r.Name()+":"+r[lineuptypes.ColScore])
	}
	return out
}

func rotationSummary(rows []lineuptypes.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name())
	}
	return out
}

func TestLineupService_SelectFromText(t *testing.T) {
	svc, reg := newTestService(t, parsers.NewFactory())

	result, err := svc.SelectFromText(context.Background(), fullTexts())
	require.NoError(t, err)
	require.True(t, result.IsSuccess())

	sel := result.Success
	require.NotEqual(t, "", sel.ID.String())
	if diff := cmp.Diff([]string{"1B:Alvarez:160.0", "SS:Cruz:163.0"}, lineupSummary(sel.Lineup)); diff != "" {
		t.Errorf("lineup mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Ford", "Gray", "Diaz"}, rotationSummary(sel.Rotation)); diff != "" {
		t.Errorf("rotation mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, 1.0, counterValue(t, reg, "dugout_operation_success_total", "SelectFromText"))
	require.Equal(t, 0.0, counterValue(t, reg, "dugout_operation_failures_total", "SelectFromText"))
}

func TestLineupService_SelectFromText_Idempotent(t *testing.T) {
	svc, _ := newTestService(t, parsers.NewFactory())

	first, err := svc.SelectFromText(context.Background(), fullTexts())
	require.NoError(t, err)
	second, err := svc.SelectFromText(context.Background(), fullTexts())
	require.NoError(t, err)

	require.Equal(t, first.Success.Lineup, second.Success.Lineup)
	require.Equal(t, first.Success.Rotation, second.Success.Rotation)
}

func TestLineupService_ExtremeStats(t *testing.T) {
	svc, _ := newTestService(t, parsers.NewFactory())
	texts := fullTexts()
	texts[lineuptypes.RoleMyHitters] = "Name\tPOS\tAvg\tOBP\n" +
		"Huge\t1B\t1e307\t1e307\n" +
		"Clash\tSS\t1e308\t-1e308\n" +
		"Big\tC\t1e300\t0\n"

	result, err := svc.SelectFromText(context.Background(), texts)
	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	big := FormatScore(ScorePlayer(lineuptypes.Row{"Avg": "1e300", "OBP": "0"}, nil))
	require.Equal(t, []string{"1B:Huge:+Inf", "SS:Clash:NaN", "C:Big:" + big}, lineupSummary(result.Success.Lineup))

	png, err := svc.RenderChart(context.Background(), *result.Success)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestLineupService_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		texts   map[lineuptypes.Role]string
		wantMsg string
	}{
		{
			name: "no hitters",
			texts: map[lineuptypes.Role]string{
				lineuptypes.RoleMyPitchers:  pitchersTSV,
				lineuptypes.RoleOppPitchers: oppPitchersTSV,
			},
			wantMsg: ErrNoHitters.Error(),
		},
		{
			name: "header only hitters",
			texts: map[lineuptypes.Role]string{
				lineuptypes.RoleMyHitters:   "Name\tPOS\tAvg\n",
				lineuptypes.RoleMyPitchers:  pitchersTSV,
				lineuptypes.RoleOppPitchers: oppPitchersTSV,
			},
			wantMsg: ErrNoHitters.Error(),
		},
		{
			name: "no pitchers",
			texts: map[lineuptypes.Role]string{
				lineuptypes.RoleMyHitters:   hittersTSV,
				lineuptypes.RoleOppPitchers: oppPitchersTSV,
			},
			wantMsg: ErrNoPitchers.Error(),
		},
		{
			name: "no opposing pitchers",
			texts: map[lineuptypes.Role]string{
				lineuptypes.RoleMyHitters:  hittersTSV,
				lineuptypes.RoleMyPitchers: pitchersTSV,
			},
			wantMsg: ErrNoOppPitchers.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, reg := newTestService(t, parsers.NewFactory())
			result, err := svc.SelectFromText(context.Background(), tt.texts)
			require.NoError(t, err)
			require.True(t, result.IsFailure())
			require.Nil(t, result.Success)
			require.Equal(t, tt.wantMsg, result.Failure.Message)
			require.Equal(t, 1.0, counterValue(t, reg, "dugout_operation_failures_total", "SelectFromText"))
		})
	}
}

func TestLineupService_SelectFromFields(t *testing.T) {
	svc, _ := newTestService(t, parsers.NewFactory())
	fields := map[string]string{
		parsers.FieldName(lineuptypes.RoleMyHitters, "Name", 0):   "Alvarez",
		parsers.FieldName(lineuptypes.RoleMyHitters, "POS", 0):    "C",
		parsers.FieldName(lineuptypes.RoleMyHitters, "Avg", 0):    "0.300",
		parsers.FieldName(lineuptypes.RoleMyHitters, "HR", 0):     "10",
		parsers.FieldName(lineuptypes.RoleMyHitters, "RBI", 0):    "20",
		parsers.FieldName(lineuptypes.RoleMyHitters, "OBP", 0):    "0.400",
		parsers.FieldName(lineuptypes.RoleMyPitchers, "Name", 3):  "Ford",
		parsers.FieldName(lineuptypes.RoleMyPitchers, "ERA", 3):   "2.10",
		parsers.FieldName(lineuptypes.RoleOppPitchers, "Name", 0): "Ito",
	}

	result, err := svc.SelectFromFields(context.Background(), fields)
	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	require.Equal(t, []string{"C:Alvarez:160.0"}, lineupSummary(result.Success.Lineup))
	require.Equal(t, []string{"Ford"}, rotationSummary(result.Success.Rotation))
}

func TestLineupService_SelectFromFile(t *testing.T) {
	csvData := "Type,Name,POS,Avg,HR,RBI,OBP,ERA\n" +
		"my_hitter,Alvarez,1B,0.300,10,20,0.400,\n" +
		"my_pitcher,Ford,,,,,,2.10\n" +
		"opp_pitcher,Ito,,,,,,3.25\n"

	t.Run("csv upload", func(t *testing.T) {
		svc, _ := newTestService(t, parsers.NewFactory())
		result, err := svc.SelectFromFile(context.Background(), "stats.csv", []byte(csvData))
		require.NoError(t, err)
		require.True(t, result.IsSuccess())
		require.Equal(t, []string{"1B:Alvarez:160.0"}, lineupSummary(result.Success.Lineup))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		svc, _ := newTestService(t, parsers.NewFactory())
		result, err := svc.SelectFromFile(context.Background(), "stats.pdf", []byte(csvData))
		require.NoError(t, err)
		require.True(t, result.IsFailure())
		require.True(t, strings.HasPrefix(result.Failure.Message, FileErrorPrefix))
		require.ErrorIs(t, result.Failure.Err, parsers.ErrUnsupportedFileType)
	})

	t.Run("missing section column", func(t *testing.T) {
		svc, _ := newTestService(t, parsers.NewFactory())
		result, err := svc.SelectFromFile(context.Background(), "stats.csv", []byte("Name,POS\nA,1B\n"))
		require.NoError(t, err)
		require.True(t, result.IsFailure())
		require.True(t, strings.HasPrefix(result.Failure.Message, FileErrorPrefix))
		require.ErrorIs(t, result.Failure.Err, parsers.ErrMissingSectionColumn)
	})

	t.Run("parsed file still goes through validation", func(t *testing.T) {
		factory := NewFakeParserFactory()
		factory.GetParserFunc = func(string) (parsers.Parser, error) {
			return &FakeParser{ParseFunc: func([]byte) (*lineuptypes.Roster, error) {
				return &lineuptypes.Roster{}, nil
			}}, nil
		}
		svc, _ := newTestService(t, factory)
		result, err := svc.SelectFromFile(context.Background(), "stats.xlsx", []byte("x"))
		require.NoError(t, err)
		require.True(t, result.IsFailure())
		require.Equal(t, ErrNoHitters.Error(), result.Failure.Message)
		require.Equal(t, []string{"GetParser:stats.xlsx"}, factory.Trace())
	})

	t.Run("parser panic is recovered", func(t *testing.T) {
		factory := NewFakeParserFactory()
		factory.GetParserFunc = func(string) (parsers.Parser, error) {
			return &FakeParser{ParseFunc: func([]byte) (*lineuptypes.Roster, error) {
				panic("boom")
			}}, nil
		}
		svc, reg := newTestService(t, factory)
		result, err := svc.SelectFromFile(context.Background(), "stats.csv", nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "panic in SelectFromFile")
		require.False(t, result.IsSuccess())
		require.False(t, result.IsFailure())
		require.Equal(t, 1.0, counterValue(t, reg, "dugout_operation_failures_total", "SelectFromFile"))
	})
}

func TestLineupService_Select(t *testing.T) {
	svc, _ := newTestService(t, parsers.NewFactory())
	roster := &lineuptypes.Roster{
		MyHitters:   []lineuptypes.Row{{"Name": "A", "POS": "1B", "Avg": "1.0"}, {"Name": "B", "POS": "1B", "Avg": "1.5"}},
		MyPitchers:  []lineuptypes.Row{{"Name": "P", "ERA": "3.00"}},
		OppPitchers: []lineuptypes.Row{{"Name": "O", "ERA": "4.00"}},
	}
	result, err := svc.Select(context.Background(), roster)
	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	require.Equal(t, []string{"1B:B:150.0"}, lineupSummary(result.Success.Lineup))

	result, err = svc.Select(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, ErrNoHitters.Error(), result.Failure.Message)
}

func TestLineupService_RenderChart(t *testing.T) {
	svc, _ := newTestService(t, parsers.NewFactory())
	result, err := svc.SelectFromText(context.Background(), fullTexts())
	require.NoError(t, err)

	png, err := svc.RenderChart(context.Background(), *result.Success)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	empty, err := svc.RenderChart(context.Background(), lineuptypes.Selection{})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(empty, []byte("\x89PNG")))
}

func TestLineupService_ExportWorkbook(t *testing.T) {
	svc, _ := newTestService(t, parsers.NewFactory())
	result, err := svc.SelectFromText(context.Background(), fullTexts())
	require.NoError(t, err)

	data, err := svc.ExportWorkbook(context.Background(), *result.Success)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{LineupSheet, RotationSheet}, f.GetSheetList())

	lineupRows, err := f.GetRows(LineupSheet)
	require.NoError(t, err)
	require.Len(t, lineupRows, 3)
	require.Equal(t, []string{"POS", "Name", "Score", "Avg", "HR", "RBI", "OBP"}, lineupRows[0])
	require.Equal(t, []string{"1B", "Alvarez", "160.0", "0.300", "10", "20", "0.400"}, lineupRows[1])

	rotationRows, err := f.GetRows(RotationSheet)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"Name", "ERA"}, {"Ford", "2.10"}, {"Gray", "3.00"}, {"Diaz", "4.50"}}, rotationRows)
}

func TestNewLineupService_NilMetrics(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewLineupService(Config{HitterRows: 2}, parsers.NewFactory(), logger, nil, nil)

	result, err := svc.SelectFromText(context.Background(), fullTexts())
	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	require.Equal(t, 2, svc.FieldLayouts()[0].MaxRows)
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, operation string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "operation" && lp.GetValue() == operation {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
