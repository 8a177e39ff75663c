package lineupservice

import (
	"context"
	"testing"

	"github.com/Black-And-White-Club/dugout/app/modules/lineup/application/parsers"
	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
	"github.com/Black-And-White-Club/dugout/internal/testutils"
	"github.com/stretchr/testify/require"
)

func TestBuildLineup_RandomRosters(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		gen := testutils.NewTestDataGenerator(seed)
		hitters := gen.GenerateHitters(30)
		original := testutils.CloneRows(hitters)

		lineup := BuildLineup(hitters, nil)

		best := make(map[string]float64)
		for _, h := range original {
			pos := h[lineuptypes.ColPos]
			if s := ScorePlayer(h, nil); s > best[pos] {
				best[pos] = s
			}
		}

		require.Len(t, lineup, len(best), "seed %d", gen.Seed())
		seen := make(map[string]bool)
		for _, row := range lineup {
			pos, ok := row.Position()
			require.True(t, ok)
			require.False(t, seen[pos], "seed %d: position %s repeated", gen.Seed(), pos)
			seen[pos] = true
			require.Equal(t, FormatScore(best[pos]), row[lineuptypes.ColScore], "seed %d", gen.Seed())
		}
	}
}

func TestBuildRotation_RandomRosters(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		gen := testutils.NewTestDataGenerator(seed)
		n := int(seed % 6)
		pitchers := gen.GeneratePitchers(n)

		rotation := BuildRotation(pitchers)

		require.Len(t, rotation, min(RotationSize, n), "seed %d", gen.Seed())
		for i := 1; i < len(rotation); i++ {
			require.LessOrEqual(t, rotation[i-1].ERA(), rotation[i].ERA(), "seed %d", gen.Seed())
		}
		for _, r := range rotation {
			for _, p := range pitchers {
				if !containsRow(rotation, p) {
					require.LessOrEqual(t, r.ERA(), p.ERA(), "seed %d: %s left out", gen.Seed(), p.Name())
				}
			}
		}
	}
}

func TestLineupService_TextMatchesDirectSelection(t *testing.T) {
	svc, _ := newTestService(t, parsers.NewFactory())
	ctx := context.Background()

	for seed := int64(1); seed <= 10; seed++ {
		gen := testutils.NewTestDataGenerator(seed)
		roster := gen.GenerateRoster(testutils.RosterOptions{MyHitters: 20, MyPitchers: 8, OppHitters: 5, OppPitchers: 3})
		texts := testutils.ToTexts(roster)

		fromText, err := svc.SelectFromText(ctx, texts)
		require.NoError(t, err)
		again, err := svc.SelectFromText(ctx, texts)
		require.NoError(t, err)
		direct, err := svc.Select(ctx, roster)
		require.NoError(t, err)

		require.True(t, fromText.IsSuccess(), "seed %d", gen.Seed())
		require.Equal(t, fromText.Success.Lineup, again.Success.Lineup, "seed %d", gen.Seed())
		require.Equal(t, fromText.Success.Rotation, again.Success.Rotation, "seed %d", gen.Seed())
		require.Equal(t, lineupSummary(direct.Success.Lineup), lineupSummary(fromText.Success.Lineup), "seed %d", gen.Seed())
		require.Equal(t, rotationSummary(direct.Success.Rotation), rotationSummary(fromText.Success.Rotation), "seed %d", gen.Seed())
	}
}

func containsRow(rows []lineuptypes.Row, target lineuptypes.Row) bool {
	for _, r := range rows {
		if r.Name() == target.Name() && r[lineuptypes.ColERA] == target[lineuptypes.ColERA] {
			return true
		}
	}
	return false
}
