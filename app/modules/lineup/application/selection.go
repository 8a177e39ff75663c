package lineupservice

import (
	"cmp"
	"math"
	"slices"
	"strconv"

	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
	"github.com/shopspring/decimal"
)

// RotationSize is the number of starters kept in the rotation.
const RotationSize = 3

// ScorePlayer rates a hitter. oppPitcher is accepted for matchup-aware scoring
// but is not used by the formula.
func ScorePlayer(hitter, oppPitcher lineuptypes.Row) float64 {
	_ = oppPitcher
	return hitter.Avg()*100 +
		float64(hitter.HR())*5 +
		float64(hitter.RBI())*2 +
		hitter.OBP()*100
}

// FormatScore rounds a score to one decimal place for display. Scores that
// overflowed to Inf or NaN are printed as such.
func FormatScore(score float64) string {
	if math.IsInf(score, 0) || math.IsNaN(score) {
		return strconv.FormatFloat(score, 'f', 1, 64)
	}
	return decimal.NewFromFloat(score).StringFixed(1)
}

// BuildLineup keeps the highest-scoring hitter at each position and writes
// its rounded score onto the row. Positions come back in first-seen order and
// ties go to the earlier row. Hitters without a POS are skipped.
func BuildLineup(myHitters, oppPitchers []lineuptypes.Row) []lineuptypes.Row {
	var oppPitcher lineuptypes.Row
	if len(oppPitchers) > 0 {
		oppPitcher = oppPitchers[0]
	}

	type best struct {
		row   lineuptypes.Row
		score float64
	}
	var positions []string
	byPos := make(map[string]*best)

	for _, h := range myHitters {
		pos, ok := h.Position()
		if !ok {
			continue
		}
		score := ScorePlayer(h, oppPitcher)
		b, seen := byPos[pos]
		if !seen {
			positions = append(positions, pos)
			byPos[pos] = &best{row: h, score: score}
			continue
		}
		if score > b.score {
			b.row, b.score = h, score
		}
	}

	lineup := make([]lineuptypes.Row, 0, len(positions))
	for _, pos := range positions {
		b := byPos[pos]
		b.row[lineuptypes.ColScore] = FormatScore(b.score)
		lineup = append(lineup, b.row)
	}
	return lineup
}

// BuildRotation returns up to RotationSize pitchers ordered by ERA, lowest
// first. Missing or unreadable ERAs sort last; equal ERAs keep input order.
// The input slice is left as is.
func BuildRotation(myPitchers []lineuptypes.Row) []lineuptypes.Row {
	sorted := make([]lineuptypes.Row, len(myPitchers))
	copy(sorted, myPitchers)
	slices.SortStableFunc(sorted, func(a, b lineuptypes.Row) int {
		return cmp.Compare(a.ERA(), b.ERA())
	})
	return sorted[:min(RotationSize, len(sorted))]
}

// Validate rejects a roster missing any list selection depends on.
// Opposing hitters are never required.
func Validate(roster *lineuptypes.Roster) error {
	switch {
	case roster == nil || len(roster.MyHitters) == 0:
		return ErrNoHitters
	case len(roster.MyPitchers) == 0:
		return ErrNoPitchers
	case len(roster.OppPitchers) == 0:
		return ErrNoOppPitchers
	}
	return nil
}
