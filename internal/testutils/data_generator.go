package testutils

import (
	"fmt"
	"strings"
	"time"

	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
	"github.com/brianvoe/gofakeit/v7"
)

// Positions hitters are drawn from.
var Positions = []string{"C", "1B", "2B", "3B", "SS", "LF", "CF", "RF", "DH"}

var (
	HitterColumns  = []string{"Name", "POS", "Avg", "HR", "RBI", "OBP"}
	PitcherColumns = []string{"Name", "ERA", "WHIP", "SO", "W"}
)

// TestDataGenerator builds randomised but reproducible stat tables.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed, for reproducing a failing run.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// GenerateHitters creates count hitters spread over positions (Positions when empty).
func (g *TestDataGenerator) GenerateHitters(count int, positions ...string) []lineuptypes.Row {
	if len(positions) == 0 {
		positions = Positions
	}
	rows := make([]lineuptypes.Row, count)
	for i := range rows {
		rows[i] = lineuptypes.Row{
			"Name": g.faker.Name(),
			"POS":  positions[g.faker.Number(0, len(positions)-1)],
			"Avg":  fmt.Sprintf("%.3f", g.faker.Float64Range(0.150, 0.350)),
			"HR":   fmt.Sprint(g.faker.Number(0, 45)),
			"RBI":  fmt.Sprint(g.faker.Number(0, 120)),
			"OBP":  fmt.Sprintf("%.3f", g.faker.Float64Range(0.200, 0.450)),
		}
	}
	return rows
}

// GeneratePitchers creates count pitchers. Roughly one in ten gets an
// unreadable ERA.
func (g *TestDataGenerator) GeneratePitchers(count int) []lineuptypes.Row {
	rows := make([]lineuptypes.Row, count)
	for i := range rows {
		era := fmt.Sprintf("%.2f", g.faker.Float64Range(1.50, 6.50))
		if g.faker.Number(1, 10) == 1 {
			era = g.faker.RandomString([]string{"", "-", "n/a", "INF"})
		}
		rows[i] = lineuptypes.Row{
			"Name": g.faker.Name(),
			"ERA":  era,
			"WHIP": fmt.Sprintf("%.2f", g.faker.Float64Range(0.80, 1.80)),
			"SO":   fmt.Sprint(g.faker.Number(0, 250)),
			"W":    fmt.Sprint(g.faker.Number(0, 20)),
		}
	}
	return rows
}

// RosterOptions sizes a generated roster.
type RosterOptions struct {
	MyHitters   int
	MyPitchers  int
	OppHitters  int
	OppPitchers int
}

// GenerateRoster creates a roster with the requested list sizes.
func (g *TestDataGenerator) GenerateRoster(opts RosterOptions) *lineuptypes.Roster {
	return &lineuptypes.Roster{
		MyHitters:   g.GenerateHitters(opts.MyHitters),
		MyPitchers:  g.GeneratePitchers(opts.MyPitchers),
		OppHitters:  g.GenerateHitters(opts.OppHitters),
		OppPitchers: g.GeneratePitchers(opts.OppPitchers),
	}
}

// ToDelimited renders rows as a header line plus one line per row.
func ToDelimited(rows []lineuptypes.Row, columns []string, delimiter string) string {
	var b strings.Builder
	b.WriteString(strings.Join(columns, delimiter))
	b.WriteByte('\n')
	for _, r := range rows {
		values := make([]string, len(columns))
		for i, c := range columns {
			values[i] = r[c]
		}
		b.WriteString(strings.Join(values, delimiter))
		b.WriteByte('\n')
	}
	return b.String()
}

// ToTexts renders a roster as the four pasted blocks.
func ToTexts(roster *lineuptypes.Roster) map[lineuptypes.Role]string {
	return map[lineuptypes.Role]string{
		lineuptypes.RoleMyHitters:   ToDelimited(roster.MyHitters, HitterColumns, "\t"),
		lineuptypes.RoleMyPitchers:  ToDelimited(roster.MyPitchers, PitcherColumns, "\t"),
		lineuptypes.RoleOppHitters:  ToDelimited(roster.OppHitters, HitterColumns, "\t"),
		lineuptypes.RoleOppPitchers: ToDelimited(roster.OppPitchers, PitcherColumns, "\t"),
	}
}

// CloneRows deep-copies rows so a test can compare before and after.
func CloneRows(rows []lineuptypes.Row) []lineuptypes.Row {
	out := make([]lineuptypes.Row, len(rows))
	for i, r := range rows {
		c := make(lineuptypes.Row, len(r))
		for k, v := range r {
			c[k] = v
		}
		out[i] = c
	}
	return out
}
