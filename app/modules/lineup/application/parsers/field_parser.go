package parsers

import (
	"fmt"
	"strings"

	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
)

// Column sets rendered by the flat-field form.
var (
	HitterColumns  = []string{"Name", "POS", "Avg", "HR", "RBI", "OBP"}
	PitcherColumns = []string{"Name", "ERA", "WHIP", "SO", "W"}
)

// Default per-section row counts for the flat-field form.
const (
	DefaultHitterRows  = 15
	DefaultPitcherRows = 10
)

// FieldLayout describes the columns and row count of one form section.
type FieldLayout struct {
	Role    lineuptypes.Role
	Columns []string
	MaxRows int
}

// FieldParser reads flat form fields named {section}_{column}_{rowIndex}.
type FieldParser struct {
	layouts []FieldLayout
}

// NewFieldParser creates a FieldParser with the standard hitter and pitcher
// columns. Non-positive row counts fall back to the defaults.
func NewFieldParser(hitterRows, pitcherRows int) *FieldParser {
	if hitterRows <= 0 {
		hitterRows = DefaultHitterRows
	}
	if pitcherRows <= 0 {
		pitcherRows = DefaultPitcherRows
	}
	return &FieldParser{layouts: []FieldLayout{
		{Role: lineuptypes.RoleMyHitters, Columns: HitterColumns, MaxRows: hitterRows},
		{Role: lineuptypes.RoleMyPitchers, Columns: PitcherColumns, MaxRows: pitcherRows},
		{Role: lineuptypes.RoleOppHitters, Columns: HitterColumns, MaxRows: hitterRows},
		{Role: lineuptypes.RoleOppPitchers, Columns: PitcherColumns, MaxRows: pitcherRows},
	}}
}

// Layouts returns the section layouts, in form order.
func (p *FieldParser) Layouts() []FieldLayout {
	return p.layouts
}

// FieldName builds the form key for one cell.
func FieldName(role lineuptypes.Role, column string, rowIndex int) string {
	return fmt.Sprintf("%s_%s_%d", role, column, rowIndex)
}

// Parse builds a roster from flat fields. Rows whose columns are all blank are omitted.
func (p *FieldParser) Parse(fields map[string]string) *lineuptypes.Roster {
	roster := &lineuptypes.Roster{}
	for _, layout := range p.layouts {
		rows := []lineuptypes.Row{}
		for i := 0; i < layout.MaxRows; i++ {
			row := make(lineuptypes.Row, len(layout.Columns))
			filled := false
			for _, col := range layout.Columns {
				v := strings.TrimSpace(fields[FieldName(layout.Role, col, i)])
				if v != "" {
					filled = true
				}
				row[col] = v
			}
			if filled {
				rows = append(rows, row)
			}
		}
		roster.Append(layout.Role, rows...)
	}
	return roster
}
