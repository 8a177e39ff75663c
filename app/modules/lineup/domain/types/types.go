package lineuptypes

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Column names read by selection. Everything else on a Row is carried through untouched.
const (
	ColName  = "Name"
	ColPos   = "POS"
	ColAvg   = "Avg"
	ColHR    = "HR"
	ColRBI   = "RBI"
	ColOBP   = "OBP"
	ColERA   = "ERA"
	ColScore = "Score"
)

// WorstERA sorts pitchers with a missing or unreadable ERA behind everyone else.
const WorstERA = 99.0

// Row is one parsed line of player stats keyed by column header.
type Row map[string]string

// Get returns the trimmed value for a column and whether the column is present.
func (r Row) Get(col string) (string, bool) {
	v, ok := r[col]
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Name returns the player's display name, if any.
func (r Row) Name() string {
	v, _ := r.Get(ColName)
	return v
}

// Position returns the POS value. ok is false when the column is missing or blank.
func (r Row) Position() (string, bool) {
	v, ok := r.Get(ColPos)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r Row) Avg() float64 { return ToFloat(r[ColAvg]) }
func (r Row) HR() int      { return ToInt(r[ColHR]) }
func (r Row) RBI() int     { return ToInt(r[ColRBI]) }
func (r Row) OBP() float64 { return ToFloat(r[ColOBP]) }

// ERA returns the pitcher's earned-run average, WorstERA when it can't be read.
func (r Row) ERA() float64 { return ToFloatOr(r[ColERA], WorstERA) }

// Score returns the persisted lineup score, 0 if the row was never scored.
func (r Row) Score() float64 { return ToFloat(r[ColScore]) }

// Columns returns the union of the rows' keys: preferred columns that are
// present come first, the rest follow in sorted order.
func Columns(rows []Row, preferred ...string) []string {
	seen := make(map[string]bool)
	for _, r := range rows {
		for k := range r {
			seen[k] = true
		}
	}

	cols := make([]string, 0, len(seen))
	for _, p := range preferred {
		if seen[p] {
			cols = append(cols, p)
			delete(seen, p)
		}
	}
	rest := make([]string, 0, len(seen))
	for k := range seen {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(cols, rest...)
}

// Role identifies which of the four input lists a row belongs to.
type Role string

const (
	RoleMyHitters   Role = "my_hitters"
	RoleMyPitchers  Role = "my_pitchers"
	RoleOppHitters  Role = "opp_hitters"
	RoleOppPitchers Role = "opp_pitchers"
)

// Roles lists every role in form order.
var Roles = []Role{RoleMyHitters, RoleMyPitchers, RoleOppHitters, RoleOppPitchers}

func (r Role) String() string { return string(r) }

// Roster holds the four role-keyed row lists produced by ingestion.
type Roster struct {
	MyHitters   []Row `json:"my_hitters"`
	MyPitchers  []Row `json:"my_pitchers"`
	OppHitters  []Row `json:"opp_hitters"`
	OppPitchers []Row `json:"opp_pitchers"`
}

// Rows returns the list stored for role.
func (r *Roster) Rows(role Role) []Row {
	switch role {
	case RoleMyHitters:
		return r.MyHitters
	case RoleMyPitchers:
		return r.MyPitchers
	case RoleOppHitters:
		return r.OppHitters
	case RoleOppPitchers:
		return r.OppPitchers
	}
	return nil
}

// Append adds rows to the list for role. Unknown roles are ignored.
func (r *Roster) Append(role Role, rows ...Row) {
	switch role {
	case RoleMyHitters:
		r.MyHitters = append(r.MyHitters, rows...)
	case RoleMyPitchers:
		r.MyPitchers = append(r.MyPitchers, rows...)
	case RoleOppHitters:
		r.OppHitters = append(r.OppHitters, rows...)
	case RoleOppPitchers:
		r.OppPitchers = append(r.OppPitchers, rows...)
	}
}

// Selection is the outcome of a successful lineup run.
type Selection struct {
	ID       uuid.UUID `json:"selection_id"`
	Lineup   []Row     `json:"lineup"`
	Rotation []Row     `json:"rotation"`
}

// Failure describes a user-facing rejection: a parse failure or an empty required list.
type Failure struct {
	ID      uuid.UUID `json:"selection_id"`
	Message string    `json:"error"`
	Err     error     `json:"-"`
}
