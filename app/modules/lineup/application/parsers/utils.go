package parsers

import (
	"bytes"
	"strings"

	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
)

// sectionColumnNames are the accepted headers for the role discriminator column.
var sectionColumnNames = []string{"Type", "SECTION"}

// roleAliases maps normalised discriminator values to roles.
var roleAliases = map[string]lineuptypes.Role{
	"myhitter":        lineuptypes.RoleMyHitters,
	"mypitcher":       lineuptypes.RoleMyPitchers,
	"opphitter":       lineuptypes.RoleOppHitters,
	"opppitcher":      lineuptypes.RoleOppPitchers,
	"opponenthitter":  lineuptypes.RoleOppHitters,
	"opponentpitcher": lineuptypes.RoleOppPitchers,
}

// sheetKeywords maps workbook sheet-name keywords to roles, checked in order.
var sheetKeywords = []struct {
	keyword string
	role    lineuptypes.Role
}{
	{"MY_HITTER", lineuptypes.RoleMyHitters},
	{"MY_PITCHER", lineuptypes.RoleMyPitchers},
	{"OPP_HITTER", lineuptypes.RoleOppHitters},
	{"OPP_PITCHER", lineuptypes.RoleOppPitchers},
}

var zipSignature = []byte("PK\x03\x04")

// normalizeName lowercases and strips spaces, underscores and hyphens.
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// findColumn searches for a column by multiple possible names (case-insensitive)
// Removes spaces, underscores, and hyphens for normalization
func findColumn(header []string, possibleNames []string) int {
	for i, col := range header {
		colNorm := normalizeName(col)
		for _, name := range possibleNames {
			if colNorm == normalizeName(name) {
				return i
			}
		}
	}
	return -1
}

// roleForSection resolves a discriminator value to a role.
func roleForSection(value string) (lineuptypes.Role, bool) {
	norm := normalizeName(value)
	if norm == "" {
		return "", false
	}
	if role, ok := roleAliases[norm]; ok {
		return role, true
	}
	role, ok := roleAliases[strings.TrimSuffix(norm, "s")]
	return role, ok
}

// roleForSheet matches a sheet name against the role keywords.
func roleForSheet(sheetName string) (lineuptypes.Role, bool) {
	upper := strings.ToUpper(sheetName)
	for _, k := range sheetKeywords {
		if strings.Contains(upper, k.keyword) {
			return k.role, true
		}
	}
	return "", false
}

// preprocessCSVData strips a UTF-8 BOM, normalises line endings and
// auto-detects the delimiter by counting commas vs tabs in the first 5 lines.
func preprocessCSVData(data []byte) (string, rune) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	cleaned := strings.ReplaceAll(string(data), "\r\n", "\n")

	lines := strings.Split(cleaned, "\n")
	sampleSize := min(5, len(lines))

	commaCount, tabCount := 0, 0
	for i := 0; i < sampleSize; i++ {
		commaCount += strings.Count(lines[i], ",")
		tabCount += strings.Count(lines[i], "\t")
	}

	delimiter := ','
	if tabCount > commaCount {
		delimiter = '\t'
	}
	return cleaned, delimiter
}

// buildRow zips a header with values. Values are trimmed; headers are trimmed
// and blank headers are skipped.
func buildRow(header, values []string) lineuptypes.Row {
	row := make(lineuptypes.Row, len(header))
	for i, h := range header {
		if h == "" {
			continue
		}
		v := ""
		if i < len(values) {
			v = strings.TrimSpace(values[i])
		}
		row[h] = v
	}
	return row
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func isBlankRecord(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func looksLikeWorkbook(data []byte) bool {
	return bytes.HasPrefix(data, zipSignature)
}
