package parsers

import (
	"strings"

	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
)

// DefaultDelimiter is used for pasted stats copied out of a spreadsheet.
const DefaultDelimiter = "\t"

// TextParser parses pasted, delimited stat blocks, one per role.
type TextParser struct {
	delimiter string
}

// NewTextParser creates a TextParser. An empty delimiter means tab.
func NewTextParser(delimiter string) *TextParser {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return &TextParser{delimiter: delimiter}
}

// Parse builds a roster from one text block per role. Missing roles yield empty lists.
func (p *TextParser) Parse(texts map[lineuptypes.Role]string) *lineuptypes.Roster {
	roster := &lineuptypes.Roster{}
	for _, role := range lineuptypes.Roles {
		roster.Append(role, p.ParseBlock(texts[role])...)
	}
	return roster
}

// ParseBlock parses one header-plus-rows block. Lines whose field count
// differs from the header are skipped, and fewer than two non-empty lines
// yields no rows.
func (p *TextParser) ParseBlock(text string) []lineuptypes.Row {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		return []lineuptypes.Row{}
	}

	header := trimAll(strings.Split(lines[0], p.delimiter))
	rows := make([]lineuptypes.Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := strings.Split(line, p.delimiter)
		if len(values) != len(header) {
			continue
		}
		rows = append(rows, buildRow(header, values))
	}
	return rows
}
