package parsers

import (
	"bytes"
	"fmt"

	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
	"github.com/xuri/excelize/v2"
)

// XLSXParser parses workbooks with one sheet per role, e.g. "MY_HITTERS",
// "Opp_Pitchers 2024". Sheets whose names match no role are ignored.
type XLSXParser struct{}

// NewXLSXParser creates a new XLSX parser
func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

// Parse parses workbook bytes into a roster.
func (p *XLSXParser) Parse(data []byte) (*lineuptypes.Roster, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	return parseXLSXCore(data)
}

// parseXLSXCore contains the workbook logic shared by XLSXParser and the
// CSVParser fallback for misnamed files.
func parseXLSXCore(data []byte) (*lineuptypes.Roster, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableWorkbook, err)
	}
	defer f.Close()

	roster := &lineuptypes.Roster{}
	for _, sheetName := range f.GetSheetList() {
		role, ok := roleForSheet(sheetName)
		if !ok {
			continue
		}

		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
		}
		roster.Append(role, sheetRows(rows)...)
	}

	return roster, nil
}

// sheetRows treats the first non-blank row as the header. Short rows are
// padded with blanks; cells past the header are dropped.
func sheetRows(rows [][]string) []lineuptypes.Row {
	var header []string
	out := []lineuptypes.Row{}
	for _, row := range rows {
		if isBlankRecord(row) {
			continue
		}
		if header == nil {
			header = trimAll(row)
			continue
		}
		out = append(out, buildRow(header, row))
	}
	return out
}
