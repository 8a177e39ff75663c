package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
)

// CSVParser parses a single delimited file whose rows carry a Type/SECTION
// column naming the role each row belongs to.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse parses CSV (or TSV) data into a roster.
func (p *CSVParser) Parse(data []byte) (*lineuptypes.Roster, error) {
	// Workbooks uploaded with a .csv name still open as workbooks.
	if looksLikeWorkbook(data) {
		return parseXLSXCore(data)
	}

	cleaned, delimiter := preprocessCSVData(data)
	reader := csv.NewReader(strings.NewReader(cleaned))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		// Skip empty rows
		if isBlankRecord(record) {
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	header := trimAll(records[0])
	sectionIdx := findColumn(header, sectionColumnNames)
	if sectionIdx < 0 {
		return nil, fmt.Errorf("%w; found columns %v", ErrMissingSectionColumn, header)
	}

	roster := &lineuptypes.Roster{}
	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		role, ok := roleForSection(record[sectionIdx])
		if !ok {
			continue
		}
		roster.Append(role, buildRow(header, record))
	}

	return roster, nil
}
