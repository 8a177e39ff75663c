package lineupservice

import (
	"bytes"
	"context"
	"fmt"

	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
	"github.com/xuri/excelize/v2"
)

// Sheet names written by ExportWorkbook.
const (
	LineupSheet   = "Lineup"
	RotationSheet = "Rotation"
)

var (
	lineupColumns   = []string{lineuptypes.ColPos, lineuptypes.ColName, lineuptypes.ColScore, lineuptypes.ColAvg, lineuptypes.ColHR, lineuptypes.ColRBI, lineuptypes.ColOBP}
	rotationColumns = []string{lineuptypes.ColName, lineuptypes.ColERA}
)

// ExportWorkbook writes the lineup and rotation to an XLSX workbook.
func (s *LineupService) ExportWorkbook(ctx context.Context, sel lineuptypes.Selection) ([]byte, error) {
	return runArtifact(s, ctx, "ExportWorkbook", sel, func() ([]byte, error) {
		return exportWorkbook(sel)
	})
}

func exportWorkbook(sel lineuptypes.Selection) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), LineupSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(RotationSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet %q: %w", RotationSheet, err)
	}

	if err := writeSheet(f, LineupSheet, sel.Lineup, lineupColumns); err != nil {
		return nil, err
	}
	if err := writeSheet(f, RotationSheet, sel.Rotation, rotationColumns); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, rows []lineuptypes.Row, preferred []string) error {
	cols := lineuptypes.Columns(rows, preferred...)
	if len(rows) == 0 {
		cols = preferred
	}

	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+2)
		if err != nil {
			return err
		}
		cells := make([]interface{}, len(cols))
		for i, c := range cols {
			cells[i] = row[c]
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, idx+1, err)
		}
	}
	return nil
}
