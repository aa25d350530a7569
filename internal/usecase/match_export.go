package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"strings"
	"time"

	"go-matching-backend/internal/domain"
	"go-matching-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"RANK", "SUBJECT ID", "NAME", "SCORE",
	"SKILLS", "LOCATION", "EXPERIENCE", "VISA", "SALARY",
	"REASONS",
}

// Export runs the match and renders it as a spreadsheet for placement agents.
func (u *matchUsecase) Export(ctx context.Context, req domain.MatchExportRequest) ([]byte, string, error) {
	format := req.Format
	if format == "" {
		format = domain.ExportFormatXLSX
	}
	if format != domain.ExportFormatXLSX && format != domain.ExportFormatCSV {
		return nil, "", apperror.BadRequest(fmt.Sprintf("unsupported export format: %s", req.Format))
	}

	if maxRows := u.opts.ExportMaxRows; maxRows > 0 && (req.Match.Limit == 0 || req.Match.Limit > maxRows) {
		req.Match.Limit = maxRows
	}

	resp, err := u.Match(ctx, req.Match)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("matches_%s_%s_%s.%s",
		req.Match.Mode, sanitizeFilename(req.Match.SubjectID), time.Now().Format("20060102_150405"), format)

	var data []byte
	switch format {
	case domain.ExportFormatCSV:
		data, err = exportMatchesCSV(resp.Matches)
	default:
		data, err = exportMatchesExcel(resp.Matches)
	}
	if err != nil {
		return nil, "", err
	}
	return data, filename, nil
}

func exportRow(rank int, m domain.MatchResult) []interface{} {
	return []interface{}{
		rank, m.SubjectID, m.SubjectName, m.Score,
		roundTenth(m.Breakdown.Skills), roundTenth(m.Breakdown.Location), roundTenth(m.Breakdown.Experience),
		roundTenth(m.Breakdown.Visa), roundTenth(m.Breakdown.Salary),
		strings.Join(m.Reasons, "; "),
	}
}

func exportMatchesExcel(matches []domain.MatchResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Matches"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	// Dark blue header, white bold text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, m := range matches {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		row := exportRow(rowIdx+1, m)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", rowIdx+1, err)
		}
	}

	f.SetColWidth(sheetName, "A", "I", 14)
	f.SetColWidth(sheetName, "J", "J", 60)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportMatchesCSV(matches []domain.MatchResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for i, m := range matches {
		row := exportRow(i+1, m)
		record := make([]string, len(row))
		for j, v := range row {
			record[j] = fmt.Sprint(v)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}
	return buf.Bytes(), nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// sanitizeFilename keeps ids safe for a Content-Disposition header
func sanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
