// Package export renders the ledger's tabular projection as an XLSX
// workbook for accounting hand-off.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"declascan/internal/ledger"
)

// Service is a tiny façade over the ledger that produces XLSX bytes.
type Service struct {
	ledger *ledger.Ledger
	logger *slog.Logger
}

func NewService(led *ledger.Ledger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{ledger: led, logger: logger}
}

// HistoryXLSX returns the full tabular history (header row included) as an
// XLSX workbook. An empty ledger yields a workbook with just the sheet.
func (s *Service) HistoryXLSX() ([]byte, error) {
	start := time.Now()

	rows, err := s.ledger.TabularSnapshot()
	if err != nil {
		return nil, fmt.Errorf("snapshot tabular history: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "History"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet so the workbook opens on History.
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// Widen the meta columns; field columns keep the default.
	_ = f.SetColWidth(sheet, "A", "A", 38) // extraction id
	_ = f.SetColWidth(sheet, "B", "B", 20) // timestamp
	_ = f.SetColWidth(sheet, "C", "C", 28) // source file

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	s.logger.Info("history export built",
		"rows", len(rows),
		"bytes", buf.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
