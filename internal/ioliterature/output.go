package ioliterature

import (
	"encoding/csv"
	"io"
	"log/slog"

	"github.com/gnames/gbifreport/internal/iofs"
	"github.com/gnames/gbifreport/pkg/literature"
	"github.com/xuri/excelize/v2"
)

// titleColWidth is the width of title columns of publisher sheets.
const titleColWidth = 80

// writeWorkbook saves sheets to an XLSX file. The first sheet is active.
func writeWorkbook(path string, sheets []literature.Sheet) error {
	wb := excelize.NewFile()
	defer wb.Close()

	for i, s := range sheets {
		if err := addSheet(wb, i, s); err != nil {
			return WorkbookError(path, err)
		}
	}
	wb.SetActiveSheet(0)

	err := iofs.WriteFile(path, func(w io.Writer) error {
		return wb.Write(w)
	})
	if err != nil {
		return err
	}

	slog.Info("Workbook saved", "path", path, "sheets", len(sheets))
	return nil
}

func addSheet(wb *excelize.File, idx int, s literature.Sheet) error {
	if idx == 0 {
		if err := wb.SetSheetName(wb.GetSheetName(0), s.Name); err != nil {
			return err
		}
	} else if _, err := wb.NewSheet(s.Name); err != nil {
		return err
	}

	header := cellValues(s.Header)
	if err := wb.SetSheetRow(s.Name, "A1", &header); err != nil {
		return err
	}
	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		vals := cellValues(row)
		if err = wb.SetSheetRow(s.Name, cell, &vals); err != nil {
			return err
		}
	}

	if len(s.Header) == 1 {
		return wb.SetColWidth(s.Name, "A", "A", titleColWidth)
	}
	return nil
}

// cellValues converts a row to cell values, cutting texts longer than
// a cell can keep.
func cellValues(row []string) []any {
	res := make([]any, len(row))
	for i, v := range row {
		if rs := []rune(v); len(rs) > excelize.TotalCellChars {
			v = string(rs[:excelize.TotalCellChars])
		}
		res[i] = v
	}
	return res
}

// writeCSV saves joined literature rows.
func writeCSV(path string, rep *literature.Report) error {
	return iofs.WriteFile(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(literature.Columns); err != nil {
			return err
		}
		for _, r := range rep.Rows {
			if err := cw.Write(r.Values()); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}
