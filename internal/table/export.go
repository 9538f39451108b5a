package table

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes t as a single-sheet workbook: a header row with the column
// labels, then one row per table row. Null cells are left empty.
func WriteXLSX[K comparable](w io.Writer, sheet string, t Table[K]) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, label := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, label); err != nil {
			return fmt.Errorf("write header %q: %w", label, err)
		}
	}

	for r, row := range t.Rows {
		for i, c := range row.Cells {
			if !c.Valid {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, c.Value); err != nil {
				return fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	return f.Write(w)
}
