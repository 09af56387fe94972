package transfer

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/jeanpaul/studentdb/internal/student"
)

// SheetName is the worksheet written on export and preferred on import.
const SheetName = "Students"

var header = []string{"ID", "First Name", "Last Name", "Course", "Grade"}

// WriteXLSX writes records to a workbook with one header row.
func WriteXLSX(path string, records []student.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{r.ID, r.FirstName, r.LastName, r.Course, r.Grade}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// ReadXLSX reads student rows from the Students sheet, or the first sheet when
// there is none. A leading header row is skipped; the ID column is ignored.
func ReadXLSX(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := SheetName
	if idx, _ := f.GetSheetIndex(SheetName); idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.Errorf("%s: workbook has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	var out []Row
	for i, cells := range rows {
		if i == 0 && len(cells) > 0 && strings.EqualFold(strings.TrimSpace(cells[0]), "id") {
			continue
		}
		// Pad row if necessary
		for len(cells) < len(header) {
			cells = append(cells, "")
		}
		if strings.Join(cells, "") == "" {
			continue
		}
		out = append(out, Row{
			Source:    fmt.Sprintf("%s:%s!%d", path, sheet, i+1),
			FirstName: cells[1],
			LastName:  cells[2],
			Course:    cells[3],
			Grade:     cells[4],
		})
	}
	return out, nil
}
