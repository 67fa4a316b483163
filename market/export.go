package market

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "Forecast"

var header = []interface{}{"Crop", "Category", "Unit", "Date", "Price", "Trend"}

// WriteXLSX writes one row per forecast point as a spreadsheet.
func WriteXLSX(w io.Writer, entries []Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return errors.Wrap(err, "rename sheet")
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "write header")
	}

	row := 2
	for _, e := range entries {
		for _, p := range e.Points {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}

			values := []interface{}{
				e.Crop,
				string(e.Category),
				e.Unit,
				p.Date.Format("2006-01-02"),
				p.Price.InexactFloat64(),
				string(e.Trend),
			}
			if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
				return errors.Wrapf(err, "write row %d", row)
			}
			row++
		}
	}

	return f.Write(w)
}
