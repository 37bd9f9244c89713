package anonymize

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"radtools/internal/dicom"
)

// indexHeader is the review-index header row: the fixed tag columns plus
// the source path.
func indexHeader() []string {
	return append(append([]string{}, dicom.IndexColumns...), "path")
}

// WriteIndexCSV writes the review index as CSV.
func (d *Directory) WriteIndexCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(indexHeader()); err != nil {
		return fmt.Errorf("could not write index header: %w", err)
	}
	for _, info := range d.Index {
		if err := cw.Write(info.Row()); err != nil {
			return fmt.Errorf("could not write index row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteIndexWorkbook writes the review index as a single-sheet workbook.
func (d *Directory) WriteIndexWorkbook(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "index"
	f.SetSheetName("Sheet1", sheet)

	header := indexHeader()
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, info := range d.Index {
		if err := setRow(f, sheet, i+2, info.Row()); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save workbook: %w", err)
	}
	return nil
}

// setRow writes one string row at the given 1-based row number.
func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("could not address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("could not write row %d: %w", row, err)
	}
	return nil
}
