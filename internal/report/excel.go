package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const excelSheet = "Report"

// XLSX renders the document as a single-sheet workbook, stacking sections
// vertically the same way the CSV rendering does.
func (d Document) XLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return nil, fmt.Errorf("failed to prepare workbook: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare workbook styles: %w", err)
	}
	headingStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare workbook styles: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare workbook styles: %w", err)
	}

	row := 1
	if err := setStyledCell(f, 1, row, d.Title, titleStyle); err != nil {
		return nil, err
	}
	row += 2

	for _, section := range d.Sections {
		if err := setStyledCell(f, 1, row, section.Heading, headingStyle); err != nil {
			return nil, err
		}
		row++

		switch {
		case len(section.KeyValues) > 0:
			for _, kv := range section.KeyValues {
				if err := setStyledCell(f, 1, row, kv.Key, boldStyle); err != nil {
					return nil, err
				}
				if err := setCell(f, 2, row, kv.Value); err != nil {
					return nil, err
				}
				row++
			}
		case section.Table != nil:
			for col, cell := range section.Table.Header {
				if err := setStyledCell(f, col+1, row, cell, boldStyle); err != nil {
					return nil, err
				}
			}
			row++
			for _, tableRow := range section.Table.Rows {
				for col, cell := range tableRow {
					if err := setCell(f, col+1, row, cell); err != nil {
						return nil, err
					}
				}
				row++
			}
		case len(section.List) > 0:
			for i, item := range section.List {
				if err := setCell(f, 1, row, fmt.Sprintf("%d. %s", i+1, item)); err != nil {
					return nil, err
				}
				row++
			}
		case section.Text != "":
			if err := setCell(f, 1, row, section.Text); err != nil {
				return nil, err
			}
			row++
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to address cell: %w", err)
	}
	if err := f.SetCellValue(excelSheet, cell, value); err != nil {
		return fmt.Errorf("failed to write cell %s: %w", cell, err)
	}
	return nil
}

func setStyledCell(f *excelize.File, col, row int, value string, style int) error {
	if err := setCell(f, col, row, value); err != nil {
		return err
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to address cell: %w", err)
	}
	if err := f.SetCellStyle(excelSheet, cell, cell, style); err != nil {
		return fmt.Errorf("failed to style cell %s: %w", cell, err)
	}
	return nil
}
