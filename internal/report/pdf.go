package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/t4p/competition-toolkit/pkg/constants"
)

const pdfContentWidth = 190.0 // A4 width minus default margins, in mm

// PDF renders the document as a single-column A4 PDF.
func (d Document) PDF() ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(d.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, tr("Generated "+d.GeneratedAt.Format(constants.ReportTimeLayout)), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	for _, section := range d.Sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(section.Heading), "", 1, "L", false, 0, "")

		switch {
		case len(section.KeyValues) > 0:
			for _, kv := range section.KeyValues {
				pdf.SetFont("Helvetica", "B", 10)
				pdf.CellFormat(60, 6, tr(kv.Key), "", 0, "L", false, 0, "")
				pdf.SetFont("Helvetica", "", 10)
				pdf.CellFormat(0, 6, tr(kv.Value), "", 1, "L", false, 0, "")
			}
		case section.Table != nil:
			renderPDFTable(pdf, tr, section.Table)
		case len(section.List) > 0:
			pdf.SetFont("Helvetica", "", 10)
			for i, item := range section.List {
				pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, item)), "", "L", false)
			}
		case section.Text != "":
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 6, tr(section.Text), "", "L", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPDFTable(pdf *fpdf.Fpdf, tr func(string) string, table *Table) {
	if len(table.Header) == 0 {
		return
	}
	colWidth := pdfContentWidth / float64(len(table.Header))

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, cell := range table.Header {
		pdf.CellFormat(colWidth, 7, tr(cell), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range table.Rows {
		for _, cell := range row {
			pdf.CellFormat(colWidth, 6, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
