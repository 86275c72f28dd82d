package main

import (
	"strconv"

	"github.com/go-pdf/fpdf"
)

const reportTitle = "Consolidado de pedidos"

// writeMatrixPDF renders the report as a single table grouped by buyer: an
// inverted full-width header row with the buyer name, then that buyer's
// product and quantity rows. Page breaks are left to the layout engine.
func writeMatrixPDF(m *Matrix, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(reportTitle), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, tr(m.DemandName), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, buyer := range m.Buyers {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(40, 40, 40)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(0, 8, tr(buyer), "1", 1, "L", true, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		for _, product := range m.Products {
			qty, ok := m.Cell(product, buyer)
			if !ok {
				continue
			}
			pdf.CellFormat(150, 7, tr(product), "1", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, formatQuantity(qty), "1", 1, "R", false, 0, "")
		}
	}

	return pdf.OutputFileAndClose(path)
}

func formatQuantity(qty float64) string {
	return strconv.FormatFloat(qty, 'f', -1, 64)
}
