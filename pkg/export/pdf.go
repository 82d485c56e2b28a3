// pkg/export/pdf.go

package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/invoice-builder/pkg/invoice"
	"github.com/jung-kurt/gofpdf"
)

const (
	pageBottom  = 270.0
	rowHeight   = 8.0
	leftMargin  = 20.0
	rightMargin = 190.0

	// item table columns
	colItem   = 20.0
	colQty    = 80.0
	colPrice  = 140.0
	colAmount = 180.0
)

// PDFRenderer lays the invoice out on A4 pages.
type PDFRenderer struct {
	// ShowTax adds the tax line to the totals block.
	ShowTax bool
}

func (PDFRenderer) ContentType() string { return "application/pdf" }

func (PDFRenderer) Extension() string { return ".pdf" }

func (r PDFRenderer) Render(w io.Writer, inv invoice.Invoice) error {
	pdf := r.document(inv)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (r PDFRenderer) document(inv invoice.Invoice) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(leftMargin, 12)
	pdf.CellFormat(rightMargin-leftMargin, 10, "Invoice", "", 1, "C", false, 0, "")

	// Invoice details
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(leftMargin, 40, tr("Invoice Number: "+inv.InvoiceNumber))
	pdf.Text(leftMargin, 50, tr("Cashier: "+inv.CashierName))
	pdf.Text(leftMargin, 60, tr("Customer: "+inv.CustomerName))
	if !inv.InvoiceDate.IsZero() {
		pdf.Text(140, 40, "Date: "+inv.DisplayDate())
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(leftMargin, 65, rightMargin, 65)

	y := 75.0
	header := func() {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(colItem, y, "ITEM")
		pdf.Text(colQty, y, "QTY")
		pdf.Text(colPrice, y, "PRICE")
		pdf.Text(colAmount, y, "AMOUNT")
		y += rowHeight
		pdf.SetLineWidth(0.2)
		pdf.Line(leftMargin, y, rightMargin, y)
		y += rowHeight
		pdf.SetFont("Helvetica", "", 12)
	}
	header()

	for _, it := range inv.Items {
		if y > pageBottom {
			pdf.AddPage()
			y = 20
			header()
		}
		pdf.Text(colItem, y, tr(it.Description))
		pdf.Text(colQty, y, strconv.FormatInt(it.Quantity, 10))
		pdf.Text(colPrice, y, invoice.FormatAmount(it.UnitCost))
		pdf.Text(colAmount, y, invoice.FormatAmount(it.Amount))
		y += rowHeight
	}

	pdf.SetLineWidth(0.5)
	pdf.Line(leftMargin, y, rightMargin, y)
	y += 10
	if y > pageBottom-4*rowHeight {
		pdf.AddPage()
		y = 20
	}

	pdf.SetFont("Helvetica", "B", 12)
	lines := []string{"Subtotal: " + invoice.FormatAmount(inv.SubTotal)}
	lines = append(lines, fmt.Sprintf("Discount (%s%%): %s", invoice.FormatPercent(inv.DiscountPercent), invoice.FormatAmount(inv.DiscountAmount)))
	if r.ShowTax {
		lines = append(lines, fmt.Sprintf("Tax (%s%%): %s", invoice.FormatPercent(inv.TaxPercent), invoice.FormatAmount(inv.TaxAmount)))
	}
	lines = append(lines, "Total: "+invoice.FormatAmount(inv.Total))
	for _, l := range lines {
		pdf.Text(leftMargin, y, tr(l))
		y += rowHeight
	}
	return pdf
}
