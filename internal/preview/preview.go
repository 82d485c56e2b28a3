// Package preview renders the review page shown before an invoice is
// exported.
package preview

import (
	"embed"
	"html/template"
	"io"
	"strconv"

	"github.com/invoice-builder/pkg/invoice"
)

//go:embed templates/invoice.html
var templates embed.FS

var page = template.Must(template.ParseFS(templates, "templates/invoice.html"))

type row struct {
	Name   string
	Qty    string
	Price  string
	Amount string
}

type view struct {
	InvoiceNumber   string
	Date            string
	CashierName     string
	CustomerName    string
	Rows            []row
	SubTotal        string
	DiscountPercent string
	Discount        string
	ShowTax         bool
	TaxPercent      string
	Tax             string
	Total           string
}

// Options controls presentation only; amounts are never altered.
type Options struct {
	CurrencySymbol string
	ShowTax        bool
}

// Render writes the HTML preview of inv.
func Render(w io.Writer, inv invoice.Invoice, opts Options) error {
	sym := opts.CurrencySymbol
	money := func(v float64) string { return invoice.Money(sym, invoice.FormatAmount(v)) }

	v := view{
		InvoiceNumber:   inv.InvoiceNumber,
		CashierName:     inv.CashierName,
		CustomerName:    inv.CustomerName,
		SubTotal:        money(inv.SubTotal),
		DiscountPercent: invoice.FormatPercent(inv.DiscountPercent),
		Discount:        money(inv.DiscountAmount),
		ShowTax:         opts.ShowTax,
		TaxPercent:      invoice.FormatPercent(inv.TaxPercent),
		Tax:             money(inv.TaxAmount),
		Total:           invoice.Money(sym, invoice.FormatTotal(inv.Total)),
	}
	if !inv.InvoiceDate.IsZero() {
		v.Date = inv.DisplayDate()
	}
	for _, it := range inv.Items {
		v.Rows = append(v.Rows, row{
			Name:   it.Description,
			Qty:    strconv.FormatInt(it.Quantity, 10),
			Price:  money(it.UnitCost),
			Amount: money(it.Amount),
		})
	}
	return page.Execute(w, v)
}
