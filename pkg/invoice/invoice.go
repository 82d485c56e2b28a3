// pkg/invoice/invoice.go

package invoice

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Item represents one editable row of the invoice. Qty and Price keep the
// text exactly as entered; they are parsed when totals are computed.
type Item struct {
	ID    string `json:"id" yaml:"-"`
	Name  string `json:"name" yaml:"name"`
	Qty   string `json:"qty" yaml:"qty"`
	Price string `json:"price" yaml:"price"`
}

// Default values of a freshly added row.
const (
	DefaultQty   = "1"
	DefaultPrice = "1.00"
)

func blankItem(id string) Item {
	return Item{ID: id, Qty: DefaultQty, Price: DefaultPrice}
}

// Active reports whether the row takes part in the subtotal.
func (it Item) Active() bool {
	return strings.TrimSpace(it.Name) != ""
}

// Quantity is the whole-unit count used in aggregation.
func (it Item) Quantity() float64 {
	return ParseQuantity(it.Qty)
}

// UnitPrice is the parsed price, 0 when the text is not a number.
func (it Item) UnitPrice() float64 {
	return ParseAmount(it.Price)
}

// Amount is UnitPrice * Quantity.
func (it Item) Amount() float64 {
	return it.UnitPrice() * it.Quantity()
}

// ParseAmount parses a decimal amount or percentage. Empty, malformed and
// non-finite input yields 0.
func ParseAmount(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseQuantity parses a quantity and floors it to whole units. Negative or
// malformed input yields 0.
func ParseQuantity(text string) float64 {
	v := ParseAmount(text)
	if v <= 0 {
		return 0
	}
	return math.Floor(v)
}

// wholeUnits converts a floored quantity to an integer count, saturating at
// the int64 range.
func wholeUnits(q float64) int64 {
	if q >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(q)
}

// Invoice represents the finalized invoice handed to a document exporter.
// It is a copy; nothing in it aliases session state.
type Invoice struct {
	InvoiceNumber   string     `json:"invoice_number"`
	CashierName     string     `json:"cashier_name"`
	CustomerName    string     `json:"customer_name"`
	InvoiceDate     time.Time  `json:"invoice_date"`
	Items           []LineItem `json:"items"`
	DiscountPercent string     `json:"discount_percent"`
	TaxPercent      string     `json:"tax_percent"`
	SubTotal        float64    `json:"sub_total"`
	DiscountAmount  float64    `json:"discount_amount"`
	TaxAmount       float64    `json:"tax_amount"`
	Total           float64    `json:"total"`
}

// LineItem represents an item in the invoice.
type LineItem struct {
	Description string  `json:"description"`
	UnitCost    float64 `json:"unit_cost"`
	Quantity    int64   `json:"quantity"`
	Amount      float64 `json:"amount"`
}

// Totals returns the aggregate block of the invoice.
func (inv Invoice) Totals() Totals {
	return Totals{
		SubTotal:       inv.SubTotal,
		DiscountAmount: inv.DiscountAmount,
		TaxAmount:      inv.TaxAmount,
		Total:          inv.Total,
	}
}

// DisplayDate renders the invoice date as day/month/year.
func (inv Invoice) DisplayDate() string {
	return inv.InvoiceDate.Format("2/1/2006")
}
