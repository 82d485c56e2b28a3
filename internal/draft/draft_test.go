package draft

import (
	"strings"
	"testing"

	"github.com/invoice-builder/pkg/invoice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
invoice_number: INV-0007
cashier: Asha
customer: Ravi
discount_percent: "10"
items:
  - name: Pen
    qty: 3
    price: "10.00"
  - name: Ink
    qty: 2
    price: "1.00"
`

func TestDecodeAndApply(t *testing.T) {
	d, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	s := invoice.NewSession()
	require.NoError(t, d.Apply(s))

	assert.Equal(t, "INV-0007", s.InvoiceNumber())
	assert.Equal(t, "Asha", s.CashierName())
	assert.Equal(t, "Ravi", s.CustomerName())
	assert.Equal(t, "10", s.DiscountPercent())

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Pen", items[0].Name)
	assert.Equal(t, "3", items[0].Qty)
	assert.Equal(t, "10.00", items[0].Price)
	assert.Equal(t, "Ink", items[1].Name)
	assert.Equal(t, "1.00", items[1].Price)

	require.NoError(t, s.Review())
	assert.Equal(t, 32.0, s.Totals().SubTotal)
}

func TestApplyMissingPriceFailsReview(t *testing.T) {
	d, err := Decode(strings.NewReader("cashier: Asha\ncustomer: Ravi\nitems:\n  - name: Ink\n    qty: 2\n"))
	require.NoError(t, err)

	s := invoice.NewSession()
	require.NoError(t, d.Apply(s))
	assert.Equal(t, "", s.Items()[0].Price)

	err = s.Review()
	ve, ok := invoice.AsValidationError(err)
	require.True(t, ok, "got %v", err)
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "price", ve.Fields[0].Field)
	assert.Equal(t, "is required", ve.Fields[0].Message)
	assert.Equal(t, invoice.Editing, s.State())
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("cashier: Asha\nwaiter: Bob\n"))
	assert.Error(t, err)
}

func TestApplyWhileReviewing(t *testing.T) {
	s := invoice.NewSession()
	require.NoError(t, (&Draft{CashierName: "A", CustomerName: "B", Items: []invoice.Item{{Name: "Pen", Qty: "1", Price: "2"}}}).Apply(s))
	require.NoError(t, s.Review())

	err := (&Draft{}).Apply(s)
	assert.ErrorIs(t, err, invoice.ErrReviewing)
}
