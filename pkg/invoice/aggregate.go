package invoice

// Totals holds the derived money amounts of an invoice at full precision.
// Rounding happens only when an amount is formatted for display.
type Totals struct {
	SubTotal       float64 `json:"sub_total"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	Total          float64 `json:"total"`
}

// Aggregate computes subtotal, discount, tax and total for items. Rows with a
// blank name are placeholders and never contribute to the subtotal.
// Percentages that do not parse count as 0.
func Aggregate(items []Item, discountPercent, taxPercent string) Totals {
	var subTotal float64
	for _, it := range items {
		if !it.Active() {
			continue
		}
		subTotal += it.Amount()
	}

	discount := subTotal * (ParseAmount(discountPercent) / 100)
	tax := subTotal * (ParseAmount(taxPercent) / 100)

	return Totals{
		SubTotal:       subTotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          subTotal - discount + tax,
	}
}
