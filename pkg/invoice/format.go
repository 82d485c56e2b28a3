package invoice

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol prefixes every displayed amount unless configured
// otherwise.
const DefaultCurrencySymbol = "₹"

// FormatAmount renders v with exactly two decimal places. Non-finite values
// render as zero.
func FormatAmount(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		v = 0
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatTotal renders a whole total without decimals and anything else with
// two decimal places.
func FormatTotal(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return FormatAmount(0)
	}
	if v == math.Trunc(v) {
		return decimal.NewFromFloat(v).String()
	}
	return FormatAmount(v)
}

// FormatPercent returns the percentage text for labels, "0" when empty.
func FormatPercent(text string) string {
	if strings.TrimSpace(text) == "" {
		return "0"
	}
	return text
}

// Money prefixes a formatted amount with the currency symbol.
func Money(symbol, amount string) string {
	return symbol + amount
}
