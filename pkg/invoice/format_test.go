package invoice

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "30.00", FormatAmount(30))
	assert.Equal(t, "2.50", FormatAmount(2.5))
	assert.Equal(t, "0.33", FormatAmount(1.0/3))
	assert.Equal(t, "0.00", FormatAmount(math.Inf(1)))
}

func TestFormatTotal(t *testing.T) {
	assert.Equal(t, "30", FormatTotal(30))
	assert.Equal(t, "0", FormatTotal(0))
	assert.Equal(t, "27.45", FormatTotal(27.45))
	assert.Equal(t, "0.67", FormatTotal(2.0/3))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0", FormatPercent(""))
	assert.Equal(t, "12.5", FormatPercent("12.5"))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "₹12.00", Money(DefaultCurrencySymbol, FormatAmount(12)))
}
