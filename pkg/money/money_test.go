package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	assert.Equal(t, "₹1,298.00", Display(decimal.NewFromInt(1298)))
	assert.Equal(t, "₹0.50", Display(decimal.RequireFromString("0.50")))
	assert.Equal(t, "-₹450.00", Display(decimal.NewFromInt(-450)))
}

func TestDisplayInUnknownCurrencyFallsBack(t *testing.T) {
	assert.Equal(t, "₹10.00", DisplayIn(decimal.NewFromInt(10), "ZZZ"))
}

func TestSum(t *testing.T) {
	got := Sum(
		decimal.RequireFromString("0.10"),
		decimal.RequireFromString("0.20"),
		decimal.RequireFromString("0.30"),
	)
	assert.True(t, got.Equal(decimal.RequireFromString("0.60")))
	assert.True(t, Sum().IsZero())
}
