package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhonePe(t *testing.T) {
	text := "PhonePe Transaction Statement\n" +
		"Nov 23, 2025\n" +
		"DEBIT₹1,298Paid to YOUSTA\n" +
		"DEBIT₹450.00Paid to Swiggy Transaction ID T123\n" +
		"Nov 24, 2025\n" +
		"DEBIT₹89Paid to Blinkit\n"

	res := Extract(text)
	require.True(t, res.Success)
	require.Equal(t, 3, res.Count)
	assert.Equal(t, FormatPhonePe, res.Format)

	first := res.Transactions[0]
	assert.Equal(t, "2025-11-23", first.Date)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(1298)))
	assert.Equal(t, DirectionDebit, first.Direction)
	assert.Equal(t, "YOUSTA", first.Merchant)

	second := res.Transactions[1]
	assert.Equal(t, "2025-11-23", second.Date)
	assert.True(t, second.Amount.Equal(decimal.RequireFromString("450.00")))
	assert.Equal(t, "Swiggy", second.Merchant)

	third := res.Transactions[2]
	assert.Equal(t, "2025-11-24", third.Date)
	assert.Equal(t, "Blinkit", third.Merchant)
}

func TestParsePhonePeAmountAndPayeeOnSeparateLines(t *testing.T) {
	text := "UPI statement\n" +
		"23 Nov 2025\n" +
		"DEBIT₹250.00\n" +
		"DEBIT Paid to Local Kirana\n"

	res := Extract(text)
	require.Equal(t, 1, res.Count)
	tx := res.Transactions[0]
	assert.Equal(t, "2025-11-23", tx.Date)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("250.00")))
	assert.Equal(t, "Local Kirana", tx.Merchant)
}

func TestParsePhonePeIncompleteGroupNotEmitted(t *testing.T) {
	text := "PhonePe\nNov 23, 2025\nDEBIT₹100.00\n"
	res := Extract(text)
	assert.False(t, res.Success)
	assert.Equal(t, 0, res.Count)
}

// A day-first date opens a group even mid-line; the month-first form only
// counts at line start.
func TestParsePhonePeDateAnchoring(t *testing.T) {
	t.Run("day-first mid-line opens context", func(t *testing.T) {
		text := "PhonePe statement\n" +
			"Txn recorded 23 Nov, 2025\n" +
			"DEBIT₹450.00Paid to Swiggy\n"

		res := Extract(text)
		require.Equal(t, 1, res.Count)
		assert.Equal(t, "2025-11-23", res.Transactions[0].Date)
		assert.Equal(t, "Swiggy", res.Transactions[0].Merchant)
	})

	t.Run("month-first mid-line does not", func(t *testing.T) {
		text := "PhonePe statement\n" +
			"Txn recorded Nov 23, 2025\n" +
			"DEBIT₹450.00Paid to Swiggy\n"

		res := Extract(text)
		assert.False(t, res.Success)
		assert.Equal(t, 0, res.Count)
	})
}

func TestParseTabular(t *testing.T) {
	text := "Transaction Date  Particulars            Amount\n" +
		"23-11-2025  SWIGGY BANGALORE  450.00 Dr\n" +
		"24/11/2025  SALARY CREDIT NEFT  50,000.00\n" +
		"----\n"

	res := Extract(text)
	require.True(t, res.Success)
	require.Equal(t, 2, res.Count)
	assert.Equal(t, FormatTabular, res.Format)

	first := res.Transactions[0]
	assert.Equal(t, "2025-11-23", first.Date)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("450.00")))
	assert.Equal(t, DirectionDebit, first.Direction)
	assert.Equal(t, "SWIGGY BANGALORE", first.Merchant)

	second := res.Transactions[1]
	assert.Equal(t, "2025-11-24", second.Date)
	assert.Equal(t, DirectionCredit, second.Direction)
}

func TestParseTabularUnparseableDateKeptForValidation(t *testing.T) {
	res := parseTabular([]string{"32-13-2025  GHOST STORE  450.00"})
	require.Equal(t, 1, res.Count)
	assert.Empty(t, res.Transactions[0].Date)
	assert.True(t, res.Transactions[0].Amount.Equal(decimal.RequireFromString("450.00")))
}

func TestParseNarrative(t *testing.T) {
	text := "Description\nAmount\n" +
		"23-11-2025\n" +
		"POS purchase at grocery store\n" +
		"₹1,250.00 debit\n" +
		"24-11-2025\n" +
		"interest credit\n" +
		"₹35.50\n"

	res := Extract(text)
	require.Equal(t, 2, res.Count)
	assert.Equal(t, FormatNarrative, res.Format)

	first := res.Transactions[0]
	assert.Equal(t, "2025-11-23", first.Date)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("1250.00")))
	assert.Equal(t, DirectionDebit, first.Direction)

	second := res.Transactions[1]
	assert.Equal(t, "2025-11-24", second.Date)
	assert.True(t, second.Amount.Equal(decimal.RequireFromString("35.50")))
	assert.Equal(t, DirectionCredit, second.Direction)
}

func TestParseStructured(t *testing.T) {
	lines := []string{
		"Account statement",
		"Date Description Debit Credit",
		"23-11-2025 AMAZON RETAIL 999.00 DEBIT",
		"24-11-2025 REFUND STORE 120.00 CREDIT",
		"bad",
	}
	res := parseStructured(lines)
	require.Equal(t, 2, res.Count)

	first := res.Transactions[0]
	assert.Equal(t, "2025-11-23", first.Date)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("999.00")))
	assert.Equal(t, DirectionDebit, first.Direction)
	assert.Equal(t, "AMAZON RETAIL", first.Merchant)

	assert.Equal(t, DirectionCredit, res.Transactions[1].Direction)
}

func TestParseGeneric(t *testing.T) {
	text := "random header\n" +
		"23-11-2025 CORNER STORE 450.00\n" +
		"short\n" +
		"no date on this line 99.00\n"

	res := Extract(text)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, FormatGeneric, res.Format)

	tx := res.Transactions[0]
	assert.Equal(t, "2025-11-23", tx.Date)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("450.00")))
	assert.Equal(t, "CORNER STORE", tx.Merchant)
}

func TestParseGenericMerchantFallback(t *testing.T) {
	res := parseGeneric([]string{"23-11-2025    450.00"})
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "Transaction", res.Transactions[0].Merchant)
}

func TestExtractEmptyText(t *testing.T) {
	res := Extract("")
	assert.False(t, res.Success)
	assert.Equal(t, 0, res.Count)
	assert.NotNil(t, res.Transactions)
}
