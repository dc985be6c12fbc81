package parser

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransactions(t *testing.T) {
	txs := []DraftTransaction{
		{Date: "2025-11-23", Amount: decimal.NewFromInt(450), Direction: DirectionDebit, Merchant: "Swiggy"},
		{Date: "", Amount: decimal.NewFromInt(100), Direction: DirectionCredit},
		{Date: "2025-11-24", Amount: decimal.Zero, Direction: DirectionDebit},
		{Date: "2025-02-31", Amount: decimal.NewFromInt(10), Direction: DirectionDebit},
		{Date: "bogus", Amount: decimal.NewFromInt(-5), Direction: "TRANSFER"},
	}

	res := ValidateTransactions(txs)
	assert.Equal(t, 1, res.ValidCount)
	assert.Equal(t, 4, res.InvalidCount)
	require.Len(t, res.Invalid, 4)

	assert.Equal(t, 2, res.Invalid[0].Row)
	assert.Equal(t, []string{"invalid or missing date"}, res.Invalid[0].Errors)

	assert.Equal(t, []string{"invalid or missing amount"}, res.Invalid[1].Errors)

	// Impossible calendar dates survive normalization but fail here.
	assert.Equal(t, []string{"invalid or missing date"}, res.Invalid[2].Errors)

	all := res.Invalid[3]
	assert.Equal(t, 5, all.Row)
	assert.Equal(t, []string{
		"invalid or missing date",
		"invalid or missing amount",
		"invalid transaction direction",
	}, all.Errors)
}

// Every input row must land in exactly one partition regardless of content.
func TestValidateTransactionsPartitionIsExhaustive(t *testing.T) {
	gofakeit.Seed(11)
	directions := []string{DirectionDebit, DirectionCredit, "", "TRANSFER"}

	var txs []DraftTransaction
	for i := 0; i < 200; i++ {
		tx := DraftTransaction{
			Merchant:  gofakeit.Company(),
			Direction: directions[gofakeit.Number(0, len(directions)-1)],
			Amount:    decimal.NewFromFloat(gofakeit.Float64Range(-100, 10000)),
		}
		switch gofakeit.Number(0, 2) {
		case 0:
			tx.Date = gofakeit.Date().Format("2006-01-02")
		case 1:
			tx.Date = "not a date"
		}
		txs = append(txs, tx)
	}

	res := ValidateTransactions(txs)
	assert.Equal(t, len(txs), res.ValidCount+res.InvalidCount)
	for _, inv := range res.Invalid {
		assert.NotEmpty(t, inv.Errors, fmt.Sprintf("row %d rejected without a reason", inv.Row))
	}
	for _, v := range res.Valid {
		assert.True(t, v.Amount.IsPositive())
	}
}

func TestValidateTransactionsEmptyInput(t *testing.T) {
	res := ValidateTransactions(nil)
	assert.NotNil(t, res.Valid)
	assert.NotNil(t, res.Invalid)
	assert.Zero(t, res.ValidCount)
	assert.Zero(t, res.InvalidCount)
}
