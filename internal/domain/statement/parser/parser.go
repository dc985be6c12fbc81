// Package parser turns the raw text of a bank statement into draft
// transactions. Detection picks one of five layout strategies and every
// strategy normalizes its output to the same shape: ISO date, positive
// decimal amount, DEBIT or CREDIT direction and a merchant string.
package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DraftTransaction is a parsed statement row before validation and
// categorization. Date is empty when the row carried a date token the
// normalizer could not make sense of; validation reports it later instead
// of the row being dropped here.
type DraftTransaction struct {
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Direction     string          `json:"direction"`
	Merchant      string          `json:"merchant"`
	Description   string          `json:"description"`
	TransactionID *string         `json:"transactionId,omitempty"`
}

// ParseResult is the outcome of running one strategy over the full text.
type ParseResult struct {
	Success      bool               `json:"success"`
	Transactions []DraftTransaction `json:"transactions"`
	Count        int                `json:"count"`
	Format       Format             `json:"format"`
}

// Extract detects the statement layout and runs the matching strategy.
func Extract(text string) ParseResult {
	lines := nonEmptyLines(text)
	switch DetectFormat(text) {
	case FormatPhonePe:
		return parsePhonePe(lines)
	case FormatTabular:
		return parseTabular(lines)
	case FormatNarrative:
		return parseNarrative(lines)
	case FormatStructured:
		return parseStructured(lines)
	default:
		return parseGeneric(lines)
	}
}

func result(txs []DraftTransaction, format Format) ParseResult {
	if txs == nil {
		txs = []DraftTransaction{}
	}
	return ParseResult{
		Success:      len(txs) > 0,
		Transactions: txs,
		Count:        len(txs),
		Format:       format,
	}
}

// parseRowLine handles a single self-contained statement row: one date
// token, one amount, merchant text in between. Shared by the tabular and
// narrative strategies.
func parseRowLine(line, dateToken string) (DraftTransaction, bool) {
	if dateToken == "" {
		return DraftTransaction{}, false
	}
	am, ok := scanAmount(line)
	if !ok {
		return DraftTransaction{}, false
	}
	iso, _ := normalizeDate(dateToken)

	merchant := "Unknown"
	if di := strings.Index(line, dateToken); di >= 0 {
		start := di + len(dateToken)
		end := am.Start
		if end < start {
			end = start
		}
		if between := strings.TrimSpace(line[start:end]); between != "" {
			merchant = truncate(between, 50)
		}
	}

	return DraftTransaction{
		Date:        iso,
		Amount:      am.Amount.Abs(),
		Direction:   am.Direction,
		Merchant:    merchant,
		Description: strings.TrimSpace(line),
	}, true
}
