package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// Only the month-first form is anchored to line start; a day-first date
	// further into a line still opens a date context.
	phonepeDateRe = regexp.MustCompile(
		`(?i)^(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+(\d{1,2}),?\s+(\d{4})|(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec),?\s+(\d{4})`)
	phonepeAmountRe   = regexp.MustCompile(`(?i)DEBIT₹\s*([\d,]+(?:\.\d{2})?)`)
	phonepeMerchantRe = regexp.MustCompile(`(?i)Paid\s+(?:to|by)\s+(.+?)(?:\s*$|Transaction)`)
)

// parsePhonePe handles PhonePe/UPI app exports. A textual date opens a
// group: "Nov 23, 2025" at line start, or "23 Nov 2025" anywhere; DEBIT lines
// inside the group carry the amount glued to the currency sign and the payee
// after "Paid to". A transaction is emitted as soon as the group has both,
// so several payments under one date line come out as separate rows.
func parsePhonePe(lines []string) ParseResult {
	var txs []DraftTransaction

	var (
		date       string
		merchant   string
		amount     decimal.Decimal
		haveAmount bool
	)

	emit := func() {
		txs = append(txs, DraftTransaction{
			Date:        date,
			Amount:      amount,
			Direction:   DirectionDebit,
			Merchant:    merchant,
			Description: merchant,
		})
	}
	pending := func() bool { return date != "" && haveAmount && merchant != "" }
	resetGroup := func() {
		merchant = ""
		amount = decimal.Zero
		haveAmount = false
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := phonepeDateRe.FindStringSubmatch(line); m != nil {
			if pending() {
				emit()
			}
			var day, month, year int
			if m[1] != "" {
				month, day, year = monthNumbers[strings.ToLower(m[1])], atoi(m[2]), atoi(m[3])
			} else {
				day, month, year = atoi(m[4]), monthNumbers[strings.ToLower(m[5])], atoi(m[6])
			}
			date = fmt.Sprintf("%04d-%02d-%02d", year, month, day)
			resetGroup()
			continue
		}

		if date == "" || !strings.Contains(line, "DEBIT") {
			continue
		}
		if am := phonepeAmountRe.FindStringSubmatch(line); am != nil {
			if v, err := decimal.NewFromString(strings.ReplaceAll(am[1], ",", "")); err == nil {
				amount = v
				haveAmount = true
			}
		}
		if mm := phonepeMerchantRe.FindStringSubmatch(line); mm != nil {
			merchant = truncate(strings.TrimSpace(mm[1]), 100)
		}
		if pending() {
			emit()
			resetGroup()
		}
	}
	if pending() {
		emit()
	}

	return result(txs, FormatPhonePe)
}
