package parser

import "strings"

// parseGeneric is the last-resort strategy: any line of at least ten
// characters carrying both a numeric date and an amount becomes a
// transaction. The merchant is whatever text remains after stripping the
// date token and every amount-shaped token.
func parseGeneric(lines []string) ParseResult {
	var txs []DraftTransaction
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if len(line) < 10 {
			continue
		}
		dateToken := extractDate(line)
		if dateToken == "" {
			continue
		}
		am, ok := scanAmount(line)
		if !ok {
			continue
		}

		merchant := strings.Replace(line, dateToken, "", 1)
		merchant = amountStripRe.ReplaceAllString(merchant, "")
		merchant = truncate(strings.TrimSpace(merchant), 100)
		if merchant == "" {
			merchant = "Transaction"
		}

		iso, _ := normalizeDate(dateToken)
		txs = append(txs, DraftTransaction{
			Date:        iso,
			Amount:      am.Amount.Abs(),
			Direction:   am.Direction,
			Merchant:    merchant,
			Description: merchant,
		})
	}
	return result(txs, FormatGeneric)
}
