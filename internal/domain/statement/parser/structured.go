package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var structuredSplitRe = regexp.MustCompile(`[\s,]+`)

// parseStructured handles fixed-column layouts with explicit Debit/Credit
// columns. The header row is located within the first ten lines; rows are
// split on whitespace and commas with the date first, the amount second to
// last and the direction column last.
func parseStructured(lines []string) ParseResult {
	headerIdx := 0
	for i := 0; i < len(lines) && i < 10; i++ {
		if strings.Contains(lines[i], "Date") &&
			(strings.Contains(lines[i], "Debit") || strings.Contains(lines[i], "Credit")) {
			headerIdx = i
			break
		}
	}

	var txs []DraftTransaction
	for _, line := range lines[min(headerIdx+1, len(lines)):] {
		if len(strings.TrimSpace(line)) < 5 {
			continue
		}
		parts := splitColumns(line)
		if len(parts) < 3 {
			continue
		}

		iso, ok := normalizeDate(parts[0])
		if !ok {
			continue
		}
		raw := strings.NewReplacer("₹", "", ",", "").Replace(parts[len(parts)-2])
		amt, err := decimal.NewFromString(raw)
		if err != nil || !amt.IsPositive() {
			continue
		}
		direction := DirectionCredit
		if strings.Contains(strings.ToUpper(parts[len(parts)-1]), "DEBIT") {
			direction = DirectionDebit
		}
		merchant := strings.Join(parts[1:len(parts)-2], " ")

		txs = append(txs, DraftTransaction{
			Date:        iso,
			Amount:      amt,
			Direction:   direction,
			Merchant:    merchant,
			Description: merchant,
		})
	}
	return result(txs, FormatStructured)
}

func splitColumns(line string) []string {
	var parts []string
	for _, p := range structuredSplitRe.Split(strings.TrimSpace(line), -1) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
