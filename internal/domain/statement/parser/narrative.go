package parser

import "strings"

// parseNarrative folds multi-line statements where a date line opens a
// transaction and the following lines carry its amount and description.
// A new date line flushes the previous draft when it accumulated both a
// date and an amount.
func parseNarrative(lines []string) ParseResult {
	var txs []DraftTransaction
	var current *DraftTransaction

	flush := func() {
		if current != nil && current.Date != "" && current.Amount.IsPositive() {
			txs = append(txs, *current)
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if isDateLine(line) {
			flush()
			current = nil
			if tx, ok := parseRowLine(line, extractDate(line)); ok {
				current = &tx
			}
			continue
		}
		if current == nil {
			continue
		}
		if am, ok := scanAmount(line); ok {
			current.Amount = am.Amount.Abs()
			current.Direction = am.Direction
		} else if len(line) > 5 {
			current.Description = strings.TrimSpace(current.Description + " " + line)
		}
	}
	flush()

	return result(txs, FormatNarrative)
}
