package parser

import "strings"

// parseTabular handles column-per-field exports where every transaction is
// a single line starting with a numeric date. Header rows and separators
// are skipped by the "Date"/"Particulars" and length checks.
func parseTabular(lines []string) ParseResult {
	var txs []DraftTransaction
	for _, line := range lines {
		if strings.Contains(line, "Date") || strings.Contains(line, "Particulars") || len(line) < 5 {
			continue
		}
		dateToken := extractDate(line)
		if dateToken == "" {
			continue
		}
		if tx, ok := parseRowLine(line, dateToken); ok {
			txs = append(txs, tx)
		}
	}
	return result(txs, FormatTabular)
}
