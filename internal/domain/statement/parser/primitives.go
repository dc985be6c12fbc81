package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction directions as they appear on bank statements.
const (
	DirectionDebit  = "DEBIT"
	DirectionCredit = "CREDIT"
)

var (
	numericDateRe = regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}`)
	amountRe      = regexp.MustCompile(`[₹$]?\s*([\d,]+(?:\.\d{2})?)`)
	amountStripRe = regexp.MustCompile(`[₹$]?\s*[\d,]+(?:\.\d{2})?`)

	monthFirstRe = regexp.MustCompile(`(?i)^(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{4})`)
	dayFirstRe   = regexp.MustCompile(`(?i)^(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?,?\s+(\d{4})`)
)

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// amountMatch is the last money-looking token on a line together with the
// direction the surrounding text implies.
type amountMatch struct {
	Amount    decimal.Decimal
	Start     int
	End       int
	Direction string
}

// scanAmount finds every amount-shaped token on the line and keeps the last
// one, since statement layouts put the balance-relevant figure at the end of
// the row. Direction is inferred from debit markers anywhere on the line.
func scanAmount(line string) (amountMatch, bool) {
	locs := amountRe.FindAllStringSubmatchIndex(line, -1)
	if len(locs) == 0 {
		return amountMatch{}, false
	}
	last := locs[len(locs)-1]
	raw := strings.ReplaceAll(line[last[2]:last[3]], ",", "")
	amt, err := decimal.NewFromString(raw)
	if err != nil {
		return amountMatch{}, false
	}
	return amountMatch{
		Amount:    amt,
		Start:     last[0],
		End:       last[1],
		Direction: inferDirection(line),
	}, true
}

func inferDirection(line string) string {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "debit") || strings.Contains(lower, "dr") {
		return DirectionDebit
	}
	return DirectionCredit
}

// normalizeDate converts the date formats seen across Indian bank statements
// into ISO YYYY-MM-DD. Accepted inputs: textual month-name dates in either
// order ("Nov 23, 2025", "23 Nov 2025"), numeric day-month-year on "-" or "/"
// separators, and already normalized ISO dates, which pass through unchanged.
// Two digit years below 50 land in the 2000s, the rest in the 1900s.
func normalizeDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if m := monthFirstRe.FindStringSubmatch(s); m != nil {
		return assembleDate(atoi(m[3]), monthNumbers[strings.ToLower(m[1])], atoi(m[2]))
	}
	if m := dayFirstRe.FindStringSubmatch(s); m != nil {
		return assembleDate(atoi(m[3]), monthNumbers[strings.ToLower(m[2])], atoi(m[1]))
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '/' })
	if len(parts) != 3 {
		return "", false
	}
	var day, month, year int
	if len(parts[0]) == 4 {
		year, month, day = atoi(parts[0]), atoi(parts[1]), atoi(parts[2])
	} else {
		day, month, year = atoi(parts[0]), atoi(parts[1]), atoi(parts[2])
		if year < 100 {
			if year < 50 {
				year += 2000
			} else {
				year += 1900
			}
		}
	}
	return assembleDate(year, month, day)
}

func assembleDate(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// extractDate returns the first numeric date token on the line, if any.
func extractDate(line string) string {
	return numericDateRe.FindString(line)
}

func isDateLine(line string) bool {
	return numericDateRe.MatchString(line)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
