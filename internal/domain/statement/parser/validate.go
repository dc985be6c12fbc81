package parser

import "time"

// InvalidTransaction pairs a rejected draft with every reason it was
// rejected. Row numbers are 1-based to match what a user sees in a preview.
type InvalidTransaction struct {
	Row         int              `json:"row"`
	Transaction DraftTransaction `json:"transaction"`
	Errors      []string         `json:"errors"`
}

// ValidationResult partitions a draft slice into importable and rejected
// rows. Every input row lands in exactly one of the two lists.
type ValidationResult struct {
	Valid        []DraftTransaction   `json:"valid"`
	Invalid      []InvalidTransaction `json:"invalid"`
	ValidCount   int                  `json:"validCount"`
	InvalidCount int                  `json:"invalidCount"`
}

// ValidateTransactions checks every draft against the import rules and
// collects all failures per row rather than stopping at the first.
func ValidateTransactions(txs []DraftTransaction) ValidationResult {
	res := ValidationResult{
		Valid:   []DraftTransaction{},
		Invalid: []InvalidTransaction{},
	}
	for i, tx := range txs {
		var errs []string
		if !isCalendarDate(tx.Date) {
			errs = append(errs, "invalid or missing date")
		}
		if !tx.Amount.IsPositive() {
			errs = append(errs, "invalid or missing amount")
		}
		if tx.Direction != DirectionDebit && tx.Direction != DirectionCredit {
			errs = append(errs, "invalid transaction direction")
		}
		if len(errs) == 0 {
			res.Valid = append(res.Valid, tx)
		} else {
			res.Invalid = append(res.Invalid, InvalidTransaction{
				Row:         i + 1,
				Transaction: tx,
				Errors:      errs,
			})
		}
	}
	res.ValidCount = len(res.Valid)
	res.InvalidCount = len(res.Invalid)
	return res
}

// isCalendarDate rejects dates like February 31st that survive the purely
// range-based checks in normalizeDate.
func isCalendarDate(s string) bool {
	if s == "" {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
