package parser

import "strings"

// Format identifies the statement layout a parsing strategy targets.
type Format string

const (
	FormatPhonePe    Format = "phonepeupi"
	FormatTabular    Format = "tabular"
	FormatNarrative  Format = "narrative"
	FormatStructured Format = "structured"
	FormatGeneric    Format = "generic"
)

// DetectFormat classifies raw statement text by scanning for layout markers.
// The checks run in strict precedence order and the first hit wins, so a
// PhonePe export that also carries a "Transaction Date" column is still
// parsed as PhonePe.
func DetectFormat(text string) Format {
	switch {
	case strings.Contains(text, "PhonePe"),
		strings.Contains(text, "UPI"),
		strings.Contains(text, "Merchant") && strings.Contains(text, "Status"),
		strings.Contains(text, "DEBIT") && strings.Contains(text, "Merchant"):
		return FormatPhonePe
	case strings.Contains(text, "Transaction Date"),
		strings.Contains(text, "Value Date"):
		return FormatTabular
	case strings.Contains(text, "Description") && strings.Contains(text, "Amount"):
		return FormatNarrative
	case strings.Contains(text, "Date") &&
		strings.Contains(text, "Debit") &&
		strings.Contains(text, "Credit"):
		return FormatStructured
	}
	return FormatGeneric
}
