package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rupeelog/rupeelog/internal/domain/categorization"
	"github.com/rupeelog/rupeelog/internal/domain/expense"
	"github.com/rupeelog/rupeelog/internal/domain/statement/extractor"
	"github.com/rupeelog/rupeelog/internal/domain/statement/parser"
)

// ErrBatchNotFound means no stored expense carries the requested batch id.
var ErrBatchNotFound = errors.New("import batch not found")

// CategorizedTransaction is a validated draft with its categorization
// verdict attached, the unit the preview returns and bulk import accepts.
type CategorizedTransaction struct {
	parser.DraftTransaction
	CategoryInfo *categorization.CategoryInfo `json:"categoryInfo,omitempty"`
}

// FileInfo echoes the upload back to the client.
type FileInfo struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	SizeReadable string    `json:"sizeReadable"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// DateRange brackets the transaction dates found in a statement. Both ends
// are nil when no valid transaction carried a date.
type DateRange struct {
	Earliest *string `json:"earliest"`
	Latest   *string `json:"latest"`
}

// PreviewStats summarizes the parse outcome.
type PreviewStats struct {
	Total       int             `json:"total"`
	Valid       int             `json:"valid"`
	Invalid     int             `json:"invalid"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	DateRange   DateRange       `json:"dateRange"`
}

// Preview is everything the client needs to review a statement before
// confirming the import.
type Preview struct {
	File                FileInfo                     `json:"file"`
	Metadata            *extractor.FileMetadata      `json:"metadata"`
	Transactions        []CategorizedTransaction     `json:"transactions"`
	InvalidTransactions []parser.InvalidTransaction  `json:"invalidTransactions,omitempty"`
	Extraction          extractor.Extraction         `json:"extraction"`
	Stats               PreviewStats                 `json:"stats"`
	Categorization      categorization.AccuracyStats `json:"categorization"`
}

// DuplicateWarning reports one incoming row that matched a stored expense.
type DuplicateWarning struct {
	Existing *expense.Expense `json:"existing"`
	New      expense.Expense  `json:"new"`
	Message  string           `json:"message"`
}

// ImportSummary aggregates what one bulk import actually wrote.
type ImportSummary struct {
	TotalAmount decimal.Decimal            `json:"totalAmount"`
	ByCategory  map[string]decimal.Decimal `json:"byCategory"`
	DateRange   DateRange                  `json:"dateRange"`
}

// ImportResult is the outcome of one bulk import.
type ImportResult struct {
	BatchID        string             `json:"batchId"`
	Imported       int                `json:"imported"`
	Skipped        int                `json:"skipped"`
	Duplicates     int                `json:"duplicates"`
	TotalProcessed int                `json:"totalProcessed"`
	Summary        ImportSummary      `json:"summary"`
	Warnings       []DuplicateWarning `json:"warnings,omitempty"`
}

// Pagination describes one page of import history.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// HistoryPage is one page of past imports.
type HistoryPage struct {
	Batches    []expense.BatchSummary `json:"batches"`
	Pagination Pagination             `json:"pagination"`
}

// NoTransactionsError means extraction worked but no parsing strategy got a
// single transaction out of the text.
type NoTransactionsError struct {
	Format parser.Format
}

func (e *NoTransactionsError) Error() string {
	return fmt.Sprintf("no transactions found in statement (detected format %s)", e.Format)
}

// Tips gives the user concrete things to try before re-uploading.
func (e *NoTransactionsError) Tips() []string {
	return []string{
		"make sure the PDF is a bank or UPI statement, not a receipt",
		"password-protected PDFs must be unlocked before upload",
		"scanned statements work best at 300 DPI or higher",
	}
}

// InvalidImportError rejects a bulk import whose rows fail re-validation.
type InvalidImportError struct {
	Message      string
	InvalidCount int
	Details      []parser.InvalidTransaction
}

func (e *InvalidImportError) Error() string { return e.Message }
