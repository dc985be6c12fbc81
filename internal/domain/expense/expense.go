// Package expense holds the core spending record and its storage contract.
// Records come from two sources: manual entry and bulk statement imports,
// which stamp each row with the import batch they arrived in.
package expense

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Source types for an expense row.
const (
	SourceManual    = "manual"
	SourceStatement = "statement"
)

var ErrNotFound = errors.New("expense not found")

// Expense is one spending record. Amount is always positive; Direction
// says whether money left or entered the account.
type Expense struct {
	ID             uuid.UUID       `json:"id"`
	Amount         decimal.Decimal `json:"amount"`
	Category       string          `json:"category"`
	Direction      string          `json:"direction"`
	OccurredAt     time.Time       `json:"date"`
	Notes          string          `json:"notes,omitempty"`
	SourceType     string          `json:"sourceType"`
	TransactionID  *string         `json:"transactionId,omitempty"`
	Merchant       string          `json:"merchant,omitempty"`
	RawDescription string          `json:"rawDescription,omitempty"`
	ImportedAt     *time.Time      `json:"importedAt,omitempty"`
	BatchID        string          `json:"batchId,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// BatchSummary is one import batch as shown in the import history.
type BatchSummary struct {
	BatchID     string          `json:"batchId"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ImportedAt  time.Time       `json:"importedAt"`
	Categories  []string        `json:"categories"`
}

// Repository is the storage contract for expenses.
type Repository interface {
	Insert(ctx context.Context, e *Expense) error
	InsertMany(ctx context.Context, expenses []Expense) (int, error)
	List(ctx context.Context, limit int) ([]Expense, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Expense, error)
	FindSimilar(ctx context.Context, at time.Time, amount decimal.Decimal, merchant string) (*Expense, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteByBatch(ctx context.Context, batchID string) (int64, error)
	BatchSummaries(ctx context.Context, limit, offset int) ([]BatchSummary, error)
	CountBatches(ctx context.Context) (int, error)
}
