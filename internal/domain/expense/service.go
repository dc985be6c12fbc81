package expense

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rupeelog/rupeelog/internal/domain/categorization"
	"github.com/rupeelog/rupeelog/pkg/money"
)

const listLimit = 100

// AddExpenseInput is a manual expense entry before defaults are applied.
type AddExpenseInput struct {
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Direction string          `json:"direction"`
	Date      *time.Time      `json:"date"`
	Notes     string          `json:"notes"`
}

// Bucket groups the expenses of one slice of a summary period.
type Bucket struct {
	Total    decimal.Decimal `json:"total"`
	Expenses []Expense       `json:"expenses"`
}

// Summary is the aggregate view over one period. Total is net spending:
// debits minus credits.
type Summary struct {
	Total        decimal.Decimal            `json:"total"`
	TotalDisplay string                     `json:"totalDisplay"`
	TotalCredit  decimal.Decimal            `json:"totalCredit"`
	TotalDebit   decimal.Decimal            `json:"totalDebit"`
	Count        int                        `json:"count"`
	ByCategory   map[string]decimal.Decimal `json:"byCategory"`
	ByDay        map[string]*Bucket         `json:"byDay,omitempty"`
	ByWeek       map[string]*Bucket         `json:"byWeek,omitempty"`
	Expenses     []Expense                  `json:"expenses"`
}

// Service wraps expense storage with validation, summaries and export.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Add validates and stores a manual expense entry. Missing fields get the
// same defaults a quick note-taking flow expects: DEBIT, today, Other.
func (s *Service) Add(ctx context.Context, in AddExpenseInput) (*Expense, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	category := in.Category
	if category == "" {
		category = "Other"
	}
	if !categorization.IsValidCategory(category) {
		return nil, fmt.Errorf("unknown category %q", in.Category)
	}
	direction := in.Direction
	if direction == "" {
		direction = "DEBIT"
	}
	if direction != "DEBIT" && direction != "CREDIT" {
		return nil, fmt.Errorf("direction must be DEBIT or CREDIT")
	}
	occurredAt := s.now()
	if in.Date != nil {
		occurredAt = *in.Date
	}

	e := &Expense{
		ID:         uuid.New(),
		Amount:     in.Amount,
		Category:   category,
		Direction:  direction,
		OccurredAt: occurredAt,
		Notes:      in.Notes,
		SourceType: SourceManual,
		CreatedAt:  s.now(),
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	s.logger.Info("expense added",
		slog.String("id", e.ID.String()),
		slog.String("category", e.Category),
		slog.String("amount", e.Amount.String()))
	return e, nil
}

// List returns the newest expenses, capped at 100.
func (s *Service) List(ctx context.Context) ([]Expense, error) {
	return s.repo.List(ctx, listLimit)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteByID(ctx, id)
}

// DailySummary aggregates today's expenses, midnight to midnight in the
// server's timezone.
func (s *Service) DailySummary(ctx context.Context) (*Summary, error) {
	today := startOfDay(s.now())
	return s.summarize(ctx, today, today.AddDate(0, 0, 1), groupNone)
}

// WeeklySummary covers the last seven days plus today, grouped per day.
func (s *Service) WeeklySummary(ctx context.Context) (*Summary, error) {
	today := startOfDay(s.now())
	return s.summarize(ctx, today.AddDate(0, 0, -7), today.AddDate(0, 0, 1), groupByDay)
}

// MonthlySummary covers the calendar month, grouped into "Week N" slices of
// seven days each.
func (s *Service) MonthlySummary(ctx context.Context) (*Summary, error) {
	now := s.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return s.summarize(ctx, first, first.AddDate(0, 1, 0), groupByWeek)
}

type grouping int

const (
	groupNone grouping = iota
	groupByDay
	groupByWeek
)

func (s *Service) summarize(ctx context.Context, from, to time.Time, group grouping) (*Summary, error) {
	expenses, err := s.repo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	sum := &Summary{
		Count:      len(expenses),
		ByCategory: map[string]decimal.Decimal{},
		Expenses:   expenses,
	}
	for _, e := range expenses {
		if e.Direction == "CREDIT" {
			sum.TotalCredit = sum.TotalCredit.Add(e.Amount)
		} else {
			sum.TotalDebit = sum.TotalDebit.Add(e.Amount)
		}
		sum.ByCategory[e.Category] = sum.ByCategory[e.Category].Add(e.Amount)
	}
	sum.Total = sum.TotalDebit.Sub(sum.TotalCredit)
	sum.TotalDisplay = money.Display(sum.Total)

	switch group {
	case groupByDay:
		sum.ByDay = map[string]*Bucket{}
		for _, e := range expenses {
			key := e.OccurredAt.Format("2006-01-02")
			addToBucket(sum.ByDay, key, e)
		}
	case groupByWeek:
		sum.ByWeek = map[string]*Bucket{}
		for _, e := range expenses {
			key := fmt.Sprintf("Week %d", (e.OccurredAt.Day()+6)/7)
			addToBucket(sum.ByWeek, key, e)
		}
	}
	return sum, nil
}

func addToBucket(buckets map[string]*Bucket, key string, e Expense) {
	b, ok := buckets[key]
	if !ok {
		b = &Bucket{}
		buckets[key] = b
	}
	b.Total = b.Total.Add(e.Amount)
	b.Expenses = append(b.Expenses, e)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

type csvRow struct {
	Date       string `csv:"date"`
	Amount     string `csv:"amount"`
	Category   string `csv:"category"`
	Direction  string `csv:"direction"`
	Merchant   string `csv:"merchant"`
	Notes      string `csv:"notes"`
	SourceType string `csv:"source_type"`
	BatchID    string `csv:"batch_id"`
}

// ExportCSV streams the newest expenses as CSV.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	expenses, err := s.repo.List(ctx, listLimit)
	if err != nil {
		return fmt.Errorf("load expenses: %w", err)
	}
	rows := make([]csvRow, len(expenses))
	for i, e := range expenses {
		rows[i] = csvRow{
			Date:       e.OccurredAt.Format("2006-01-02"),
			Amount:     e.Amount.String(),
			Category:   e.Category,
			Direction:  e.Direction,
			Merchant:   e.Merchant,
			Notes:      e.Notes,
			SourceType: e.SourceType,
			BatchID:    e.BatchID,
		}
	}
	return gocsv.Marshal(&rows, w)
}
