package expense

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	expenses []Expense
}

func (m *memoryRepo) Insert(_ context.Context, e *Expense) error {
	m.expenses = append(m.expenses, *e)
	return nil
}

func (m *memoryRepo) InsertMany(_ context.Context, rows []Expense) (int, error) {
	m.expenses = append(m.expenses, rows...)
	return len(rows), nil
}

func (m *memoryRepo) List(_ context.Context, limit int) ([]Expense, error) {
	if len(m.expenses) > limit {
		return m.expenses[:limit], nil
	}
	return m.expenses, nil
}

func (m *memoryRepo) FindByDateRange(_ context.Context, from, to time.Time) ([]Expense, error) {
	var out []Expense
	for _, e := range m.expenses {
		if !e.OccurredAt.Before(from) && e.OccurredAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryRepo) FindSimilar(_ context.Context, _ time.Time, _ decimal.Decimal, _ string) (*Expense, error) {
	return nil, nil
}

func (m *memoryRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	for i, e := range m.expenses {
		if e.ID == id {
			m.expenses = append(m.expenses[:i], m.expenses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memoryRepo) DeleteByBatch(_ context.Context, _ string) (int64, error) { return 0, nil }

func (m *memoryRepo) BatchSummaries(_ context.Context, _, _ int) ([]BatchSummary, error) {
	return nil, nil
}

func (m *memoryRepo) CountBatches(_ context.Context) (int, error) { return 0, nil }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestService(repo *memoryRepo, now time.Time) *Service {
	svc := NewService(repo, slog.Default())
	svc.now = fixedClock(now)
	return svc
}

var testNow = time.Date(2025, 11, 23, 15, 30, 0, 0, time.UTC)

func TestAddExpense(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, testNow)

	e, err := svc.Add(context.Background(), AddExpenseInput{
		Amount:   decimal.RequireFromString("450.00"),
		Category: "Food",
		Notes:    "lunch",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, "DEBIT", e.Direction)
	assert.Equal(t, SourceManual, e.SourceType)
	assert.Equal(t, testNow, e.OccurredAt)
	require.Len(t, repo.expenses, 1)
}

func TestAddExpenseDefaultsToOther(t *testing.T) {
	svc := newTestService(&memoryRepo{}, testNow)
	e, err := svc.Add(context.Background(), AddExpenseInput{Amount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, "Other", e.Category)
}

func TestAddExpenseValidation(t *testing.T) {
	svc := newTestService(&memoryRepo{}, testNow)

	_, err := svc.Add(context.Background(), AddExpenseInput{Amount: decimal.Zero})
	assert.Error(t, err)

	_, err = svc.Add(context.Background(), AddExpenseInput{
		Amount:   decimal.NewFromInt(10),
		Category: "Groceries",
	})
	assert.Error(t, err)

	_, err = svc.Add(context.Background(), AddExpenseInput{
		Amount:    decimal.NewFromInt(10),
		Direction: "TRANSFER",
	})
	assert.Error(t, err)
}

func seedWeek(repo *memoryRepo) {
	day := func(offset int) time.Time {
		return time.Date(2025, 11, 23-offset, 10, 0, 0, 0, time.UTC)
	}
	repo.expenses = []Expense{
		{ID: uuid.New(), Amount: decimal.NewFromInt(450), Category: "Food", Direction: "DEBIT", OccurredAt: day(0)},
		{ID: uuid.New(), Amount: decimal.NewFromInt(120), Category: "Transport", Direction: "DEBIT", OccurredAt: day(0)},
		{ID: uuid.New(), Amount: decimal.NewFromInt(1000), Category: "Other", Direction: "CREDIT", OccurredAt: day(2)},
		{ID: uuid.New(), Amount: decimal.NewFromInt(300), Category: "Food", Direction: "DEBIT", OccurredAt: day(5)},
	}
}

func TestDailySummary(t *testing.T) {
	repo := &memoryRepo{}
	seedWeek(repo)
	svc := newTestService(repo, testNow)

	sum, err := svc.DailySummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Count)
	assert.True(t, sum.TotalDebit.Equal(decimal.NewFromInt(570)))
	assert.True(t, sum.TotalCredit.IsZero())
	assert.True(t, sum.Total.Equal(decimal.NewFromInt(570)))
	assert.True(t, sum.ByCategory["Food"].Equal(decimal.NewFromInt(450)))
	assert.True(t, sum.ByCategory["Transport"].Equal(decimal.NewFromInt(120)))
	assert.Equal(t, "₹570.00", sum.TotalDisplay)
}

func TestWeeklySummary(t *testing.T) {
	repo := &memoryRepo{}
	seedWeek(repo)
	svc := newTestService(repo, testNow)

	sum, err := svc.WeeklySummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, sum.Count)
	// net: 870 debit - 1000 credit
	assert.True(t, sum.Total.Equal(decimal.NewFromInt(-130)))
	require.NotNil(t, sum.ByDay)
	assert.Len(t, sum.ByDay, 3)
	assert.True(t, sum.ByDay["2025-11-23"].Total.Equal(decimal.NewFromInt(570)))
	assert.Len(t, sum.ByDay["2025-11-23"].Expenses, 2)
}

func TestMonthlySummary(t *testing.T) {
	repo := &memoryRepo{}
	seedWeek(repo)
	svc := newTestService(repo, testNow)

	sum, err := svc.MonthlySummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, sum.Count)
	require.NotNil(t, sum.ByWeek)
	// the 18th and 21st fall in week 3, the 23rd in week 4
	assert.Len(t, sum.ByWeek["Week 4"].Expenses, 2)
	assert.Len(t, sum.ByWeek["Week 3"].Expenses, 2)
}

func TestDeleteExpense(t *testing.T) {
	repo := &memoryRepo{}
	seedWeek(repo)
	svc := newTestService(repo, testNow)

	require.NoError(t, svc.Delete(context.Background(), repo.expenses[0].ID))
	assert.Len(t, repo.expenses, 3)

	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New()), ErrNotFound)
}

func TestExportCSV(t *testing.T) {
	repo := &memoryRepo{}
	seedWeek(repo)
	svc := newTestService(repo, testNow)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "date")
	assert.Contains(t, lines[0], "amount")
	assert.Contains(t, lines[1], "Food")
}