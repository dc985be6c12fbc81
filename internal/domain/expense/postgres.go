package expense

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// PostgresRepository stores expenses in the expenses table.
type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const expenseColumns = `
	id, amount::text, category, direction, occurred_at, notes, source_type,
	transaction_id, merchant, raw_description, imported_at, batch_id, created_at`

const insertExpenseSQL = `
	INSERT INTO expenses (
		id, amount, category, direction, occurred_at, notes, source_type,
		transaction_id, merchant, raw_description, imported_at, batch_id
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

func insertArgs(e *Expense) []any {
	return []any{
		e.ID, e.Amount.String(), e.Category, e.Direction, e.OccurredAt,
		e.Notes, e.SourceType, e.TransactionID, e.Merchant,
		e.RawDescription, e.ImportedAt, e.BatchID,
	}
}

func (r *PostgresRepository) Insert(ctx context.Context, e *Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, insertExpenseSQL, insertArgs(e)...)
	return err
}

// InsertMany writes all rows in one round trip via a pgx batch and returns
// the number inserted.
func (r *PostgresRepository) InsertMany(ctx context.Context, expenses []Expense) (int, error) {
	if len(expenses) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for i := range expenses {
		if expenses[i].ID == uuid.Nil {
			expenses[i].ID = uuid.New()
		}
		batch.Queue(insertExpenseSQL, insertArgs(&expenses[i])...)
	}
	br := r.db.SendBatch(ctx, batch)
	defer br.Close()
	for range expenses {
		if _, err := br.Exec(); err != nil {
			return 0, err
		}
	}
	return len(expenses), nil
}

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]Expense, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		ORDER BY occurred_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExpenses(rows)
}

func (r *PostgresRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]Expense, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE occurred_at >= $1 AND occurred_at < $2
		ORDER BY occurred_at ASC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// FindSimilar looks for an existing expense within five minutes of the
// given timestamp with the same amount and a merchant that contains the
// given one. Returns nil without error when nothing matches.
func (r *PostgresRepository) FindSimilar(ctx context.Context, at time.Time, amount decimal.Decimal, merchant string) (*Expense, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE occurred_at BETWEEN $1 AND $2
		  AND amount = $3::numeric
		  AND merchant ILIKE '%' || $4 || '%'
		LIMIT 1`,
		at.Add(-5*time.Minute), at.Add(5*time.Minute), amount.String(), merchant)

	e, err := scanExpense(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteByBatch(ctx context.Context, batchID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM expenses
		WHERE batch_id = $1 AND source_type = $2`, batchID, SourceStatement)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// BatchSummaries aggregates statement imports by batch, newest first.
func (r *PostgresRepository) BatchSummaries(ctx context.Context, limit, offset int) ([]BatchSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			batch_id,
			COUNT(*),
			SUM(amount)::text,
			MIN(imported_at),
			ARRAY_AGG(DISTINCT category)
		FROM expenses
		WHERE source_type = $1 AND batch_id <> ''
		GROUP BY batch_id
		ORDER BY MIN(imported_at) DESC
		LIMIT $2 OFFSET $3`, SourceStatement, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []BatchSummary{}
	for rows.Next() {
		var s BatchSummary
		var total string
		if err := rows.Scan(&s.BatchID, &s.Count, &total, &s.ImportedAt, &s.Categories); err != nil {
			return nil, err
		}
		if s.TotalAmount, err = decimal.NewFromString(total); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *PostgresRepository) CountBatches(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(DISTINCT batch_id)
		FROM expenses
		WHERE source_type = $1 AND batch_id <> ''`, SourceStatement).Scan(&n)
	return n, err
}

func scanExpense(row pgx.Row) (*Expense, error) {
	var e Expense
	var amount string
	err := row.Scan(
		&e.ID, &amount, &e.Category, &e.Direction, &e.OccurredAt, &e.Notes,
		&e.SourceType, &e.TransactionID, &e.Merchant, &e.RawDescription,
		&e.ImportedAt, &e.BatchID, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, err
	}
	return &e, nil
}

func scanExpenses(rows pgx.Rows) ([]Expense, error) {
	expenses := []Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}
