// Package service orchestrates the statement pipeline: extract text from an
// uploaded PDF, parse and validate the transactions, categorize them, and
// finally import confirmed rows in one batch with duplicate filtering.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rupeelog/rupeelog/internal/domain/categorization"
	"github.com/rupeelog/rupeelog/internal/domain/expense"
	"github.com/rupeelog/rupeelog/internal/domain/statement/extractor"
	"github.com/rupeelog/rupeelog/internal/domain/statement/parser"
	"github.com/rupeelog/rupeelog/pkg/metrics"
)

// duplicateWindow is how far apart two timestamps may be for transactions
// to count as the same payment.
const duplicateWindow = 5 * time.Minute

// maxReportedProblems caps how many invalid rows or duplicate warnings a
// response carries.
const maxReportedProblems = 5

// TextExtractor is the part of the extractor the service depends on.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (*extractor.Extraction, error)
}

// Service runs the statement pipeline against expense storage.
type Service struct {
	store       expense.Repository
	extractor   TextExtractor
	categorizer *categorization.Categorizer
	logger      *slog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

func NewService(store expense.Repository, ex TextExtractor, cat *categorization.Categorizer, logger *slog.Logger) *Service {
	return &Service{
		store:       store,
		extractor:   ex,
		categorizer: cat,
		logger:      logger,
		tracer:      otel.Tracer("statement"),
		now:         time.Now,
	}
}

// ParseStatement runs the preview half of the pipeline. Nothing is written;
// the caller gets categorized transactions to confirm or edit before import.
func (s *Service) ParseStatement(ctx context.Context, data []byte, filename string) (*Preview, error) {
	ctx, span := s.tracer.Start(ctx, "statement.parse",
		trace.WithAttributes(attribute.Int("upload.bytes", len(data))))
	defer span.End()

	start := s.now()
	extraction, err := s.extractor.Extract(ctx, data)
	if err != nil {
		metrics.ParseFailures.WithLabelValues("extraction").Inc()
		return nil, err
	}
	metrics.ExtractionDuration.WithLabelValues(extraction.Method).Observe(s.now().Sub(start).Seconds())

	res := parser.Extract(extraction.Text)
	if !res.Success {
		metrics.ParseFailures.WithLabelValues("no_transactions").Inc()
		return nil, &NoTransactionsError{Format: res.Format}
	}
	metrics.StatementsParsed.WithLabelValues(string(res.Format)).Inc()
	span.SetAttributes(
		attribute.String("statement.format", string(res.Format)),
		attribute.Int("statement.rows", res.Count),
	)

	validation := parser.ValidateTransactions(res.Transactions)

	transactions := make([]CategorizedTransaction, len(validation.Valid))
	infos := make([]categorization.CategoryInfo, len(validation.Valid))
	for i, tx := range validation.Valid {
		target := tx.Merchant
		if target == "" {
			target = tx.Description
		}
		info := s.categorizer.Categorize(target)
		infos[i] = info
		transactions[i] = CategorizedTransaction{DraftTransaction: tx, CategoryInfo: &info}
	}

	s.logger.Info("statement parsed",
		slog.String("file", filename),
		slog.String("format", string(res.Format)),
		slog.String("method", extraction.Method),
		slog.Int("valid", validation.ValidCount),
		slog.Int("invalid", validation.InvalidCount))

	return &Preview{
		File: FileInfo{
			Name:         filename,
			Size:         int64(len(data)),
			SizeReadable: fmt.Sprintf("%.2f KB", float64(len(data))/1024),
			UploadedAt:   s.now(),
		},
		Metadata:            extractor.ReadMetadata(data),
		Transactions:        transactions,
		InvalidTransactions: validation.Invalid,
		Extraction:          *extraction,
		Stats:               buildStats(transactions, validation),
		Categorization:      categorization.AnalyzeAccuracy(infos),
	}, nil
}

// BulkImport persists confirmed transactions as one batch. Rows are
// re-validated from scratch since they round-tripped through the client,
// duplicates of stored expenses are filtered, and the rest is written with
// a shared batch id.
func (s *Service) BulkImport(ctx context.Context, txs []CategorizedTransaction) (*ImportResult, error) {
	ctx, span := s.tracer.Start(ctx, "statement.bulk_import",
		trace.WithAttributes(attribute.Int("import.rows", len(txs))))
	defer span.End()

	if len(txs) == 0 {
		return nil, &InvalidImportError{Message: "no transactions to import"}
	}

	drafts := make([]parser.DraftTransaction, len(txs))
	for i, tx := range txs {
		drafts[i] = tx.DraftTransaction
	}
	validation := parser.ValidateTransactions(drafts)
	if validation.InvalidCount > 0 {
		details := validation.Invalid
		if len(details) > maxReportedProblems {
			details = details[:maxReportedProblems]
		}
		return nil, &InvalidImportError{
			Message:      fmt.Sprintf("%d transactions failed validation", validation.InvalidCount),
			InvalidCount: validation.InvalidCount,
			Details:      details,
		}
	}

	batchID := uuid.NewString()
	importedAt := s.now().UTC()
	rows := make([]expense.Expense, len(txs))
	for i, tx := range txs {
		occurredAt, err := time.Parse("2006-01-02", tx.Date)
		if err != nil {
			return nil, &InvalidImportError{Message: fmt.Sprintf("row %d: unparseable date %q", i+1, tx.Date)}
		}
		category := "Other"
		if tx.CategoryInfo != nil && categorization.IsValidCategory(tx.CategoryInfo.Category) {
			category = tx.CategoryInfo.Category
		}
		rows[i] = expense.Expense{
			ID:             uuid.New(),
			Amount:         tx.Amount,
			Category:       category,
			Direction:      tx.Direction,
			OccurredAt:     occurredAt,
			Notes:          tx.Merchant,
			SourceType:     expense.SourceStatement,
			TransactionID:  tx.TransactionID,
			Merchant:       tx.Merchant,
			RawDescription: tx.Description,
			ImportedAt:     &importedAt,
			BatchID:        batchID,
		}
	}

	warnings, err := s.findDuplicates(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	unique := excludeDuplicates(rows, warnings)

	imported := 0
	if len(unique) > 0 {
		if imported, err = s.store.InsertMany(ctx, unique); err != nil {
			return nil, fmt.Errorf("bulk insert: %w", err)
		}
	}
	metrics.TransactionsImported.Add(float64(imported))
	metrics.DuplicatesSkipped.Add(float64(len(warnings)))

	s.logger.Info("statement imported",
		slog.String("batch_id", batchID),
		slog.Int("imported", imported),
		slog.Int("duplicates", len(warnings)))

	result := &ImportResult{
		BatchID:        batchID,
		Imported:       imported,
		Skipped:        len(rows) - imported,
		Duplicates:     len(warnings),
		TotalProcessed: len(rows),
		Summary:        buildImportSummary(unique),
	}
	if len(warnings) > maxReportedProblems {
		warnings = warnings[:maxReportedProblems]
	}
	result.Warnings = warnings
	return result, nil
}

// findDuplicates checks every incoming row against stored expenses. A match
// needs a timestamp within the duplicate window, the exact amount, and a
// merchant that contains the incoming one.
func (s *Service) findDuplicates(ctx context.Context, rows []expense.Expense) ([]DuplicateWarning, error) {
	var warnings []DuplicateWarning
	for _, row := range rows {
		existing, err := s.store.FindSimilar(ctx, row.OccurredAt, row.Amount, row.Merchant)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			continue
		}
		warnings = append(warnings, DuplicateWarning{
			Existing: existing,
			New:      row,
			Message: fmt.Sprintf("similar transaction already recorded on %s",
				existing.OccurredAt.Format("2006-01-02")),
		})
	}
	return warnings, nil
}

// excludeDuplicates drops rows whose (timestamp, amount, merchant) triple
// matches a flagged duplicate. Distinct same-day payments to the same
// merchant with different amounts are unaffected.
func excludeDuplicates(rows []expense.Expense, warnings []DuplicateWarning) []expense.Expense {
	if len(warnings) == 0 {
		return rows
	}
	unique := make([]expense.Expense, 0, len(rows))
	for _, row := range rows {
		flagged := false
		for _, w := range warnings {
			if row.OccurredAt.Equal(w.New.OccurredAt) &&
				row.Amount.Equal(w.New.Amount) &&
				row.Merchant == w.New.Merchant {
				flagged = true
				break
			}
		}
		if !flagged {
			unique = append(unique, row)
		}
	}
	return unique
}

// ImportHistory lists past statement imports grouped by batch, newest first.
func (s *Service) ImportHistory(ctx context.Context, page, limit int) (*HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	batches, err := s.store.BatchSummaries(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("load batches: %w", err)
	}
	total, err := s.store.CountBatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("count batches: %w", err)
	}
	return &HistoryPage{
		Batches: batches,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: (total + limit - 1) / limit,
		},
	}, nil
}

// DeleteBatch removes every expense imported under the given batch id.
func (s *Service) DeleteBatch(ctx context.Context, batchID string) (int64, error) {
	deleted, err := s.store.DeleteByBatch(ctx, batchID)
	if err != nil {
		return 0, fmt.Errorf("delete batch: %w", err)
	}
	if deleted == 0 {
		return 0, ErrBatchNotFound
	}
	s.logger.Info("import batch deleted",
		slog.String("batch_id", batchID),
		slog.Int64("expenses", deleted))
	return deleted, nil
}

func buildStats(transactions []CategorizedTransaction, validation parser.ValidationResult) PreviewStats {
	// Total counts the categorized transactions the preview shows, not the
	// raw parse output; invalid rows are reported separately.
	stats := PreviewStats{
		Total:   len(transactions),
		Valid:   validation.ValidCount,
		Invalid: validation.InvalidCount,
	}
	for _, tx := range transactions {
		stats.TotalAmount = stats.TotalAmount.Add(tx.Amount)
		if stats.DateRange.Earliest == nil || tx.Date < *stats.DateRange.Earliest {
			d := tx.Date
			stats.DateRange.Earliest = &d
		}
		if stats.DateRange.Latest == nil || tx.Date > *stats.DateRange.Latest {
			d := tx.Date
			stats.DateRange.Latest = &d
		}
	}
	return stats
}

func buildImportSummary(rows []expense.Expense) ImportSummary {
	sum := ImportSummary{
		TotalAmount: decimal.Zero,
		ByCategory:  map[string]decimal.Decimal{},
	}
	for _, row := range rows {
		sum.TotalAmount = sum.TotalAmount.Add(row.Amount)
		sum.ByCategory[row.Category] = sum.ByCategory[row.Category].Add(row.Amount)
		d := row.OccurredAt.Format("2006-01-02")
		if sum.DateRange.Earliest == nil || d < *sum.DateRange.Earliest {
			dd := d
			sum.DateRange.Earliest = &dd
		}
		if sum.DateRange.Latest == nil || d > *sum.DateRange.Latest {
			dd := d
			sum.DateRange.Latest = &dd
		}
	}
	return sum
}
