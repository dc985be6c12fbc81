// Package handler exposes expense CRUD, summaries and CSV export.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/rupeelog/rupeelog/internal/domain/categorization"
	"github.com/rupeelog/rupeelog/internal/domain/expense"
)

// ExpenseHandler holds the expense routes.
type ExpenseHandler struct {
	svc    *expense.Service
	logger *slog.Logger
}

func NewExpenseHandler(svc *expense.Service, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{svc: svc, logger: logger}
}

// Register wires the expense routes onto the mux.
func (h *ExpenseHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/expenses", h.Add)
	mux.HandleFunc("GET /api/expenses", h.List)
	mux.HandleFunc("DELETE /api/expenses/{id}", h.Delete)
	mux.HandleFunc("GET /api/expenses/summary/daily", h.DailySummary)
	mux.HandleFunc("GET /api/expenses/summary/weekly", h.WeeklySummary)
	mux.HandleFunc("GET /api/expenses/summary/monthly", h.MonthlySummary)
	mux.HandleFunc("GET /api/expenses/categories", h.Categories)
	mux.HandleFunc("GET /api/expenses/export", h.ExportCSV)
}

func (h *ExpenseHandler) Add(w http.ResponseWriter, r *http.Request) {
	var in expense.AddExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e, err := h.svc.Add(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeData(w, http.StatusCreated, e, "expense added")
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("list expenses", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "could not load expenses")
		return
	}
	writeData(w, http.StatusOK, expenses, "")
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			writeError(w, http.StatusNotFound, "expense not found")
			return
		}
		h.logger.Error("delete expense", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "could not delete expense")
		return
	}
	writeData(w, http.StatusOK, nil, "expense deleted")
}

func (h *ExpenseHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, h.svc.DailySummary)
}

func (h *ExpenseHandler) WeeklySummary(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, h.svc.WeeklySummary)
}

func (h *ExpenseHandler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, h.svc.MonthlySummary)
}

func (h *ExpenseHandler) summary(w http.ResponseWriter, r *http.Request, load func(ctx context.Context) (*expense.Summary, error)) {
	sum, err := load(r.Context())
	if err != nil {
		h.logger.Error("summary", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "could not build summary")
		return
	}
	writeData(w, http.StatusOK, sum, "")
}

// Categories returns the taxonomy so clients can render pickers without
// hardcoding it.
func (h *ExpenseHandler) Categories(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, categorization.AllCategories(), "")
}

func (h *ExpenseHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)
	if err := h.svc.ExportCSV(r.Context(), w); err != nil {
		h.logger.Error("export csv", slog.Any("error", err))
	}
}
