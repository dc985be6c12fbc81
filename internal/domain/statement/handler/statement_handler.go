// Package handler exposes the statement pipeline over HTTP: multipart
// upload for preview, JSON for bulk import and history.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/rupeelog/rupeelog/internal/domain/statement/extractor"
	"github.com/rupeelog/rupeelog/internal/domain/statement/service"
)

// StatementHandler holds the statement routes.
type StatementHandler struct {
	svc       *service.Service
	logger    *slog.Logger
	uploadDir string
}

func NewStatementHandler(svc *service.Service, logger *slog.Logger, uploadDir string) *StatementHandler {
	return &StatementHandler{svc: svc, logger: logger, uploadDir: uploadDir}
}

// Register wires the statement routes onto the mux.
func (h *StatementHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/expenses/parse-statement", h.ParseStatement)
	mux.HandleFunc("POST /api/expenses/bulk-import", h.BulkImport)
	mux.HandleFunc("GET /api/expenses/imports/history", h.ImportHistory)
	mux.HandleFunc("DELETE /api/expenses/imports/{batchId}", h.DeleteBatch)
}

// ParseStatement accepts a multipart upload under the "file" field and
// returns the parse preview. The upload is spooled to a temp file that is
// always removed before the response goes out.
func (h *StatementHandler) ParseStatement(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, extractor.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(extractor.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "could not read upload", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "statement file is required", nil)
		return
	}
	defer file.Close()

	if errs := extractor.ValidateFile(header.Size, header.Header.Get("Content-Type")); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "invalid file", errs)
		return
	}

	tmp, err := os.CreateTemp(h.uploadDir, "statement-*.pdf")
	if err != nil {
		h.logger.Error("temp file", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "could not store upload", nil)
		return
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		writeError(w, http.StatusInternalServerError, "could not store upload", nil)
		return
	}
	data, err := os.ReadFile(tmp.Name())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not read upload", nil)
		return
	}

	preview, err := h.svc.ParseStatement(r.Context(), data, header.Filename)
	if err != nil {
		h.respondParseError(w, err)
		return
	}
	writeData(w, http.StatusOK, preview, "statement parsed")
}

func (h *StatementHandler) respondParseError(w http.ResponseWriter, err error) {
	var exErr *extractor.Error
	if errors.As(err, &exErr) {
		writeError(w, http.StatusBadRequest, "could not extract text from the PDF", []string{
			"the file may be corrupted or password protected",
			"try exporting the statement again from your bank app",
		})
		return
	}
	var noTx *service.NoTransactionsError
	if errors.As(err, &noTx) {
		writeError(w, http.StatusBadRequest, noTx.Error(), noTx.Tips())
		return
	}
	h.logger.Error("parse statement", slog.Any("error", err))
	writeError(w, http.StatusInternalServerError, "statement processing failed", nil)
}

type bulkImportRequest struct {
	Transactions []service.CategorizedTransaction `json:"transactions"`
}

// BulkImport persists previously previewed transactions.
func (h *StatementHandler) BulkImport(w http.ResponseWriter, r *http.Request) {
	var req bulkImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	res, err := h.svc.BulkImport(r.Context(), req.Transactions)
	if err != nil {
		var invalid *service.InvalidImportError
		if errors.As(err, &invalid) {
			writeJSON(w, http.StatusBadRequest, envelope{
				Success: false,
				Message: invalid.Message,
				Details: invalid.Details,
			})
			return
		}
		h.logger.Error("bulk import", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "import failed", nil)
		return
	}
	writeData(w, http.StatusCreated, res, "transactions imported")
}

// ImportHistory lists past imports grouped by batch.
func (h *StatementHandler) ImportHistory(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	res, err := h.svc.ImportHistory(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("import history", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "could not load import history", nil)
		return
	}
	writeData(w, http.StatusOK, res, "")
}

// DeleteBatch removes an entire import batch.
func (h *StatementHandler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	batchID := r.PathValue("batchId")
	deleted, err := h.svc.DeleteBatch(r.Context(), batchID)
	if err != nil {
		if errors.Is(err, service.ErrBatchNotFound) {
			writeError(w, http.StatusNotFound, "import batch not found", nil)
			return
		}
		h.logger.Error("delete batch", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "could not delete batch", nil)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"deleted": deleted}, "import batch deleted")
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
