// Package extractor pulls plain text out of uploaded PDF statements. The
// embedded text layer is tried first; scanned documents that yield almost
// nothing fall through to OCR via the tesseract binary.
package extractor

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/dslipak/pdf"
)

// Extraction methods and the confidence each one implies. OCR output is
// always flagged medium so the UI can warn that amounts may need review.
const (
	MethodDirect = "direct"
	MethodOCR    = "ocr"

	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

// minDirectTextLen is the threshold at or below which a text layer is
// considered empty and the document treated as a scan.
const minDirectTextLen = 100

// MaxUploadBytes is the hard cap on statement uploads.
const MaxUploadBytes = 10 << 20

// Extraction is the text pulled from one document plus how it was obtained.
type Extraction struct {
	Text       string `json:"-"`
	Method     string `json:"method"`
	Confidence string `json:"confidence"`
	TextLength int    `json:"textLength"`
}

// FileMetadata describes the uploaded document itself.
type FileMetadata struct {
	Pages        int    `json:"pages"`
	Size         int64  `json:"size"`
	SizeReadable string `json:"sizeReadable"`
}

// Error marks a failure in a specific extraction stage so handlers can tell
// an unreadable PDF apart from a missing OCR install.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s extraction failed: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Extractor runs the two-stage extraction. OCR runs as an external process
// bounded by ocrTimeout.
type Extractor struct {
	tesseractPath string
	ocrTimeout    time.Duration
	logger        *slog.Logger
}

func New(logger *slog.Logger, ocrTimeout time.Duration) *Extractor {
	if ocrTimeout <= 0 {
		ocrTimeout = 30 * time.Second
	}
	return &Extractor{
		tesseractPath: "tesseract",
		ocrTimeout:    ocrTimeout,
		logger:        logger,
	}
}

// Extract returns the document text, preferring the embedded text layer.
// The OCR fallback triggers only when direct extraction succeeds but yields
// minDirectTextLen characters or fewer; a PDF that cannot be opened at all
// fails without an OCR attempt.
func (e *Extractor) Extract(ctx context.Context, data []byte) (*Extraction, error) {
	text, err := readTextLayer(data)
	if err != nil {
		return nil, &Error{Stage: MethodDirect, Err: err}
	}
	if textLayerUsable(text) {
		return &Extraction{
			Text:       text,
			Method:     MethodDirect,
			Confidence: ConfidenceHigh,
			TextLength: len(text),
		}, nil
	}

	e.logger.Info("text layer too small, falling back to OCR",
		slog.Int("direct_len", len(strings.TrimSpace(text))))

	ocrText, err := e.runOCR(ctx, data)
	if err != nil {
		return nil, &Error{Stage: MethodOCR, Err: err}
	}
	return &Extraction{
		Text:       ocrText,
		Method:     MethodOCR,
		Confidence: ConfidenceMedium,
		TextLength: len(ocrText),
	}, nil
}

// textLayerUsable reports whether the embedded text layer is substantial
// enough to skip OCR. The length must strictly exceed the threshold.
func textLayerUsable(text string) bool {
	return len(strings.TrimSpace(text)) > minDirectTextLen
}

func readTextLayer(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Extractor) runOCR(ctx context.Context, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.ocrTimeout)
	defer cancel()

	tmp, err := os.CreateTemp("", "statement-ocr-*.pdf")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.tesseractPath, tmp.Name(), "stdout", "-l", "eng")
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out.String(), nil
}

// ReadMetadata inspects the document without extracting text. Returns nil
// when the bytes are not a readable PDF.
func ReadMetadata(data []byte) *FileMetadata {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil
	}
	return &FileMetadata{
		Pages:        r.NumPage(),
		Size:         int64(len(data)),
		SizeReadable: readableSize(int64(len(data))),
	}
}

// ValidateFile checks an upload before any bytes are parsed and returns
// every problem found.
func ValidateFile(size int64, contentType string) []string {
	var errs []string
	if contentType != "application/pdf" {
		errs = append(errs, "only PDF files are accepted")
	}
	if size <= 0 {
		errs = append(errs, "file is empty")
	}
	if size > MaxUploadBytes {
		errs = append(errs, "file exceeds the 10 MB limit")
	}
	return errs
}

func readableSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(n)/(1<<20))
	default:
		return fmt.Sprintf("%.2f KB", float64(n)/(1<<10))
	}
}
