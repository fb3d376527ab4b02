package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"expense-tracker-api/internal/models"
)

const (
	csvDateLayout      = "2006-01-02"
	csvTimestampLayout = "2006-01-02 15:04:05"
	filenameTimeLayout = "20060102_150405"
)

// csvHeader is the fixed column order of every export
var csvHeader = []string{"Date", "Category", "Amount", "Description", "Created At", "Updated At"}

// ExportService renders expense selections as CSV downloads
type ExportService struct{}

// NewExportService creates a new export service
func NewExportService() ExportServiceInterface {
	return &ExportService{}
}

// WriteCSV streams the selection to w in input order, header row first.
// encoding/csv handles quoting of embedded delimiters and newlines.
func (s *ExportService) WriteCSV(w io.Writer, expenses []models.Expense) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, expense := range expenses {
		record := []string{
			expense.Date.Format(csvDateLayout),
			expense.Category.Name,
			expense.Amount.StringFixed(2),
			expense.Description,
			expense.CreatedAt.Format(csvTimestampLayout),
			expense.UpdatedAt.Format(csvTimestampLayout),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}

	return nil
}

// ExportCSV renders the selection into an in-memory CSV document
func (s *ExportService) ExportCSV(expenses []models.Expense) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.WriteCSV(&buf, expenses); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename builds the attachment name for an export taken at the given instant
func (s *ExportService) Filename(owner string, now time.Time) string {
	owner = sanitizeFilenamePart(owner)
	if owner == "" {
		owner = "user"
	}
	return fmt.Sprintf("expenses_%s_%s.csv", owner, now.Format(filenameTimeLayout))
}

// sanitizeFilenamePart keeps the owner fragment safe for Content-Disposition
func sanitizeFilenamePart(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		case r == '@':
			b.WriteRune('_')
		}
	}
	return b.String()
}
