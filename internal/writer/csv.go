package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/statement-sheet-importer/internal/importer"
	"github.com/insightdelivered/statement-sheet-importer/internal/models"
)

// CSVWriter exports a statement envelope as an audit CSV.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the statement to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, stmt *models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, stmt)
}

// Write writes the statement in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, stmt *models.Statement) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	// Statement metadata as comment rows
	if w.IncludeHeader {
		writer.Write([]string{"# Statement", stmt.Name})
		writer.Write([]string{"# Currency", stmt.Currency})
		writer.Write([]string{"# Date", stmt.Date})
		writer.Write([]string{"# Balance End", importer.FormatAmount(stmt.BalanceEnd)})
	}

	header := []string{"Date", "Amount", "Partner", "Fingerprint", "Description"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, tx := range stmt.Transactions {
		row := []string{
			tx.Date,
			importer.FormatAmount(tx.Amount),
			tx.PartnerName,
			tx.Fingerprint,
			tx.Description,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
