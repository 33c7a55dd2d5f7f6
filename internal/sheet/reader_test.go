package sheet

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-sheet-importer/internal/models"
)

// buildXLSX writes the given rows into the first sheet of an in-memory
// workbook and returns the serialized container.
func buildXLSX(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return buf.Bytes()
}

func headerCells() []interface{} {
	cells := make([]interface{}, 0, len(fullHeader))
	for _, label := range fullHeader {
		cells = append(cells, label)
	}
	return cells
}

func TestReadXLSX(t *testing.T) {
	data := buildXLSX(t, [][]interface{}{
		headerCells(),
		{"2024-01-10", "2024-01-11", "SEPA transfer", "", "EUR", "1.234,56"},
		{"2024-01-12", "2024-01-12", "Card payment", "", "EUR", "-19,90"},
	})

	format, rows, err := Read(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != models.FormatXLSX {
		t.Errorf("format = %q, want %q", format, models.FormatXLSX)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].BookingText != "SEPA transfer" {
		t.Errorf("BookingText = %q", rows[0].BookingText)
	}
	if rows[1].Amount != "-19,90" {
		t.Errorf("Amount = %q", rows[1].Amount)
	}
}

func TestReadSkipsBlankRows(t *testing.T) {
	data := buildXLSX(t, [][]interface{}{
		headerCells(),
		{"2024-01-10", "2024-01-10", "First", "", "EUR", "10"},
		{"", "", "", "", "", ""},
		{"  ", "", "", "", "", ""},
		{"2024-01-11", "2024-01-11", "Second", "", "EUR", "20"},
	})

	_, rows, err := Read(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (blank rows must be dropped)", len(rows))
	}
	if rows[0].BookingText != "First" || rows[1].BookingText != "Second" {
		t.Errorf("rows out of order: %q, %q", rows[0].BookingText, rows[1].BookingText)
	}
}

func TestReadHeaderOnly(t *testing.T) {
	data := buildXLSX(t, [][]interface{}{headerCells()})

	_, rows, err := Read(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestReadMissingRequiredColumn(t *testing.T) {
	data := buildXLSX(t, [][]interface{}{
		{"Operation Date", "Value Date", "Booking Text", "Internal Note", "Currency"},
		{"2024-01-10", "2024-01-10", "x", "", "EUR"},
	})

	_, _, err := Read(data)
	var missingErr *models.MissingColumnsError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	if len(missingErr.Columns) != 1 || missingErr.Columns[0] != "amount" {
		t.Errorf("missing columns = %v, want [amount]", missingErr.Columns)
	}
}

func TestReadEmptyWorkbook(t *testing.T) {
	data := buildXLSX(t, nil)

	_, _, err := Read(data)
	if !errors.Is(err, models.ErrMalformedDocument) {
		t.Errorf("expected ErrMalformedDocument, got %v", err)
	}
}

func TestReadUnrecognizedBytes(t *testing.T) {
	_, _, err := Read([]byte("%PDF-1.7 not a spreadsheet"))
	if !errors.Is(err, models.ErrUnrecognizedFormat) {
		t.Errorf("expected ErrUnrecognizedFormat, got %v", err)
	}
}

func TestReadCorruptZip(t *testing.T) {
	// Valid zip magic, garbage body.
	data := append([]byte{0x50, 0x4B, 0x03, 0x04}, []byte("definitely not a zip archive")...)

	_, _, err := Read(data)
	if !errors.Is(err, models.ErrMalformedDocument) {
		t.Errorf("expected ErrMalformedDocument, got %v", err)
	}
}
