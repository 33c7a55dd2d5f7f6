package fallback

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-sheet-importer/internal/models"
)

func TestImportRejectsNonPDF(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"plain text", []byte("hello world")},
		{"zip container", []byte{0x50, 0x4B, 0x03, 0x04}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(tt.data, zerolog.Nop())
			if !errors.Is(err, models.ErrUnrecognizedFormat) {
				t.Errorf("expected ErrUnrecognizedFormat, got %v", err)
			}
		})
	}
}

func TestImportRejectsCorruptPDF(t *testing.T) {
	_, err := Import([]byte("%PDF-1.7 but truncated garbage"), zerolog.Nop())
	if err == nil {
		t.Fatal("expected an error for a corrupt document")
	}
	if errors.Is(err, models.ErrUnrecognizedFormat) {
		t.Error("a PDF signature must not be reported as unrecognized")
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		ok     bool
		date   string
		amount float64
		desc   string
	}{
		{
			name: "iso date with thousands amount",
			line: "2024-01-10 Salary payment 2.500,00",
			ok:   true, date: "2024-01-10", amount: 2500, desc: "Salary payment",
		},
		{
			name: "dotted date with negative amount",
			line: "15.01.2024 Card payment -19,90",
			ok:   true, date: "2024-01-15", amount: -19.9, desc: "Card payment",
		},
		{
			name: "slashed date",
			line: "15/01/2024 Direct debit 100,00",
			ok:   true, date: "2024-01-15", amount: 100, desc: "Direct debit",
		},
		{
			name: "surrounding whitespace",
			line: "   2024-01-10 Fee 1,00   ",
			ok:   true, date: "2024-01-10", amount: 1, desc: "Fee",
		},
		{name: "no leading date", line: "Salary payment 2.500,00", ok: false},
		{name: "no trailing amount", line: "2024-01-10 Salary payment", ok: false},
		{name: "amount without description", line: "2024-01-10 45,00", ok: false},
		{name: "prose", line: "Statement period January 2024", ok: false},
		{name: "empty", line: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, ok := parseLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("parseLine(%q): ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if !ok {
				return
			}
			if tx.Date != tt.date {
				t.Errorf("Date = %q, want %q", tx.Date, tt.date)
			}
			if tx.Amount != tt.amount {
				t.Errorf("Amount = %v, want %v", tx.Amount, tt.amount)
			}
			if tx.Description != tt.desc {
				t.Errorf("Description = %q, want %q", tx.Description, tt.desc)
			}
			if len(tx.Fingerprint) != 64 {
				t.Errorf("Fingerprint = %q, want sha256 hex", tx.Fingerprint)
			}
		})
	}
}
