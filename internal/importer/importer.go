// Package importer converts a spreadsheet export of bank transactions into
// one normalized statement envelope. Import is all-or-nothing per file:
// header, format and currency violations fail the whole import, while
// individual date and amount cells degrade best-effort (an unparseable date
// passes through as text, an unparseable amount becomes zero).
package importer

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-sheet-importer/internal/models"
	"github.com/insightdelivered/statement-sheet-importer/internal/sheet"
)

// Importer runs the row normalization and statement assembly pipeline for
// one target ledger context. It holds no per-file state; a single Importer
// is safe for concurrent Import calls.
type Importer struct {
	// Owners is the set of account identifiers belonging to the ledger being
	// reconciled, used to decide which side of a row is the counterparty.
	Owners models.OwnerAccounts

	// LedgerCurrency is the currency of the target ledger context, validated
	// against the supported settlement currency before any row is read.
	LedgerCurrency string

	Log zerolog.Logger
}

// New returns an Importer for the given owner accounts and ledger currency.
func New(owners models.OwnerAccounts, ledgerCurrency string, log zerolog.Logger) *Importer {
	return &Importer{Owners: owners, LedgerCurrency: ledgerCurrency, Log: log}
}

// Import parses one spreadsheet file into a statement envelope.
//
// It returns models.ErrUnrecognizedFormat when the bytes are not a known
// spreadsheet container; the caller should hand the original bytes to its
// own fallback import path. Every other error is terminal for the file.
func (imp *Importer) Import(data []byte) (*models.Statement, error) {
	ledgerCur := strings.ToUpper(strings.TrimSpace(imp.LedgerCurrency))
	if ledgerCur != models.SupportedCurrency {
		return nil, &models.UnsupportedCurrencyError{Currency: imp.LedgerCurrency}
	}

	data = maybeDecodeBase64(data)

	imp.Log.Info().Int("bytes", len(data)).Msg("statement import: start parsing")

	format, rows, err := sheet.Read(data)
	if err != nil {
		return nil, err
	}

	imp.Log.Info().Str("format", string(format)).Int("rows", len(rows)).Msg("statement import: sheet read")

	txs := make([]models.Transaction, 0, len(rows))
	var total float64
	for i, row := range rows {
		currency := strings.ToUpper(strings.TrimSpace(row.Currency))
		if currency != models.SupportedCurrency && currency != "€" {
			return nil, &models.RowCurrencyError{Row: i + 1, Currency: currency}
		}

		amount := ParseNumber(row.Amount)
		opDate := ToISODate(row.OperationDate)
		valDate := ToISODate(row.ValueDate)

		date := opDate
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		txs = append(txs, models.Transaction{
			Date:        date,
			Description: BuildDescription(row, amount, opDate, valDate),
			Amount:      amount,
			Fingerprint: Fingerprint(opDate, amount, row.BookingText),
			PartnerName: PartnerName(row, imp.Owners),
		})
		total += amount
	}

	if len(txs) == 0 {
		return nil, models.ErrEmptyStatement
	}

	// Deterministic order independent of input row order: ascending by
	// operation date, fingerprint breaking ties.
	sort.Slice(txs, func(i, j int) bool {
		if txs[i].Date != txs[j].Date {
			return txs[i].Date < txs[j].Date
		}
		return txs[i].Fingerprint < txs[j].Fingerprint
	})

	minDate := txs[0].Date
	maxDate := txs[len(txs)-1].Date

	stmt := &models.Statement{
		Currency:     models.SupportedCurrency,
		Date:         maxDate,
		Name:         statementName(minDate, maxDate),
		BalanceStart: 0,
		BalanceEnd:   total,
		Transactions: txs,
	}

	imp.Log.Info().
		Int("count", len(txs)).
		Str("date", stmt.Date).
		Str("sum", FormatAmount(total)).
		Msg("statement import: done")

	return stmt, nil
}

// statementName builds the envelope's display name, embedding a single date
// or a min..max range when the statement spans multiple dates.
func statementName(minDate, maxDate string) string {
	span := maxDate
	if minDate != maxDate {
		span = minDate + ".." + maxDate
	}
	return fmt.Sprintf("Bank statement import %s (%s)", span, models.SupportedCurrency)
}

// maybeDecodeBase64 transparently unwraps inbound bytes that are a base64
// encoding of a recognized container; anything else is returned untouched.
func maybeDecodeBase64(data []byte) []byte {
	if sheet.DetectFormat(data) != models.FormatUnknown {
		return data
	}
	trimmed := strings.TrimSpace(string(data))
	decoded, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil || sheet.DetectFormat(decoded) == models.FormatUnknown {
		return data
	}
	return decoded
}
