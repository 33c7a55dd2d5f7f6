package models

import (
	"errors"
	"fmt"
	"strings"
)

// All import failures are terminal for the current file: no partial results,
// no row skipping. The one non-error exception is fully blank rows, which the
// sheet reader drops silently.
var (
	// ErrUnrecognizedFormat signals that the bytes are neither an xlsx nor a
	// legacy xls container. The caller's own fallback import path should
	// handle the original bytes; this importer never guesses.
	ErrUnrecognizedFormat = errors.New("unrecognized file format")

	// ErrMalformedDocument signals an unreadable or headerless spreadsheet.
	ErrMalformedDocument = errors.New("malformed spreadsheet document")

	// ErrEmptyStatement signals that format and header validation passed but
	// zero usable rows remained.
	ErrEmptyStatement = errors.New("no transactions found after validation")

	// ErrMissingDependency signals that a required spreadsheet decoding
	// capability rejected a container despite a matching signature.
	ErrMissingDependency = errors.New("spreadsheet decoder unavailable")
)

// MissingColumnsError reports every required vocabulary field absent from the
// header row, not just the first.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// UnsupportedCurrencyError reports a ledger context whose currency is not the
// supported settlement currency.
type UnsupportedCurrencyError struct {
	Currency string
}

func (e *UnsupportedCurrencyError) Error() string {
	cur := e.Currency
	if cur == "" {
		cur = "unknown"
	}
	return fmt.Sprintf("this importer requires a %s ledger; selected ledger currency is %q", SupportedCurrency, cur)
}

// RowCurrencyError reports a data row whose currency field disagrees with the
// supported settlement currency. Row is the 1-based data row index.
type RowCurrencyError struct {
	Row      int
	Currency string
}

func (e *RowCurrencyError) Error() string {
	return fmt.Sprintf("non-%s row detected (row %d): %s", SupportedCurrency, e.Row, e.Currency)
}
