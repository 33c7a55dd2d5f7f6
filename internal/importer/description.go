package importer

import (
	"strings"

	"github.com/insightdelivered/statement-sheet-importer/internal/models"
	"github.com/insightdelivered/statement-sheet-importer/internal/sheet"
)

// BuildDescription assembles the canonical description string for one row:
// pipe-separated KEY=value segments in a fixed order, omitting optional keys
// whose sanitized value is absent. Both the payer and payee blocks are always
// considered regardless of direction, so the string is a lossless encoding of
// both sides of the transaction. The order is a contract — audit tooling
// parses these strings back — so new keys may only be appended, never
// reordered.
func BuildDescription(row sheet.Row, amount float64, opDate, valDate string) string {
	pieces := make([]string, 0, 16)

	direction := "IN"
	if amount < 0 {
		direction = "OUT"
	}
	pieces = append(pieces, "DIR="+direction)

	if bt := Sanitize(row.BookingText); bt != "" {
		pieces = append(pieces, "BT="+bt)
	}

	pieces = append(pieces, "OD="+opDate, "VD="+valDate)

	currency := Sanitize(row.Currency)
	if currency == "" {
		currency = models.SupportedCurrency
	}
	pieces = append(pieces, "CUR="+currency, "AMT="+FormatAmount(amount))

	if v := Sanitize(row.PayerName); v != "" {
		pieces = append(pieces, "PAYER="+v)
	}
	if v := Sanitize(row.PayerAccount); v != "" {
		pieces = append(pieces, "PAYER_ACC="+v)
	}
	if v := Sanitize(row.PayerBankCode); v != "" {
		pieces = append(pieces, "PAYER_BC="+v)
	}
	if v := Sanitize(row.PayeeName); v != "" {
		pieces = append(pieces, "PAYEE="+v)
	}
	if v := Sanitize(row.PayeeAccount); v != "" {
		pieces = append(pieces, "PAYEE_ACC="+v)
	}
	if v := Sanitize(row.PayeeBankCode); v != "" {
		pieces = append(pieces, "PAYEE_BC="+v)
	}

	if v := Sanitize(row.PurposeText); v != "" {
		pieces = append(pieces, "PT="+v)
	}

	// Reference wins over record number.
	ref := Sanitize(row.Reference)
	if ref == "" {
		ref = Sanitize(row.RecordNumber)
	}
	if ref != "" {
		pieces = append(pieces, "REF="+ref)
	}

	if v := Sanitize(row.RecordData); v != "" {
		pieces = append(pieces, "RD="+v)
	}

	return strings.Join(pieces, " | ")
}
