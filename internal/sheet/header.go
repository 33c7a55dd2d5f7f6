package sheet

import (
	"strings"

	"github.com/insightdelivered/statement-sheet-importer/internal/models"
)

// Column vocabulary. Labels are matched case- and whitespace-insensitively
// but otherwise exactly: no synonyms, no fuzzy matching. Unknown extra
// columns are ignored.
var (
	requiredFields = []string{
		"operation date",
		"value date",
		"booking text",
		"internal note",
		"currency",
		"amount",
	}

	optionalFields = []string{
		"record data",
		"record number",
		"payer name",
		"payer account",
		"payer bank code",
		"payee name",
		"payee account",
		"payee bank code",
		"purpose text",
		"reference",
	}
)

// Row is one spreadsheet data row projected onto the vocabulary. Cell values
// are raw display strings from the decoder; an empty string means the cell
// was blank or its column was absent from the file.
type Row struct {
	OperationDate string
	ValueDate     string
	BookingText   string
	InternalNote  string
	Currency      string
	Amount        string

	RecordData    string
	RecordNumber  string
	PayerName     string
	PayerAccount  string
	PayerBankCode string
	PayeeName     string
	PayeeAccount  string
	PayeeBankCode string
	PurposeText   string
	Reference     string
}

// normalizeLabel trims, collapses internal whitespace runs to single spaces,
// and lower-cases a header label.
func normalizeLabel(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// resolveHeader maps each vocabulary field present in the header row to its
// column position. Every required field must resolve; otherwise a
// *models.MissingColumnsError naming all missing fields is returned.
func resolveHeader(labels []string) (map[string]int, error) {
	known := make(map[string]bool, len(requiredFields)+len(optionalFields))
	for _, f := range requiredFields {
		known[f] = true
	}
	for _, f := range optionalFields {
		known[f] = true
	}

	columns := make(map[string]int)
	for i, label := range labels {
		norm := normalizeLabel(label)
		if known[norm] {
			if _, dup := columns[norm]; !dup {
				columns[norm] = i
			}
		}
	}

	// Enumerate missing fields in vocabulary order so the error message is
	// stable across imports of the same broken file.
	var missing []string
	for _, f := range requiredFields {
		if _, ok := columns[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &models.MissingColumnsError{Columns: missing}
	}

	return columns, nil
}

// projectRow maps raw row cells into a Row using resolved column positions.
func projectRow(columns map[string]int, cells []string) Row {
	get := func(field string) string {
		col, ok := columns[field]
		if !ok || col >= len(cells) {
			return ""
		}
		return cells[col]
	}

	return Row{
		OperationDate: get("operation date"),
		ValueDate:     get("value date"),
		BookingText:   get("booking text"),
		InternalNote:  get("internal note"),
		Currency:      get("currency"),
		Amount:        get("amount"),
		RecordData:    get("record data"),
		RecordNumber:  get("record number"),
		PayerName:     get("payer name"),
		PayerAccount:  get("payer account"),
		PayerBankCode: get("payer bank code"),
		PayeeName:     get("payee name"),
		PayeeAccount:  get("payee account"),
		PayeeBankCode: get("payee bank code"),
		PurposeText:   get("purpose text"),
		Reference:     get("reference"),
	}
}

// isBlankRow reports whether every cell is empty or whitespace. Blank
// trailing rows are dropped by the readers so they never become empty
// transactions.
func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
