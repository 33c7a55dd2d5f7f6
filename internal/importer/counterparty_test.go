package importer

import (
	"testing"

	"github.com/insightdelivered/statement-sheet-importer/internal/models"
	"github.com/insightdelivered/statement-sheet-importer/internal/sheet"
)

func TestPartnerName(t *testing.T) {
	owner := "AT611904300234573201"
	other := "DE89370400440532013000"

	tests := []struct {
		name     string
		owners   models.OwnerAccounts
		row      sheet.Row
		expected string
	}{
		{
			name:   "owner pays, payee is counterparty",
			owners: models.NewOwnerAccounts(owner),
			row: sheet.Row{
				PayerName: "Self", PayerAccount: owner,
				PayeeName: "Grocery Store", PayeeAccount: other,
			},
			expected: "Grocery Store",
		},
		{
			name:   "owner receives, payer is counterparty",
			owners: models.NewOwnerAccounts(owner),
			row: sheet.Row{
				PayerName: "Employer GmbH", PayerAccount: other,
				PayeeName: "Self", PayeeAccount: owner,
			},
			expected: "Employer GmbH",
		},
		{
			name:   "both sides owned, internal transfer",
			owners: models.NewOwnerAccounts(owner, other),
			row: sheet.Row{
				PayerName: "Self A", PayerAccount: owner,
				PayeeName: "Self B", PayeeAccount: other,
			},
			expected: "",
		},
		{
			name:   "neither side owned",
			owners: models.NewOwnerAccounts("GB29NWBK60161331926819"),
			row: sheet.Row{
				PayerName: "A", PayerAccount: owner,
				PayeeName: "B", PayeeAccount: other,
			},
			expected: "",
		},
		{
			name:   "empty owner set",
			owners: models.NewOwnerAccounts(),
			row: sheet.Row{
				PayerName: "A", PayerAccount: owner,
				PayeeName: "B", PayeeAccount: other,
			},
			expected: "",
		},
		{
			name:   "payer account missing",
			owners: models.NewOwnerAccounts(owner),
			row: sheet.Row{
				PayerName: "A",
				PayeeName: "B", PayeeAccount: other,
			},
			expected: "",
		},
		{
			name:   "payee account missing",
			owners: models.NewOwnerAccounts(owner),
			row: sheet.Row{
				PayerName: "A", PayerAccount: owner,
				PayeeName: "B",
			},
			expected: "",
		},
		{
			name:   "accounts match after normalization",
			owners: models.NewOwnerAccounts("at61 1904 3002 3457 3201"),
			row: sheet.Row{
				PayerName: "Self", PayerAccount: "AT61 1904 3002 3457 3201",
				PayeeName: "Shop", PayeeAccount: other,
			},
			expected: "Shop",
		},
		{
			name:   "counterparty name is sanitized",
			owners: models.NewOwnerAccounts(owner),
			row: sheet.Row{
				PayerName: "Self", PayerAccount: owner,
				PayeeName: "  ACME | Corp \n Ltd ", PayeeAccount: other,
			},
			expected: "ACME / Corp Ltd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PartnerName(tt.row, tt.owners)
			if got != tt.expected {
				t.Errorf("PartnerName: got %q, want %q", got, tt.expected)
			}
		})
	}
}
