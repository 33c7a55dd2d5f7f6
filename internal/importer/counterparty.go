package importer

import (
	"github.com/insightdelivered/statement-sheet-importer/internal/models"
	"github.com/insightdelivered/statement-sheet-importer/internal/sheet"
)

// PartnerName decides whether a counterparty name can be safely attached to
// a row. The rule is strict, no guessing: the owner set and both account
// fields must be present, and exactly one of the two accounts must belong to
// the owner set — then the other side's sanitized name is the counterparty.
// When neither or both sides match (a transfer between the owner's own
// accounts, or an unrelated owner context), the direction of money relative
// to the owner is unclear and no name is attached.
func PartnerName(row sheet.Row, owners models.OwnerAccounts) string {
	if len(owners) == 0 {
		return ""
	}

	payerAcc := models.NormalizeAccount(row.PayerAccount)
	payeeAcc := models.NormalizeAccount(row.PayeeAccount)
	if payerAcc == "" || payeeAcc == "" {
		return ""
	}

	payerIsOwner := owners.Contains(payerAcc)
	payeeIsOwner := owners.Contains(payeeAcc)
	if payerIsOwner == payeeIsOwner {
		return ""
	}

	if payerIsOwner {
		return Sanitize(row.PayeeName)
	}
	return Sanitize(row.PayerName)
}
