package models

import (
	"strings"
)

// SupportedCurrency is the only settlement currency this importer accepts.
// Every row and the target ledger must agree on it.
const SupportedCurrency = "EUR"

// Transaction represents one normalized bank statement transaction.
type Transaction struct {
	Date        string  `json:"date"`        // ISO 8601 operation date
	Description string  `json:"description"` // fixed-order KEY=value encoding, pipe-separated
	Amount      float64 `json:"amount"`      // signed; positive = inbound
	Fingerprint string  `json:"fingerprint"` // content-derived dedup ID (sha256 hex)
	PartnerName string  `json:"partnerName,omitempty"`
}

// Statement is the envelope for one imported file: a single-currency,
// date-sorted batch of transactions ready for ledger posting.
type Statement struct {
	Currency     string        `json:"currency"`
	Date         string        `json:"date"` // most recent operation date in the batch
	Name         string        `json:"name"`
	BalanceStart float64       `json:"balanceStart"`
	BalanceEnd   float64       `json:"balanceEnd"`
	Transactions []Transaction `json:"transactions"`
}

// FileFormat identifies the container format of an uploaded file.
type FileFormat string

const (
	FormatXLSX    FileFormat = "xlsx" // zip container
	FormatXLS     FileFormat = "xls"  // OLE2 compound document
	FormatUnknown FileFormat = ""
)

// OwnerAccounts is the set of account identifiers considered "self" when
// deciding which side of a transaction is the counterparty. Identifiers are
// stored normalized (whitespace stripped, upper-cased). An empty set means
// no counterparty name is ever attached.
type OwnerAccounts map[string]struct{}

// NewOwnerAccounts builds an owner set from raw account identifiers,
// normalizing each and dropping blanks.
func NewOwnerAccounts(accounts ...string) OwnerAccounts {
	set := make(OwnerAccounts, len(accounts))
	for _, a := range accounts {
		if n := NormalizeAccount(a); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Contains reports whether the normalized form of acc is in the owner set.
func (o OwnerAccounts) Contains(acc string) bool {
	_, ok := o[NormalizeAccount(acc)]
	return ok
}

// NormalizeAccount normalizes an account number or IBAN for comparison:
// all whitespace removed, upper-cased.
func NormalizeAccount(acc string) string {
	return strings.ToUpper(strings.Join(strings.Fields(acc), ""))
}
