package importer

import (
	"crypto/sha256"
	"encoding/hex"
)

// bookingTextSeedLimit bounds the booking-text contribution to the
// fingerprint seed so cosmetic tail edits in long booking texts do not break
// dedup across re-exports.
const bookingTextSeedLimit = 64

// Fingerprint computes the deduplication identifier for a transaction.
// The seed uses only fields that are stable across independent exports of
// the same banking period — operation date, amount, and a bounded prefix of
// the sanitized booking text — and deliberately excludes per-file artifacts
// like row position, so re-importing an overlapping export yields the same
// identifier for the same underlying transaction.
func Fingerprint(opDate string, amount float64, bookingText string) string {
	bt := Sanitize(bookingText)
	if runes := []rune(bt); len(runes) > bookingTextSeedLimit {
		bt = string(runes[:bookingTextSeedLimit])
	}

	seed := opDate + "|" + FormatAmount(amount) + "|" + bt
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}
