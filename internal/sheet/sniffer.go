// Package sheet reads the first worksheet of a bank transaction export,
// resolving its header row against a fixed column vocabulary and projecting
// each data row into a fixed-schema record.
package sheet

import (
	"bytes"

	"github.com/insightdelivered/statement-sheet-importer/internal/models"
)

// Container signatures checked against the first bytes of the file.
var (
	sigZIP  = []byte{0x50, 0x4B, 0x03, 0x04}                         // xlsx (PK zip)
	sigOLE2 = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1} // legacy xls (OLE2 CFBF)
)

// DetectFormat classifies raw bytes by magic prefix. Unrecognized content is
// never parsed here; callers hand it to their own fallback import path.
func DetectFormat(data []byte) models.FileFormat {
	if bytes.HasPrefix(data, sigZIP) {
		return models.FormatXLSX
	}
	if bytes.HasPrefix(data, sigOLE2) {
		return models.FormatXLS
	}
	return models.FormatUnknown
}
