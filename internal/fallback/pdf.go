// Package fallback is the host side of the import contract: when the sheet
// importer rejects bytes as an unrecognized container, the original bytes are
// handed here. It currently supports text-based PDF statements, parsed
// best-effort into the same statement envelope the sheet pipeline produces.
package fallback

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-sheet-importer/internal/importer"
	"github.com/insightdelivered/statement-sheet-importer/internal/models"
)

var pdfSignature = []byte("%PDF-")

// A transaction line starts with a date and ends with an amount; everything
// between is the description.
var (
	lineDatePattern   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}|\d{1,2}[./]\d{1,2}[./]\d{2,4})\s+(.*)$`)
	lineAmountPattern = regexp.MustCompile(`([-+]?\d{1,3}(?:[.,]\d{3})*[.,]\d{2})\s*$`)
)

// Import attempts the fallback import path on bytes the sheet importer could
// not recognize. Non-PDF bytes are rejected with models.ErrUnrecognizedFormat.
func Import(data []byte, log zerolog.Logger) (*models.Statement, error) {
	if !bytes.HasPrefix(data, pdfSignature) {
		return nil, models.ErrUnrecognizedFormat
	}

	pages, err := extractText(data)
	if err != nil {
		return nil, fmt.Errorf("pdf fallback: %w", err)
	}

	log.Info().Int("pages", len(pages)).Msg("pdf fallback: text extracted")

	var txs []models.Transaction
	var total float64
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			tx, ok := parseLine(line)
			if !ok {
				continue
			}
			txs = append(txs, tx)
			total += tx.Amount
		}
	}

	if len(txs) == 0 {
		return nil, models.ErrEmptyStatement
	}

	sort.Slice(txs, func(i, j int) bool {
		if txs[i].Date != txs[j].Date {
			return txs[i].Date < txs[j].Date
		}
		return txs[i].Fingerprint < txs[j].Fingerprint
	})

	minDate := txs[0].Date
	maxDate := txs[len(txs)-1].Date
	span := maxDate
	if minDate != maxDate {
		span = minDate + ".." + maxDate
	}

	log.Info().Int("count", len(txs)).Str("date", maxDate).Msg("pdf fallback: done")

	return &models.Statement{
		Currency:     models.SupportedCurrency,
		Date:         maxDate,
		Name:         fmt.Sprintf("Bank statement import %s (%s)", span, models.SupportedCurrency),
		BalanceEnd:   total,
		Transactions: txs,
	}, nil
}

// parseLine extracts a transaction from one text line, if the line carries a
// leading date and a trailing amount.
func parseLine(line string) (models.Transaction, bool) {
	line = strings.TrimSpace(line)

	dateMatch := lineDatePattern.FindStringSubmatch(line)
	if dateMatch == nil {
		return models.Transaction{}, false
	}
	rest := dateMatch[2]

	amountMatch := lineAmountPattern.FindStringSubmatch(rest)
	if amountMatch == nil {
		return models.Transaction{}, false
	}

	date := importer.ToISODate(dateMatch[1])
	amount := importer.ParseNumber(amountMatch[1])
	desc := importer.Sanitize(strings.TrimSuffix(rest, amountMatch[0]))
	if desc == "" {
		return models.Transaction{}, false
	}

	return models.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Fingerprint: importer.Fingerprint(date, amount, desc),
	}, true
}

// extractText pulls per-page text rows out of a PDF held in memory. The pdf
// library panics on some malformed documents, so extraction is fenced.
func extractText(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader crashed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			pages = append(pages, strings.Join(lines, "\n"))
		}
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("no text could be extracted; the pdf may be image-based or scanned")
	}
	return pages, nil
}
