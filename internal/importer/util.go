package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Text date formats accepted for operation/value dates, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"02.01.06",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
}

// Generic ISO-8601 datetime layouts used as a last parsing attempt.
var isoDateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Excel serial dates count days from the 1900 date-system epoch.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ToISODate converts a raw date cell into a YYYY-MM-DD string, best effort.
// Text is tried against the known layouts in order, first match wins, then
// against generic ISO datetimes. A bare number is treated as an Excel serial
// date (legacy xls decoders surface unformatted date cells that way). If
// everything fails the trimmed original text is returned unchanged; date
// validation is the caller's concern, not a reason to reject the file.
func ToISODate(val string) string {
	s := strings.TrimSpace(val)
	if s == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	for _, layout := range isoDateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	// 2958465 is the serial for 9999-12-31.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 1 && serial <= 2958465 {
		return excelEpoch.AddDate(0, 0, int(serial)).Format("2006-01-02")
	}

	return s
}

var nonNumericPattern = regexp.MustCompile(`[^0-9.\-]`)

// ParseNumber converts a raw amount cell into a float64. It disambiguates
// decimal versus thousands separators without a locale flag: when both ','
// and '.' appear, whichever comes later is the decimal point; a lone ','
// is always the decimal point. Unparseable input degrades to zero rather
// than failing the import.
func ParseNumber(val string) float64 {
	s := strings.TrimSpace(val)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, " ", "")

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	// Last resort: strip everything that is not a digit, '.' or '-'.
	s = nonNumericPattern.ReplaceAllString(s, "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// Sanitize prepares raw cell text for display and for the description
// encoding: newlines and whitespace runs collapse to single spaces, and the
// literal '|' becomes '/' because the pipe is the description's reserved
// field separator. An all-whitespace value sanitizes to "", which downstream
// builders treat as absent.
func Sanitize(val string) string {
	s := strings.Join(strings.Fields(val), " ")
	return strings.ReplaceAll(s, "|", "/")
}

// FormatAmount renders an amount with exactly two decimal places.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
