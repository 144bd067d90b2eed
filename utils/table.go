package utils

import (
	"regexp"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
)

var (
	// strictHeaderRe matches a full tax-invoice table header: serial column,
	// description column, HSN/SAC column and a quantity column on one row.
	strictHeaderRe = regexp.MustCompile(`(?i)\b(?:sl|sr|s)\.?\s*no\b.*\b(?:description|particulars)\b.*\bhsn(?:/sac)?\b.*\b(?:qty|quantity)\b`)

	// looseHeaderRe accepts header rows without serial/HSN columns
	looseHeaderRe = regexp.MustCompile(`(?i)\b(?:description|particulars|item)\b.*\b(?:qty|quantity)\b.*\brate\b.*\bamount\b`)

	// totalsRowRe marks the first row after the table body
	totalsRowRe = regexp.MustCompile(`(?i)\b(?:sub\s*total|subtotal|grand\s*total|total|taxable\s*value|cgst|sgst|igst)\b`)
)

// FindTableBounds locates the line-item table as a half-open [start, end)
// range into rows. The row after the first header-looking row starts the
// table; the first totals-looking row after that ends it. Without a header
// the whole document is returned and row-level content filtering is trusted
// to reject non-product rows.
func FindTableBounds(rows []dto.Row) (int, int) {
	start := 0
	found := false

	for i, row := range rows {
		text := row.Text()
		if strictHeaderRe.MatchString(text) || looseHeaderRe.MatchString(text) {
			start = i + 1
			found = true
			break
		}
	}

	end := len(rows)
	if found {
		for i := start; i < len(rows); i++ {
			if totalsRowRe.MatchString(rows[i].Text()) {
				end = i
				break
			}
		}
	}

	return start, end
}
