package utils

import (
	"regexp"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
)

var (
	// amountRe matches generic two-decimal amounts anywhere in the document
	amountRe = regexp.MustCompile(`\b\d+(?:,\d{3})*\.\d{2}\b`)

	// taxAmountRe anchors on a tax label with a bounded lookahead to the
	// nearest amount.
	taxAmountRe = regexp.MustCompile(`(?i)\b(?:cgst|sgst|igst|tax)\b[^0-9\n]{0,40}(\d+(?:,\d{3})*\.\d{2})`)
)

// ExtractTotals recovers the financial summary from the document text.
// The grand total is taken as the last two-decimal amount printed, a layout
// convention on retail invoices rather than a structural guarantee; the tax
// amount comes from the first label-anchored match.
func ExtractTotals(fullText string) dto.FieldMap {
	fields := make(dto.FieldMap)

	amounts := amountRe.FindAllString(fullText, -1)
	if len(amounts) > 0 {
		last := amounts[len(amounts)-1]
		fields.Put("total_amount", dto.ExtractedField{
			FieldType:  "total_amount",
			RawValue:   last,
			Value:      last,
			Confidence: 0.80,
			Validation: dto.FieldValidation{
				Method:     dto.ValidationPatternMatch,
				Passed:     true,
				Confidence: 0.80,
			},
		})
	}

	if m := taxAmountRe.FindStringSubmatch(fullText); m != nil {
		fields.Put("tax_amount", dto.PatternField("tax_amount", m[0], m[1], 0.85))
	}

	return fields
}
