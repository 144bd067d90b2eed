package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/shopspring/decimal"
)

var (
	// hsnCodeRe matches 4-8 digit HSN/tax classification codes trailing a
	// product description.
	hsnCodeRe = regexp.MustCompile(`\b\d{4,8}\b`)

	// qtyUnitRe matches quantity-with-unit suffixes like "1.00 PCS"
	qtyUnitRe = regexp.MustCompile(`(?i)\b(\d{1,3}(?:\.\d+)?)\s*pcs\b`)

	// priceTokenRe matches formatted prices with thousands separators and
	// two decimals, e.g. "17,759.00".
	priceTokenRe = regexp.MustCompile(`\b\d{1,3}(?:,\d{3})+\.\d{2}\b`)

	// numericTokenRe matches any integer or decimal token, with optional
	// thousands separators. One scan feeds both rate and amount selection.
	numericTokenRe = regexp.MustCompile(`\b\d+(?:,\d{3})*(?:\.\d{1,2})?\b`)

	// storageSizeRe matches device storage tokens like "8gb"/"256gb"
	storageSizeRe = regexp.MustCompile(`(?i)\b\d{1,4}\s*gb\b`)

	// imeiCandidateRe finds 15-digit serial candidates
	imeiCandidateRe = regexp.MustCompile(`\b\d{15}\b`)

	// rowExclusionRe rejects address and metadata rows that would otherwise
	// false-positive as products (they often contain brand-like city names
	// and plenty of digits).
	rowExclusionRe = regexp.MustCompile(`(?i)\b(?:gstin|uin|state\s+name|state\s+code|contact|e-?mail|phone|mobile|delivery\s+terms?|dispatch|destination)\b`)

	// imeiAntiContextRe marks rows whose 15-digit numbers are document
	// references, not device identifiers.
	imeiAntiContextRe = regexp.MustCompile(`(?i)\b(?:invoice|irn|ack|reference)\b`)
)

// ExtractLineItems walks the rows inside bounds and emits indexed product
// fields: product_{n}_description and, when present, _quantity, _rate,
// _amount and _imei. Indices start at 1 and have no gaps. A row becomes a
// product only when it carries a known brand name and a storage-size token;
// everything else is skipped silently.
func (e *Extractor) ExtractLineItems(rows []dto.Row, start, end int) dto.FieldMap {
	fields := make(dto.FieldMap)
	index := 0

	for i := start; i < end && i < len(rows); i++ {
		row := rows[i]
		text := row.Text()

		if len(text) < e.tuning.MinRowLength {
			continue
		}
		if rowExclusionRe.MatchString(text) || e.gazetteerRowRe.MatchString(text) {
			continue
		}

		desc, ok := e.productDescription(text)
		if !ok {
			continue
		}

		index++
		prefix := fmt.Sprintf("product_%d_", index)

		fields.Put(prefix+"description", dto.ExtractedField{
			FieldType:         "product_description",
			RawValue:          text,
			Value:             desc,
			Confidence:        0.85,
			SourceFragmentIDs: row.FragmentIDs(),
			BoundingBox:       row.Bounds(),
			Validation: dto.FieldValidation{
				Method:     dto.ValidationPatternMatch,
				Passed:     true,
				Confidence: 0.85,
			},
		})

		if qty, ok := e.quantity(text); ok {
			fields.Put(prefix+"quantity", numericRowField("product_quantity", qty, row, 0.80))
		}

		rate, amount := e.rateAndAmount(text)
		if rate != "" {
			fields.Put(prefix+"rate", numericRowField("product_rate", rate, row, 0.80))
		}
		if amount != "" {
			fields.Put(prefix+"amount", numericRowField("product_amount", amount, row, 0.80))
		}

		if imei, source, ok := findIMEI(rows, i); ok {
			fields.Put(prefix+"imei", dto.ExtractedField{
				FieldType:         "product_imei",
				RawValue:          imei,
				Value:             imei,
				Confidence:        0.95,
				SourceFragmentIDs: source.FragmentIDs(),
				BoundingBox:       source.Bounds(),
				Validation: dto.FieldValidation{
					Method:     dto.ValidationChecksum,
					Passed:     true,
					Confidence: 0.95,
				},
			})
		}
	}

	return fields
}

// productDescription applies the brand+storage gate and derives the cleaned
// description. The substring from the brand match to end of row is truncated
// at the earliest of an HSN code, a quantity-unit suffix or a price token;
// the truncated text must still carry a storage-size token or the row is
// rejected outright.
func (e *Extractor) productDescription(text string) (string, bool) {
	loc := e.brandRe.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	if !storageSizeRe.MatchString(text) {
		return "", false
	}

	desc := text[loc[0]:]
	cut := len(desc)
	for _, re := range []*regexp.Regexp{hsnCodeRe, qtyUnitRe, priceTokenRe} {
		if m := re.FindStringIndex(desc); m != nil && m[0] < cut {
			cut = m[0]
		}
	}
	desc = strings.TrimSpace(desc[:cut])

	if !storageSizeRe.MatchString(desc) {
		return "", false
	}
	return desc, true
}

// quantity extracts the per-line quantity. The "<n> PCS" pattern wins when
// present; otherwise any standalone 1-2 digit token qualifies. Values above
// the configured cap are rejected, and fractional counts like "1.00" are
// normalized to their integer form.
func (e *Extractor) quantity(text string) (string, bool) {
	if m := qtyUnitRe.FindStringSubmatch(text); m != nil {
		if qty, ok := e.normalizeQuantity(m[1]); ok {
			return qty, true
		}
	}

	for _, token := range strings.Fields(text) {
		if len(token) > 2 {
			continue
		}
		n, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		if n > 0 && n <= e.tuning.QuantityMax {
			return token, true
		}
	}

	return "", false
}

// normalizeQuantity pins down the "1.00 PCS" ambiguity: integral decimals
// collapse to their integer string, anything else keeps its raw form.
func (e *Extractor) normalizeQuantity(raw string) (string, bool) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return "", false
	}
	if d.LessThanOrEqual(decimal.Zero) || d.GreaterThan(decimal.NewFromInt(int64(e.tuning.QuantityMax))) {
		return "", false
	}
	if d.IsInteger() {
		return strconv.FormatInt(d.IntPart(), 10), true
	}
	return raw, true
}

// rateAndAmount scans the row's numeric tokens once: the first token whose
// value falls in the rate range is the unit rate, the last token in the
// amount range is the line total. A row with a single qualifying number can
// legitimately yield the same token for both.
func (e *Extractor) rateAndAmount(text string) (rate, amount string) {
	for _, token := range numericTokenRe.FindAllString(text, -1) {
		value, err := decimal.NewFromString(strings.ReplaceAll(token, ",", ""))
		if err != nil {
			continue
		}
		if rate == "" && inRange(value, e.tuning.RateMin, e.tuning.RateMax) {
			rate = token
		}
		if inRange(value, e.tuning.AmountMin, e.tuning.AmountMax) {
			amount = token
		}
	}
	return rate, amount
}

func inRange(v decimal.Decimal, lo, hi int) bool {
	return v.GreaterThanOrEqual(decimal.NewFromInt(int64(lo))) &&
		v.LessThanOrEqual(decimal.NewFromInt(int64(hi)))
}

// findIMEI looks ahead up to two rows past the product row for a checksum-
// valid 15-digit device identifier. Rows mentioning invoice/IRN/ACK context
// are skipped: their long numbers are document references.
func findIMEI(rows []dto.Row, productIdx int) (string, dto.Row, bool) {
	for j := productIdx + 1; j <= productIdx+2 && j < len(rows); j++ {
		row := rows[j]
		text := row.Text()
		if imeiAntiContextRe.MatchString(text) {
			continue
		}
		for _, candidate := range imeiCandidateRe.FindAllString(text, -1) {
			if ValidateIMEI(candidate) {
				return candidate, row, true
			}
		}
	}
	return "", dto.Row{}, false
}

// numericRowField builds a range-validated numeric sub-field attributed to
// its source row.
func numericRowField(fieldType, value string, row dto.Row, confidence float64) dto.ExtractedField {
	return dto.ExtractedField{
		FieldType:         fieldType,
		RawValue:          value,
		Value:             value,
		Confidence:        confidence,
		SourceFragmentIDs: row.FragmentIDs(),
		BoundingBox:       row.Bounds(),
		Validation: dto.FieldValidation{
			Method:     dto.ValidationNumericRange,
			Passed:     true,
			Confidence: confidence,
		},
	}
}
