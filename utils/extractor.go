package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
)

// Extractor is the engine's only public entry point. It is stateless between
// calls: every invocation works over its own fragment list and returns a
// fresh field map, so one Extractor can serve concurrent extractions.
type Extractor struct {
	tuning         Tuning
	brandRe        *regexp.Regexp
	gazetteerRowRe *regexp.Regexp
}

// NewExtractor compiles the tuning vocabularies once and returns a ready
// engine. Panics on an empty brand list or gazetteer; config validation is
// expected to reject those before this point.
func NewExtractor(tuning Tuning) *Extractor {
	if len(tuning.Brands) == 0 || len(tuning.Gazetteer) == 0 {
		panic("utils: extractor tuning needs a brand list and a gazetteer")
	}
	return &Extractor{
		tuning:         tuning,
		brandRe:        vocabularyRe(tuning.Brands),
		gazetteerRowRe: vocabularyRe(tuning.Gazetteer),
	}
}

// vocabularyRe builds a case-insensitive word-bounded alternation
func vocabularyRe(words []string) *regexp.Regexp {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(w)))
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Tuning returns the tuning the extractor was built with
func (e *Extractor) Tuning() Tuning {
	return e.tuning
}

// ExtractFields reconstructs the document's logical structure from positioned
// OCR fragments. Invoices and receipts get the full pipeline: header fields,
// the line-item table, the financial summary and address blocks. Any other
// document type gets only the generic extractor. Matchers that find nothing
// contribute no keys; the call never fails, and an empty input yields an
// empty map.
func (e *Extractor) ExtractFields(fragments []dto.TextFragment, docType dto.DocumentType) dto.FieldMap {
	fields := make(dto.FieldMap)
	if len(fragments) == 0 {
		return fields
	}

	rows := GroupIntoRows(fragments, e.tuning.RowTolerance)
	fullText := JoinRows(rows)

	if !docType.IsStructured() {
		return extractGenericFields(fullText)
	}

	fields.Merge(ExtractHeaderFields(fullText))

	start, end := FindTableBounds(rows)
	fields.Merge(e.ExtractLineItems(rows, start, end))

	fields.Merge(ExtractTotals(fullText))
	fields.Merge(e.ExtractAddresses(fullText))

	attributeSources(fields, fragments)

	return fields
}

var standalonePhoneRe = regexp.MustCompile(`\b\d{10}\b`)

// extractGenericFields is the minimal strategy for unknown document types:
// every standalone 10-digit token becomes a phone_{n} field.
func extractGenericFields(fullText string) dto.FieldMap {
	fields := make(dto.FieldMap)
	for i, m := range standalonePhoneRe.FindAllString(fullText, -1) {
		key := fmt.Sprintf("phone_%d", i+1)
		fields.Put(key, dto.PatternField(key, m, m, 0.70))
	}
	return fields
}

// attributeSources back-fills fragment traceability for fields extracted from
// the joined document text. A field whose raw value occurs verbatim in some
// fragment is attributed to the first such fragment; values that straddle
// fragment boundaries keep an empty source set, which the field model
// permits.
func attributeSources(fields dto.FieldMap, fragments []dto.TextFragment) {
	for key, field := range fields {
		if len(field.SourceFragmentIDs) > 0 || field.RawValue == "" {
			continue
		}
		for _, frag := range fragments {
			if strings.Contains(frag.Text, field.RawValue) {
				field.SourceFragmentIDs = []string{frag.ID}
				field.BoundingBox = &dto.BoundingBox{
					Left:   frag.Left,
					Top:    frag.Top,
					Right:  frag.Right,
					Bottom: frag.Bottom,
				}
				fields[key] = field
				break
			}
		}
	}
}
