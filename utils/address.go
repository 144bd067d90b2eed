package utils

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
)

const (
	addressWindowBefore = 200
	addressWindowAfter  = 50
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// ExtractAddresses locates one address block via the place-name gazetteer.
// The earliest gazetteer hit wins and a bounded window of surrounding text is
// captured as the block. Whether it lands in vendor_address or buyer_address
// depends on the hit's position: vendor details print in the top half of an
// invoice, buyer details in the bottom half. Only one address is emitted per
// document; a second place name is never looked for.
func (e *Extractor) ExtractAddresses(fullText string) dto.FieldMap {
	fields := make(dto.FieldMap)
	if fullText == "" {
		return fields
	}

	lower := strings.ToLower(fullText)
	hitPos := -1
	hitLen := 0
	for _, place := range e.tuning.Gazetteer {
		pos := strings.Index(lower, strings.ToLower(place))
		if pos < 0 {
			continue
		}
		if hitPos < 0 || pos < hitPos {
			hitPos = pos
			hitLen = len(place)
		}
	}
	if hitPos < 0 {
		return fields
	}

	start := hitPos - addressWindowBefore
	if start < 0 {
		start = 0
	}
	end := hitPos + hitLen + addressWindowAfter
	if end > len(fullText) {
		end = len(fullText)
	}

	block := strings.TrimSpace(whitespaceRe.ReplaceAllString(fullText[start:end], " "))
	if block == "" {
		return fields
	}

	key := "vendor_address"
	if hitPos >= len(fullText)/2 {
		key = "buyer_address"
	}

	fields.Put(key, dto.ExtractedField{
		FieldType:  key,
		RawValue:   fullText[start:end],
		Value:      block,
		Confidence: 0.75,
		Validation: dto.FieldValidation{
			Method:     dto.ValidationGazetteer,
			Passed:     true,
			Confidence: 0.75,
		},
	})
	return fields
}
