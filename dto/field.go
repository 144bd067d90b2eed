package dto

// ValidationMethod names how an extracted value was checked
type ValidationMethod string

const (
	ValidationPatternMatch ValidationMethod = "pattern_match"
	ValidationChecksum     ValidationMethod = "checksum"
	ValidationNumericRange ValidationMethod = "numeric_range"
	ValidationGazetteer    ValidationMethod = "gazetteer"
	ValidationQRCode       ValidationMethod = "qr_code"
)

// FieldValidation records the check applied to an extracted value
type FieldValidation struct {
	Method     ValidationMethod `json:"method"`
	Passed     bool             `json:"passed"`
	Confidence float64          `json:"confidence"`
}

// ExtractedField is one semantic output slot with its evidence trail.
// Confidence is fixed per extraction rule, not computed from match quality.
type ExtractedField struct {
	FieldType         string          `json:"field_type"`
	RawValue          string          `json:"raw_value"`
	Value             string          `json:"value"`
	Confidence        float64         `json:"confidence"`
	SourceFragmentIDs []string        `json:"source_fragment_ids,omitempty"`
	BoundingBox       *BoundingBox    `json:"bounding_box,omitempty"`
	Validation        FieldValidation `json:"validation"`
}

// FieldMap maps field keys to extracted fields. Keys are unique; the first
// writer of a key wins across all extraction stages.
type FieldMap map[string]ExtractedField

// Put inserts a field unless the key is already present
func (m FieldMap) Put(key string, field ExtractedField) {
	if _, exists := m[key]; exists {
		return
	}
	m[key] = field
}

// Merge folds other into m without overwriting existing keys
func (m FieldMap) Merge(other FieldMap) {
	for key, field := range other {
		m.Put(key, field)
	}
}

// PatternField builds a field validated by pattern matching, the common case
// for header fields where raw and processed values may differ.
func PatternField(fieldType, raw, processed string, confidence float64) ExtractedField {
	return ExtractedField{
		FieldType:  fieldType,
		RawValue:   raw,
		Value:      processed,
		Confidence: confidence,
		Validation: FieldValidation{
			Method:     ValidationPatternMatch,
			Passed:     true,
			Confidence: confidence,
		},
	}
}
