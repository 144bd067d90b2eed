package dto

// DocumentQuality scores how usable the source document was
type DocumentQuality struct {
	OcrConfidence float64  `json:"ocr_confidence"`
	TextScore     float64  `json:"text_score"`
	FinalScore    float64  `json:"final_score"`
	Issues        []string `json:"issues,omitempty"`
}

// ExtractResponse is the final response structure
type ExtractResponse struct {
	RequestID    string          `json:"request_id"`
	DocumentType DocumentType    `json:"document_type"`
	Fields       FieldMap        `json:"fields"`
	Quality      DocumentQuality `json:"quality"`
	ProcessedAt  string          `json:"processed_at"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
