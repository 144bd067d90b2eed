package dto

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
)

// ExtractRequest carries pre-recognized fragments for extraction
type ExtractRequest struct {
	Fragments    []TextFragment `json:"fragments" binding:"required"`
	DocumentType DocumentType   `json:"document_type"`
}

// Validate performs basic validation on the request
func (r *ExtractRequest) Validate() error {
	if r.DocumentType == "" {
		r.DocumentType = DocTypeInvoice
	}
	switch r.DocumentType {
	case DocTypeInvoice, DocTypeReceipt, DocTypeOther:
	default:
		return fmt.Errorf("unknown document type: %s", r.DocumentType)
	}
	for i, f := range r.Fragments {
		if f.ID == "" {
			return fmt.Errorf("fragment %d is missing an id", i)
		}
	}
	return nil
}

// ExtractFileRequest carries an uploaded invoice image or PDF
type ExtractFileRequest struct {
	File         *multipart.FileHeader
	DocumentType DocumentType
	Password     string
}

// Validate checks the uploaded file before any processing
func (r *ExtractFileRequest) Validate() error {
	if r.File == nil {
		return errors.New("file is required")
	}

	filename := strings.ToLower(r.File.Filename)
	validExtensions := []string{".pdf", ".png", ".jpg", ".jpeg"}
	valid := false
	for _, ext := range validExtensions {
		if strings.HasSuffix(filename, ext) {
			valid = true
			break
		}
	}
	if !valid {
		return errors.New("invalid file type. Supported: PDF, PNG, JPG")
	}

	if r.DocumentType == "" {
		r.DocumentType = DocTypeInvoice
	}
	return nil
}

// IsPDF reports whether the uploaded file is a PDF by extension
func (r *ExtractFileRequest) IsPDF() bool {
	return strings.HasSuffix(strings.ToLower(r.File.Filename), ".pdf")
}
