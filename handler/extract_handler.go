package handler

import (
	"log"
	"net/http"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/Aashish23092/ocr-invoice-extraction/service"

	"github.com/gin-gonic/gin"
)

type ExtractHandler struct {
	extractionService *service.ExtractionService
}

func NewExtractHandler(extractionService *service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{
		extractionService: extractionService,
	}
}

// ExtractFields handles POST /invoice/extract: pre-recognized fragments in,
// field map out.
func (h *ExtractHandler) ExtractFields(c *gin.Context) {
	var request dto.ExtractRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	log.Printf("Extracting fields from %d fragments (type=%s)", len(request.Fragments), request.DocumentType)

	response := h.extractionService.ExtractFromFragments(&request)

	log.Printf("Extraction %s produced %d fields", response.RequestID, len(response.Fields))
	c.JSON(http.StatusOK, response)
}

// ExtractFile handles POST /invoice/extract-file: an uploaded image or PDF
func (h *ExtractHandler) ExtractFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No file provided", err)
		return
	}

	request := &dto.ExtractFileRequest{
		File:         file,
		DocumentType: dto.DocumentType(c.PostForm("document_type")),
		Password:     c.PostForm("password"),
	}

	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	log.Printf("Processing uploaded file %s (type=%s)", file.Filename, request.DocumentType)

	response, err := h.extractionService.ExtractFromFile(request)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to process document", err)
		return
	}

	log.Printf("Extraction %s produced %d fields", response.RequestID, len(response.Fields))
	c.JSON(http.StatusOK, response)
}

// sendError sends a structured error response
func (h *ExtractHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
