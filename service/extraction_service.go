package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Aashish23092/ocr-invoice-extraction/client"
	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/Aashish23092/ocr-invoice-extraction/utils"

	"github.com/google/uuid"
)

// ExtractionService is the boundary between transport and the extraction
// engine: it sources fragments from uploads (PDF text layer, scanned-PDF
// images, photos, QR codes) and hands them to the engine.
type ExtractionService struct {
	tesseractClient *client.TesseractClient
	qrClient        *client.QRClient
	pdfProcessor    PDFProcessor
	extractor       *utils.Extractor
}

func NewExtractionService(
	tesseractClient *client.TesseractClient,
	qrClient *client.QRClient,
	pdfProcessor PDFProcessor,
	extractor *utils.Extractor,
) *ExtractionService {
	return &ExtractionService{
		tesseractClient: tesseractClient,
		qrClient:        qrClient,
		pdfProcessor:    pdfProcessor,
		extractor:       extractor,
	}
}

// ExtractFromFragments runs the engine over caller-supplied fragments
func (s *ExtractionService) ExtractFromFragments(req *dto.ExtractRequest) *dto.ExtractResponse {
	fields := s.extractor.ExtractFields(req.Fragments, req.DocumentType)

	fullText := joinFragmentText(req.Fragments)
	quality := dto.DocumentQuality{
		OcrConfidence: 100.0, // fragments arrive pre-recognized
		TextScore:     evaluateTextQuality(fullText),
	}
	quality.FinalScore = (quality.OcrConfidence + quality.TextScore) / 2

	return s.buildResponse(req.DocumentType, fields, quality)
}

// ExtractFromFile processes an uploaded invoice file. PDFs try the text
// layer first and fall back to page-image OCR when the document is a scan;
// images try the e-invoice QR code first and fall back to OCR. Fields from
// the signed QR payload are merged ahead of everything the patterns find.
func (s *ExtractionService) ExtractFromFile(req *dto.ExtractFileRequest) (*dto.ExtractResponse, error) {
	f, err := req.File.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", req.File.Filename, err)
	}
	defer f.Close()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", req.File.Filename, err)
	}

	fields := make(dto.FieldMap)
	var fragments []dto.TextFragment
	var quality dto.DocumentQuality

	if req.IsPDF() {
		fragments, quality, err = s.fragmentsFromPDF(fileBytes, req.Password)
		if err != nil {
			return nil, err
		}
	} else {
		if img, decodeErr := decodeImage(fileBytes, req.File.Filename); decodeErr == nil {
			if qrData, qrErr := s.qrClient.DecodeInvoiceQR(img); qrErr == nil {
				fields.Merge(qrFields(qrData))
			} else {
				log.Printf("No usable e-invoice QR in %s: %v", req.File.Filename, qrErr)
			}
		}

		var conf float64
		fragments, conf, err = s.tesseractClient.ExtractFragmentsFromFile(req.File)
		if err != nil {
			return nil, fmt.Errorf("image OCR failed: %w", err)
		}
		quality.OcrConfidence = conf
	}

	quality.TextScore = evaluateTextQuality(joinFragmentText(fragments))
	quality.FinalScore = (quality.OcrConfidence + quality.TextScore) / 2
	if quality.FinalScore < 60 {
		quality.Issues = append(quality.Issues, "low_quality_document")
	}

	fields.Merge(s.extractor.ExtractFields(fragments, req.DocumentType))

	return s.buildResponse(req.DocumentType, fields, quality), nil
}

// fragmentsFromPDF tries the text layer first; scanned PDFs go through
// pdfcpu image extraction and per-page OCR, with pages processed
// concurrently and stitched back in order.
func (s *ExtractionService) fragmentsFromPDF(pdfData []byte, password string) ([]dto.TextFragment, dto.DocumentQuality, error) {
	var quality dto.DocumentQuality

	fragments, err := s.pdfProcessor.ExtractFragments(pdfData)
	if err != nil {
		log.Printf("PDF text extraction failed: %v", err)
		quality.Issues = append(quality.Issues, "pdf_text_extraction_failed")
	}

	if len(strings.TrimSpace(joinFragmentText(fragments))) >= 20 {
		quality.OcrConfidence = 100.0 // vector text layer
		return fragments, quality, nil
	}

	log.Println("PDF has minimal text, attempting image-based OCR")

	images, err := s.pdfProcessor.ExtractImages(pdfData, password)
	if err != nil || len(images) == 0 {
		quality.Issues = append(quality.Issues, "pdf_image_extraction_failed")
		return nil, quality, fmt.Errorf("failed to extract images from scanned PDF: %w", err)
	}

	type pageResult struct {
		fragments []dto.TextFragment
		conf      float64
	}

	results := make([]pageResult, len(images))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var ocrErrs []error

	for idx, img := range images {
		wg.Add(1)
		go func(idx int, img image.Image) {
			defer wg.Done()

			tempImgFile, err := saveImageToTempFile(img)
			if err != nil {
				mu.Lock()
				ocrErrs = append(ocrErrs, fmt.Errorf("page %d: %w", idx+1, err))
				mu.Unlock()
				return
			}
			defer os.Remove(tempImgFile)

			pageFragments, conf, err := s.tesseractClient.ExtractFragments(tempImgFile)
			if err != nil {
				mu.Lock()
				ocrErrs = append(ocrErrs, fmt.Errorf("page %d OCR failed: %w", idx+1, err))
				mu.Unlock()
				return
			}

			// Offset page-local coordinates so pages stack top to bottom
			for i := range pageFragments {
				pageFragments[i].ID = fmt.Sprintf("pg%d_%s", idx+1, pageFragments[i].ID)
				pageFragments[i].Top += idx * pdfPageSpan
				pageFragments[i].Bottom += idx * pdfPageSpan
			}
			results[idx] = pageResult{fragments: pageFragments, conf: conf}
		}(idx, img)
	}

	wg.Wait()

	var all []dto.TextFragment
	var totalConf float64
	var pages int
	for _, res := range results {
		if len(res.fragments) == 0 {
			continue
		}
		all = append(all, res.fragments...)
		totalConf += res.conf
		pages++
	}

	if pages == 0 {
		quality.Issues = append(quality.Issues, "scanned_pdf_ocr_failed")
		if len(ocrErrs) > 0 {
			return nil, quality, ocrErrs[0]
		}
		return nil, quality, fmt.Errorf("no text recognized in scanned PDF")
	}

	quality.OcrConfidence = totalConf / float64(pages)
	return all, quality, nil
}

func (s *ExtractionService) buildResponse(docType dto.DocumentType, fields dto.FieldMap, quality dto.DocumentQuality) *dto.ExtractResponse {
	return &dto.ExtractResponse{
		RequestID:    uuid.NewString(),
		DocumentType: docType,
		Fields:       fields,
		Quality:      quality,
		ProcessedAt:  time.Now().Format(time.RFC3339),
	}
}

// qrFields converts the signed e-invoice QR payload into header fields.
// These are merged ahead of OCR results, so a verified QR always wins.
func qrFields(data *dto.InvoiceQRData) dto.FieldMap {
	fields := make(dto.FieldMap)

	put := func(key, value string) {
		if value == "" {
			return
		}
		fields.Put(key, dto.ExtractedField{
			FieldType:  key,
			RawValue:   value,
			Value:      value,
			Confidence: 0.99,
			Validation: dto.FieldValidation{
				Method:     dto.ValidationQRCode,
				Passed:     true,
				Confidence: 0.99,
			},
		})
	}

	put("invoice_number", data.DocNo)
	put("invoice_date", data.DocDt)
	put("gst_number", data.SellerGstin)
	put("irn", data.Irn)
	if data.TotInvVal > 0 {
		put("total_amount", fmt.Sprintf("%.2f", data.TotInvVal))
	}

	return fields
}

// evaluateTextQuality scores extracted text 0-100 from its length and the
// presence of invoice vocabulary.
func evaluateTextQuality(text string) float64 {
	if text == "" {
		return 0.0
	}

	score := 0.0

	textLen := len(strings.TrimSpace(text))
	if textLen > 500 {
		score += 40.0
	} else if textLen > 100 {
		score += 20.0
	} else if textLen > 20 {
		score += 10.0
	}

	keywords := []string{
		"invoice", "gst", "total", "tax", "amount",
		"qty", "hsn", "bill", "rate",
	}

	textLower := strings.ToLower(text)
	keywordCount := 0
	for _, keyword := range keywords {
		if strings.Contains(textLower, keyword) {
			keywordCount++
		}
	}

	score += float64(keywordCount) * 6.67

	if score > 100.0 {
		score = 100.0
	}

	return score
}

func joinFragmentText(fragments []dto.TextFragment) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, "\n")
}

// saveImageToTempFile saves an image.Image to a temporary PNG file
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "ocr-img-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}

// decodeImage decodes PNG or JPEG upload bytes
func decodeImage(data []byte, filename string) (image.Image, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return png.Decode(bytes.NewReader(data))
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return jpeg.Decode(bytes.NewReader(data))
	default:
		img, _, err := image.Decode(bytes.NewReader(data))
		return img, err
	}
}
