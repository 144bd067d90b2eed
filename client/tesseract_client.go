package client

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"

	"github.com/otiai10/gosseract/v2"
)

type TesseractClient struct {
	dataPath string
}

func NewTesseractClient(dataPath string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
	}
}

// ExtractFragmentsFromFile runs OCR on an uploaded image and returns
// positioned text fragments plus the average word confidence (0-100).
func (tc *TesseractClient) ExtractFragmentsFromFile(fileHeader *multipart.FileHeader) ([]dto.TextFragment, float64, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	tempFile, err := tc.CreateTempFile(file, fileHeader.Filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile)

	return tc.ExtractFragments(tempFile)
}

// CreateTempFile creates a temporary file from uploaded content
func (tc *TesseractClient) CreateTempFile(file multipart.File, filename string) (string, error) {
	ext := filepath.Ext(filename)
	tempFile, err := os.CreateTemp("", "ocr-*"+ext)
	if err != nil {
		return "", err
	}
	defer tempFile.Close()

	if _, err := io.Copy(tempFile, file); err != nil {
		os.Remove(tempFile.Name())
		return "", err
	}

	return tempFile.Name(), nil
}

// ExtractFragments runs Tesseract on an image file and converts its text-line
// bounding boxes into the engine's fragment model. Fragment IDs are stable
// within one call only.
func (tc *TesseractClient) ExtractFragments(filePath string) ([]dto.TextFragment, float64, error) {
	client := gosseract.NewClient()
	defer client.Close()

	client.SetTessdataPrefix(tc.dataPath)

	if err := client.SetLanguage("eng"); err != nil {
		return nil, 0, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(filePath); err != nil {
		return nil, 0, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get bounding boxes: %w", err)
	}

	var fragments []dto.TextFragment
	var totalConf float64
	var count int

	for i, box := range boxes {
		text := box.Word
		if text == "" {
			continue
		}
		fragments = append(fragments, dto.TextFragment{
			ID:     fmt.Sprintf("line_%d", i+1),
			Text:   text,
			Left:   box.Box.Min.X,
			Top:    box.Box.Min.Y,
			Right:  box.Box.Max.X,
			Bottom: box.Box.Max.Y,
		})
		totalConf += box.Confidence
		count++
	}

	avgConf := 0.0
	if count > 0 {
		avgConf = totalConf / float64(count)
	}

	log.Printf("Tesseract extracted %d text lines (avg confidence %.1f)", len(fragments), avgConf)

	return fragments, avgConf, nil
}
