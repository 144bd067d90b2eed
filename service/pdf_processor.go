package service

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFProcessor turns PDF invoices into engine input: positioned fragments
// from the text layer when one exists, page images for the OCR fallback when
// the PDF is a scan.
type PDFProcessor interface {
	ExtractFragments(pdfData []byte) ([]dto.TextFragment, error)
	ExtractImages(pdfData []byte, password string) ([]image.Image, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// pdfPageSpan separates pages vertically in fragment coordinates so
// multi-page documents keep a single top-to-bottom reading order.
const pdfPageSpan = 10000

// ExtractFragments reads the PDF text layer and emits one fragment per word
// with its page position. PDF y coordinates grow upward, so they are flipped
// into the engine's top-down convention.
func (p *pdfProcessor) ExtractFragments(pdfData []byte) ([]dto.TextFragment, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var fragments []dto.TextFragment
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}

		pageTop := (pageIndex - 1) * pdfPageSpan
		for rowIdx, row := range rows {
			top := pageTop + pdfPageSpan - int(row.Position)
			for wordIdx, word := range row.Content {
				text := strings.TrimSpace(word.S)
				if text == "" {
					continue
				}
				fragments = append(fragments, dto.TextFragment{
					ID:     fmt.Sprintf("p%d_r%d_w%d", pageIndex, rowIdx+1, wordIdx+1),
					Text:   text,
					Left:   int(word.X),
					Top:    top,
					Right:  int(word.X + word.W),
					Bottom: top + int(word.FontSize),
				})
			}
		}
	}

	return fragments, nil
}

// ExtractImages pulls embedded page images out of a scanned PDF so the OCR
// path can process them.
func (p *pdfProcessor) ExtractImages(pdfData []byte, password string) ([]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "pdf_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "invoice-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
	}

	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	files, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	var images []image.Image
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		imgFile, err := os.Open(filepath.Join(tempDir, file.Name()))
		if err != nil {
			continue
		}
		img, _, err := image.Decode(imgFile)
		imgFile.Close()
		if err != nil {
			continue
		}
		images = append(images, img)
	}

	return images, nil
}
