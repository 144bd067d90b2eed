package client

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// QRClient decodes the GST e-invoice QR code printed on tax invoices.
// The QR payload is signed by the invoice registration portal, so header
// fields recovered from it outrank anything the OCR patterns find.
type QRClient struct{}

func NewQRClient() *QRClient {
	return &QRClient{}
}

// DecodeInvoiceQR finds and decodes a QR code in the invoice image, then
// parses the e-invoice payload. Returns an error when no QR is present,
// which callers treat as "fall through to OCR", not a failure.
func (q *QRClient) DecodeInvoiceQR(img image.Image) (*dto.InvoiceQRData, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to create bitmap from image: %w", err)
	}

	reader := qrcode.NewQRCodeReader()
	result, err := reader.Decode(bmp, map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	})
	if err != nil {
		return nil, fmt.Errorf("no QR code found: %w", err)
	}

	payload, err := parseQRPayload(result.GetText())
	if err != nil {
		return nil, err
	}

	log.Printf("Decoded e-invoice QR: doc %s, seller GSTIN %s", payload.DocNo, payload.SellerGstin)
	return payload, nil
}

// parseQRPayload handles both payload shapes seen in the wild: plain JSON,
// and the IRP's signed JWT whose middle segment wraps the JSON in a "data"
// claim.
func parseQRPayload(text string) (*dto.InvoiceQRData, error) {
	var data dto.InvoiceQRData
	if err := json.Unmarshal([]byte(text), &data); err == nil && data.HasInvoiceIdentity() {
		return &data, nil
	}

	parts := strings.Split(text, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("QR payload is neither e-invoice JSON nor a signed token")
	}

	claims, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("failed to decode QR token claims: %w", err)
	}

	var envelope struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(claims, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse QR token claims: %w", err)
	}
	if err := json.Unmarshal([]byte(envelope.Data), &data); err != nil {
		return nil, fmt.Errorf("failed to parse e-invoice payload: %w", err)
	}
	if !data.HasInvoiceIdentity() {
		return nil, fmt.Errorf("QR payload carries no invoice identity")
	}

	return &data, nil
}
