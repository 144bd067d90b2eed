package utils

import (
	"testing"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// invoiceFragments lays out a small mobile-shop tax invoice the way OCR
// would deliver it: one fragment per visual line, plus a split header line.
func invoiceFragments() []dto.TextFragment {
	return []dto.TextFragment{
		frag("f1", "SHREE TELECOM", 200, 10),
		frag("f2", "Shop 12, Main Road, Patna, Bihar 800001", 150, 50),
		frag("f3", "Invoice No: INV/2024/0451", 20, 100),
		frag("f4", "Dated: 15/07/2024", 420, 104),
		frag("f5", "GSTIN/UIN: 10ABCDE1234F1Z5", 20, 140),
		frag("f6", "Buyer: Rakesh Kumar", 20, 180),
		frag("f7", "Sl No. Description of Goods HSN/SAC Qty Rate Amount", 20, 230),
		frag("f8", "1 Redmi Note 13 Pro 5g 8gb 256gb 1.00 PCS 17,759.00 17,759.00", 20, 270),
		frag("f9", "IMEI: 490154203237518", 60, 310),
		frag("f10", "Total 17,759.00", 300, 360),
	}
}

func TestExtractFieldsInvoiceEndToEnd(t *testing.T) {
	e := testExtractor(t)

	fields := e.ExtractFields(invoiceFragments(), dto.DocTypeInvoice)

	require.Contains(t, fields, "invoice_number")
	assert.Equal(t, "INV/2024/0451", fields["invoice_number"].Value)
	assert.Equal(t, 0.95, fields["invoice_number"].Confidence)

	require.Contains(t, fields, "invoice_date")
	assert.Equal(t, "15/07/2024", fields["invoice_date"].Value)

	require.Contains(t, fields, "gst_number")
	assert.Equal(t, "10ABCDE1234F1Z5", fields["gst_number"].Value)

	require.Contains(t, fields, "vendor_name")
	assert.Equal(t, "SHREE TELECOM", fields["vendor_name"].Value)

	require.Contains(t, fields, "customer_name")
	assert.Equal(t, "Rakesh Kumar", fields["customer_name"].Value)

	require.Contains(t, fields, "product_1_description")
	assert.Equal(t, "Redmi Note 13 Pro 5g 8gb 256gb", fields["product_1_description"].Value)
	assert.Equal(t, "1", fields["product_1_quantity"].Value)
	assert.Equal(t, "17,759.00", fields["product_1_rate"].Value)
	assert.Equal(t, "17,759.00", fields["product_1_amount"].Value)

	require.Contains(t, fields, "product_1_imei")
	assert.Equal(t, "490154203237518", fields["product_1_imei"].Value)

	require.Contains(t, fields, "total_amount")
	assert.Equal(t, "17,759.00", fields["total_amount"].Value)

	require.Contains(t, fields, "vendor_address")
	assert.Contains(t, fields["vendor_address"].Value, "Bihar")
}

func TestExtractFieldsTraceability(t *testing.T) {
	e := testExtractor(t)

	fields := e.ExtractFields(invoiceFragments(), dto.DocTypeInvoice)

	require.Contains(t, fields, "invoice_number")
	assert.Equal(t, []string{"f3"}, fields["invoice_number"].SourceFragmentIDs)

	require.Contains(t, fields, "product_1_description")
	assert.Equal(t, []string{"f8"}, fields["product_1_description"].SourceFragmentIDs)

	require.Contains(t, fields, "product_1_imei")
	assert.Equal(t, []string{"f9"}, fields["product_1_imei"].SourceFragmentIDs)

	// Every attributed fragment must exist in the input
	known := make(map[string]bool)
	for _, f := range invoiceFragments() {
		known[f.ID] = true
	}
	for key, field := range fields {
		for _, id := range field.SourceFragmentIDs {
			assert.True(t, known[id], "field %s references unknown fragment %s", key, id)
		}
	}
}

func TestExtractFieldsConfidenceBounds(t *testing.T) {
	e := testExtractor(t)

	fields := e.ExtractFields(invoiceFragments(), dto.DocTypeInvoice)

	require.NotEmpty(t, fields)
	for key, field := range fields {
		assert.GreaterOrEqual(t, field.Confidence, 0.0, key)
		assert.LessOrEqual(t, field.Confidence, 1.0, key)
	}
}

func TestExtractFieldsEmptyInput(t *testing.T) {
	e := testExtractor(t)

	assert.Empty(t, e.ExtractFields(nil, dto.DocTypeInvoice))
	assert.Empty(t, e.ExtractFields([]dto.TextFragment{}, dto.DocTypeReceipt))
}

func TestExtractFieldsGenericDocument(t *testing.T) {
	e := testExtractor(t)
	fragments := []dto.TextFragment{
		frag("f1", "Call 9876543210 for support", 0, 0),
		frag("f2", "Alt: 9123456780", 0, 40),
	}

	fields := e.ExtractFields(fragments, dto.DocTypeOther)

	require.Contains(t, fields, "phone_1")
	assert.Equal(t, "9876543210", fields["phone_1"].Value)
	require.Contains(t, fields, "phone_2")
	assert.Equal(t, "9123456780", fields["phone_2"].Value)

	assert.NotContains(t, fields, "invoice_number",
		"generic documents skip the invoice pipeline")
}

func TestExtractFieldsReceiptUsesInvoicePipeline(t *testing.T) {
	e := testExtractor(t)

	fields := e.ExtractFields(invoiceFragments(), dto.DocTypeReceipt)

	assert.Contains(t, fields, "invoice_number")
	assert.Contains(t, fields, "product_1_description")
}
