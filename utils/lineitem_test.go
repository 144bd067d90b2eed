package utils

import (
	"fmt"
	"testing"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExtractor(t *testing.T) *Extractor {
	t.Helper()
	return NewExtractor(DefaultTuning())
}

func TestExtractLineItemsFullRow(t *testing.T) {
	e := testExtractor(t)
	rows := textRows(
		"Redmi Note 13 Pro 5g Phantom Purple 8gb 256gb 1.00 PCS 17,759.00 17,759.00",
	)

	fields := e.ExtractLineItems(rows, 0, len(rows))

	require.Contains(t, fields, "product_1_description")
	assert.Equal(t, "Redmi Note 13 Pro 5g Phantom Purple 8gb 256gb", fields["product_1_description"].Value)

	require.Contains(t, fields, "product_1_quantity")
	assert.Equal(t, "1", fields["product_1_quantity"].Value, "integral PCS quantities normalize to integer form")

	require.Contains(t, fields, "product_1_rate")
	assert.Equal(t, "17,759.00", fields["product_1_rate"].Value)

	// The same qualifying token may serve as both rate and amount
	require.Contains(t, fields, "product_1_amount")
	assert.Equal(t, "17,759.00", fields["product_1_amount"].Value)
}

func TestExtractLineItemsDescriptionTruncatesAtHSNCode(t *testing.T) {
	e := testExtractor(t)
	rows := textRows(
		"Samsung Galaxy M14 5g 6gb 128gb 85171300 2 PCS 13,499.00 26,998.00",
	)

	fields := e.ExtractLineItems(rows, 0, len(rows))

	require.Contains(t, fields, "product_1_description")
	assert.Equal(t, "Samsung Galaxy M14 5g 6gb 128gb", fields["product_1_description"].Value)
	assert.Equal(t, "2", fields["product_1_quantity"].Value)
	assert.Equal(t, "13,499.00", fields["product_1_rate"].Value)
	assert.Equal(t, "26,998.00", fields["product_1_amount"].Value)
}

func TestExtractLineItemsBrandGate(t *testing.T) {
	e := testExtractor(t)
	rows := textRows(
		"Charger and cable combo pack 128gb 1,299.00",
		"Generic accessories 450.00 450.00",
	)

	fields := e.ExtractLineItems(rows, 0, len(rows))

	assert.Empty(t, fields, "rows without a recognized brand never become products")
}

func TestExtractLineItemsRequiresStorageToken(t *testing.T) {
	e := testExtractor(t)
	rows := textRows(
		"Redmi power bank 20000mah black 1,499.00",
	)

	fields := e.ExtractLineItems(rows, 0, len(rows))

	assert.Empty(t, fields, "brand without storage size is not a device row")
}

func TestExtractLineItemsSkipsShortAndMetadataRows(t *testing.T) {
	e := testExtractor(t)
	rows := textRows(
		"8gb",
		"GSTIN/UIN: 10ABCDE1234F1Z5",
		"State Name: Bihar, Code: 10",
		"Contact: 9876543210",
	)

	fields := e.ExtractLineItems(rows, 0, len(rows))

	assert.Empty(t, fields)
}

func TestExtractLineItemsDescriptionOnlyProduct(t *testing.T) {
	e := testExtractor(t)
	rows := textRows(
		"Vivo Y28 Agate Green 6gb 128gb",
	)

	fields := e.ExtractLineItems(rows, 0, len(rows))

	require.Contains(t, fields, "product_1_description")
	assert.NotContains(t, fields, "product_1_quantity")
	assert.NotContains(t, fields, "product_1_rate")
	assert.NotContains(t, fields, "product_1_amount")
	assert.NotContains(t, fields, "product_1_imei")
}

func TestExtractLineItemsIMEILookahead(t *testing.T) {
	e := testExtractor(t)
	rows := textRows(
		"Redmi Note 13 Pro 8gb 256gb 1 PCS 17,759.00",
		"IMEI 490154203237518",
	)

	fields := e.ExtractLineItems(rows, 0, len(rows))

	require.Contains(t, fields, "product_1_imei")
	field := fields["product_1_imei"]
	assert.Equal(t, "490154203237518", field.Value)
	assert.Equal(t, dto.ValidationChecksum, field.Validation.Method)
	assert.True(t, field.Validation.Passed)
}

func TestExtractLineItemsIMEIAntiContext(t *testing.T) {
	e := testExtractor(t)
	rows := textRows(
		"Redmi Note 13 Pro 8gb 256gb 1 PCS 17,759.00",
		"Invoice Ack No 490154203237518",
	)

	fields := e.ExtractLineItems(rows, 0, len(rows))

	assert.NotContains(t, fields, "product_1_imei",
		"15-digit numbers in invoice/ack context are references, not IMEIs")
}

func TestExtractLineItemsIMEIChecksumRejection(t *testing.T) {
	e := testExtractor(t)
	rows := textRows(
		"Redmi Note 13 Pro 8gb 256gb 1 PCS 17,759.00",
		"IMEI 111111111111111",
	)

	fields := e.ExtractLineItems(rows, 0, len(rows))

	assert.NotContains(t, fields, "product_1_imei")
}

func TestExtractLineItemsIndexMonotonicity(t *testing.T) {
	e := testExtractor(t)
	rows := textRows(
		"Redmi Note 13 Pro 8gb 256gb 1 PCS 17,759.00",
		"not a product row at all, just noise",
		"Samsung Galaxy M14 6gb 128gb 1 PCS 13,499.00",
		"Vivo Y28 6gb 128gb 1 PCS 12,999.00",
	)

	fields := e.ExtractLineItems(rows, 0, len(rows))

	for n := 1; n <= 3; n++ {
		assert.Contains(t, fields, fmt.Sprintf("product_%d_description", n))
	}
	assert.NotContains(t, fields, "product_4_description")
}

func TestExtractLineItemsRespectsBounds(t *testing.T) {
	e := testExtractor(t)
	rows := textRows(
		"Redmi Note 13 Pro 8gb 256gb 1 PCS 17,759.00",
		"Samsung Galaxy M14 6gb 128gb 1 PCS 13,499.00",
	)

	fields := e.ExtractLineItems(rows, 1, 2)

	require.Contains(t, fields, "product_1_description")
	assert.Contains(t, fields["product_1_description"].Value, "Samsung")
	assert.NotContains(t, fields, "product_2_description")
}
