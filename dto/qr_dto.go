package dto

// InvoiceQRData represents the signed payload embedded in the GST e-invoice
// QR code printed on tax invoices. Field names follow the NIC IRP JSON schema.
type InvoiceQRData struct {
	SellerGstin string  `json:"SellerGstin"`
	BuyerGstin  string  `json:"BuyerGstin"`
	DocNo       string  `json:"DocNo"`
	DocTyp      string  `json:"DocTyp"`
	DocDt       string  `json:"DocDt"`
	TotInvVal   float64 `json:"TotInvVal"`
	ItemCnt     int     `json:"ItemCnt"`
	MainHsnCode string  `json:"MainHsnCode"`
	Irn         string  `json:"Irn"`
}

// HasInvoiceIdentity reports whether the payload carries enough to seed
// the invoice header fields.
func (q *InvoiceQRData) HasInvoiceIdentity() bool {
	return q.DocNo != "" || q.SellerGstin != ""
}
