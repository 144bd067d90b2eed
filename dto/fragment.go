package dto

import "strings"

// DocumentType selects which extraction strategy set runs
type DocumentType string

const (
	DocTypeInvoice DocumentType = "invoice"
	DocTypeReceipt DocumentType = "receipt"
	DocTypeOther   DocumentType = "other"
)

// IsStructured reports whether the document type gets the full invoice
// extraction pipeline (header fields, line items, totals, addresses).
func (d DocumentType) IsStructured() bool {
	return d == DocTypeInvoice || d == DocTypeReceipt
}

// TextFragment is one OCR-recognized text span with its pixel bounding box.
// Fragments are produced by the OCR layer and consumed read-only.
type TextFragment struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Left   int    `json:"left"`
	Top    int    `json:"top"`
	Right  int    `json:"right"`
	Bottom int    `json:"bottom"`
}

// BoundingBox is a pixel rectangle on the source page
type BoundingBox struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Row is an ordered group of fragments judged to share one visual line,
// sorted left to right. Rows are built once per extraction pass and never
// mutated afterwards.
type Row struct {
	Fragments []TextFragment
}

// Text joins the row's fragment texts left to right with single spaces
func (r Row) Text() string {
	parts := make([]string, 0, len(r.Fragments))
	for _, f := range r.Fragments {
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, " ")
}

// FragmentIDs returns the IDs of the fragments making up the row
func (r Row) FragmentIDs() []string {
	ids := make([]string, 0, len(r.Fragments))
	for _, f := range r.Fragments {
		ids = append(ids, f.ID)
	}
	return ids
}

// Bounds returns the union bounding box of the row's fragments.
// Returns nil for an empty row.
func (r Row) Bounds() *BoundingBox {
	if len(r.Fragments) == 0 {
		return nil
	}
	b := BoundingBox{
		Left:   r.Fragments[0].Left,
		Top:    r.Fragments[0].Top,
		Right:  r.Fragments[0].Right,
		Bottom: r.Fragments[0].Bottom,
	}
	for _, f := range r.Fragments[1:] {
		if f.Left < b.Left {
			b.Left = f.Left
		}
		if f.Top < b.Top {
			b.Top = f.Top
		}
		if f.Right > b.Right {
			b.Right = f.Right
		}
		if f.Bottom > b.Bottom {
			b.Bottom = f.Bottom
		}
	}
	return &b
}
