package dto

// Response DTOs

type InvoiceLineResponse struct {
	Date    string `json:"date"`
	Service string `json:"service"`
	Price   string `json:"price"`
}

type InvoiceResponse struct {
	ID              int64                 `json:"id"`
	Number          string                `json:"number"`
	PaidDate        string                `json:"paidDate"`
	PatientName     string                `json:"patientName"`
	Lines           []InvoiceLineResponse `json:"lines"`
	Subtotal        string                `json:"subtotal"`
	DiscountPercent int                   `json:"discountPercent"`
	DiscountAmount  string                `json:"discountAmount"`
	Total           string                `json:"total"`
}

// RenderedDocument is a file produced for download.
type RenderedDocument struct {
	Filename    string
	ContentType string
	Body        []byte
}
