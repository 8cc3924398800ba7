package dto

// CartQuoteItem is one visit of a cart printed before booking. Date and time are optional.
type CartQuoteItem struct {
	Service string `json:"service" validate:"required"`
	Date    string `json:"date" validate:"omitempty,isodate"`
	Time    string `json:"time" validate:"omitempty,slottime"`
}

type CartQuoteRequest struct {
	PatientID    int64           `json:"patientId" validate:"omitempty,min=1"`
	Appointments []CartQuoteItem `json:"appointments" validate:"required,min=1,dive"`
}
