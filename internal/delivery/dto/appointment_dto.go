package dto

// Request DTOs

type CreateAppointmentsRequest struct {
	PatientID    int64                `json:"patientId" validate:"required,min=1"`
	Appointments []AppointmentRequest `json:"appointments" validate:"required,min=1,max=20,dive"`
}

// AppointmentRequest books one service. Time is "HH:MM" or a slot label "HH:MM - HH:MM".
type AppointmentRequest struct {
	Service  string `json:"service" validate:"required"`
	DoctorID int64  `json:"doctorId" validate:"required,min=1"`
	Date     string `json:"date" validate:"required,isodate"`
	Time     string `json:"time" validate:"required,slottime"`
}

// AppointmentListRequest carries the query of the appointment listings.
type AppointmentListRequest struct {
	Page     int
	PerPage  int
	Status   string   `validate:"omitempty,oneof=PLANNED CANCELED COMPLETED"`
	Services []string `validate:"omitempty,dive,required"`
	Statuses []string `validate:"omitempty,dive,oneof=PLANNED CANCELED COMPLETED"`
	SortBy   string   `validate:"omitempty,oneof=id service endDate appointmentDate"`
	Order    string   `validate:"omitempty,oneof=asc desc ASC DESC"`
}

// Response DTOs

// AppointmentResponse dates are unix milliseconds.
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	Service         string `json:"service"`
	AppointmentDate *int64 `json:"appointmentDate"`
	Status          string `json:"status"`
	Price           string `json:"price"`
	DoctorName      string `json:"doctorName"`
	PatientName     string `json:"patientName"`
}

type StatementResponse struct {
	ID              int64  `json:"id"`
	InvoiceID       int64  `json:"invoiceId"`
	Service         string `json:"service"`
	PatientName     string `json:"patientName"`
	DoctorName      string `json:"doctorName"`
	Status          string `json:"status"`
	AppointmentDate *int64 `json:"appointmentDate"`
	EndDate         *int64 `json:"endDate"`
	Price           string `json:"price"`
}

type BookingResponse struct {
	InvoiceID       int64                 `json:"invoiceId"`
	InvoiceNumber   string                `json:"invoiceNumber"`
	Subtotal        string                `json:"subtotal"`
	DiscountPercent int                   `json:"discountPercent"`
	Total           string                `json:"total"`
	Appointments    []AppointmentResponse `json:"appointments"`
}
