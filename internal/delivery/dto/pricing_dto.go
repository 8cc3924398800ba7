package dto

// Request DTOs

type CartPriceRequest struct {
	Services []string `json:"services" validate:"required,min=1,dive,required"`
}

type CartTotalsRequest struct {
	PatientID int64    `json:"patientId" validate:"required,min=1"`
	Services  []string `json:"services" validate:"required,min=1,dive,required"`
}

// Response DTOs

type CartItemResponse struct {
	Service string `json:"service"`
	Price   string `json:"price"`
}

type CartPriceResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal string             `json:"subtotal"`
}

type CartTotalsResponse struct {
	Subtotal        string `json:"subtotal"`
	DiscountPercent int    `json:"discountPercent"`
	DiscountAmount  string `json:"discountAmount"`
	Total           string `json:"total"`
}
