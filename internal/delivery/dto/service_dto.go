package dto

import "github.com/shopspring/decimal"

// Request DTOs

type CreateServiceRequest struct {
	Name  string          `json:"name" validate:"required,max=255"`
	Price decimal.Decimal `json:"price"`
}

// Response DTOs

type ServiceResponse struct {
	ID                    int64   `json:"id"`
	Name                  string  `json:"name"`
	IsArchived            bool    `json:"isArchived"`
	Price                 *string `json:"price"`
	CompletedAppointments int64   `json:"completedAppointments"`
}

type ServiceSummaryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ServiceNamesResponse struct {
	Names []string `json:"names"`
}

type ServiceExistsResponse struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
}
