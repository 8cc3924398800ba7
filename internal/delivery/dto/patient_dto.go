package dto

import "time"

// Request DTOs

type CreatePatientRequest struct {
	FirstName    string `json:"firstName" validate:"required,max=100"`
	LastName     string `json:"lastName" validate:"required,max=100"`
	MiddleName   string `json:"middleName" validate:"omitempty,max=100"`
	PhoneNumber  string `json:"phoneNumber" validate:"required,max=20"`
	Email        string `json:"email" validate:"required,email"`
	BirthDate    string `json:"birthDate" validate:"required,isodate"`
	Gender       string `json:"gender" validate:"required,oneof=male female"`
	BenefitGroup string `json:"benefitGroup" validate:"omitempty,oneof=none military elderly disabled staff_family"`
}

type UpdatePatientRequest = CreatePatientRequest

// Response DTOs

type PatientResponse struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	MiddleName   string    `json:"middleName,omitempty"`
	FullName     string    `json:"fullName"`
	PhoneNumber  string    `json:"phoneNumber"`
	Email        string    `json:"email"`
	BirthDate    string    `json:"birthDate"`
	Gender       string    `json:"gender"`
	BenefitGroup string    `json:"benefitGroup"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type DiscountResponse struct {
	PatientID       int64  `json:"patientId"`
	BenefitGroup    string `json:"benefitGroup"`
	DiscountPercent int    `json:"discountPercent"`
}
