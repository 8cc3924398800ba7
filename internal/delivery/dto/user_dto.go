package dto

import "time"

// Request DTOs

type CreateUserRequest struct {
	FirstName     string `json:"firstName" validate:"required,max=100"`
	LastName      string `json:"lastName" validate:"required,max=100"`
	MiddleName    string `json:"middleName" validate:"omitempty,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8,max=72"`
	UserType      string `json:"userType" validate:"required,oneof=RECORDER MANAGER DOCTOR"`
	Qualification string `json:"qualification" validate:"omitempty,max=255"`
}

type ChangeUserTypeRequest struct {
	UserType string `json:"userType" validate:"required,oneof=RECORDER MANAGER DOCTOR"`
}

type AssignServicesRequest struct {
	ServiceIDs []int64 `json:"serviceIds" validate:"required,min=1,dive,min=1"`
}

// Response DTOs

type UserResponse struct {
	ID            int64                    `json:"id"`
	FirstName     string                   `json:"firstName"`
	LastName      string                   `json:"lastName"`
	MiddleName    string                   `json:"middleName,omitempty"`
	Email         string                   `json:"email"`
	UserType      string                   `json:"userType"`
	Qualification string                   `json:"qualification,omitempty"`
	Services      []ServiceSummaryResponse `json:"services"`
	CreatedAt     time.Time                `json:"createdAt"`
}

type UserSummaryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
}
