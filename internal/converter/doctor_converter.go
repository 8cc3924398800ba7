package converter

import (
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
)

// DoctorToResponse converts a doctor User to DoctorResponse DTO
func DoctorToResponse(doctor *entity.User) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	services := make([]string, len(doctor.Services))
	for i, s := range doctor.Services {
		services[i] = s.Name
	}

	return &dto.DoctorResponse{
		ID:            doctor.ID,
		Name:          doctor.DisplayName(),
		Email:         doctor.Email,
		Qualification: doctor.Qualification,
		Services:      services,
	}
}

// DoctorsToResponses converts a slice of doctor Users to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.User) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
