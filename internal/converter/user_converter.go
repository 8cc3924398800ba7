package converter

import (
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:            user.ID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		MiddleName:    user.MiddleName,
		Email:         user.Email,
		UserType:      string(user.UserType),
		Qualification: user.Qualification,
		Services:      ServicesToSummaries(user.Services),
		CreatedAt:     user.CreatedAt,
	}
}

// UserToSummary converts a User entity to the short form embedded in other responses
func UserToSummary(user *entity.User) *dto.UserSummaryResponse {
	if user == nil {
		return nil
	}

	return &dto.UserSummaryResponse{
		ID:       user.ID,
		Name:     user.FullName(),
		Email:    user.Email,
		UserType: string(user.UserType),
	}
}
