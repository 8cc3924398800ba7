package repository

import (
	"clinic-backoffice/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	Update(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id int64) (*entity.User, error)
	FindDoctors(db *gorm.DB) ([]entity.User, error)
	FindDoctorsByServiceName(db *gorm.DB, serviceName string) ([]entity.User, error)
	ReplaceServices(db *gorm.DB, user *entity.User, services []entity.Service) error
	ClearServices(db *gorm.DB, user *entity.User) error
}
