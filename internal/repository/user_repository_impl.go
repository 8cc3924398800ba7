package repository

import (
	"errors"

	"clinic-backoffice/internal/domain/entity"
	domainRepo "clinic-backoffice/internal/domain/repository"

	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return db.Omit("Services.*").Create(user).Error
}

func (r *userRepository) Update(db *gorm.DB, user *entity.User) error {
	return db.Omit("Services").Save(user).Error
}

func (r *userRepository) FindByID(db *gorm.DB, id int64) (*entity.User, error) {
	var user entity.User
	err := db.Preload("Services").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindDoctors(db *gorm.DB) ([]entity.User, error) {
	var users []entity.User
	err := db.Preload("Services").
		Where("user_type = ?", entity.UserTypeDoctor).
		Order("last_name ASC, first_name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindDoctorsByServiceName(db *gorm.DB, serviceName string) ([]entity.User, error) {
	var users []entity.User
	err := db.
		Joins("JOIN user_services ON user_services.user_id = users.id").
		Joins("JOIN services ON services.id = user_services.service_id").
		Where("users.user_type = ? AND services.name = ?", entity.UserTypeDoctor, serviceName).
		Order("users.last_name ASC, users.first_name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ReplaceServices(db *gorm.DB, user *entity.User, services []entity.Service) error {
	return db.Model(user).Association("Services").Replace(services)
}

func (r *userRepository) ClearServices(db *gorm.DB, user *entity.User) error {
	return db.Model(user).Association("Services").Clear()
}
