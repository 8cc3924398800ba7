package repository

import (
	"clinic-backoffice/internal/domain/entity"

	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(db *gorm.DB, service *entity.Service) error
	Update(db *gorm.DB, service *entity.Service) error
	FindByID(db *gorm.DB, id int64) (*entity.Service, error)
	FindByName(db *gorm.DB, name string) (*entity.Service, error)
	FindByIDs(db *gorm.DB, ids []int64) ([]entity.Service, error)
	FindNonArchived(db *gorm.DB) ([]entity.Service, error)
	FindPage(db *gorm.DB, page entity.Pagination) ([]entity.Service, int64, error)
	FindNames(db *gorm.DB) ([]string, error)
	CountCompletedAppointments(db *gorm.DB, serviceIDs []int64) (map[int64]int64, error)
}
