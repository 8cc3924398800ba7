package repository

import (
	"errors"

	"clinic-backoffice/internal/domain/entity"
	domainRepo "clinic-backoffice/internal/domain/repository"

	"gorm.io/gorm"
)

type serviceRepository struct{}

func NewServiceRepository() domainRepo.ServiceRepository {
	return &serviceRepository{}
}

func nonArchivedServices(db *gorm.DB) *gorm.DB {
	return db.Where("is_archived = ?", false)
}

func (r *serviceRepository) Create(db *gorm.DB, service *entity.Service) error {
	return db.Create(service).Error
}

func (r *serviceRepository) Update(db *gorm.DB, service *entity.Service) error {
	return db.Save(service).Error
}

func (r *serviceRepository) FindByID(db *gorm.DB, id int64) (*entity.Service, error) {
	var service entity.Service
	err := db.Where("id = ?", id).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindByName(db *gorm.DB, name string) (*entity.Service, error) {
	var service entity.Service
	err := db.Where("name = ?", name).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindByIDs(db *gorm.DB, ids []int64) ([]entity.Service, error) {
	var services []entity.Service
	if len(ids) == 0 {
		return services, nil
	}
	err := db.Where("id IN ?", ids).Order("id ASC").Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) FindNonArchived(db *gorm.DB) ([]entity.Service, error) {
	var services []entity.Service
	err := db.Scopes(nonArchivedServices).Order("id ASC").Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) FindPage(db *gorm.DB, page entity.Pagination) ([]entity.Service, int64, error) {
	var services []entity.Service
	var total int64

	if err := db.Model(&entity.Service{}).Scopes(nonArchivedServices).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Scopes(nonArchivedServices).
		Order("id ASC").
		Limit(page.PerPage).
		Offset(page.Offset()).
		Find(&services).Error
	if err != nil {
		return nil, 0, err
	}

	return services, total, nil
}

func (r *serviceRepository) FindNames(db *gorm.DB) ([]string, error) {
	var names []string
	err := db.Model(&entity.Service{}).Scopes(nonArchivedServices).Order("name ASC").Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// CountCompletedAppointments counts completed appointments per service across all price lists.
func (r *serviceRepository) CountCompletedAppointments(db *gorm.DB, serviceIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(serviceIDs))
	if len(serviceIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ServiceID int64
		Total     int64
	}
	err := db.Table("appointments").
		Select("price_list_entries.service_id AS service_id, COUNT(appointments.id) AS total").
		Joins("JOIN price_list_entries ON price_list_entries.id = appointments.price_list_entry_id").
		Where("appointments.execution_status = ? AND price_list_entries.service_id IN ?", entity.AppointmentStatusCompleted, serviceIDs).
		Group("price_list_entries.service_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ServiceID] = row.Total
	}
	return counts, nil
}
