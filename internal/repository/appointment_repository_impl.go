package repository

import (
	"errors"
	"time"

	"clinic-backoffice/internal/domain/entity"
	domainRepo "clinic-backoffice/internal/domain/repository"

	"gorm.io/gorm"
)

var appointmentSortColumns = map[string]string{
	"id":              "appointments.id",
	"service":         "services.name",
	"endDate":         "appointments.completion_date",
	"appointmentDate": "appointments.appointment_date",
}

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func withAppointmentDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Patient").
		Preload("Doctor").
		Preload("PriceListEntry.Service").
		Preload("Invoice")
}

func appointmentFilter(filter entity.AppointmentFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		query := db.
			Joins("JOIN price_list_entries ON price_list_entries.id = appointments.price_list_entry_id").
			Joins("JOIN services ON services.id = price_list_entries.service_id")

		if filter.Status != "" {
			query = query.Where("appointments.execution_status = ?", filter.Status)
		}
		if len(filter.Statuses) > 0 {
			query = query.Where("appointments.execution_status IN ?", filter.Statuses)
		}
		if len(filter.Services) > 0 {
			query = query.Where("services.name IN ?", filter.Services)
		}
		return query
	}
}

func (r *appointmentRepository) CreateBatch(db *gorm.DB, appointments []entity.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}
	return db.Omit("Patient", "Doctor", "PriceListEntry", "Invoice").Create(&appointments).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Scopes(withAppointmentDetails).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID int64) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Scopes(withAppointmentDetails).
		Where("patient_id = ?", patientID).
		Order("appointment_date DESC, id DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindPage(db *gorm.DB, filter entity.AppointmentFilter, page entity.Pagination) ([]entity.Appointment, int64, error) {
	var appointments []entity.Appointment
	var total int64

	if err := db.Model(&entity.Appointment{}).Scopes(appointmentFilter(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Scopes(appointmentFilter(filter), withAppointmentDetails, appointmentOrder(filter)).
		Limit(page.PerPage).
		Offset(page.Offset()).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Scopes(appointmentFilter(filter), withAppointmentDetails, appointmentOrder(filter)).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// appointmentOrder sorts by the filter's column with the id as tie breaker.
func appointmentOrder(filter entity.AppointmentFilter) func(*gorm.DB) *gorm.DB {
	column, ok := appointmentSortColumns[filter.SortBy]
	if !ok {
		column = appointmentSortColumns["id"]
	}
	direction := " ASC"
	if filter.Desc {
		direction = " DESC"
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(column + direction).Order("appointments.id ASC")
	}
}

func (r *appointmentRepository) FindTakenStarts(db *gorm.DB, doctorID int64, from, to time.Time) ([]time.Time, error) {
	var starts []time.Time
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND execution_status <> ?", doctorID, entity.AppointmentStatusCanceled).
		Where("appointment_date >= ? AND appointment_date < ?", from, to).
		Order("appointment_date ASC").
		Pluck("appointment_date", &starts).Error
	if err != nil {
		return nil, err
	}
	return starts, nil
}

func (r *appointmentRepository) ExistsActiveAt(db *gorm.DB, doctorID int64, at time.Time) (bool, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND execution_status <> ?", doctorID, at, entity.AppointmentStatusCanceled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id int64, from []entity.AppointmentStatus, to entity.AppointmentStatus, completionDate *time.Time) (int64, error) {
	updates := map[string]interface{}{
		"execution_status": to,
	}
	if completionDate != nil {
		updates["completion_date"] = *completionDate
	}

	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND execution_status IN ?", id, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) FindCompletedBetween(db *gorm.DB, doctorID int64, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("PriceListEntry").
		Preload("Invoice").
		Where("execution_status = ? AND completion_date >= ? AND completion_date < ?", entity.AppointmentStatusCompleted, from, to)
	if doctorID != 0 {
		query = query.Where("doctor_id = ?", doctorID)
	}

	err := query.Order("completion_date ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
