package repository

import (
	"time"

	"clinic-backoffice/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	CreateBatch(db *gorm.DB, appointments []entity.Appointment) error
	FindByID(db *gorm.DB, id int64) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID int64) ([]entity.Appointment, error)
	FindPage(db *gorm.DB, filter entity.AppointmentFilter, page entity.Pagination) ([]entity.Appointment, int64, error)
	// FindAll is FindPage without paging.
	FindAll(db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	// FindTakenStarts returns start times of the doctor's non-canceled appointments in [from, to).
	FindTakenStarts(db *gorm.DB, doctorID int64, from, to time.Time) ([]time.Time, error)
	ExistsActiveAt(db *gorm.DB, doctorID int64, at time.Time) (bool, error)
	// UpdateStatus moves the appointment to status only while its current status is one of from.
	// Returns affected rows: 0 means the appointment was in another status.
	UpdateStatus(db *gorm.DB, id int64, from []entity.AppointmentStatus, to entity.AppointmentStatus, completionDate *time.Time) (int64, error)
	// FindCompletedBetween returns appointments completed in [from, to); doctorID 0 means every doctor.
	FindCompletedBetween(db *gorm.DB, doctorID int64, from, to time.Time) ([]entity.Appointment, error)
}
