package repository

import (
	"clinic-backoffice/internal/domain/entity"

	"gorm.io/gorm"
)

type MedicalRecordRepository interface {
	Create(db *gorm.DB, record *entity.MedicalRecord) error
	FindByPatientID(db *gorm.DB, patientID int64) ([]entity.MedicalRecord, error)
}
