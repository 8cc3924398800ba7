package repository

import (
	"clinic-backoffice/internal/domain/entity"
	domainRepo "clinic-backoffice/internal/domain/repository"

	"gorm.io/gorm"
)

type medicalRecordRepository struct{}

func NewMedicalRecordRepository() domainRepo.MedicalRecordRepository {
	return &medicalRecordRepository{}
}

// Create stores the record and links existing services; services themselves are never upserted.
func (r *medicalRecordRepository) Create(db *gorm.DB, record *entity.MedicalRecord) error {
	return db.Omit("Services.*").Create(record).Error
}

func (r *medicalRecordRepository) FindByPatientID(db *gorm.DB, patientID int64) ([]entity.MedicalRecord, error) {
	var records []entity.MedicalRecord
	err := db.Preload("Services").
		Where("patient_id = ?", patientID).
		Order("created_at DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
