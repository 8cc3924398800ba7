package repository

import (
	"errors"

	"clinic-backoffice/internal/domain/entity"
	domainRepo "clinic-backoffice/internal/domain/repository"

	"gorm.io/gorm"
)

type invoiceRepository struct{}

func NewInvoiceRepository() domainRepo.InvoiceRepository {
	return &invoiceRepository{}
}

func (r *invoiceRepository) Create(db *gorm.DB, invoice *entity.Invoice) error {
	return db.Omit("Appointments").Create(invoice).Error
}

func (r *invoiceRepository) FindByID(db *gorm.DB, id int64) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := db.Preload("Appointments", func(db *gorm.DB) *gorm.DB {
		return db.Order("appointment_date ASC, id ASC")
	}).
		Preload("Appointments.Patient").
		Preload("Appointments.PriceListEntry.Service").
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}
