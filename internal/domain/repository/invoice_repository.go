package repository

import (
	"clinic-backoffice/internal/domain/entity"

	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(db *gorm.DB, invoice *entity.Invoice) error
	FindByID(db *gorm.DB, id int64) (*entity.Invoice, error)
}
