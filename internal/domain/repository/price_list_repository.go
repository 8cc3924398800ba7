package repository

import (
	"clinic-backoffice/internal/domain/entity"

	"gorm.io/gorm"
)

type PriceListRepository interface {
	Create(db *gorm.DB, priceList *entity.PriceList) error
	Update(db *gorm.DB, priceList *entity.PriceList) error
	FindByID(db *gorm.DB, id int64) (*entity.PriceList, error)
	FindActive(db *gorm.DB) (*entity.PriceList, error)
	FindPage(db *gorm.DB, page entity.Pagination, archived bool) ([]entity.PriceList, int64, error)
	// LockActivation serializes activations for the rest of the transaction.
	LockActivation(db *gorm.DB) error
	DeactivateAll(db *gorm.DB) error
	Activate(db *gorm.DB, id int64) error
}

type PriceListEntryRepository interface {
	Create(db *gorm.DB, entry *entity.PriceListEntry) error
	FindByPriceList(db *gorm.DB, priceListID int64) ([]entity.PriceListEntry, error)
	FindByPriceListAndServiceNames(db *gorm.DB, priceListID int64, names []string) ([]entity.PriceListEntry, error)
	FindByPriceListAndService(db *gorm.DB, priceListID, serviceID int64) (*entity.PriceListEntry, error)
	// FindLatestForService returns the service's entry from the price list with the highest id,
	// ignoring excludePriceListID.
	FindLatestForService(db *gorm.DB, serviceID, excludePriceListID int64) (*entity.PriceListEntry, error)
}
