package repository

import (
	"errors"

	"clinic-backoffice/internal/domain/entity"
	domainRepo "clinic-backoffice/internal/domain/repository"

	"gorm.io/gorm"
)

// activationLockKey is the advisory lock key held while a price list is being activated.
const activationLockKey = 7301

type priceListRepository struct{}

func NewPriceListRepository() domainRepo.PriceListRepository {
	return &priceListRepository{}
}

func (r *priceListRepository) Create(db *gorm.DB, priceList *entity.PriceList) error {
	return db.Create(priceList).Error
}

func (r *priceListRepository) Update(db *gorm.DB, priceList *entity.PriceList) error {
	return db.Omit("Entries").Save(priceList).Error
}

func (r *priceListRepository) FindByID(db *gorm.DB, id int64) (*entity.PriceList, error) {
	var priceList entity.PriceList
	err := db.Where("id = ?", id).First(&priceList).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &priceList, nil
}

func (r *priceListRepository) FindActive(db *gorm.DB) (*entity.PriceList, error) {
	var priceList entity.PriceList
	err := db.Where("status = ?", entity.PriceListStatusActive).Order("id DESC").First(&priceList).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &priceList, nil
}

// FindPage lists price lists with the active one first, then by id.
func (r *priceListRepository) FindPage(db *gorm.DB, page entity.Pagination, archived bool) ([]entity.PriceList, int64, error) {
	var priceLists []entity.PriceList
	var total int64

	if err := db.Model(&entity.PriceList{}).Where("is_archived = ?", archived).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Where("is_archived = ?", archived).
		Order("CASE WHEN status = 'ACTIVE' THEN 0 ELSE 1 END").
		Order("id ASC").
		Limit(page.PerPage).
		Offset(page.Offset()).
		Find(&priceLists).Error
	if err != nil {
		return nil, 0, err
	}

	return priceLists, total, nil
}

func (r *priceListRepository) LockActivation(db *gorm.DB) error {
	return db.Exec("SELECT pg_advisory_xact_lock(?)", activationLockKey).Error
}

func (r *priceListRepository) DeactivateAll(db *gorm.DB) error {
	return db.Model(&entity.PriceList{}).
		Where("status = ?", entity.PriceListStatusActive).
		Update("status", entity.PriceListStatusInactive).Error
}

func (r *priceListRepository) Activate(db *gorm.DB, id int64) error {
	return db.Model(&entity.PriceList{}).
		Where("id = ?", id).
		Update("status", entity.PriceListStatusActive).Error
}

type priceListEntryRepository struct{}

func NewPriceListEntryRepository() domainRepo.PriceListEntryRepository {
	return &priceListEntryRepository{}
}

func (r *priceListEntryRepository) Create(db *gorm.DB, entry *entity.PriceListEntry) error {
	return db.Omit("PriceList", "Service").Create(entry).Error
}

func (r *priceListEntryRepository) FindByPriceList(db *gorm.DB, priceListID int64) ([]entity.PriceListEntry, error) {
	var entries []entity.PriceListEntry
	err := db.Preload("Service").
		Where("price_list_id = ?", priceListID).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *priceListEntryRepository) FindByPriceListAndServiceNames(db *gorm.DB, priceListID int64, names []string) ([]entity.PriceListEntry, error) {
	var entries []entity.PriceListEntry
	if len(names) == 0 {
		return entries, nil
	}
	err := db.Preload("Service").
		Joins("JOIN services ON services.id = price_list_entries.service_id").
		Where("price_list_entries.price_list_id = ? AND services.name IN ?", priceListID, names).
		Order("price_list_entries.id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *priceListEntryRepository) FindByPriceListAndService(db *gorm.DB, priceListID, serviceID int64) (*entity.PriceListEntry, error) {
	var entry entity.PriceListEntry
	err := db.Where("price_list_id = ? AND service_id = ?", priceListID, serviceID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *priceListEntryRepository) FindLatestForService(db *gorm.DB, serviceID, excludePriceListID int64) (*entity.PriceListEntry, error) {
	var entry entity.PriceListEntry
	err := db.Where("service_id = ? AND price_list_id <> ?", serviceID, excludePriceListID).
		Order("price_list_id DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}
