package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type PriceListStatus string

const (
	PriceListStatusActive   PriceListStatus = "ACTIVE"
	PriceListStatusInactive PriceListStatus = "INACTIVE"
)

// MinEntryPrice is the lowest price an entry may carry.
var MinEntryPrice = decimal.New(1, -2)

type PriceList struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Status        PriceListStatus `gorm:"type:varchar(20);not null;default:'INACTIVE';index" json:"status"`
	IsArchived    bool            `gorm:"not null;default:false" json:"is_archived"`
	ArchiveReason string          `gorm:"type:text" json:"archive_reason,omitempty"`
	ArchivedAt    *time.Time      `json:"archived_at,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Entries []PriceListEntry `gorm:"foreignKey:PriceListID" json:"entries,omitempty"`
}

func (PriceList) TableName() string {
	return "price_lists"
}

func (p *PriceList) IsActive() bool {
	return p.Status == PriceListStatusActive
}

// Archive marks the list as archived. Callers must reject active lists first.
func (p *PriceList) Archive(reason string, at time.Time) {
	p.IsArchived = true
	p.ArchiveReason = reason
	p.ArchivedAt = &at
}

// PriceListEntry binds a service to a price inside one price list. Entries referenced by
// appointments are never updated.
type PriceListEntry struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PriceListID int64           `gorm:"not null;uniqueIndex:ux_price_list_entries_list_service" json:"price_list_id"`
	ServiceID   int64           `gorm:"not null;uniqueIndex:ux_price_list_entries_list_service" json:"service_id"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`

	// Relationships
	PriceList *PriceList `gorm:"foreignKey:PriceListID" json:"-"`
	Service   *Service   `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (PriceListEntry) TableName() string {
	return "price_list_entries"
}

// ServiceName returns the name of the preloaded service, or "" when it was not loaded.
func (e *PriceListEntry) ServiceName() string {
	if e.Service == nil {
		return ""
	}
	return e.Service.Name
}
