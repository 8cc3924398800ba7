package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreatePriceListRequest struct {
	Name    string                  `json:"name" validate:"required,max=255"`
	Entries []PriceListEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

type PriceListEntryRequest struct {
	ServiceID int64           `json:"serviceId" validate:"required,min=1"`
	Price     decimal.Decimal `json:"price"`
}

type ArchivePriceListRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

// Response DTOs

type PriceListResponse struct {
	ID            int64                    `json:"id"`
	Name          string                   `json:"name"`
	Status        string                   `json:"status"`
	IsArchived    bool                     `json:"isArchived"`
	ArchiveReason string                   `json:"archiveReason,omitempty"`
	ArchivedAt    *time.Time               `json:"archivedAt,omitempty"`
	Entries       []PriceListEntryResponse `json:"entries,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
}

type PriceListEntryResponse struct {
	ID          int64  `json:"id"`
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Price       string `json:"price"`
}
