package converter

import (
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Money formats an amount with exactly two decimals.
func Money(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func ServicesToSummaries(services []entity.Service) []dto.ServiceSummaryResponse {
	responses := make([]dto.ServiceSummaryResponse, len(services))
	for i, s := range services {
		responses[i] = dto.ServiceSummaryResponse{ID: s.ID, Name: s.Name}
	}
	return responses
}

// ServiceToResponse converts a Service with its active price (nil when unpriced) and its
// completed appointment count.
func ServiceToResponse(service *entity.Service, price *decimal.Decimal, completed int64) dto.ServiceResponse {
	response := dto.ServiceResponse{
		ID:                    service.ID,
		Name:                  service.Name,
		IsArchived:            service.IsArchived,
		CompletedAppointments: completed,
	}
	if price != nil {
		formatted := Money(*price)
		response.Price = &formatted
	}
	return response
}

func PriceListEntryToResponse(entry *entity.PriceListEntry) dto.PriceListEntryResponse {
	return dto.PriceListEntryResponse{
		ID:          entry.ID,
		ServiceID:   entry.ServiceID,
		ServiceName: entry.ServiceName(),
		Price:       Money(entry.Price),
	}
}

func PriceListEntriesToResponses(entries []entity.PriceListEntry) []dto.PriceListEntryResponse {
	responses := make([]dto.PriceListEntryResponse, len(entries))
	for i := range entries {
		responses[i] = PriceListEntryToResponse(&entries[i])
	}
	return responses
}

// PriceListToResponse converts a PriceList entity; entries are included when loaded.
func PriceListToResponse(priceList *entity.PriceList) *dto.PriceListResponse {
	if priceList == nil {
		return nil
	}

	response := &dto.PriceListResponse{
		ID:            priceList.ID,
		Name:          priceList.Name,
		Status:        string(priceList.Status),
		IsArchived:    priceList.IsArchived,
		ArchiveReason: priceList.ArchiveReason,
		ArchivedAt:    priceList.ArchivedAt,
		CreatedAt:     priceList.CreatedAt,
	}
	if len(priceList.Entries) > 0 {
		response.Entries = PriceListEntriesToResponses(priceList.Entries)
	}
	return response
}

func PriceListsToResponses(priceLists []entity.PriceList) []dto.PriceListResponse {
	responses := make([]dto.PriceListResponse, len(priceLists))
	for i := range priceLists {
		responses[i] = *PriceListToResponse(&priceLists[i])
	}
	return responses
}
