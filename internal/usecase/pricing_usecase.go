package usecase

import (
	"context"
	"strings"

	"clinic-backoffice/internal/converter"
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PricingUsecase interface {
	// PriceCart previews prices; services missing from the active list price as 0.
	PriceCart(ctx context.Context, req *dto.CartPriceRequest) (*dto.CartPriceResponse, error)
	// CalculateTotals prices a cart for a patient, applying the patient's discount.
	CalculateTotals(ctx context.Context, req *dto.CartTotalsRequest) (*dto.CartTotalsResponse, error)
	GetPatientDiscount(ctx context.Context, patientID int64) (*dto.DiscountResponse, error)
}

type pricingUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	patientRepo   repository.PatientRepository
	priceListRepo repository.PriceListRepository
	entryRepo     repository.PriceListEntryRepository
}

func NewPricingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	priceListRepo repository.PriceListRepository,
	entryRepo repository.PriceListEntryRepository,
) PricingUsecase {
	return &pricingUsecase{
		db:            db,
		log:           log,
		patientRepo:   patientRepo,
		priceListRepo: priceListRepo,
		entryRepo:     entryRepo,
	}
}

func (u *pricingUsecase) PriceCart(ctx context.Context, req *dto.CartPriceRequest) (*dto.CartPriceResponse, error) {
	names := normalizeServiceNames(req.Services)
	if len(names) == 0 {
		return nil, ErrEmptyServices
	}

	db := u.db.WithContext(ctx)
	active, err := u.priceListRepo.FindActive(db)
	if err != nil {
		u.log.Warnf("Failed to find active price list: %+v", err)
		return nil, err
	}
	if active == nil {
		return nil, ErrActivePriceListNotFound
	}

	entries, err := u.entryRepo.FindByPriceListAndServiceNames(db, active.ID, distinctNames(names))
	if err != nil {
		u.log.Warnf("Failed to find price list entries: %+v", err)
		return nil, err
	}
	byName := entriesByServiceName(entries)

	items := make([]dto.CartItemResponse, len(names))
	prices := make([]decimal.Decimal, len(names))
	for i, name := range names {
		price := decimal.Zero
		if e, ok := byName[name]; ok {
			price = e.Price
		}
		prices[i] = price
		items[i] = dto.CartItemResponse{Service: name, Price: converter.Money(price)}
	}

	quote := entity.NewQuote(prices, 0)
	return &dto.CartPriceResponse{
		Items:    items,
		Subtotal: converter.Money(quote.Subtotal),
	}, nil
}

func (u *pricingUsecase) CalculateTotals(ctx context.Context, req *dto.CartTotalsRequest) (*dto.CartTotalsResponse, error) {
	names := normalizeServiceNames(req.Services)
	if len(names) == 0 {
		return nil, ErrEmptyServices
	}

	db := u.db.WithContext(ctx)
	patient, err := u.patientRepo.FindByID(db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	active, err := u.priceListRepo.FindActive(db)
	if err != nil {
		u.log.Warnf("Failed to find active price list: %+v", err)
		return nil, err
	}
	if active == nil {
		return nil, ErrActivePriceListNotFound
	}

	entries, err := u.entryRepo.FindByPriceListAndServiceNames(db, active.ID, distinctNames(names))
	if err != nil {
		u.log.Warnf("Failed to find price list entries: %+v", err)
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoPricedServices
	}
	byName := entriesByServiceName(entries)

	prices := make([]decimal.Decimal, 0, len(names))
	for _, name := range names {
		if e, ok := byName[name]; ok {
			prices = append(prices, e.Price)
		}
	}

	return quoteToTotals(entity.NewQuote(prices, patient.DiscountPercent())), nil
}

func (u *pricingUsecase) GetPatientDiscount(ctx context.Context, patientID int64) (*dto.DiscountResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return &dto.DiscountResponse{
		PatientID:       patient.ID,
		BenefitGroup:    string(patient.BenefitGroup),
		DiscountPercent: patient.DiscountPercent(),
	}, nil
}

func quoteToTotals(q entity.Quote) *dto.CartTotalsResponse {
	subtotal := q.Subtotal.Round(2)
	total := q.Total.Round(2)
	return &dto.CartTotalsResponse{
		Subtotal:        converter.Money(subtotal),
		DiscountPercent: q.DiscountPercent,
		DiscountAmount:  converter.Money(subtotal.Sub(total)),
		Total:           converter.Money(total),
	}
}

// normalizeServiceNames trims names and drops blanks, keeping duplicates.
func normalizeServiceNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func distinctNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func entriesByServiceName(entries []entity.PriceListEntry) map[string]entity.PriceListEntry {
	byName := make(map[string]entity.PriceListEntry, len(entries))
	for _, e := range entries {
		byName[e.ServiceName()] = e
	}
	return byName
}
