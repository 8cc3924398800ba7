package usecase

import (
	"context"
	"time"

	"clinic-backoffice/internal/converter"
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"
	"clinic-backoffice/internal/infrastructure/metrics"
	"clinic-backoffice/internal/service"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
)

type PriceListUsecase interface {
	ListPriceLists(ctx context.Context, page entity.Pagination, archived bool) ([]dto.PriceListResponse, int64, error)
	CreatePriceList(ctx context.Context, req *dto.CreatePriceListRequest) (*dto.PriceListResponse, error)
	ArchivePriceList(ctx context.Context, id int64, req *dto.ArchivePriceListRequest) (*dto.PriceListResponse, error)
	ActivatePriceList(ctx context.Context, id int64) (*dto.PriceListResponse, error)
	GetActiveEntries(ctx context.Context) ([]dto.PriceListEntryResponse, error)
}

type priceListUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	priceListRepo repository.PriceListRepository
	entryRepo     repository.PriceListEntryRepository
	serviceRepo   repository.ServiceRepository
	auditService  service.AuditService
	metrics       *metrics.BookingMetrics
}

func NewPriceListUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	priceListRepo repository.PriceListRepository,
	entryRepo repository.PriceListEntryRepository,
	serviceRepo repository.ServiceRepository,
	auditService service.AuditService,
	metrics *metrics.BookingMetrics,
) PriceListUsecase {
	return &priceListUsecase{
		db:            db,
		log:           log,
		priceListRepo: priceListRepo,
		entryRepo:     entryRepo,
		serviceRepo:   serviceRepo,
		auditService:  auditService,
		metrics:       metrics,
	}
}

func (u *priceListUsecase) ListPriceLists(ctx context.Context, page entity.Pagination, archived bool) ([]dto.PriceListResponse, int64, error) {
	priceLists, total, err := u.priceListRepo.FindPage(u.db.WithContext(ctx), page, archived)
	if err != nil {
		u.log.Warnf("Failed to find price lists: %+v", err)
		return nil, 0, err
	}

	return converter.PriceListsToResponses(priceLists), total, nil
}

// CreatePriceList stores a new INACTIVE list with its entries.
func (u *priceListUsecase) CreatePriceList(ctx context.Context, req *dto.CreatePriceListRequest) (*dto.PriceListResponse, error) {
	serviceIDs := make([]int64, 0, len(req.Entries))
	seen := make(map[int64]struct{}, len(req.Entries))
	for _, e := range req.Entries {
		if _, dup := seen[e.ServiceID]; dup {
			return nil, ErrDuplicateEntryService
		}
		seen[e.ServiceID] = struct{}{}
		if e.Price.LessThan(entity.MinEntryPrice) {
			return nil, ErrPriceTooLow
		}
		serviceIDs = append(serviceIDs, e.ServiceID)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	services, err := u.serviceRepo.FindByIDs(tx, serviceIDs)
	if err != nil {
		u.log.Warnf("Failed to find services: %+v", err)
		return nil, err
	}
	servicesByID := make(map[int64]entity.Service, len(services))
	for _, s := range services {
		servicesByID[s.ID] = s
	}

	priceList := &entity.PriceList{
		Name:   req.Name,
		Status: entity.PriceListStatusInactive,
	}
	if err := u.priceListRepo.Create(tx, priceList); err != nil {
		u.log.Warnf("Failed to create price list: %+v", err)
		return nil, err
	}

	for _, e := range req.Entries {
		s, ok := servicesByID[e.ServiceID]
		if !ok {
			return nil, ErrServiceNotFound
		}
		entry := entity.PriceListEntry{
			PriceListID: priceList.ID,
			ServiceID:   e.ServiceID,
			Price:       e.Price.Round(2),
		}
		if err := u.entryRepo.Create(tx, &entry); err != nil {
			u.log.Warnf("Failed to create price list entry: %+v", err)
			return nil, err
		}
		entry.Service = &s
		priceList.Entries = append(priceList.Entries, entry)
	}

	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionPriceListCreate, "price_list", priceList.ID, map[string]interface{}{
		"name":    priceList.Name,
		"entries": len(priceList.Entries),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	return converter.PriceListToResponse(priceList), nil
}

func (u *priceListUsecase) ArchivePriceList(ctx context.Context, id int64, req *dto.ArchivePriceListRequest) (*dto.PriceListResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	priceList, err := u.priceListRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find price list: %+v", err)
		return nil, err
	}
	if priceList == nil {
		return nil, ErrPriceListNotFound
	}
	if priceList.IsActive() {
		return nil, ErrPriceListActive
	}

	priceList.Archive(req.Reason, time.Now())
	if err := u.priceListRepo.Update(tx, priceList); err != nil {
		u.log.Warnf("Failed to archive price list: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionPriceListArchive, "price_list", priceList.ID,
		map[string]interface{}{"is_archived": false},
		map[string]interface{}{"is_archived": true, "reason": req.Reason},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	return converter.PriceListToResponse(priceList), nil
}

// ActivatePriceList makes id the only ACTIVE list and copies forward the last known price
// of every non-archived service the list does not price yet.
func (u *priceListUsecase) ActivatePriceList(ctx context.Context, id int64) (*dto.PriceListResponse, error) {
	ctx, span := tracer.Start(ctx, "PriceListUsecase.ActivatePriceList")
	defer span.End()
	span.SetAttributes(attribute.Int64("price_list.id", id))

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.priceListRepo.LockActivation(tx); err != nil {
		u.log.Warnf("Failed to lock price list activation: %+v", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "lock activation")
		return nil, err
	}

	priceList, err := u.priceListRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find price list: %+v", err)
		return nil, err
	}
	if priceList == nil {
		return nil, ErrPriceListNotFound
	}
	if priceList.IsArchived {
		return nil, ErrPriceListArchived
	}
	previous := priceList.Status

	if err := u.priceListRepo.DeactivateAll(tx); err != nil {
		u.log.Warnf("Failed to deactivate price lists: %+v", err)
		return nil, err
	}
	if err := u.priceListRepo.Activate(tx, id); err != nil {
		u.log.Warnf("Failed to activate price list %d: %+v", id, err)
		if isDuplicateKeyError(err, "ux_price_lists_single_active") {
			return nil, ErrPriceListActivationRace
		}
		return nil, err
	}

	copied, err := u.copyForwardPrices(tx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "copy forward")
		return nil, err
	}
	span.SetAttributes(attribute.Int("price_list.copied_entries", copied))

	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionPriceListActivate, "price_list", id,
		map[string]interface{}{"status": previous},
		map[string]interface{}{"status": entity.PriceListStatusActive, "copied_entries": copied},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	u.metrics.RecordPriceListActivation()
	u.log.Infof("Price list activated: id=%d, copied_entries=%d", id, copied)

	priceList.Status = entity.PriceListStatusActive
	return converter.PriceListToResponse(priceList), nil
}

// copyForwardPrices is check-then-create per service, so a retried activation creates
// nothing twice.
func (u *priceListUsecase) copyForwardPrices(tx *gorm.DB, priceListID int64) (int, error) {
	services, err := u.serviceRepo.FindNonArchived(tx)
	if err != nil {
		u.log.Warnf("Failed to find services: %+v", err)
		return 0, err
	}

	copied := 0
	for _, s := range services {
		existing, err := u.entryRepo.FindByPriceListAndService(tx, priceListID, s.ID)
		if err != nil {
			u.log.Warnf("Failed to find entry for service %d: %+v", s.ID, err)
			return 0, err
		}
		if existing != nil {
			continue
		}

		latest, err := u.entryRepo.FindLatestForService(tx, s.ID, priceListID)
		if err != nil {
			u.log.Warnf("Failed to find last price of service %d: %+v", s.ID, err)
			return 0, err
		}
		if latest == nil {
			continue
		}

		entry := &entity.PriceListEntry{
			PriceListID: priceListID,
			ServiceID:   s.ID,
			Price:       latest.Price,
		}
		if err := u.entryRepo.Create(tx, entry); err != nil {
			u.log.Warnf("Failed to copy price of service %d: %+v", s.ID, err)
			return 0, err
		}
		copied++
	}
	return copied, nil
}

// GetActiveEntries returns an empty list when no price list is active.
func (u *priceListUsecase) GetActiveEntries(ctx context.Context) ([]dto.PriceListEntryResponse, error) {
	db := u.db.WithContext(ctx)

	active, err := u.priceListRepo.FindActive(db)
	if err != nil {
		u.log.Warnf("Failed to find active price list: %+v", err)
		return nil, err
	}
	if active == nil {
		return []dto.PriceListEntryResponse{}, nil
	}

	entries, err := u.entryRepo.FindByPriceList(db, active.ID)
	if err != nil {
		u.log.Warnf("Failed to find entries of price list %d: %+v", active.ID, err)
		return nil, err
	}

	return converter.PriceListEntriesToResponses(entries), nil
}
