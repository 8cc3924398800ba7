package usecase

import (
	"context"
	"strings"

	"clinic-backoffice/internal/converter"
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"
	"clinic-backoffice/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ServiceUsecase interface {
	ListServices(ctx context.Context, page entity.Pagination) ([]dto.ServiceResponse, int64, error)
	CreateService(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	ArchiveService(ctx context.Context, id int64) (*dto.ServiceResponse, error)
	RestoreService(ctx context.Context, id int64) (*dto.ServiceResponse, error)
	ServiceNames(ctx context.Context) (*dto.ServiceNamesResponse, error)
	ServiceExists(ctx context.Context, name string) (*dto.ServiceExistsResponse, error)
}

type serviceUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	serviceRepo   repository.ServiceRepository
	priceListRepo repository.PriceListRepository
	entryRepo     repository.PriceListEntryRepository
	auditService  service.AuditService
}

func NewServiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	priceListRepo repository.PriceListRepository,
	entryRepo repository.PriceListEntryRepository,
	auditService service.AuditService,
) ServiceUsecase {
	return &serviceUsecase{
		db:            db,
		log:           log,
		serviceRepo:   serviceRepo,
		priceListRepo: priceListRepo,
		entryRepo:     entryRepo,
		auditService:  auditService,
	}
}

// ListServices pages non-archived services with their active price and how many of their
// appointments were completed.
func (u *serviceUsecase) ListServices(ctx context.Context, page entity.Pagination) ([]dto.ServiceResponse, int64, error) {
	db := u.db.WithContext(ctx)

	services, total, err := u.serviceRepo.FindPage(db, page)
	if err != nil {
		u.log.Warnf("Failed to find services: %+v", err)
		return nil, 0, err
	}

	ids := make([]int64, len(services))
	for i, s := range services {
		ids[i] = s.ID
	}

	completed, err := u.serviceRepo.CountCompletedAppointments(db, ids)
	if err != nil {
		u.log.Warnf("Failed to count completed appointments: %+v", err)
		return nil, 0, err
	}

	prices := map[int64]decimal.Decimal{}
	active, err := u.priceListRepo.FindActive(db)
	if err != nil {
		u.log.Warnf("Failed to find active price list: %+v", err)
		return nil, 0, err
	}
	if active != nil {
		entries, err := u.entryRepo.FindByPriceList(db, active.ID)
		if err != nil {
			u.log.Warnf("Failed to find entries of price list %d: %+v", active.ID, err)
			return nil, 0, err
		}
		for _, e := range entries {
			prices[e.ServiceID] = e.Price
		}
	}

	responses := make([]dto.ServiceResponse, len(services))
	for i := range services {
		var price *decimal.Decimal
		if p, ok := prices[services[i].ID]; ok {
			price = &p
		}
		responses[i] = converter.ServiceToResponse(&services[i], price, completed[services[i].ID])
	}
	return responses, total, nil
}

// CreateService adds the service and prices it in the active price list.
func (u *serviceUsecase) CreateService(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	name := strings.TrimSpace(req.Name)
	if req.Price.LessThan(entity.MinEntryPrice) {
		return nil, ErrPriceTooLow
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.serviceRepo.FindByName(tx, name)
	if err != nil {
		u.log.Warnf("Failed to find service by name: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrServiceExists
	}

	active, err := u.priceListRepo.FindActive(tx)
	if err != nil {
		u.log.Warnf("Failed to find active price list: %+v", err)
		return nil, err
	}
	if active == nil {
		return nil, ErrNoActivePriceList
	}

	svc := &entity.Service{Name: name}
	if err := u.serviceRepo.Create(tx, svc); err != nil {
		u.log.Warnf("Failed to create service: %+v", err)
		if isDuplicateKeyError(err, "") {
			return nil, ErrServiceExists
		}
		return nil, err
	}

	price := req.Price.Round(2)
	entry := &entity.PriceListEntry{
		PriceListID: active.ID,
		ServiceID:   svc.ID,
		Price:       price,
	}
	if err := u.entryRepo.Create(tx, entry); err != nil {
		u.log.Warnf("Failed to create price list entry: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionServiceCreate, "service", svc.ID, map[string]interface{}{
		"name":          svc.Name,
		"price":         price.StringFixed(2),
		"price_list_id": active.ID,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	response := converter.ServiceToResponse(svc, &price, 0)
	return &response, nil
}

func (u *serviceUsecase) ArchiveService(ctx context.Context, id int64) (*dto.ServiceResponse, error) {
	return u.setArchived(ctx, id, true)
}

// RestoreService un-archives the service and, when the active list has no entry for it,
// copies its last known price there.
func (u *serviceUsecase) RestoreService(ctx context.Context, id int64) (*dto.ServiceResponse, error) {
	return u.setArchived(ctx, id, false)
}

func (u *serviceUsecase) setArchived(ctx context.Context, id int64, archived bool) (*dto.ServiceResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	svc, err := u.serviceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find service: %+v", err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	action := entity.AuditActionServiceArchive
	if !archived {
		action = entity.AuditActionServiceRestore
	}

	var price *decimal.Decimal
	if svc.IsArchived != archived {
		svc.IsArchived = archived
		if err := u.serviceRepo.Update(tx, svc); err != nil {
			u.log.Warnf("Failed to update service: %+v", err)
			return nil, err
		}

		if !archived {
			if price, err = u.restorePrice(tx, svc.ID); err != nil {
				return nil, err
			}
		}

		if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), action, "service", svc.ID,
			map[string]interface{}{"is_archived": !archived},
			map[string]interface{}{"is_archived": archived},
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	response := converter.ServiceToResponse(svc, price, 0)
	return &response, nil
}

func (u *serviceUsecase) restorePrice(tx *gorm.DB, serviceID int64) (*decimal.Decimal, error) {
	active, err := u.priceListRepo.FindActive(tx)
	if err != nil {
		u.log.Warnf("Failed to find active price list: %+v", err)
		return nil, err
	}
	if active == nil {
		return nil, nil
	}

	existing, err := u.entryRepo.FindByPriceListAndService(tx, active.ID, serviceID)
	if err != nil {
		u.log.Warnf("Failed to find entry for service %d: %+v", serviceID, err)
		return nil, err
	}
	if existing != nil {
		return &existing.Price, nil
	}

	latest, err := u.entryRepo.FindLatestForService(tx, serviceID, active.ID)
	if err != nil {
		u.log.Warnf("Failed to find last price of service %d: %+v", serviceID, err)
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}

	entry := &entity.PriceListEntry{PriceListID: active.ID, ServiceID: serviceID, Price: latest.Price}
	if err := u.entryRepo.Create(tx, entry); err != nil {
		u.log.Warnf("Failed to restore price of service %d: %+v", serviceID, err)
		return nil, err
	}
	return &entry.Price, nil
}

func (u *serviceUsecase) ServiceNames(ctx context.Context) (*dto.ServiceNamesResponse, error) {
	names, err := u.serviceRepo.FindNames(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find service names: %+v", err)
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return &dto.ServiceNamesResponse{Names: names}, nil
}

func (u *serviceUsecase) ServiceExists(ctx context.Context, name string) (*dto.ServiceExistsResponse, error) {
	name = strings.TrimSpace(name)
	svc, err := u.serviceRepo.FindByName(u.db.WithContext(ctx), name)
	if err != nil {
		u.log.Warnf("Failed to find service by name: %+v", err)
		return nil, err
	}
	return &dto.ServiceExistsResponse{Name: name, Exists: svc != nil}, nil
}
