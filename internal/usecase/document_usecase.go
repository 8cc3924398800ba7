package usecase

import (
	"bytes"
	"context"
	"strings"
	"time"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"
	"clinic-backoffice/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DocumentUsecase interface {
	// ExportStatements prints every appointment the statements registry would list, unpaged.
	ExportStatements(ctx context.Context, req *dto.AppointmentListRequest) (*dto.RenderedDocument, error)
	// RenderCartQuote prints a cart before booking. Services missing from the active
	// price list print at 0.
	RenderCartQuote(ctx context.Context, req *dto.CartQuoteRequest) (*dto.RenderedDocument, error)
}

type documentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	priceListRepo   repository.PriceListRepository
	entryRepo       repository.PriceListEntryRepository
	renderer        service.DocumentRenderer
	now             func() time.Time
}

func NewDocumentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	priceListRepo repository.PriceListRepository,
	entryRepo repository.PriceListEntryRepository,
	renderer service.DocumentRenderer,
) DocumentUsecase {
	return &documentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		priceListRepo:   priceListRepo,
		entryRepo:       entryRepo,
		renderer:        renderer,
		now:             time.Now,
	}
}

func (u *documentUsecase) ExportStatements(ctx context.Context, req *dto.AppointmentListRequest) (*dto.RenderedDocument, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), statementFilter(req))
	if err != nil {
		u.log.Warnf("Failed to find statements: %+v", err)
		return nil, err
	}

	doc := entity.NewStatementDocument(appointments, u.now())
	var buf bytes.Buffer
	if err := u.renderer.RenderStatement(&buf, doc); err != nil {
		u.log.Errorf("Failed to render statement: %+v", err)
		return nil, err
	}

	return &dto.RenderedDocument{
		Filename:    "statement-" + doc.GeneratedAt.Format("20060102") + u.renderer.Extension(),
		ContentType: u.renderer.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

func (u *documentUsecase) RenderCartQuote(ctx context.Context, req *dto.CartQuoteRequest) (*dto.RenderedDocument, error) {
	if len(req.Appointments) == 0 {
		return nil, ErrEmptyServices
	}

	lines := make([]entity.InvoiceLine, len(req.Appointments))
	names := make([]string, len(req.Appointments))
	for i, item := range req.Appointments {
		names[i] = strings.TrimSpace(item.Service)
		if names[i] == "" {
			return nil, ErrEmptyServices
		}
		date, err := quoteLineDate(item)
		if err != nil {
			return nil, err
		}
		lines[i] = entity.InvoiceLine{Date: date, Service: names[i]}
	}

	db := u.db.WithContext(ctx)
	discount := 0
	if req.PatientID != 0 {
		patient, err := u.patientRepo.FindByID(db, req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		discount = patient.DiscountPercent()
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
	byName := entriesByServiceName(entries)
	for i := range lines {
		lines[i].Price = decimal.Zero
		if e, ok := byName[lines[i].Service]; ok {
			lines[i].Price = e.Price
		}
	}

	doc := entity.NewCartQuoteDocument(lines, discount, u.now())
	var buf bytes.Buffer
	if err := u.renderer.RenderInvoice(&buf, doc); err != nil {
		u.log.Errorf("Failed to render cart quote: %+v", err)
		return nil, err
	}

	return &dto.RenderedDocument{
		Filename:    "invoice-" + doc.Number + u.renderer.Extension(),
		ContentType: u.renderer.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

// quoteLineDate is the visit start, the visit day without a time, or zero without a date.
func quoteLineDate(item dto.CartQuoteItem) (time.Time, error) {
	if item.Date == "" {
		return time.Time{}, nil
	}
	day, err := entity.ParseClinicDate(item.Date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	if item.Time == "" {
		return day, nil
	}
	start, err := entity.ParseSlotStart(day, item.Time)
	if err != nil {
		return time.Time{}, ErrInvalidTime
	}
	return start, nil
}
