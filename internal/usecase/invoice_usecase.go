package usecase

import (
	"bytes"
	"context"

	"clinic-backoffice/internal/converter"
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"
	"clinic-backoffice/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type InvoiceUsecase interface {
	GetInvoice(ctx context.Context, id int64) (*dto.InvoiceResponse, error)
	RenderInvoice(ctx context.Context, id int64) (*dto.RenderedDocument, error)
}

type invoiceUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	invoiceRepo repository.InvoiceRepository
	renderer    service.DocumentRenderer
}

func NewInvoiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	invoiceRepo repository.InvoiceRepository,
	renderer service.DocumentRenderer,
) InvoiceUsecase {
	return &invoiceUsecase{
		db:          db,
		log:         log,
		invoiceRepo: invoiceRepo,
		renderer:    renderer,
	}
}

func (u *invoiceUsecase) GetInvoice(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	invoice, err := u.findInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.InvoiceDocumentToResponse(invoice.ID, invoice.Document()), nil
}

func (u *invoiceUsecase) RenderInvoice(ctx context.Context, id int64) (*dto.RenderedDocument, error) {
	invoice, err := u.findInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := invoice.Document()
	var buf bytes.Buffer
	if err := u.renderer.RenderInvoice(&buf, doc); err != nil {
		u.log.Errorf("Failed to render invoice %d: %+v", id, err)
		return nil, err
	}

	return &dto.RenderedDocument{
		Filename:    "invoice-" + doc.Number + u.renderer.Extension(),
		ContentType: u.renderer.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

func (u *invoiceUsecase) findInvoice(ctx context.Context, id int64) (*entity.Invoice, error) {
	invoice, err := u.invoiceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find invoice: %+v", err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}
