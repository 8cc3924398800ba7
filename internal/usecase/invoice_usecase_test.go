package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func invoiceWithAppointments() *entity.Invoice {
	discount := 10
	first := time.Date(2026, 10, 19, 10, 0, 0, 0, entity.ClinicLocation)
	patient := &entity.Patient{FirstName: "Ivan", LastName: "Petrov"}
	return &entity.Invoice{
		ID:              42,
		PaidDate:        time.Date(2026, 10, 16, 12, 0, 0, 0, entity.ClinicLocation),
		DiscountPercent: &discount,
		Appointments: []entity.Appointment{
			{
				AppointmentDate: &first,
				Patient:         patient,
				PriceListEntry:  &entity.PriceListEntry{Price: decimal.NewFromInt(100), Service: &entity.Service{Name: "ECG"}},
			},
			{
				Patient:        patient,
				PriceListEntry: &entity.PriceListEntry{Price: decimal.RequireFromString("33.33"), Service: &entity.Service{Name: "Consultation"}},
			},
		},
	}
}

func TestGetInvoice(t *testing.T) {
	db, _ := newMockDB(t)
	invoices := new(mockInvoiceRepository)
	invoices.On("FindByID", mock.Anything, int64(42)).Return(invoiceWithAppointments(), nil)
	uc := NewInvoiceUsecase(db, quietLogger(), invoices, service.NewHTMLDocumentRenderer())

	res, err := uc.GetInvoice(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, "RL-2026-00042", res.Number)
	assert.Equal(t, "Petrov Ivan", res.PatientName)
	require.Len(t, res.Lines, 2)
	assert.Equal(t, "2026-10-19", res.Lines[0].Date)
	assert.Empty(t, res.Lines[1].Date)
	assert.Equal(t, "133.33", res.Subtotal)
	assert.Equal(t, "13.33", res.DiscountAmount)
	assert.Equal(t, "120.00", res.Total)
}

func TestRenderInvoice(t *testing.T) {
	db, _ := newMockDB(t)
	invoices := new(mockInvoiceRepository)
	invoices.On("FindByID", mock.Anything, int64(42)).Return(invoiceWithAppointments(), nil)
	invoices.On("FindByID", mock.Anything, int64(43)).Return(nil, nil)
	uc := NewInvoiceUsecase(db, quietLogger(), invoices, service.NewHTMLDocumentRenderer())

	doc, err := uc.RenderInvoice(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "invoice-RL-2026-00042.html", doc.Filename)
	assert.Contains(t, string(doc.Body), "Total: 120.00")

	_, err = uc.RenderInvoice(context.Background(), 43)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}
