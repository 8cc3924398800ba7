package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/pkg/response"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	PayloadType string          `json:"payloadType"`
	Payload     json.RawMessage `json:"payload"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorPayload {
	t.Helper()
	var payload response.ErrorPayload
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Payload, &payload))
	return payload
}

type mockAppointmentUsecase struct{ mock.Mock }

func (m *mockAppointmentUsecase) CreateAppointments(ctx context.Context, req *dto.CreateAppointmentsRequest) (*dto.BookingResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.BookingResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentUsecase) Complete(ctx context.Context, id int64) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*dto.AppointmentResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentUsecase) Cancel(ctx context.Context, id int64) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*dto.AppointmentResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentUsecase) ListAppointments(ctx context.Context, req *dto.AppointmentListRequest) ([]dto.AppointmentResponse, int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]dto.AppointmentResponse), args.Get(1).(int64), args.Error(2)
}

func (m *mockAppointmentUsecase) PatientAppointments(ctx context.Context, patientID int64) ([]dto.AppointmentResponse, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).([]dto.AppointmentResponse), args.Error(1)
}

func (m *mockAppointmentUsecase) Statements(ctx context.Context, req *dto.AppointmentListRequest) ([]dto.StatementResponse, int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]dto.StatementResponse), args.Get(1).(int64), args.Error(2)
}

type mockPricingUsecase struct{ mock.Mock }

func (m *mockPricingUsecase) PriceCart(ctx context.Context, req *dto.CartPriceRequest) (*dto.CartPriceResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.CartPriceResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPricingUsecase) CalculateTotals(ctx context.Context, req *dto.CartTotalsRequest) (*dto.CartTotalsResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.CartTotalsResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPricingUsecase) GetPatientDiscount(ctx context.Context, patientID int64) (*dto.DiscountResponse, error) {
	args := m.Called(ctx, patientID)
	if v := args.Get(0); v != nil {
		return v.(*dto.DiscountResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPriceListUsecase struct{ mock.Mock }

func (m *mockPriceListUsecase) ListPriceLists(ctx context.Context, page entity.Pagination, archived bool) ([]dto.PriceListResponse, int64, error) {
	args := m.Called(ctx, page, archived)
	return args.Get(0).([]dto.PriceListResponse), args.Get(1).(int64), args.Error(2)
}

func (m *mockPriceListUsecase) CreatePriceList(ctx context.Context, req *dto.CreatePriceListRequest) (*dto.PriceListResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.PriceListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPriceListUsecase) ArchivePriceList(ctx context.Context, id int64, req *dto.ArchivePriceListRequest) (*dto.PriceListResponse, error) {
	args := m.Called(ctx, id, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.PriceListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPriceListUsecase) ActivatePriceList(ctx context.Context, id int64) (*dto.PriceListResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*dto.PriceListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPriceListUsecase) GetActiveEntries(ctx context.Context) ([]dto.PriceListEntryResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]dto.PriceListEntryResponse), args.Error(1)
}

type mockInvoiceUsecase struct{ mock.Mock }

func (m *mockInvoiceUsecase) GetInvoice(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*dto.InvoiceResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInvoiceUsecase) RenderInvoice(ctx context.Context, id int64) (*dto.RenderedDocument, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*dto.RenderedDocument), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDocumentUsecase struct{ mock.Mock }

func (m *mockDocumentUsecase) ExportStatements(ctx context.Context, req *dto.AppointmentListRequest) (*dto.RenderedDocument, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.RenderedDocument), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDocumentUsecase) RenderCartQuote(ctx context.Context, req *dto.CartQuoteRequest) (*dto.RenderedDocument, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.RenderedDocument), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMedicalRecordUsecase struct{ mock.Mock }

func (m *mockMedicalRecordUsecase) ListRecords(ctx context.Context, patientID int64) ([]dto.MedicalRecordResponse, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).([]dto.MedicalRecordResponse), args.Error(1)
}

func (m *mockMedicalRecordUsecase) CreateRecord(ctx context.Context, patientID int64, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	args := m.Called(ctx, patientID, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.MedicalRecordResponse), args.Error(1)
	}
	return nil, args.Error(1)
}
