package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/service"
	"clinic-backoffice/pkg/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type appointmentFixture struct {
	appointments  *mockAppointmentRepository
	invoices      *mockInvoiceRepository
	patients      *mockPatientRepository
	users         *mockUserRepository
	priceLists    *mockPriceListRepository
	entries       *mockPriceListEntryRepository
	locker        *passthroughLocker
	audit         *mockAuditService
	notifications *mockNotificationService
}

var bookingNow = time.Date(2026, 10, 16, 12, 0, 0, 0, entity.ClinicLocation)

func newAppointmentUsecase(t *testing.T) (*appointmentUsecase, appointmentFixture, sqlmock.Sqlmock) {
	db, sqlMock := newMockDB(t)
	f := appointmentFixture{
		appointments:  new(mockAppointmentRepository),
		invoices:      new(mockInvoiceRepository),
		patients:      new(mockPatientRepository),
		users:         new(mockUserRepository),
		priceLists:    new(mockPriceListRepository),
		entries:       new(mockPriceListEntryRepository),
		locker:        &passthroughLocker{},
		audit:         new(mockAuditService),
		notifications: new(mockNotificationService),
	}
	uc := NewAppointmentUsecase(db, quietLogger(), f.appointments, f.invoices, f.patients, f.users,
		f.priceLists, f.entries, f.locker, f.audit, f.notifications, nil).(*appointmentUsecase)
	uc.now = func() time.Time { return bookingNow }
	return uc, f, sqlMock
}

// expectCatalog sets up patient 1 (military), active list 3 and doctor 5.
func (f appointmentFixture) expectCatalog(entries ...entity.PriceListEntry) {
	f.patients.On("FindByID", mock.Anything, int64(1)).Return(&entity.Patient{
		ID: 1, FirstName: "Ivan", LastName: "Petrov", BenefitGroup: entity.BenefitGroupMilitary,
	}, nil)
	f.priceLists.On("FindActive", mock.Anything).Return(&entity.PriceList{ID: 3, Status: entity.PriceListStatusActive}, nil)
	f.entries.On("FindByPriceListAndServiceNames", mock.Anything, int64(3), mock.Anything).Return(entries, nil)
	f.users.On("FindByID", mock.Anything, int64(5)).Return(&entity.User{
		ID: 5, FirstName: "Anna", LastName: "Sidorova", Email: "anna@clinic.test", UserType: entity.UserTypeDoctor,
	}, nil)
}

func bookingRequest(visits ...dto.AppointmentRequest) *dto.CreateAppointmentsRequest {
	return &dto.CreateAppointmentsRequest{PatientID: 1, Appointments: visits}
}

func visit(service, at string) dto.AppointmentRequest {
	return dto.AppointmentRequest{Service: service, DoctorID: 5, Date: "2026-10-19", Time: at}
}

func TestCreateAppointments_BooksBatchBehindOneInvoice(t *testing.T) {
	uc, f, sqlMock := newAppointmentUsecase(t)
	f.expectCatalog(pricedEntry(11, "S1", "100"), pricedEntry(12, "S2", "50"))

	sqlMock.ExpectBegin()
	f.appointments.On("ExistsActiveAt", mock.Anything, int64(5), mock.Anything).Return(false, nil)
	f.invoices.On("Create", mock.Anything, mock.AnythingOfType("*entity.Invoice")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Invoice).ID = 42 }).
		Return(nil)
	f.appointments.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			batch := args.Get(1).([]entity.Appointment)
			for i := range batch {
				batch[i].ID = int64(100 + i)
			}
		}).
		Return(nil)
	f.audit.expectAudit("LogCreate", entity.AuditActionAppointmentCreate)
	sqlMock.ExpectCommit()
	f.notifications.On("NotifyAppointment", mock.Anything, mock.MatchedBy(func(n service.AppointmentNotice) bool {
		return n.DoctorEmail == "anna@clinic.test" && n.Date == "2026-10-19" && n.PatientID == 1
	})).Return().Twice()

	booking, err := uc.CreateAppointments(context.Background(), bookingRequest(visit("S1", "10:00"), visit("S2", "10:30 - 11:00")))

	require.NoError(t, err)
	assert.Equal(t, int64(42), booking.InvoiceID)
	assert.Equal(t, "RL-2026-00042", booking.InvoiceNumber)
	assert.Equal(t, "150.00", booking.Subtotal)
	assert.Equal(t, 20, booking.DiscountPercent)
	assert.Equal(t, "120.00", booking.Total)
	require.Len(t, booking.Appointments, 2)
	assert.Equal(t, "S1", booking.Appointments[0].Service)
	assert.Equal(t, "100.00", booking.Appointments[0].Price)
	assert.Equal(t, "PLANNED", booking.Appointments[1].Status)
	assert.Equal(t, time.Date(2026, 10, 19, 10, 30, 0, 0, entity.ClinicLocation).UnixMilli(), *booking.Appointments[1].AppointmentDate)

	require.Len(t, f.locker.slots, 2)
	assert.Equal(t, "2026-10-19 10:00", entity.SlotKey(f.locker.slots[0].Start))

	f.invoices.AssertExpectations(t)
	f.appointments.AssertExpectations(t)
	f.notifications.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestCreateAppointments_RejectsBeforeWriting(t *testing.T) {
	tests := []struct {
		name    string
		entries []entity.PriceListEntry
		req     *dto.CreateAppointmentsRequest
		wantErr error
		kind    apperror.Kind
	}{
		{
			name:    "one service has no price",
			entries: []entity.PriceListEntry{pricedEntry(11, "S1", "100")},
			req:     bookingRequest(visit("S1", "10:00"), visit("Unknown", "11:00")),
			kind:    apperror.KindNotFound,
		},
		{
			name:    "no service has a price",
			entries: []entity.PriceListEntry{},
			req:     bookingRequest(visit("Unknown", "10:00")),
			wantErr: ErrNoPricedServices,
		},
		{
			name:    "same doctor twice in one slot",
			entries: []entity.PriceListEntry{pricedEntry(11, "S1", "100"), pricedEntry(12, "S2", "50")},
			req:     bookingRequest(visit("S1", "10:00"), visit("S2", "10:00 - 10:30")),
			wantErr: ErrDuplicateSlot,
		},
		{
			name:    "malformed time",
			entries: []entity.PriceListEntry{pricedEntry(11, "S1", "100")},
			req:     bookingRequest(visit("S1", "ten")),
			wantErr: ErrInvalidTime,
		},
		{
			name:    "start inside a slot",
			entries: []entity.PriceListEntry{pricedEntry(11, "S1", "100")},
			req:     bookingRequest(visit("S1", "09:15")),
			wantErr: ErrNotASlot,
		},
		{
			name:    "one minute past a slot start",
			entries: []entity.PriceListEntry{pricedEntry(11, "S1", "100")},
			req:     bookingRequest(visit("S1", "09:01")),
			wantErr: ErrNotASlot,
		},
		{
			name:    "closing time",
			entries: []entity.PriceListEntry{pricedEntry(11, "S1", "100")},
			req:     bookingRequest(visit("S1", "18:00")),
			wantErr: ErrNotASlot,
		},
		{
			name:    "late evening",
			entries: []entity.PriceListEntry{pricedEntry(11, "S1", "100")},
			req:     bookingRequest(visit("S1", "23:45")),
			wantErr: ErrNotASlot,
		},
		{
			name:    "saturday",
			entries: []entity.PriceListEntry{pricedEntry(11, "S1", "100")},
			req: bookingRequest(dto.AppointmentRequest{
				Service: "S1", DoctorID: 5, Date: "2026-10-17", Time: "10:00",
			}),
			wantErr: ErrClinicClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, f, sqlMock := newAppointmentUsecase(t)
			f.expectCatalog(tt.entries...)

			_, err := uc.CreateAppointments(context.Background(), tt.req)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.Equal(t, tt.kind, apperror.KindOf(err))
			}
			assert.Nil(t, f.locker.slots)
			f.invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})
	}
}

func TestCreateAppointments_UnknownPatientOrPriceList(t *testing.T) {
	t.Run("patient", func(t *testing.T) {
		uc, f, _ := newAppointmentUsecase(t)
		f.patients.On("FindByID", mock.Anything, int64(1)).Return(nil, nil)

		_, err := uc.CreateAppointments(context.Background(), bookingRequest(visit("S1", "10:00")))
		assert.ErrorIs(t, err, ErrPatientNotFound)
	})

	t.Run("active price list", func(t *testing.T) {
		uc, f, _ := newAppointmentUsecase(t)
		f.patients.On("FindByID", mock.Anything, int64(1)).Return(&entity.Patient{ID: 1}, nil)
		f.priceLists.On("FindActive", mock.Anything).Return(nil, nil)

		_, err := uc.CreateAppointments(context.Background(), bookingRequest(visit("S1", "10:00")))
		assert.ErrorIs(t, err, ErrNoActivePriceList)
		assert.Equal(t, apperror.KindOperational, apperror.KindOf(err))
	})
}

func TestCreateAppointments_NotADoctor(t *testing.T) {
	uc, f, _ := newAppointmentUsecase(t)
	f.patients.On("FindByID", mock.Anything, int64(1)).Return(&entity.Patient{ID: 1}, nil)
	f.priceLists.On("FindActive", mock.Anything).Return(&entity.PriceList{ID: 3}, nil)
	f.entries.On("FindByPriceListAndServiceNames", mock.Anything, int64(3), mock.Anything).
		Return([]entity.PriceListEntry{pricedEntry(11, "S1", "100")}, nil)
	f.users.On("FindByID", mock.Anything, int64(5)).Return(&entity.User{ID: 5, UserType: entity.UserTypeRecorder}, nil)

	_, err := uc.CreateAppointments(context.Background(), bookingRequest(visit("S1", "10:00")))

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestCreateAppointments_SlotAlreadyTaken(t *testing.T) {
	uc, f, sqlMock := newAppointmentUsecase(t)
	f.expectCatalog(pricedEntry(11, "S1", "100"))

	sqlMock.ExpectBegin()
	f.appointments.On("ExistsActiveAt", mock.Anything, int64(5), mock.Anything).Return(true, nil)
	sqlMock.ExpectRollback()

	_, err := uc.CreateAppointments(context.Background(), bookingRequest(visit("S1", "10:00")))

	assert.ErrorIs(t, err, ErrSlotTaken)
	f.invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestCreateAppointments_SlotLockedByAnotherBatch(t *testing.T) {
	uc, f, sqlMock := newAppointmentUsecase(t)
	f.expectCatalog(pricedEntry(11, "S1", "100"))
	f.locker.err = service.ErrSlotLocked

	_, err := uc.CreateAppointments(context.Background(), bookingRequest(visit("S1", "10:00")))

	assert.ErrorIs(t, err, ErrSlotBusy)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func appointmentAt(status entity.AppointmentStatus, at time.Time) *entity.Appointment {
	return &entity.Appointment{
		ID:              7,
		ExecutionStatus: status,
		AppointmentDate: &at,
		PriceListEntry:  &entity.PriceListEntry{Price: decimal.NewFromInt(80), Service: &entity.Service{Name: "S1"}},
	}
}

func TestComplete(t *testing.T) {
	past := bookingNow.Add(-time.Hour)
	future := bookingNow.Add(time.Hour)

	t.Run("started appointment", func(t *testing.T) {
		uc, f, sqlMock := newAppointmentUsecase(t)
		sqlMock.ExpectBegin()
		f.appointments.On("FindByID", mock.Anything, int64(7)).Return(appointmentAt(entity.AppointmentStatusPlanned, past), nil)
		f.appointments.On("UpdateStatus", mock.Anything, int64(7), []entity.AppointmentStatus{entity.AppointmentStatusPlanned},
			entity.AppointmentStatusCompleted, &bookingNow).Return(int64(1), nil)
		f.audit.expectAudit("LogUpdate", entity.AuditActionAppointmentComplete)
		sqlMock.ExpectCommit()

		res, err := uc.Complete(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", res.Status)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("not started yet", func(t *testing.T) {
		uc, f, sqlMock := newAppointmentUsecase(t)
		sqlMock.ExpectBegin()
		f.appointments.On("FindByID", mock.Anything, int64(7)).Return(appointmentAt(entity.AppointmentStatusPlanned, future), nil)
		sqlMock.ExpectRollback()

		_, err := uc.Complete(context.Background(), 7)

		assert.ErrorIs(t, err, ErrAppointmentNotStarted)
		assert.EqualError(t, err, "appointment hasn't started yet")
	})

	t.Run("without date", func(t *testing.T) {
		uc, f, sqlMock := newAppointmentUsecase(t)
		sqlMock.ExpectBegin()
		f.appointments.On("FindByID", mock.Anything, int64(7)).Return(&entity.Appointment{ID: 7, ExecutionStatus: entity.AppointmentStatusPlanned}, nil)
		sqlMock.ExpectRollback()

		_, err := uc.Complete(context.Background(), 7)

		assert.ErrorIs(t, err, ErrAppointmentNotStarted)
	})

	t.Run("canceled", func(t *testing.T) {
		uc, f, sqlMock := newAppointmentUsecase(t)
		sqlMock.ExpectBegin()
		f.appointments.On("FindByID", mock.Anything, int64(7)).Return(appointmentAt(entity.AppointmentStatusCanceled, past), nil)
		sqlMock.ExpectRollback()

		_, err := uc.Complete(context.Background(), 7)

		assert.ErrorIs(t, err, ErrAppointmentCanceled)
	})

	t.Run("already completed keeps its completion date", func(t *testing.T) {
		uc, f, sqlMock := newAppointmentUsecase(t)
		sqlMock.ExpectBegin()
		f.appointments.On("FindByID", mock.Anything, int64(7)).Return(appointmentAt(entity.AppointmentStatusCompleted, past), nil)
		sqlMock.ExpectRollback()

		res, err := uc.Complete(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", res.Status)
		f.appointments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing", func(t *testing.T) {
		uc, f, sqlMock := newAppointmentUsecase(t)
		sqlMock.ExpectBegin()
		f.appointments.On("FindByID", mock.Anything, int64(7)).Return(nil, nil)
		sqlMock.ExpectRollback()

		_, err := uc.Complete(context.Background(), 7)

		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestCancel(t *testing.T) {
	future := bookingNow.Add(24 * time.Hour)

	t.Run("planned appointment", func(t *testing.T) {
		uc, f, sqlMock := newAppointmentUsecase(t)
		sqlMock.ExpectBegin()
		f.appointments.On("FindByID", mock.Anything, int64(7)).Return(appointmentAt(entity.AppointmentStatusPlanned, future), nil)
		f.appointments.On("UpdateStatus", mock.Anything, int64(7), mock.Anything, entity.AppointmentStatusCanceled, (*time.Time)(nil)).Return(int64(1), nil)
		f.audit.expectAudit("LogUpdate", entity.AuditActionAppointmentCancel)
		sqlMock.ExpectCommit()

		res, err := uc.Cancel(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, "CANCELED", res.Status)
	})

	t.Run("completed", func(t *testing.T) {
		uc, f, sqlMock := newAppointmentUsecase(t)
		sqlMock.ExpectBegin()
		f.appointments.On("FindByID", mock.Anything, int64(7)).Return(appointmentAt(entity.AppointmentStatusCompleted, future), nil)
		sqlMock.ExpectRollback()

		_, err := uc.Cancel(context.Background(), 7)

		assert.ErrorIs(t, err, ErrAppointmentCompleted)
	})

	t.Run("completed concurrently", func(t *testing.T) {
		uc, f, sqlMock := newAppointmentUsecase(t)
		sqlMock.ExpectBegin()
		f.appointments.On("FindByID", mock.Anything, int64(7)).Return(appointmentAt(entity.AppointmentStatusPlanned, future), nil).Once()
		f.appointments.On("UpdateStatus", mock.Anything, int64(7), mock.Anything, entity.AppointmentStatusCanceled, (*time.Time)(nil)).Return(int64(0), nil)
		f.appointments.On("FindByID", mock.Anything, int64(7)).Return(appointmentAt(entity.AppointmentStatusCompleted, future), nil).Once()
		sqlMock.ExpectRollback()

		_, err := uc.Cancel(context.Background(), 7)

		assert.ErrorIs(t, err, ErrAppointmentCompleted)
		f.audit.AssertNotCalled(t, "LogUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPatientAppointments_AppliesInvoiceDiscount(t *testing.T) {
	uc, f, _ := newAppointmentUsecase(t)
	discount := 40
	a := appointmentAt(entity.AppointmentStatusPlanned, bookingNow)
	a.Invoice = &entity.Invoice{ID: 9, DiscountPercent: &discount}
	f.patients.On("FindByID", mock.Anything, int64(1)).Return(&entity.Patient{ID: 1}, nil)
	f.appointments.On("FindByPatientID", mock.Anything, int64(1)).Return([]entity.Appointment{*a}, nil)

	res, err := uc.PatientAppointments(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "48.00", res[0].Price)
}

func TestStatements_PassesFilter(t *testing.T) {
	uc, f, _ := newAppointmentUsecase(t)
	want := entity.AppointmentFilter{
		Services: []string{"S1"},
		Statuses: []entity.AppointmentStatus{entity.AppointmentStatusCompleted},
		SortBy:   "endDate",
		Desc:     true,
	}
	f.appointments.On("FindPage", mock.Anything, want, entity.Pagination{Page: 2, PerPage: 5}).
		Return([]entity.Appointment{*appointmentAt(entity.AppointmentStatusCompleted, bookingNow)}, int64(6), nil)

	res, total, err := uc.Statements(context.Background(), &dto.AppointmentListRequest{
		Page: 2, PerPage: 5, Services: []string{"S1"}, Statuses: []string{"COMPLETED"}, SortBy: "endDate", Order: "desc",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	require.Len(t, res, 1)
	assert.Equal(t, "80.00", res[0].Price)
}

func TestListAppointments_OrdersByAppointmentDate(t *testing.T) {
	uc, f, _ := newAppointmentUsecase(t)
	want := entity.AppointmentFilter{Status: entity.AppointmentStatusPlanned, SortBy: "appointmentDate"}
	f.appointments.On("FindPage", mock.Anything, want, entity.NewPagination(0, 0)).Return([]entity.Appointment{}, int64(0), nil)

	res, total, err := uc.ListAppointments(context.Background(), &dto.AppointmentListRequest{Status: "PLANNED"})

	require.NoError(t, err)
	assert.Empty(t, res)
	assert.Zero(t, total)
}
