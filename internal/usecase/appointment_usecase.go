package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-backoffice/internal/converter"
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"
	"clinic-backoffice/internal/infrastructure/metrics"
	"clinic-backoffice/internal/service"
	"clinic-backoffice/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
)

type AppointmentUsecase interface {
	CreateAppointments(ctx context.Context, req *dto.CreateAppointmentsRequest) (*dto.BookingResponse, error)
	Complete(ctx context.Context, id int64) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id int64) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, req *dto.AppointmentListRequest) ([]dto.AppointmentResponse, int64, error)
	PatientAppointments(ctx context.Context, patientID int64) ([]dto.AppointmentResponse, error)
	Statements(ctx context.Context, req *dto.AppointmentListRequest) ([]dto.StatementResponse, int64, error)
}

type appointmentUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	appointmentRepo     repository.AppointmentRepository
	invoiceRepo         repository.InvoiceRepository
	patientRepo         repository.PatientRepository
	userRepo            repository.UserRepository
	priceListRepo       repository.PriceListRepository
	entryRepo           repository.PriceListEntryRepository
	slotLocker          service.SlotLocker
	auditService        service.AuditService
	notificationService service.NotificationService
	metrics             *metrics.BookingMetrics
	now                 func() time.Time
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	invoiceRepo repository.InvoiceRepository,
	patientRepo repository.PatientRepository,
	userRepo repository.UserRepository,
	priceListRepo repository.PriceListRepository,
	entryRepo repository.PriceListEntryRepository,
	slotLocker service.SlotLocker,
	auditService service.AuditService,
	notificationService service.NotificationService,
	metrics *metrics.BookingMetrics,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                  db,
		log:                 log,
		appointmentRepo:     appointmentRepo,
		invoiceRepo:         invoiceRepo,
		patientRepo:         patientRepo,
		userRepo:            userRepo,
		priceListRepo:       priceListRepo,
		entryRepo:           entryRepo,
		slotLocker:          slotLocker,
		auditService:        auditService,
		notificationService: notificationService,
		metrics:             metrics,
		now:                 time.Now,
	}
}

// plannedVisit is one validated request of a booking batch.
type plannedVisit struct {
	entry  entity.PriceListEntry
	doctor *entity.User
	start  time.Time
}

// CreateAppointments books a batch of visits for one patient behind a single invoice.
//
// Flow:
// 1. Resolve the patient, the active price list and the entry of every requested service
// 2. Resolve doctors and slot starts, rejecting a doctor booked twice at the same start
// 3. Lock every (doctor, slot) in Redis so concurrent batches cannot interleave
// 4. In one transaction: check the slots are free, insert the invoice and the appointments
// 5. After commit, notify each doctor (best effort)
func (u *appointmentUsecase) CreateAppointments(ctx context.Context, req *dto.CreateAppointmentsRequest) (*dto.BookingResponse, error) {
	ctx, span := tracer.Start(ctx, "AppointmentUsecase.CreateAppointments")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("patient.id", req.PatientID),
		attribute.Int("appointments.requested", len(req.Appointments)),
	)

	response, err := u.createAppointments(ctx, req)
	if err != nil {
		u.metrics.RecordBookingFailure(bookingFailureReason(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "booking failed")
		return nil, err
	}

	u.metrics.RecordAppointmentsCreated(len(response.Appointments))
	span.SetAttributes(attribute.Int64("invoice.id", response.InvoiceID))
	return response, nil
}

func (u *appointmentUsecase) createAppointments(ctx context.Context, req *dto.CreateAppointmentsRequest) (*dto.BookingResponse, error) {
	if len(req.Appointments) == 0 {
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
		return nil, ErrNoActivePriceList
	}

	names := make([]string, len(req.Appointments))
	for i, r := range req.Appointments {
		names[i] = strings.TrimSpace(r.Service)
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

	visits, err := u.planVisits(db, req.Appointments, names, byName)
	if err != nil {
		return nil, err
	}

	prices := make([]decimal.Decimal, len(visits))
	slots := make([]service.SlotRef, len(visits))
	for i, v := range visits {
		prices[i] = v.entry.Price
		slots[i] = service.SlotRef{DoctorID: v.doctor.ID, Start: v.start}
	}
	invoice := entity.NewInvoice(entity.NewQuote(prices, patient.DiscountPercent()), u.now())

	var appointments []entity.Appointment
	err = u.slotLocker.WithSlotLocks(ctx, slots, func(ctx context.Context) error {
		var txErr error
		appointments, txErr = u.persistBooking(ctx, patient, invoice, visits)
		return txErr
	})
	if err != nil {
		if errors.Is(err, service.ErrSlotLocked) {
			return nil, ErrSlotBusy
		}
		return nil, err
	}

	for i := range appointments {
		u.notifyDoctor(ctx, &appointments[i])
	}

	return &dto.BookingResponse{
		InvoiceID:       invoice.ID,
		InvoiceNumber:   invoice.Number(),
		Subtotal:        converter.Money(invoice.Subtotal),
		DiscountPercent: invoice.Discount(),
		Total:           converter.Money(invoice.Total),
		Appointments:    converter.AppointmentsToResponses(appointments),
	}, nil
}

// planVisits resolves every request of the batch before anything is written.
func (u *appointmentUsecase) planVisits(db *gorm.DB, requests []dto.AppointmentRequest, names []string, byName map[string]entity.PriceListEntry) ([]plannedVisit, error) {
	type doctorSlot struct {
		doctorID int64
		slot     string
	}

	doctors := make(map[int64]*entity.User)
	taken := make(map[doctorSlot]struct{}, len(requests))
	visits := make([]plannedVisit, len(requests))

	for i, r := range requests {
		entry, ok := byName[names[i]]
		if !ok {
			return nil, apperror.NotFoundf("service %q has no price in the active price list", names[i])
		}

		doctor, ok := doctors[r.DoctorID]
		if !ok {
			found, err := u.userRepo.FindByID(db, r.DoctorID)
			if err != nil {
				u.log.Warnf("Failed to find doctor %d: %+v", r.DoctorID, err)
				return nil, err
			}
			if found == nil || !found.IsDoctor() {
				return nil, ErrDoctorNotFound
			}
			doctors[r.DoctorID] = found
			doctor = found
		}

		day, err := entity.ParseClinicDate(r.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		start, err := entity.ParseSlotStart(day, r.Time)
		if err != nil {
			return nil, ErrInvalidTime
		}
		if entity.IsClinicClosed(day) {
			return nil, ErrClinicClosed
		}
		if !entity.IsBookableSlot(start) {
			return nil, ErrNotASlot
		}

		key := doctorSlot{doctorID: doctor.ID, slot: entity.SlotKey(start)}
		if _, dup := taken[key]; dup {
			return nil, ErrDuplicateSlot
		}
		taken[key] = struct{}{}

		visits[i] = plannedVisit{entry: entry, doctor: doctor, start: start}
	}

	return visits, nil
}

func (u *appointmentUsecase) persistBooking(ctx context.Context, patient *entity.Patient, invoice *entity.Invoice, visits []plannedVisit) ([]entity.Appointment, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	for _, v := range visits {
		exists, err := u.appointmentRepo.ExistsActiveAt(tx, v.doctor.ID, v.start)
		if err != nil {
			u.log.Warnf("Failed to check doctor %d slot: %+v", v.doctor.ID, err)
			return nil, err
		}
		if exists {
			return nil, ErrSlotTaken
		}
	}

	if err := u.invoiceRepo.Create(tx, invoice); err != nil {
		u.log.Warnf("Failed to create invoice: %+v", err)
		return nil, err
	}

	appointments := make([]entity.Appointment, len(visits))
	for i, v := range visits {
		start := v.start
		entry := v.entry
		appointments[i] = entity.Appointment{
			PatientID:        patient.ID,
			DoctorID:         v.doctor.ID,
			PriceListEntryID: entry.ID,
			InvoiceID:        invoice.ID,
			ExecutionStatus:  entity.AppointmentStatusPlanned,
			AppointmentDate:  &start,
		}
	}
	if err := u.appointmentRepo.CreateBatch(tx, appointments); err != nil {
		u.log.Warnf("Failed to create appointments: %+v", err)
		if isDuplicateKeyError(err, "ux_appointments_doctor_slot") {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	ids := make([]int64, len(appointments))
	for i := range appointments {
		ids[i] = appointments[i].ID
	}
	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionAppointmentCreate, "invoice", invoice.ID, map[string]interface{}{
		"patient_id":      patient.ID,
		"appointment_ids": ids,
		"total":           invoice.Total.StringFixed(2),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		if isDuplicateKeyError(err, "ux_appointments_doctor_slot") {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	for i, v := range visits {
		entry := v.entry
		appointments[i].Patient = patient
		appointments[i].Doctor = v.doctor
		appointments[i].PriceListEntry = &entry
		appointments[i].Invoice = invoice
	}
	return appointments, nil
}

func (u *appointmentUsecase) notifyDoctor(ctx context.Context, a *entity.Appointment) {
	start := a.AppointmentDate.In(entity.ClinicLocation)
	u.notificationService.NotifyAppointment(ctx, service.AppointmentNotice{
		DoctorEmail: a.Doctor.Email,
		DoctorName:  a.Doctor.FullName(),
		PatientName: a.Patient.FullName(),
		Date:        start.Format(entity.DateLayout),
		Time:        entity.SlotLabel(start),
		PatientID:   a.PatientID,
	})
}

func bookingFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrDuplicateSlot):
		return "slot_taken"
	case errors.Is(err, ErrSlotBusy):
		return "slot_busy"
	}
	if kind := apperror.KindOf(err); kind != "" {
		return strings.ToLower(string(kind))
	}
	return "internal"
}

// Complete marks a started appointment COMPLETED and stamps its completion date. Completing a
// completed appointment is a no-op that keeps its first completion date.
func (u *appointmentUsecase) Complete(ctx context.Context, id int64) (*dto.AppointmentResponse, error) {
	now := u.now()
	return u.transition(ctx, id, entity.AppointmentStatusCompleted, &now, func(a *entity.Appointment) error {
		if a.IsCanceled() {
			return ErrAppointmentCanceled
		}
		if !a.HasStarted(now) {
			return ErrAppointmentNotStarted
		}
		return nil
	})
}

// Cancel marks an appointment CANCELED. Canceling a canceled appointment is a no-op.
func (u *appointmentUsecase) Cancel(ctx context.Context, id int64) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, id, entity.AppointmentStatusCanceled, nil, func(a *entity.Appointment) error {
		if a.IsCompleted() {
			return ErrAppointmentCompleted
		}
		return nil
	})
}

// transition moves a PLANNED appointment to the terminal status to. check rejects the move
// for the appointment's current state; an appointment already in status to is returned unchanged.
func (u *appointmentUsecase) transition(ctx context.Context, id int64, to entity.AppointmentStatus, completionDate *time.Time, check func(a *entity.Appointment) error) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.ExecutionStatus == to {
		return u.appointmentResponse(appointment), nil
	}
	if err := check(appointment); err != nil {
		return nil, err
	}

	rows, err := u.appointmentRepo.UpdateStatus(tx, id, []entity.AppointmentStatus{entity.AppointmentStatusPlanned}, to, completionDate)
	if err != nil {
		u.log.Warnf("Failed to update appointment %d status: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		// Another request moved it first; report against its current state.
		current, err := u.appointmentRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find appointment: %+v", err)
			return nil, err
		}
		if current == nil {
			return nil, ErrAppointmentNotFound
		}
		if current.ExecutionStatus == to {
			return u.appointmentResponse(current), nil
		}
		if err := check(current); err != nil {
			return nil, err
		}
		return nil, ErrAppointmentStatusChanged
	}

	action := entity.AuditActionAppointmentCancel
	if to == entity.AppointmentStatusCompleted {
		action = entity.AuditActionAppointmentComplete
	}
	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), action, "appointment", id,
		map[string]interface{}{"execution_status": appointment.ExecutionStatus},
		map[string]interface{}{"execution_status": to},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	appointment.ExecutionStatus = to
	if completionDate != nil {
		appointment.CompletionDate = completionDate
	}
	return u.appointmentResponse(appointment), nil
}

func (u *appointmentUsecase) appointmentResponse(a *entity.Appointment) *dto.AppointmentResponse {
	response := converter.AppointmentToResponse(a, a.Price())
	return &response
}

// ListAppointments pages through appointments by appointment date, optionally by status.
func (u *appointmentUsecase) ListAppointments(ctx context.Context, req *dto.AppointmentListRequest) ([]dto.AppointmentResponse, int64, error) {
	filter := entity.AppointmentFilter{
		Status: entity.AppointmentStatus(req.Status),
		SortBy: "appointmentDate",
		Desc:   strings.EqualFold(req.Order, "desc"),
	}

	appointments, total, err := u.appointmentRepo.FindPage(u.db.WithContext(ctx), filter, entity.NewPagination(req.Page, req.PerPage))
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, 0, err
	}

	return converter.AppointmentsToResponses(appointments), total, nil
}

// PatientAppointments lists a patient's appointments priced with their invoice discount.
func (u *appointmentUsecase) PatientAppointments(ctx context.Context, patientID int64) ([]dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointments, err := u.appointmentRepo.FindByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments of patient %d: %+v", patientID, err)
		return nil, err
	}

	return converter.AppointmentsToDiscountedResponses(appointments), nil
}

// Statements is the registry of appointments filtered by service names and statuses.
func (u *appointmentUsecase) Statements(ctx context.Context, req *dto.AppointmentListRequest) ([]dto.StatementResponse, int64, error) {
	appointments, total, err := u.appointmentRepo.FindPage(u.db.WithContext(ctx), statementFilter(req), entity.NewPagination(req.Page, req.PerPage))
	if err != nil {
		u.log.Warnf("Failed to find statements: %+v", err)
		return nil, 0, err
	}

	return converter.StatementsToResponses(appointments), total, nil
}

// statementFilter filters by service names and statuses, sorted by id unless asked otherwise.
func statementFilter(req *dto.AppointmentListRequest) entity.AppointmentFilter {
	statuses := make([]entity.AppointmentStatus, len(req.Statuses))
	for i, s := range req.Statuses {
		statuses[i] = entity.AppointmentStatus(s)
	}
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "id"
	}

	return entity.AppointmentFilter{
		Services: req.Services,
		Statuses: statuses,
		SortBy:   sortBy,
		Desc:     strings.EqualFold(req.Order, "desc"),
	}
}
