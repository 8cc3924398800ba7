package usecase

import (
	"context"
	"errors"

	"clinic-backoffice/internal/delivery/http/middleware"
	"clinic-backoffice/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("clinic-backoffice/usecase")

var (
	ErrPatientNotFound = apperror.NotFound("patient not found")
	ErrPatientExists   = apperror.Conflict("a patient with this phone number or email already exists")

	ErrPriceListNotFound       = apperror.NotFound("price list not found")
	ErrPriceListActive         = apperror.Conflict("an active price list cannot be archived")
	ErrPriceListArchived       = apperror.Conflict("an archived price list cannot be activated")
	ErrNoActivePriceList       = apperror.Operational("no active price list is configured")
	ErrActivePriceListNotFound = apperror.NotFound("no active price list")
	ErrDuplicateEntryService   = apperror.Validation("a service may appear only once in a price list")
	ErrPriceTooLow             = apperror.Validation("price must be at least 0.01")
	ErrPriceListActivationRace = apperror.Conflict("another price list was activated concurrently, try again")

	ErrServiceNotFound  = apperror.NotFound("service not found")
	ErrServiceExists    = apperror.Conflict("a service with this name already exists")
	ErrNoPricedServices = apperror.NotFound("none of the requested services has a price in the active price list")
	ErrEmptyServices    = apperror.Validation("services must not be empty")

	ErrDoctorNotFound = apperror.NotFound("doctor not found")
	ErrUserNotFound   = apperror.NotFound("user not found")
	ErrUserExists     = apperror.Conflict("a user with this email already exists")
	ErrNotADoctor     = apperror.Validation("only doctors can perform services")
	ErrInvalidType    = apperror.Validation("invalid user type")

	ErrAppointmentNotFound      = apperror.NotFound("appointment not found")
	ErrAppointmentNotStarted    = apperror.Validation("appointment hasn't started yet")
	ErrAppointmentCanceled      = apperror.Conflict("appointment is canceled")
	ErrAppointmentCompleted     = apperror.Conflict("appointment is already completed")
	ErrAppointmentStatusChanged = apperror.Conflict("appointment status changed concurrently, try again")
	ErrSlotTaken                = apperror.Conflict("the doctor already has an appointment at this time")
	ErrSlotBusy                 = apperror.Conflict("the time slot is being booked by another request, try again")
	ErrDuplicateSlot            = apperror.Conflict("the same doctor is booked twice at the same time")
	ErrInvalidDate              = apperror.Validation("invalid date, use YYYY-MM-DD")
	ErrInvalidTime              = apperror.Validation("invalid time, use HH:MM or HH:MM - HH:MM")
	ErrClinicClosed             = apperror.Validation("the clinic is closed on weekends")
	ErrNotASlot                 = apperror.Validation("time must be the start of a 30 minute slot between 09:00 and 17:30")

	ErrInvoiceNotFound  = apperror.NotFound("invoice not found")
	ErrAuditLogNotFound = apperror.NotFound("audit log not found")

	ErrVerificationPending = apperror.Conflict("a verification code was already sent to this email")
	ErrInvalidEmail        = apperror.Validation("email is required")
)

// actorID returns the authenticated staff user, or nil for requests without one.
func actorID(ctx context.Context) *int64 {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &userID
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name; an empty name matches any constraint.
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505" && (constraintName == "" || pgErr.ConstraintName == constraintName)
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		return pgErr.Code == "23503"
	}
	return false
}
