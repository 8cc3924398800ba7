package converter

import (
	"time"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"

	"github.com/shopspring/decimal"
)

func millis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func doctorName(a *entity.Appointment) string {
	if a.Doctor == nil {
		return ""
	}
	return a.Doctor.FullName()
}

func patientName(a *entity.Appointment) string {
	if a.Patient == nil {
		return ""
	}
	return a.Patient.FullName()
}

// AppointmentToResponse converts an Appointment, reporting price as the amount to show.
func AppointmentToResponse(a *entity.Appointment, price decimal.Decimal) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		ID:              a.ID,
		Service:         a.ServiceName(),
		AppointmentDate: millis(a.AppointmentDate),
		Status:          string(a.ExecutionStatus),
		Price:           Money(price),
		DoctorName:      doctorName(a),
		PatientName:     patientName(a),
	}
}

// AppointmentsToResponses reports the pinned catalog price of every appointment.
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = AppointmentToResponse(&appointments[i], appointments[i].Price())
	}
	return responses
}

// AppointmentsToDiscountedResponses reports prices after the invoice discount.
func AppointmentsToDiscountedResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = AppointmentToResponse(&appointments[i], appointments[i].DiscountedPrice())
	}
	return responses
}

func StatementsToResponses(appointments []entity.Appointment) []dto.StatementResponse {
	responses := make([]dto.StatementResponse, len(appointments))
	for i := range appointments {
		a := &appointments[i]
		responses[i] = dto.StatementResponse{
			ID:              a.ID,
			InvoiceID:       a.InvoiceID,
			Service:         a.ServiceName(),
			PatientName:     patientName(a),
			DoctorName:      doctorName(a),
			Status:          string(a.ExecutionStatus),
			AppointmentDate: millis(a.AppointmentDate),
			EndDate:         millis(a.CompletionDate),
			Price:           Money(a.DiscountedPrice()),
		}
	}
	return responses
}
