package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementLine is one appointment of a printed statement.
type StatementLine struct {
	ID              int64
	Service         string
	PatientName     string
	Status          AppointmentStatus
	AppointmentDate *time.Time
	EndDate         *time.Time
	Total           decimal.Decimal
}

// StatementDocument is the printable registry of appointments.
type StatementDocument struct {
	GeneratedAt time.Time
	Lines       []StatementLine
	Total       decimal.Decimal
}

// NewStatementDocument prints appointments in the given order. Line totals carry the
// discount stored on each appointment's invoice.
func NewStatementDocument(appointments []Appointment, generatedAt time.Time) StatementDocument {
	doc := StatementDocument{
		GeneratedAt: generatedAt.In(ClinicLocation),
		Lines:       make([]StatementLine, len(appointments)),
		Total:       decimal.Zero,
	}

	for i := range appointments {
		a := &appointments[i]
		line := StatementLine{
			ID:              a.ID,
			Service:         a.ServiceName(),
			Status:          a.ExecutionStatus,
			AppointmentDate: inClinic(a.AppointmentDate),
			EndDate:         inClinic(a.CompletionDate),
			Total:           a.DiscountedPrice().Round(2),
		}
		if a.Patient != nil {
			line.PatientName = a.Patient.FullName()
		}
		doc.Lines[i] = line
		doc.Total = doc.Total.Add(line.Total)
	}
	return doc
}

func inClinic(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	local := t.In(ClinicLocation)
	return &local
}
