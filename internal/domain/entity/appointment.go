package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type AppointmentStatus string

const (
	AppointmentStatusPlanned   AppointmentStatus = "PLANNED"
	AppointmentStatusCanceled  AppointmentStatus = "CANCELED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPlanned, AppointmentStatusCanceled, AppointmentStatusCompleted:
		return true
	}
	return false
}

// Appointment is one visit. The price charged is pinned through PriceListEntry.
type Appointment struct {
	ID               int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID        int64             `gorm:"not null;index" json:"patient_id"`
	DoctorID         int64             `gorm:"not null;index" json:"doctor_id"`
	PriceListEntryID int64             `gorm:"not null;index" json:"price_list_entry_id"`
	InvoiceID        int64             `gorm:"not null;index" json:"invoice_id"`
	ExecutionStatus  AppointmentStatus `gorm:"type:varchar(20);not null;default:'PLANNED';index" json:"execution_status"`
	AppointmentDate  *time.Time        `gorm:"index" json:"appointment_date,omitempty"`
	CompletionDate   *time.Time        `json:"completion_date,omitempty"`
	CreatedAt        time.Time         `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient        *Patient        `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor         *User           `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	PriceListEntry *PriceListEntry `gorm:"foreignKey:PriceListEntryID" json:"price_list_entry,omitempty"`
	Invoice        *Invoice        `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) IsCompleted() bool {
	return a.ExecutionStatus == AppointmentStatusCompleted
}

func (a *Appointment) IsCanceled() bool {
	return a.ExecutionStatus == AppointmentStatusCanceled
}

// HasStarted reports whether the appointment has a date that is not in the future.
func (a *Appointment) HasStarted(now time.Time) bool {
	return a.AppointmentDate != nil && !a.AppointmentDate.After(now)
}

// Price is the catalog price pinned at booking time.
func (a *Appointment) Price() decimal.Decimal {
	if a.PriceListEntry == nil {
		return decimal.Zero
	}
	return a.PriceListEntry.Price
}

// DiscountedPrice recomputes the price with the discount currently stored on the invoice.
func (a *Appointment) DiscountedPrice() decimal.Decimal {
	if a.Invoice == nil {
		return a.Price()
	}
	return ApplyDiscount(a.Price(), a.Invoice.Discount())
}

func (a *Appointment) ServiceName() string {
	if a.PriceListEntry == nil {
		return ""
	}
	return a.PriceListEntry.ServiceName()
}
