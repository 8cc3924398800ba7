package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatementDocument(t *testing.T) {
	discount := 50
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	generated := time.Date(2026, 3, 3, 22, 30, 0, 0, time.UTC)

	appointments := []Appointment{
		{
			ID:              7,
			ExecutionStatus: AppointmentStatusCompleted,
			AppointmentDate: &start,
			CompletionDate:  &end,
			Patient:         &Patient{FirstName: "Anna", LastName: "Petrova"},
			Invoice:         &Invoice{DiscountPercent: &discount},
			PriceListEntry:  &PriceListEntry{Price: decimal.RequireFromString("100.00"), Service: &Service{Name: "ECG"}},
		},
		{
			ID:              8,
			ExecutionStatus: AppointmentStatusPlanned,
			PriceListEntry:  &PriceListEntry{Price: decimal.RequireFromString("33.335"), Service: &Service{Name: "Consultation"}},
		},
	}

	doc := NewStatementDocument(appointments, generated)

	assert.Equal(t, "2026-03-04 00:30", SlotKey(doc.GeneratedAt))
	require.Len(t, doc.Lines, 2)

	first := doc.Lines[0]
	assert.Equal(t, int64(7), first.ID)
	assert.Equal(t, "ECG", first.Service)
	assert.Equal(t, "Petrova Anna", first.PatientName)
	assert.Equal(t, "50", first.Total.String())
	require.NotNil(t, first.AppointmentDate)
	assert.Equal(t, "2026-03-02 10:00", SlotKey(*first.AppointmentDate))
	require.NotNil(t, first.EndDate)
	assert.Equal(t, ClinicLocation, first.EndDate.Location())

	second := doc.Lines[1]
	assert.Empty(t, second.PatientName)
	assert.Nil(t, second.AppointmentDate)
	assert.Nil(t, second.EndDate)
	assert.Equal(t, "33.34", second.Total.String())

	assert.Equal(t, "83.34", doc.Total.String())
}

func TestNewStatementDocument_Empty(t *testing.T) {
	doc := NewStatementDocument(nil, time.Now())

	assert.Empty(t, doc.Lines)
	assert.True(t, doc.Total.IsZero())
}
