package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-backoffice/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var statsNow = time.Date(2026, 10, 16, 15, 20, 0, 0, entity.ClinicLocation)

func newStatisticsUsecase(t *testing.T) (*statisticsUsecase, *mockAppointmentRepository, *mockUserRepository) {
	db, _ := newMockDB(t)
	appointments := new(mockAppointmentRepository)
	users := new(mockUserRepository)
	uc := NewStatisticsUsecase(db, quietLogger(), appointments, users).(*statisticsUsecase)
	uc.now = func() time.Time { return statsNow }
	return uc, appointments, users
}

func completedAt(t time.Time, price string, discount int) entity.Appointment {
	return entity.Appointment{
		ExecutionStatus: entity.AppointmentStatusCompleted,
		CompletionDate:  &t,
		PriceListEntry:  &entity.PriceListEntry{Price: decimal.RequireFromString(price)},
		Invoice:         &entity.Invoice{DiscountPercent: &discount},
	}
}

func clinicTime(day, hour, minute int) time.Time {
	return time.Date(2026, 10, day, hour, minute, 0, 0, entity.ClinicLocation)
}

func TestWeeklyCompleted(t *testing.T) {
	uc, appointments, _ := newStatisticsUsecase(t)
	appointments.On("FindCompletedBetween", mock.Anything, int64(0), clinicTime(10, 0, 0), clinicTime(17, 0, 0)).
		Return([]entity.Appointment{
			completedAt(clinicTime(10, 9, 30), "10", 0),
			completedAt(clinicTime(16, 10, 0), "10", 0),
			// 23:30 UTC on the 15th is already the 16th in the clinic offset
			completedAt(time.Date(2026, 10, 15, 23, 30, 0, 0, time.UTC), "10", 0),
		}, nil)

	res, err := uc.WeeklyCompleted(context.Background())

	require.NoError(t, err)
	require.Len(t, res, 7)
	assert.Equal(t, "10.10", res[0].Label)
	assert.Equal(t, 1, res[0].Count)
	assert.Equal(t, "16.10", res[6].Label)
	assert.Equal(t, 2, res[6].Count)
	assert.Equal(t, 0, res[3].Count)
}

func TestTodayCumulative(t *testing.T) {
	uc, appointments, _ := newStatisticsUsecase(t)
	appointments.On("FindCompletedBetween", mock.Anything, int64(0), clinicTime(16, 0, 0), clinicTime(17, 0, 0)).
		Return([]entity.Appointment{
			completedAt(clinicTime(16, 8, 50), "10", 0),
			completedAt(clinicTime(16, 9, 0), "10", 0),
			completedAt(clinicTime(16, 11, 15), "10", 0),
		}, nil)

	res, err := uc.TodayCumulative(context.Background())

	require.NoError(t, err)
	require.Len(t, res, 10)
	assert.Equal(t, "09:00", res[0].Hour)
	assert.Equal(t, 1, res[0].Count)
	assert.Equal(t, 2, res[1].Count)
	assert.Equal(t, 3, res[3].Count)
	assert.Equal(t, "18:00", res[9].Hour)
	assert.Equal(t, 3, res[9].Count)
}

func TestDoctorDailyRevenues(t *testing.T) {
	uc, appointments, users := newStatisticsUsecase(t)
	users.On("FindByID", mock.Anything, int64(5)).Return(&entity.User{ID: 5, UserType: entity.UserTypeDoctor}, nil)
	appointments.On("FindCompletedBetween", mock.Anything, int64(5), clinicTime(10, 0, 0), clinicTime(17, 0, 0)).
		Return([]entity.Appointment{
			completedAt(clinicTime(16, 10, 0), "100", 20),
			completedAt(clinicTime(16, 11, 0), "50", 0),
		}, nil)

	res, err := uc.DoctorDailyRevenues(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, res, 7)
	assert.Equal(t, "0.00", res[0].Revenue)
	assert.Equal(t, "130.00", res[6].Revenue)
}

func TestDoctorDailyCounts_UnknownDoctor(t *testing.T) {
	uc, _, users := newStatisticsUsecase(t)
	users.On("FindByID", mock.Anything, int64(8)).Return(nil, nil)

	_, err := uc.DoctorDailyCounts(context.Background(), 8)

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}
