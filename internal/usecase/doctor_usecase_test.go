package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-backoffice/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDoctorUsecase(t *testing.T) (DoctorUsecase, *mockUserRepository, *mockAppointmentRepository) {
	db, _ := newMockDB(t)
	users := new(mockUserRepository)
	appointments := new(mockAppointmentRepository)
	return NewDoctorUsecase(db, quietLogger(), users, appointments), users, appointments
}

func TestAvailableTimes_RemovesTakenSlots(t *testing.T) {
	uc, users, appointments := newDoctorUsecase(t)
	users.On("FindByID", mock.Anything, int64(5)).Return(&entity.User{ID: 5, UserType: entity.UserTypeDoctor}, nil)
	from := time.Date(2026, 10, 19, 0, 0, 0, 0, entity.ClinicLocation)
	appointments.On("FindTakenStarts", mock.Anything, int64(5), from, from.AddDate(0, 0, 1)).Return([]time.Time{
		time.Date(2026, 10, 19, 9, 0, 0, 0, entity.ClinicLocation),
		// 10:00 in the clinic offset, stored as UTC
		time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
	}, nil)

	res, err := uc.AvailableTimes(context.Background(), 5, "2026-10-19")

	require.NoError(t, err)
	assert.Len(t, res.Times, 16)
	assert.Equal(t, "09:30 - 10:00", res.Times[0])
	assert.Equal(t, "10:30 - 11:00", res.Times[1])
	assert.Equal(t, "17:30 - 18:00", res.Times[15])
}

func TestAvailableTimes_Weekend(t *testing.T) {
	uc, users, appointments := newDoctorUsecase(t)
	users.On("FindByID", mock.Anything, int64(5)).Return(&entity.User{ID: 5, UserType: entity.UserTypeDoctor}, nil)

	res, err := uc.AvailableTimes(context.Background(), 5, "2026-10-17")

	require.NoError(t, err)
	assert.Empty(t, res.Times)
	assert.NotNil(t, res.Times)
	appointments.AssertNotCalled(t, "FindTakenStarts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAvailableTimes_Errors(t *testing.T) {
	t.Run("bad date", func(t *testing.T) {
		uc, _, _ := newDoctorUsecase(t)
		_, err := uc.AvailableTimes(context.Background(), 5, "19.10.2026")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("not a doctor", func(t *testing.T) {
		uc, users, _ := newDoctorUsecase(t)
		users.On("FindByID", mock.Anything, int64(2)).Return(&entity.User{ID: 2, UserType: entity.UserTypeManager}, nil)
		_, err := uc.AvailableTimes(context.Background(), 2, "2026-10-19")
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		uc, users, _ := newDoctorUsecase(t)
		users.On("FindByID", mock.Anything, int64(9)).Return(nil, nil)
		_, err := uc.AvailableTimes(context.Background(), 9, "2026-10-19")
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})
}

func TestAvailableDoctors(t *testing.T) {
	uc, users, _ := newDoctorUsecase(t)
	users.On("FindDoctorsByServiceName", mock.Anything, "ECG").Return([]entity.User{
		{ID: 5, FirstName: "Anna", LastName: "Sidorova", Qualification: "cardiologist", UserType: entity.UserTypeDoctor},
	}, nil)

	res, err := uc.AvailableDoctors(context.Background(), " ECG ")

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Sidorova Anna (cardiologist)", res[0].Name)
}
