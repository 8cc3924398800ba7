package usecase

import (
	"context"
	"strings"

	"clinic-backoffice/internal/converter"
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DoctorUsecase answers the registry's "who can do it and when" questions.
type DoctorUsecase interface {
	AvailableTimes(ctx context.Context, doctorID int64, date string) (*dto.AvailableTimesResponse, error)
	AvailableDoctors(ctx context.Context, serviceName string) ([]dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
) DoctorUsecase {
	return &doctorUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
	}
}

// AvailableTimes lists the free half-hour slots of the doctor's working day.
func (u *doctorUsecase) AvailableTimes(ctx context.Context, doctorID int64, date string) (*dto.AvailableTimesResponse, error) {
	day, err := entity.ParseClinicDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	db := u.db.WithContext(ctx)
	doctor, err := u.userRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}

	response := &dto.AvailableTimesResponse{DoctorID: doctorID, Date: date}
	if entity.IsClinicClosed(day) {
		response.Times = []string{}
		return response, nil
	}

	from, to := entity.DayBounds(day)
	taken, err := u.appointmentRepo.FindTakenStarts(db, doctorID, from, to)
	if err != nil {
		u.log.Warnf("Failed to find appointments of doctor %d: %+v", doctorID, err)
		return nil, err
	}

	response.Times = entity.AvailableSlots(day, taken)
	return response, nil
}

func (u *doctorUsecase) AvailableDoctors(ctx context.Context, serviceName string) ([]dto.DoctorResponse, error) {
	serviceName = strings.TrimSpace(serviceName)
	if serviceName == "" {
		return nil, ErrEmptyServices
	}

	doctors, err := u.userRepo.FindDoctorsByServiceName(u.db.WithContext(ctx), serviceName)
	if err != nil {
		u.log.Warnf("Failed to find doctors for service %q: %+v", serviceName, err)
		return nil, err
	}

	return converter.DoctorsToResponses(doctors), nil
}
