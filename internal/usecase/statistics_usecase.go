package usecase

import (
	"context"
	"fmt"
	"time"

	"clinic-backoffice/internal/converter"
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	statisticsDays      = 7
	statisticsDayLayout = "02.01"
)

// StatisticsUsecase reports completed work for the owner dashboard. Days follow the clinic offset.
type StatisticsUsecase interface {
	WeeklyCompleted(ctx context.Context) ([]dto.DayCountResponse, error)
	TodayCumulative(ctx context.Context) ([]dto.HourCountResponse, error)
	DoctorDailyCounts(ctx context.Context, doctorID int64) ([]dto.DayCountResponse, error)
	DoctorDailyRevenues(ctx context.Context, doctorID int64) ([]dto.DayRevenueResponse, error)
}

type statisticsUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	now             func() time.Time
}

func NewStatisticsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
) StatisticsUsecase {
	return &statisticsUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		now:             time.Now,
	}
}

func (u *statisticsUsecase) WeeklyCompleted(ctx context.Context) ([]dto.DayCountResponse, error) {
	days, appointments, err := u.lastWeek(u.db.WithContext(ctx), 0)
	if err != nil {
		return nil, err
	}
	return countByDay(days, appointments), nil
}

// TodayCumulative counts, for every hour from 09:00 to 18:00, today's completions before it.
func (u *statisticsUsecase) TodayCumulative(ctx context.Context) ([]dto.HourCountResponse, error) {
	from, to := entity.DayBounds(u.now())
	appointments, err := u.appointmentRepo.FindCompletedBetween(u.db.WithContext(ctx), 0, from, to)
	if err != nil {
		u.log.Warnf("Failed to find completed appointments: %+v", err)
		return nil, err
	}

	entries := make([]dto.HourCountResponse, 0, entity.WorkdayEndHour-entity.WorkdayStartHour+1)
	running, idx := 0, 0
	for hour := entity.WorkdayStartHour; hour <= entity.WorkdayEndHour; hour++ {
		cutoff := from.Add(time.Duration(hour) * time.Hour)
		for idx < len(appointments) && appointments[idx].CompletionDate.Before(cutoff) {
			running++
			idx++
		}
		entries = append(entries, dto.HourCountResponse{Hour: fmt.Sprintf("%02d:00", hour), Count: running})
	}
	return entries, nil
}

func (u *statisticsUsecase) DoctorDailyCounts(ctx context.Context, doctorID int64) ([]dto.DayCountResponse, error) {
	db := u.db.WithContext(ctx)
	if err := u.ensureDoctor(db, doctorID); err != nil {
		return nil, err
	}

	days, appointments, err := u.lastWeek(db, doctorID)
	if err != nil {
		return nil, err
	}
	return countByDay(days, appointments), nil
}

// DoctorDailyRevenues sums the discounted price of the doctor's completed appointments per day.
func (u *statisticsUsecase) DoctorDailyRevenues(ctx context.Context, doctorID int64) ([]dto.DayRevenueResponse, error) {
	db := u.db.WithContext(ctx)
	if err := u.ensureDoctor(db, doctorID); err != nil {
		return nil, err
	}

	days, appointments, err := u.lastWeek(db, doctorID)
	if err != nil {
		return nil, err
	}

	revenue := make(map[string]decimal.Decimal, len(days))
	for i := range appointments {
		key := dayLabel(*appointments[i].CompletionDate)
		revenue[key] = revenue[key].Add(appointments[i].DiscountedPrice())
	}

	entries := make([]dto.DayRevenueResponse, len(days))
	for i, d := range days {
		label := dayLabel(d)
		entries[i] = dto.DayRevenueResponse{Label: label, Revenue: converter.Money(revenue[label])}
	}
	return entries, nil
}

func (u *statisticsUsecase) ensureDoctor(db *gorm.DB, doctorID int64) error {
	doctor, err := u.userRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return ErrDoctorNotFound
	}
	return nil
}

// lastWeek returns the starts of the last 7 days ending today and the completions within them.
func (u *statisticsUsecase) lastWeek(db *gorm.DB, doctorID int64) ([]time.Time, []entity.Appointment, error) {
	todayStart, tomorrow := entity.DayBounds(u.now())
	days := make([]time.Time, statisticsDays)
	for i := range days {
		days[i] = todayStart.AddDate(0, 0, i-(statisticsDays-1))
	}

	appointments, err := u.appointmentRepo.FindCompletedBetween(db, doctorID, days[0], tomorrow)
	if err != nil {
		u.log.Warnf("Failed to find completed appointments: %+v", err)
		return nil, nil, err
	}
	return days, appointments, nil
}

func countByDay(days []time.Time, appointments []entity.Appointment) []dto.DayCountResponse {
	counts := make(map[string]int, len(days))
	for i := range appointments {
		counts[dayLabel(*appointments[i].CompletionDate)]++
	}

	entries := make([]dto.DayCountResponse, len(days))
	for i, d := range days {
		label := dayLabel(d)
		entries[i] = dto.DayCountResponse{Label: label, Count: counts[label]}
	}
	return entries
}

func dayLabel(t time.Time) string {
	return t.In(entity.ClinicLocation).Format(statisticsDayLayout)
}
