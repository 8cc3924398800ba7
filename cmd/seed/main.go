package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"clinic-backoffice/cmd/bootstrap"
	"clinic-backoffice/config"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/infrastructure/database"
	"clinic-backoffice/internal/repository"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var serviceNames = []string{
	"General consultation",
	"ECG",
	"Blood panel",
	"Ultrasound",
	"X-Ray",
	"Cardiology consultation",
	"Neurology consultation",
	"Dermatology consultation",
}

var benefitGroups = []entity.BenefitGroup{
	entity.BenefitGroupNone,
	entity.BenefitGroupNone,
	entity.BenefitGroupNone,
	entity.BenefitGroupMilitary,
	entity.BenefitGroupElderly,
	entity.BenefitGroupDisabled,
	entity.BenefitGroupStaffFamily,
}

func main() {
	bootstrap.SetupLogger()

	doctors := flag.Int("doctors", 6, "number of doctors")
	patients := flag.Int("patients", 200, "number of patients")
	password := flag.String("password", "clinic-password", "password of every seeded staff user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("Failed to hash password: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	err = db.Transaction(func(tx *gorm.DB) error {
		services, err := seedServices(tx)
		if err != nil {
			return fmt.Errorf("seed services: %w", err)
		}
		if err := seedPriceList(tx, services); err != nil {
			return fmt.Errorf("seed price list: %w", err)
		}
		if err := seedStaff(tx, string(hash), services, *doctors); err != nil {
			return fmt.Errorf("seed staff: %w", err)
		}
		if err := seedPatients(tx, *patients); err != nil {
			return fmt.Errorf("seed patients: %w", err)
		}
		return nil
	})
	if err != nil {
		logrus.Fatalf("Seed failed: %v", err)
	}

	logrus.Info("Seed complete")
}

func seedServices(tx *gorm.DB) ([]entity.Service, error) {
	serviceRepo := repository.NewServiceRepository()

	services := make([]entity.Service, len(serviceNames))
	for i, name := range serviceNames {
		services[i] = entity.Service{Name: name}
		if err := serviceRepo.Create(tx, &services[i]); err != nil {
			return nil, err
		}
	}

	logrus.Infof("Seeded %d services", len(services))
	return services, nil
}

func seedPriceList(tx *gorm.DB, services []entity.Service) error {
	priceListRepo := repository.NewPriceListRepository()

	priceList := entity.PriceList{Name: fmt.Sprintf("Price list %d", time.Now().Year())}
	for _, s := range services {
		priceList.Entries = append(priceList.Entries, entity.PriceListEntry{
			ServiceID: s.ID,
			Price:     decimal.NewFromInt(int64(gofakeit.Number(10, 120) * 10)),
		})
	}

	if err := priceListRepo.Create(tx, &priceList); err != nil {
		return err
	}
	if err := priceListRepo.Activate(tx, priceList.ID); err != nil {
		return err
	}

	logrus.Infof("Seeded active price list %d", priceList.ID)
	return nil
}

func seedStaff(tx *gorm.DB, passwordHash string, services []entity.Service, doctors int) error {
	userRepo := repository.NewUserRepository()

	staff := []entity.User{
		staffUser(entity.UserTypeManager, "manager@clinic.local", passwordHash),
		staffUser(entity.UserTypeRecorder, "recorder@clinic.local", passwordHash),
	}
	for i := 0; i < doctors; i++ {
		doctor := staffUser(entity.UserTypeDoctor, fmt.Sprintf("doctor%d@clinic.local", i+1), passwordHash)
		doctor.Qualification = gofakeit.JobDescriptor() + " physician"
		// Every doctor performs the general consultation plus two more services.
		doctor.Services = []entity.Service{services[0], services[1+i%(len(services)-1)], services[1+(i+3)%(len(services)-1)]}
		staff = append(staff, doctor)
	}

	for i := range staff {
		if err := userRepo.Create(tx, &staff[i]); err != nil {
			return err
		}
	}

	logrus.Infof("Seeded %d staff users", len(staff))
	return nil
}

func staffUser(userType entity.UserType, email, passwordHash string) entity.User {
	return entity.User{
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
		Email:        email,
		PasswordHash: passwordHash,
		UserType:     userType,
	}
}

func seedPatients(tx *gorm.DB, count int) error {
	patientRepo := repository.NewPatientRepository()

	for i := 0; i < count; i++ {
		gender := entity.GenderFemale
		if gofakeit.Bool() {
			gender = entity.GenderMale
		}
		patient := entity.Patient{
			FirstName:    gofakeit.FirstName(),
			LastName:     gofakeit.LastName(),
			PhoneNumber:  fmt.Sprintf("+49%09d", gofakeit.Number(0, 999999999)),
			Email:        fmt.Sprintf("%d.%s", i, strings.ToLower(gofakeit.Email())),
			BirthDate:    gofakeit.DateRange(time.Now().AddDate(-90, 0, 0), time.Now().AddDate(-1, 0, 0)).Truncate(24 * time.Hour),
			Gender:       gender,
			BenefitGroup: benefitGroups[gofakeit.Number(0, len(benefitGroups)-1)],
		}
		if err := patientRepo.Create(tx, &patient); err != nil {
			return err
		}
	}

	logrus.Infof("Seeded %d patients", count)
	return nil
}
