package usecase

import (
	"context"
	"strings"

	"clinic-backoffice/internal/converter"
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"
	"clinic-backoffice/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientUsecase interface {
	ListPatients(ctx context.Context, page entity.Pagination) ([]dto.PatientResponse, int64, error)
	GetPatient(ctx context.Context, id int64) (*dto.PatientResponse, error)
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) ListPatients(ctx context.Context, page entity.Pagination) ([]dto.PatientResponse, int64, error) {
	patients, total, err := u.patientRepo.FindPage(u.db.WithContext(ctx), page)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, 0, err
	}

	return converter.PatientsToResponses(patients), total, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id int64) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	patient := &entity.Patient{}
	if err := applyPatientRequest(patient, req); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.patientRepo.Create(tx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		if isDuplicateKeyError(err, "") {
			return nil, ErrPatientExists
		}
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionPatientCreate, "patient", patient.ID, converter.PatientToResponse(patient)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	before := converter.PatientToResponse(patient)

	if err := applyPatientRequest(patient, req); err != nil {
		return nil, err
	}
	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient %d: %+v", id, err)
		if isDuplicateKeyError(err, "") {
			return nil, ErrPatientExists
		}
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionPatientUpdate, "patient", patient.ID, before, converter.PatientToResponse(patient)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func applyPatientRequest(patient *entity.Patient, req *dto.CreatePatientRequest) error {
	birthDate, err := entity.ParseClinicDate(req.BirthDate)
	if err != nil {
		return ErrInvalidDate
	}
	group := entity.BenefitGroup(req.BenefitGroup)
	if group == "" {
		group = entity.BenefitGroupNone
	}

	patient.FirstName = strings.TrimSpace(req.FirstName)
	patient.LastName = strings.TrimSpace(req.LastName)
	patient.MiddleName = strings.TrimSpace(req.MiddleName)
	patient.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	patient.Email = strings.ToLower(strings.TrimSpace(req.Email))
	patient.BirthDate = birthDate
	patient.Gender = entity.Gender(req.Gender)
	patient.BenefitGroup = group
	return nil
}
