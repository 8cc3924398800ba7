package usecase

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"clinic-backoffice/internal/converter"
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"
	"clinic-backoffice/internal/infrastructure/storage"
	"clinic-backoffice/internal/service"
	"clinic-backoffice/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const pdfContentType = "application/pdf"

type MedicalRecordUsecase interface {
	ListRecords(ctx context.Context, patientID int64) ([]dto.MedicalRecordResponse, error)
	CreateRecord(ctx context.Context, patientID int64, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
}

type medicalRecordUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	recordRepo   repository.MedicalRecordRepository
	patientRepo  repository.PatientRepository
	serviceRepo  repository.ServiceRepository
	fileStorage  storage.FileStorage
	auditService service.AuditService
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.MedicalRecordRepository,
	patientRepo repository.PatientRepository,
	serviceRepo repository.ServiceRepository,
	fileStorage storage.FileStorage,
	auditService service.AuditService,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:           db,
		log:          log,
		recordRepo:   recordRepo,
		patientRepo:  patientRepo,
		serviceRepo:  serviceRepo,
		fileStorage:  fileStorage,
		auditService: auditService,
	}
}

func (u *medicalRecordUsecase) ListRecords(ctx context.Context, patientID int64) ([]dto.MedicalRecordResponse, error) {
	db := u.db.WithContext(ctx)
	if err := u.ensurePatient(db, patientID); err != nil {
		return nil, err
	}

	records, err := u.recordRepo.FindByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find medical records of patient %d: %+v", patientID, err)
		return nil, err
	}

	return converter.MedicalRecordsToResponses(records), nil
}

// CreateRecord stores one record. Analysis files are uploaded before the record is written.
func (u *medicalRecordUsecase) CreateRecord(ctx context.Context, patientID int64, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	db := u.db.WithContext(ctx)
	if err := u.ensurePatient(db, patientID); err != nil {
		return nil, err
	}

	content, err := u.recordContent(ctx, db, patientID, req)
	if err != nil {
		return nil, err
	}

	record, err := entity.NewMedicalRecord(patientID, strings.TrimSpace(req.Title), content)
	if err != nil {
		return nil, invalidRecord(err)
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.recordRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		if isForeignKeyError(err) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionMedicalRecordCreate, "medical_record", record.ID, map[string]interface{}{
		"patient_id":  patientID,
		"record_type": record.RecordType,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	response := converter.MedicalRecordToResponse(record)
	return &response, nil
}

func (u *medicalRecordUsecase) ensurePatient(db *gorm.DB, patientID int64) error {
	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}
	return nil
}

func (u *medicalRecordUsecase) recordContent(ctx context.Context, db *gorm.DB, patientID int64, req *dto.CreateMedicalRecordRequest) (entity.RecordContent, error) {
	switch entity.RecordType(req.RecordType) {
	case entity.RecordTypeDiagnosis:
		return entity.Diagnosis{Conclusion: strings.TrimSpace(req.Conclusion)}, nil

	case entity.RecordTypeNecessaryExaminations:
		if len(req.ServiceIDs) == 0 {
			return nil, invalidRecord(fmt.Errorf("%w: at least one examination is required", entity.ErrInvalidRecord))
		}
		services, err := u.serviceRepo.FindByIDs(db, req.ServiceIDs)
		if err != nil {
			u.log.Warnf("Failed to find services: %+v", err)
			return nil, err
		}
		if len(services) != len(distinctIDs(req.ServiceIDs)) {
			return nil, ErrServiceNotFound
		}
		return entity.NecessaryExaminations{ServiceIDs: distinctIDs(req.ServiceIDs)}, nil

	case entity.RecordTypeAnalysisResults:
		links, err := u.uploadAnalysisFiles(ctx, patientID, req.Files)
		if err != nil {
			return nil, err
		}
		return entity.AnalysisResults{Links: links}, nil
	}

	return nil, apperror.Validationf("unknown record type %q", req.RecordType)
}

func (u *medicalRecordUsecase) uploadAnalysisFiles(ctx context.Context, patientID int64, files []dto.UploadedFile) ([]string, error) {
	if len(files) == 0 {
		return nil, invalidRecord(fmt.Errorf("%w: at least one analysis file is required", entity.ErrInvalidRecord))
	}
	if len(files) > entity.MaxAnalysisFiles {
		return nil, invalidRecord(fmt.Errorf("%w: at most %d analysis files are allowed", entity.ErrInvalidRecord, entity.MaxAnalysisFiles))
	}
	for _, f := range files {
		if !isPDF(f) {
			return nil, apperror.Validationf("%s is not a PDF file", f.Filename)
		}
	}

	links := make([]string, 0, len(files))
	for _, f := range files {
		key := fmt.Sprintf("analysis-results/patient-%d/%s.pdf", patientID, uuid.New().String())
		url, err := u.fileStorage.Upload(ctx, key, pdfContentType, f.Content)
		if err != nil {
			u.log.Warnf("Failed to upload analysis file %q: %+v", f.Filename, err)
			return nil, apperror.Operational("failed to store analysis file")
		}
		links = append(links, url)
	}
	return links, nil
}

func isPDF(f dto.UploadedFile) bool {
	if f.ContentType == pdfContentType {
		return true
	}
	return strings.EqualFold(path.Ext(f.Filename), ".pdf")
}

func invalidRecord(err error) error {
	if errors.Is(err, entity.ErrInvalidRecord) {
		return &apperror.AppError{Kind: apperror.KindValidation, Message: err.Error(), Err: err}
	}
	return err
}

func distinctIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
